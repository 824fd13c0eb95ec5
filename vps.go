package hevc

// VPS is a decoded Video Parameter Set.
type VPS struct {
	VpsID                          uint8
	VpsMaxLayers                   uint8
	VpsMaxSubLayers                uint8
	VpsTemporalIDNestingFlag       bool
	Ptl                            ProfileTierLevel
	VpsSubLayerOrderingInfoPresent bool

	VpsMaxDecPicBuffering []uint64
	VpsNumReorderPics     []uint64
	// VpsMaxLatencyIncrease holds the adjusted (ue(v)-1, saturating at 0)
	// value per sub-layer; VpsMaxLatencyIncreasePlus1 holds the raw ue(v)
	// so a raw value of 0 ("no constraint", per HEVC's own sentinel) is
	// distinguishable from an adjusted value of 0. See DESIGN.md.
	VpsMaxLatencyIncrease      []uint64
	VpsMaxLatencyIncreasePlus1 []uint64

	VpsMaxLayerID   uint8
	VpsNumLayerSets uint64

	VpsTimingInfoPresentFlag       bool
	VpsNumUnitsInTick              uint32
	VpsTimeScale                   uint32
	VpsPocProportionalToTimingFlag bool
	VpsNumTicksPocDiffOne          uint64
	VpsNumHrdParameters            uint64
}

// ParseVPS decodes a video_parameter_set_rbsp() from r, which must be
// positioned just past the NAL header.
func ParseVPS(r *BitReader) (VPS, error) {
	var vps VPS
	var err error

	v, err := r.ReadBits(4)
	if err != nil {
		return vps, err
	}
	vps.VpsID = uint8(v)

	if v, err = r.ReadBits(2); err != nil { // vps_reserved_three_2bits
		return vps, err
	}
	if v != 3 {
		return vps, ErrReservedBitsMismatch
	}

	if v, err = r.ReadBits(6); err != nil {
		return vps, err
	}
	vps.VpsMaxLayers = uint8(v) + 1

	if v, err = r.ReadBits(3); err != nil {
		return vps, err
	}
	vps.VpsMaxSubLayers = uint8(v) + 1

	if vps.VpsTemporalIDNestingFlag, err = r.ReadBit(); err != nil {
		return vps, err
	}

	v, err = r.ReadBits(16) // vps_reserved_ffff_16bits
	if err != nil {
		return vps, err
	}
	if v != 0xFFFF {
		return vps, ErrReservedBitsMismatch
	}

	if vps.Ptl, err = ParseProfileTierLevel(r, vps.VpsMaxSubLayers); err != nil {
		return vps, err
	}

	if vps.VpsSubLayerOrderingInfoPresent, err = r.ReadBit(); err != nil {
		return vps, err
	}

	start := uint8(0)
	if !vps.VpsSubLayerOrderingInfoPresent {
		start = vps.VpsMaxSubLayers - 1
	}

	for i := start; i < vps.VpsMaxSubLayers; i++ {
		dpb, err := r.ReadUE()
		if err != nil {
			return vps, err
		}
		vps.VpsMaxDecPicBuffering = append(vps.VpsMaxDecPicBuffering, dpb+1)

		reorder, err := r.ReadUE()
		if err != nil {
			return vps, err
		}
		vps.VpsNumReorderPics = append(vps.VpsNumReorderPics, reorder)

		latencyPlus1, err := r.ReadUE()
		if err != nil {
			return vps, err
		}
		vps.VpsMaxLatencyIncreasePlus1 = append(vps.VpsMaxLatencyIncreasePlus1, latencyPlus1)

		var adjusted uint64
		if latencyPlus1 > 0 {
			adjusted = latencyPlus1 - 1
		}
		vps.VpsMaxLatencyIncrease = append(vps.VpsMaxLatencyIncrease, adjusted)
	}

	if v, err = r.ReadBits(6); err != nil {
		return vps, err
	}
	vps.VpsMaxLayerID = uint8(v)

	numLayerSets, err := r.ReadUE()
	if err != nil {
		return vps, err
	}
	vps.VpsNumLayerSets = numLayerSets + 1

	for i := uint64(1); i < vps.VpsNumLayerSets; i++ {
		for j := uint8(0); j <= vps.VpsMaxLayerID; j++ {
			if err = r.SkipBits(1); err != nil { // layer_id_included_flag[i][j]
				return vps, err
			}
		}
	}

	if vps.VpsTimingInfoPresentFlag, err = r.ReadBit(); err != nil {
		return vps, err
	}

	if vps.VpsTimingInfoPresentFlag {
		if v, err = r.ReadBits(32); err != nil {
			return vps, err
		}
		vps.VpsNumUnitsInTick = uint32(v)

		if v, err = r.ReadBits(32); err != nil {
			return vps, err
		}
		vps.VpsTimeScale = uint32(v)

		if vps.VpsPocProportionalToTimingFlag, err = r.ReadBit(); err != nil {
			return vps, err
		}
		if vps.VpsPocProportionalToTimingFlag {
			n, err := r.ReadUE()
			if err != nil {
				return vps, err
			}
			vps.VpsNumTicksPocDiffOne = n + 1
		}

		if vps.VpsNumHrdParameters, err = r.ReadUE(); err != nil {
			return vps, err
		}

		for i := uint64(0); i < vps.VpsNumHrdParameters; i++ {
			commonInfPresent := false

			if _, err = r.ReadUE(); err != nil { // hrd_layer_set_idx
				return vps, err
			}

			if i > 0 {
				if commonInfPresent, err = r.ReadBit(); err != nil {
					return vps, err
				}
			}

			if _, err = ParseHRDParameters(r, commonInfPresent, vps.VpsMaxSubLayers); err != nil {
				return vps, err
			}
		}
	}

	if err = r.SkipBits(1); err != nil { // vps_extension_flag
		return vps, err
	}

	return vps, nil
}
