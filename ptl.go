package hevc

// ProfileTierLevel holds the general profile/tier/level fields plus the
// per-sub-layer set present when max_sub_layers > 1.
type ProfileTierLevel struct {
	GeneralProfileSpace             uint8
	GeneralTierFlag                 bool
	GeneralProfileIDC               uint8
	GeneralProfileCompatibilityFlag [32]bool
	GeneralProgressiveSourceFlag    bool
	GeneralInterlacedSourceFlag     bool
	GeneralNonPackedConstraintFlag  bool
	GeneralFrameOnlyConstraintFlag  bool
	GeneralLevelIDC                 uint8

	SubLayerProfilePresentFlag []bool
	SubLayerLevelPresentFlag   []bool
	SubLayerProfileSpace       []uint8
	SubLayerTierFlag           []bool
	SubLayerProfileIDC         []uint8
	// SubLayerLevelIDC always holds max_sub_layers-1 entries; layers with no
	// level_present_flag default to 1, per the HEVC spec's documented
	// sub-layer default.
	SubLayerLevelIDC []uint8
}

// ParseProfileTierLevel decodes a profile_tier_level() structure for
// maxSubLayers sub-layers.
func ParseProfileTierLevel(r *BitReader, maxSubLayers uint8) (ProfileTierLevel, error) {
	var ptl ProfileTierLevel

	v, err := r.ReadBits(2)
	if err != nil {
		return ptl, err
	}
	ptl.GeneralProfileSpace = uint8(v)

	if ptl.GeneralTierFlag, err = r.ReadBit(); err != nil {
		return ptl, err
	}

	v, err = r.ReadBits(5)
	if err != nil {
		return ptl, err
	}
	ptl.GeneralProfileIDC = uint8(v)

	for i := 0; i < 32; i++ {
		if ptl.GeneralProfileCompatibilityFlag[i], err = r.ReadBit(); err != nil {
			return ptl, err
		}
	}

	if ptl.GeneralProgressiveSourceFlag, err = r.ReadBit(); err != nil {
		return ptl, err
	}
	if ptl.GeneralInterlacedSourceFlag, err = r.ReadBit(); err != nil {
		return ptl, err
	}
	if ptl.GeneralNonPackedConstraintFlag, err = r.ReadBit(); err != nil {
		return ptl, err
	}
	if ptl.GeneralFrameOnlyConstraintFlag, err = r.ReadBit(); err != nil {
		return ptl, err
	}
	if err = r.SkipBits(32); err != nil { // general_reserved_zero_44bits, high 32
		return ptl, err
	}
	if err = r.SkipBits(12); err != nil { // general_reserved_zero_44bits, low 12
		return ptl, err
	}

	v, err = r.ReadBits(8)
	if err != nil {
		return ptl, err
	}
	ptl.GeneralLevelIDC = uint8(v)

	maxSubLayersMinus1 := maxSubLayers - 1

	ptl.SubLayerProfilePresentFlag = make([]bool, maxSubLayersMinus1)
	ptl.SubLayerLevelPresentFlag = make([]bool, maxSubLayersMinus1)
	for i := uint8(0); i < maxSubLayersMinus1; i++ {
		if ptl.SubLayerProfilePresentFlag[i], err = r.ReadBit(); err != nil {
			return ptl, err
		}
		if ptl.SubLayerLevelPresentFlag[i], err = r.ReadBit(); err != nil {
			return ptl, err
		}
	}

	if maxSubLayersMinus1 > 0 {
		for i := maxSubLayersMinus1; i < 8; i++ {
			if err = r.SkipBits(2); err != nil { // reserved_zero_2bits
				return ptl, err
			}
		}
	}

	ptl.SubLayerProfileSpace = make([]uint8, 0, maxSubLayersMinus1)
	ptl.SubLayerTierFlag = make([]bool, 0, maxSubLayersMinus1)
	ptl.SubLayerProfileIDC = make([]uint8, 0, maxSubLayersMinus1)
	ptl.SubLayerLevelIDC = make([]uint8, 0, maxSubLayersMinus1)

	for i := uint8(0); i < maxSubLayersMinus1; i++ {
		if ptl.SubLayerProfilePresentFlag[i] {
			v, err = r.ReadBits(2)
			if err != nil {
				return ptl, err
			}
			ptl.SubLayerProfileSpace = append(ptl.SubLayerProfileSpace, uint8(v))

			tier, err := r.ReadBit()
			if err != nil {
				return ptl, err
			}
			ptl.SubLayerTierFlag = append(ptl.SubLayerTierFlag, tier)

			v, err = r.ReadBits(5)
			if err != nil {
				return ptl, err
			}
			ptl.SubLayerProfileIDC = append(ptl.SubLayerProfileIDC, uint8(v))

			if err = r.SkipBits(32); err != nil { // sub_layer_profile_compatibility_flag[32]
				return ptl, err
			}
			if err = r.SkipBits(4); err != nil { // progressive/interlaced/non_packed/frame_only
				return ptl, err
			}
			if err = r.SkipBits(32); err != nil { // sub_layer_reserved_zero_44bits, high 32
				return ptl, err
			}
			if err = r.SkipBits(12); err != nil { // sub_layer_reserved_zero_44bits, low 12
				return ptl, err
			}
		}

		if ptl.SubLayerLevelPresentFlag[i] {
			v, err = r.ReadBits(8)
			if err != nil {
				return ptl, err
			}
			ptl.SubLayerLevelIDC = append(ptl.SubLayerLevelIDC, uint8(v))
		} else {
			// No sub-layer level_idc present: the HEVC spec defines the
			// default as 1 (not 0) for this case.
			ptl.SubLayerLevelIDC = append(ptl.SubLayerLevelIDC, 1)
		}
	}

	return ptl, nil
}
