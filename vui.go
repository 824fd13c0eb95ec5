package hevc

// VUIParameters models the vui_parameters() structure.
type VUIParameters struct {
	SarPresent bool
	SarIdc     uint8
	SarNum     uint16
	SarDen     uint16

	OverscanInfoPresentFlag    bool
	OverscanAppropriateFlag    bool
	VideoSignalTypePresentFlag bool

	VideoFormat                  uint8
	VideoFullRangeFlag           bool
	ColourDescriptionPresentFlag bool
	ColourPrimaries              uint8
	TransferCharacteristic       uint8
	MatrixCoeffs                 uint8

	ChromaLocInfoPresentFlag       bool
	ChromaSampleLocTypeTopField    uint64
	ChromaSampleLocTypeBottomField uint64
	NeutralChromaIndicationFlag    bool
	FieldSeqFlag                   bool
	FrameFieldInfoPresentFlag      bool

	DefaultDisplayWindowFlag bool
	DefDispWinLeftOffset     uint64
	DefDispWinRightOffset    uint64
	DefDispWinTopOffset      uint64
	DefDispWinBottomOffset   uint64

	VuiTimingInfoPresentFlag       bool
	VuiNumUnitsInTick              uint32
	VuiTimeScale                   uint32
	VuiPocProportionalToTimingFlag bool
	VuiNumTicksPocDiffOneMinus1    uint64
	VuiHrdParametersPresentFlag    bool
	HrdParameters                  HRDParameters

	BitstreamRestrictionFlag           bool
	TilesFixedStructureFlag            bool
	MotionVectorsOverPicBoundariesFlag bool
	RestrictedRefPicListsFlag          bool

	MinSpatialSegmentationIdc uint64
	MaxBytesPerPicDenom       uint64
	MaxBitsPerMinCuDenom      uint64
	Log2MaxMvLengthHorizontal uint64
	Log2MaxMvLengthVertical   uint64
}

// sarAspectRatios is the ITU-T Table E-1 sample aspect ratio lookup for
// sar_idc 1..16; sar_idc 255 (EXTENDED_SAR) carries explicit num/den instead.
var sarAspectRatios = map[uint8][2]uint16{
	1: {1, 1}, 2: {12, 11}, 3: {10, 11}, 4: {16, 11},
	5: {40, 33}, 6: {24, 11}, 7: {20, 11}, 8: {32, 11},
	9: {80, 33}, 10: {18, 11}, 11: {15, 11}, 12: {64, 33},
	13: {160, 99}, 14: {4, 3}, 15: {3, 2}, 16: {2, 1},
}

// AspectRatio returns the sample aspect ratio as (num, den), translating
// sar_idc through the ITU-T table or, for sar_idc 255, returning the
// explicit SarNum/SarDen pair. It reports false when no SAR is present or
// sar_idc names a reserved value.
func (v VUIParameters) AspectRatio() (num, den uint16, ok bool) {
	if !v.SarPresent {
		return 0, 0, false
	}
	if v.SarIdc == 255 {
		return v.SarNum, v.SarDen, true
	}
	if ratio, found := sarAspectRatios[v.SarIdc]; found {
		return ratio[0], ratio[1], true
	}
	return 0, 0, false
}

// ParseVUIParameters decodes vui_parameters() for the SPS's max_sub_layers.
func ParseVUIParameters(r *BitReader, maxSubLayers uint8) (VUIParameters, error) {
	var vui VUIParameters
	var err error

	if vui.SarPresent, err = r.ReadBit(); err != nil {
		return vui, err
	}
	if vui.SarPresent {
		v, err := r.ReadBits(8)
		if err != nil {
			return vui, err
		}
		vui.SarIdc = uint8(v)

		if vui.SarIdc == 255 {
			v, err := r.ReadBits(16)
			if err != nil {
				return vui, err
			}
			vui.SarNum = uint16(v)
			if v, err = r.ReadBits(16); err != nil {
				return vui, err
			}
			vui.SarDen = uint16(v)
		}
	}

	if vui.OverscanInfoPresentFlag, err = r.ReadBit(); err != nil {
		return vui, err
	}
	if vui.OverscanInfoPresentFlag {
		if vui.OverscanAppropriateFlag, err = r.ReadBit(); err != nil {
			return vui, err
		}
	}

	if vui.VideoSignalTypePresentFlag, err = r.ReadBit(); err != nil {
		return vui, err
	}
	if vui.VideoSignalTypePresentFlag {
		v, err := r.ReadBits(3)
		if err != nil {
			return vui, err
		}
		vui.VideoFormat = uint8(v)

		if vui.VideoFullRangeFlag, err = r.ReadBit(); err != nil {
			return vui, err
		}
		if vui.ColourDescriptionPresentFlag, err = r.ReadBit(); err != nil {
			return vui, err
		}
		if vui.ColourDescriptionPresentFlag {
			if v, err = r.ReadBits(8); err != nil {
				return vui, err
			}
			vui.ColourPrimaries = uint8(v)
			if v, err = r.ReadBits(8); err != nil {
				return vui, err
			}
			vui.TransferCharacteristic = uint8(v)
			if v, err = r.ReadBits(8); err != nil {
				return vui, err
			}
			vui.MatrixCoeffs = uint8(v)
		}
	}

	if vui.ChromaLocInfoPresentFlag, err = r.ReadBit(); err != nil {
		return vui, err
	}
	if vui.ChromaLocInfoPresentFlag {
		if vui.ChromaSampleLocTypeTopField, err = r.ReadUE(); err != nil {
			return vui, err
		}
		if vui.ChromaSampleLocTypeBottomField, err = r.ReadUE(); err != nil {
			return vui, err
		}
	}

	if vui.NeutralChromaIndicationFlag, err = r.ReadBit(); err != nil {
		return vui, err
	}
	if vui.FieldSeqFlag, err = r.ReadBit(); err != nil {
		return vui, err
	}
	if vui.FrameFieldInfoPresentFlag, err = r.ReadBit(); err != nil {
		return vui, err
	}
	if vui.DefaultDisplayWindowFlag, err = r.ReadBit(); err != nil {
		return vui, err
	}

	if vui.DefaultDisplayWindowFlag {
		if vui.DefDispWinLeftOffset, err = r.ReadUE(); err != nil {
			return vui, err
		}
		if vui.DefDispWinRightOffset, err = r.ReadUE(); err != nil {
			return vui, err
		}
		if vui.DefDispWinTopOffset, err = r.ReadUE(); err != nil {
			return vui, err
		}
		if vui.DefDispWinBottomOffset, err = r.ReadUE(); err != nil {
			return vui, err
		}
	}

	if vui.VuiTimingInfoPresentFlag, err = r.ReadBit(); err != nil {
		return vui, err
	}
	if vui.VuiTimingInfoPresentFlag {
		v, err := r.ReadBits(32)
		if err != nil {
			return vui, err
		}
		vui.VuiNumUnitsInTick = uint32(v)
		if v, err = r.ReadBits(32); err != nil {
			return vui, err
		}
		vui.VuiTimeScale = uint32(v)

		if vui.VuiPocProportionalToTimingFlag, err = r.ReadBit(); err != nil {
			return vui, err
		}
		if vui.VuiPocProportionalToTimingFlag {
			if vui.VuiNumTicksPocDiffOneMinus1, err = r.ReadUE(); err != nil {
				return vui, err
			}
		}

		if vui.VuiHrdParametersPresentFlag, err = r.ReadBit(); err != nil {
			return vui, err
		}
		if vui.VuiHrdParametersPresentFlag {
			if vui.HrdParameters, err = ParseHRDParameters(r, true, maxSubLayers); err != nil {
				return vui, err
			}
		}
	}

	if vui.BitstreamRestrictionFlag, err = r.ReadBit(); err != nil {
		return vui, err
	}
	if vui.BitstreamRestrictionFlag {
		if vui.TilesFixedStructureFlag, err = r.ReadBit(); err != nil {
			return vui, err
		}
		if vui.MotionVectorsOverPicBoundariesFlag, err = r.ReadBit(); err != nil {
			return vui, err
		}
		if vui.RestrictedRefPicListsFlag, err = r.ReadBit(); err != nil {
			return vui, err
		}
		if vui.MinSpatialSegmentationIdc, err = r.ReadUE(); err != nil {
			return vui, err
		}
		if vui.MaxBytesPerPicDenom, err = r.ReadUE(); err != nil {
			return vui, err
		}
		if vui.MaxBitsPerMinCuDenom, err = r.ReadUE(); err != nil {
			return vui, err
		}
		if vui.Log2MaxMvLengthHorizontal, err = r.ReadUE(); err != nil {
			return vui, err
		}
		if vui.Log2MaxMvLengthVertical, err = r.ReadUE(); err != nil {
			return vui, err
		}
	}

	return vui, nil
}
