package hevc

// PPS is a decoded Picture Parameter Set.
type PPS struct {
	PpsID uint64
	SpsID uint64

	DependentSliceSegmentsEnabledFlag bool
	OutputFlagPresentFlag             bool
	NumExtraSliceHeaderBits           uint8
	SignDataHidingEnabledFlag         bool
	CabacInitPresentFlag              bool

	NumRefIdxL0DefaultActive uint64
	NumRefIdxL1DefaultActive uint64
	InitQpMinus26            int64

	ConstrainedIntraPredFlag bool
	TransformSkipEnabledFlag bool
	CuQpDeltaEnabledFlag     bool
	DiffCuQpDeltaDepth       uint64

	PpsCbQpOffset int64
	PpsCrQpOffset int64

	PpsSliceChromaQpOffsetsPresentFlag bool
	WeightedPredFlag                   bool
	WeightedBipredFlag                 bool
	TransquantBypassEnabledFlag        bool
	TilesEnabledFlag                   bool
	EntropyCodingSyncEnabledFlag       bool

	NumTileColumns                   uint64
	NumTileRows                      uint64
	UniformSpacingFlag               bool
	ColumnWidths                     []uint64
	RowHeights                       []uint64
	LoopFilterAcrossTilesEnabledFlag bool

	PpsLoopFilterAcrossSlicesEnabledFlag bool

	DeblockingFilterControlPresentFlag  bool
	DeblockingFilterOverrideEnabledFlag bool
	PpsDeblockingFilterDisabledFlag     bool
	PpsBetaOffsetDiv2                   int64
	PpsTcOffsetDiv2                     int64

	PpsScalingListDataPresentFlag bool

	ListsModificationPresentFlag           bool
	Log2ParallelMergeLevel                 uint64
	SliceSegmentHeaderExtensionPresentFlag bool

	PpsExtensionFlag bool
}

// ParsePPS decodes a pic_parameter_set_rbsp() from r, which must be
// positioned just past the NAL header.
func ParsePPS(r *BitReader) (*PPS, error) {
	pps := &PPS{}
	var err error

	if pps.PpsID, err = r.ReadUE(); err != nil {
		return nil, err
	}
	if pps.SpsID, err = r.ReadUE(); err != nil {
		return nil, err
	}
	if pps.DependentSliceSegmentsEnabledFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if pps.OutputFlagPresentFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}

	v, err := r.ReadBits(3)
	if err != nil {
		return nil, err
	}
	pps.NumExtraSliceHeaderBits = uint8(v)

	if pps.SignDataHidingEnabledFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if pps.CabacInitPresentFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}

	n, err := r.ReadUE()
	if err != nil {
		return nil, err
	}
	pps.NumRefIdxL0DefaultActive = n + 1

	if n, err = r.ReadUE(); err != nil {
		return nil, err
	}
	pps.NumRefIdxL1DefaultActive = n + 1

	if pps.InitQpMinus26, err = r.ReadSE(); err != nil {
		return nil, err
	}
	if pps.ConstrainedIntraPredFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if pps.TransformSkipEnabledFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if pps.CuQpDeltaEnabledFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if pps.CuQpDeltaEnabledFlag {
		if pps.DiffCuQpDeltaDepth, err = r.ReadUE(); err != nil {
			return nil, err
		}
	}

	if pps.PpsCbQpOffset, err = r.ReadSE(); err != nil {
		return nil, err
	}
	if pps.PpsCrQpOffset, err = r.ReadSE(); err != nil {
		return nil, err
	}
	if pps.PpsSliceChromaQpOffsetsPresentFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if pps.WeightedPredFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if pps.WeightedBipredFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if pps.TransquantBypassEnabledFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if pps.TilesEnabledFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if pps.EntropyCodingSyncEnabledFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}

	if pps.TilesEnabledFlag {
		ncol, err := r.ReadUE()
		if err != nil {
			return nil, err
		}
		pps.NumTileColumns = ncol + 1

		nrow, err := r.ReadUE()
		if err != nil {
			return nil, err
		}
		pps.NumTileRows = nrow + 1

		if pps.UniformSpacingFlag, err = r.ReadBit(); err != nil {
			return nil, err
		}
		if !pps.UniformSpacingFlag {
			for i := uint64(0); i < pps.NumTileColumns-1; i++ {
				w, err := r.ReadUE()
				if err != nil {
					return nil, err
				}
				pps.ColumnWidths = append(pps.ColumnWidths, w+1)
			}
			for i := uint64(0); i < pps.NumTileRows-1; i++ {
				h, err := r.ReadUE()
				if err != nil {
					return nil, err
				}
				pps.RowHeights = append(pps.RowHeights, h+1)
			}
		}
		if pps.LoopFilterAcrossTilesEnabledFlag, err = r.ReadBit(); err != nil {
			return nil, err
		}
	}

	if pps.PpsLoopFilterAcrossSlicesEnabledFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}

	if pps.DeblockingFilterControlPresentFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if pps.DeblockingFilterControlPresentFlag {
		if pps.DeblockingFilterOverrideEnabledFlag, err = r.ReadBit(); err != nil {
			return nil, err
		}
		if pps.PpsDeblockingFilterDisabledFlag, err = r.ReadBit(); err != nil {
			return nil, err
		}
		if !pps.PpsDeblockingFilterDisabledFlag {
			if pps.PpsBetaOffsetDiv2, err = r.ReadSE(); err != nil {
				return nil, err
			}
			if pps.PpsTcOffsetDiv2, err = r.ReadSE(); err != nil {
				return nil, err
			}
		}
	}

	if pps.PpsScalingListDataPresentFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if pps.PpsScalingListDataPresentFlag {
		if err = ParseScalingListData(r); err != nil {
			return nil, err
		}
	}

	if pps.ListsModificationPresentFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if pps.Log2ParallelMergeLevel, err = r.ReadUE(); err != nil {
		return nil, err
	}
	pps.Log2ParallelMergeLevel += 2

	if pps.SliceSegmentHeaderExtensionPresentFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}

	if pps.PpsExtensionFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}

	return pps, nil
}
