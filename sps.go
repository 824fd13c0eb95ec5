package hevc

// SPS is a decoded Sequence Parameter Set, including the derived CTB/TB/PU
// geometry fields computed after the raw syntax is read.
type SPS struct {
	VpsID                   uint8
	MaxSubLayers            uint8
	TemporalIDNestingFlag   bool
	Ptl                     ProfileTierLevel
	SpsID                   uint64
	ChromaFormatIDC         uint64
	SeparateColourPlaneFlag bool
	Width                   uint64
	Height                  uint64

	PicConformanceFlag  bool
	ConfWinLeftOffset   uint64
	ConfWinRightOffset  uint64
	ConfWinTopOffset    uint64
	ConfWinBottomOffset uint64

	BitDepth             uint64
	BitDepthChroma       uint64
	Log2MaxPocLsb        uint64
	SubLayerOrderingInfo bool
	MaxDecPicBuffering   []uint64
	NumReorderPics       []uint64
	// MaxLatencyIncrease/MaxLatencyIncreasePlus1: see the VPS field of the
	// same name — same saturating-subtraction sentinel preservation.
	MaxLatencyIncrease      []uint64
	MaxLatencyIncreasePlus1 []uint64

	Log2MinCbSize                    uint64
	Log2DiffMaxMinCodingBlockSize    uint64
	Log2MinTbSize                    uint64
	Log2DiffMaxMinTransformBlockSize uint64
	MaxTransformHierarchyDepthInter  uint64
	MaxTransformHierarchyDepthIntra  uint64

	ScalingListEnabledFlag     bool
	ScalingListDataPresentFlag bool

	AmpEnabledFlag           bool
	SaoEnabledFlag           bool
	PcmEnabledFlag           bool
	PcmBitDepth              uint8
	PcmBitDepthChroma        uint8
	PcmLog2MinPcmCbSize      uint64
	PcmLog2MaxPcmCbSize      uint64
	PcmLoopFilterDisableFlag bool

	NbStRps             uint64
	ShortTermRefPicSets []ShortTermRPS

	LongTermRefPicsPresentFlag bool
	NumLongTermRefPicsSps      uint64
	LtRefPicPocLsbSps          []uint64
	UsedByCurrPicLtSpsFlag     []bool

	SpsTemporalMvpEnabledFlag         bool
	SpsStrongIntraSmoothingEnableFlag bool

	VuiPresent    bool
	VuiParameters VUIParameters

	SpsExtensionFlag bool

	// Derived values, computed after parsing.
	Log2CtbSize   uint64
	Log2MinPuSize uint64
	CtbWidth      uint64
	CtbHeight     uint64
	CtbSize       uint64
	MinCbWidth    uint64
	MinCbHeight   uint64
	MinTbWidth    uint64
	MinTbHeight   uint64
	MinPuWidth    uint64
	MinPuHeight   uint64
	TbMask        uint64
}

// ParseSPS decodes a seq_parameter_set_rbsp() from r, which must be
// positioned just past the NAL header.
func ParseSPS(r *BitReader) (*SPS, error) {
	sps := &SPS{}
	var err error

	v, err := r.ReadBits(4)
	if err != nil {
		return nil, err
	}
	sps.VpsID = uint8(v)

	if v, err = r.ReadBits(3); err != nil {
		return nil, err
	}
	sps.MaxSubLayers = uint8(v) + 1

	if sps.TemporalIDNestingFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}

	if sps.Ptl, err = ParseProfileTierLevel(r, sps.MaxSubLayers); err != nil {
		return nil, err
	}

	if sps.SpsID, err = r.ReadUE(); err != nil {
		return nil, err
	}
	if sps.ChromaFormatIDC, err = r.ReadUE(); err != nil {
		return nil, err
	}

	if sps.ChromaFormatIDC == 3 {
		if sps.SeparateColourPlaneFlag, err = r.ReadBit(); err != nil {
			return nil, err
		}
	}
	if sps.SeparateColourPlaneFlag {
		sps.ChromaFormatIDC = 0
	}

	if sps.Width, err = r.ReadUE(); err != nil {
		return nil, err
	}
	if sps.Height, err = r.ReadUE(); err != nil {
		return nil, err
	}
	if sps.PicConformanceFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if sps.PicConformanceFlag {
		if sps.ConfWinLeftOffset, err = r.ReadUE(); err != nil {
			return nil, err
		}
		if sps.ConfWinRightOffset, err = r.ReadUE(); err != nil {
			return nil, err
		}
		if sps.ConfWinTopOffset, err = r.ReadUE(); err != nil {
			return nil, err
		}
		if sps.ConfWinBottomOffset, err = r.ReadUE(); err != nil {
			return nil, err
		}
	}

	bd, err := r.ReadUE()
	if err != nil {
		return nil, err
	}
	sps.BitDepth = bd + 8

	bdc, err := r.ReadUE()
	if err != nil {
		return nil, err
	}
	sps.BitDepthChroma = bdc + 8

	poc, err := r.ReadUE()
	if err != nil {
		return nil, err
	}
	sps.Log2MaxPocLsb = poc + 4

	if sps.SubLayerOrderingInfo, err = r.ReadBit(); err != nil {
		return nil, err
	}

	start := uint8(0)
	if !sps.SubLayerOrderingInfo {
		start = sps.MaxSubLayers - 1
	}
	for i := start; i < sps.MaxSubLayers; i++ {
		dpb, err := r.ReadUE()
		if err != nil {
			return nil, err
		}
		sps.MaxDecPicBuffering = append(sps.MaxDecPicBuffering, dpb+1)

		reorder, err := r.ReadUE()
		if err != nil {
			return nil, err
		}
		sps.NumReorderPics = append(sps.NumReorderPics, reorder)

		latencyPlus1, err := r.ReadUE()
		if err != nil {
			return nil, err
		}
		sps.MaxLatencyIncreasePlus1 = append(sps.MaxLatencyIncreasePlus1, latencyPlus1)

		var adjusted uint64
		if latencyPlus1 > 0 {
			adjusted = latencyPlus1 - 1
		}
		sps.MaxLatencyIncrease = append(sps.MaxLatencyIncrease, adjusted)
	}

	v, err = r.ReadUE()
	if err != nil {
		return nil, err
	}
	sps.Log2MinCbSize = v + 3

	if sps.Log2DiffMaxMinCodingBlockSize, err = r.ReadUE(); err != nil {
		return nil, err
	}

	v, err = r.ReadUE()
	if err != nil {
		return nil, err
	}
	sps.Log2MinTbSize = v + 2

	if sps.Log2DiffMaxMinTransformBlockSize, err = r.ReadUE(); err != nil {
		return nil, err
	}
	if sps.MaxTransformHierarchyDepthInter, err = r.ReadUE(); err != nil {
		return nil, err
	}
	if sps.MaxTransformHierarchyDepthIntra, err = r.ReadUE(); err != nil {
		return nil, err
	}

	if sps.ScalingListEnabledFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if sps.ScalingListEnabledFlag {
		if sps.ScalingListDataPresentFlag, err = r.ReadBit(); err != nil {
			return nil, err
		}
		if sps.ScalingListDataPresentFlag {
			if err = ParseScalingListData(r); err != nil {
				return nil, err
			}
		}
	}

	if sps.AmpEnabledFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if sps.SaoEnabledFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if sps.PcmEnabledFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if sps.PcmEnabledFlag {
		v, err := r.ReadBits(4)
		if err != nil {
			return nil, err
		}
		sps.PcmBitDepth = uint8(v) + 1

		v, err = r.ReadBits(4)
		if err != nil {
			return nil, err
		}
		sps.PcmBitDepthChroma = uint8(v) + 1

		minCb, err := r.ReadUE()
		if err != nil {
			return nil, err
		}
		sps.PcmLog2MinPcmCbSize = minCb + 3

		diff, err := r.ReadUE()
		if err != nil {
			return nil, err
		}
		sps.PcmLog2MaxPcmCbSize = diff + sps.PcmLog2MinPcmCbSize

		if sps.PcmLoopFilterDisableFlag, err = r.ReadBit(); err != nil {
			return nil, err
		}
	}

	if sps.NbStRps, err = r.ReadUE(); err != nil {
		return nil, err
	}
	sps.ShortTermRefPicSets = make([]ShortTermRPS, sps.NbStRps)
	for i := uint64(0); i < sps.NbStRps; i++ {
		rps, err := ParseShortTermRPS(r, sps, int(i), sps.NbStRps, false)
		if err != nil {
			return nil, err
		}
		sps.ShortTermRefPicSets[i] = rps
	}

	if sps.LongTermRefPicsPresentFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if sps.LongTermRefPicsPresentFlag {
		if sps.NumLongTermRefPicsSps, err = r.ReadUE(); err != nil {
			return nil, err
		}
		for i := uint64(0); i < sps.NumLongTermRefPicsSps; i++ {
			v, err := r.ReadBits(int(sps.Log2MaxPocLsb))
			if err != nil {
				return nil, err
			}
			sps.LtRefPicPocLsbSps = append(sps.LtRefPicPocLsbSps, v)

			flag, err := r.ReadBit()
			if err != nil {
				return nil, err
			}
			sps.UsedByCurrPicLtSpsFlag = append(sps.UsedByCurrPicLtSpsFlag, flag)
		}
	}

	if sps.SpsTemporalMvpEnabledFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if sps.SpsStrongIntraSmoothingEnableFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}

	if sps.VuiPresent, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if sps.VuiPresent {
		if sps.VuiParameters, err = ParseVUIParameters(r, sps.MaxSubLayers); err != nil {
			return nil, err
		}
	}

	if sps.SpsExtensionFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}

	sps.computeDerivedGeometry()

	return sps, nil
}

func (sps *SPS) computeDerivedGeometry() {
	sps.Log2CtbSize = sps.Log2MinCbSize + sps.Log2DiffMaxMinCodingBlockSize
	sps.Log2MinPuSize = sps.Log2MinCbSize - 1

	ctbSizePixels := uint64(1) << sps.Log2CtbSize
	sps.CtbWidth = (sps.Width + ctbSizePixels - 1) >> sps.Log2CtbSize
	sps.CtbHeight = (sps.Height + ctbSizePixels - 1) >> sps.Log2CtbSize
	sps.CtbSize = sps.CtbWidth * sps.CtbHeight

	sps.MinCbWidth = sps.Width >> sps.Log2MinCbSize
	sps.MinCbHeight = sps.Height >> sps.Log2MinCbSize
	sps.MinTbWidth = sps.Width >> sps.Log2MinTbSize
	sps.MinTbHeight = sps.Height >> sps.Log2MinTbSize
	sps.MinPuWidth = sps.Width >> sps.Log2MinPuSize
	sps.MinPuHeight = sps.Height >> sps.Log2MinPuSize
	sps.TbMask = (uint64(1) << (sps.Log2CtbSize - sps.Log2MinTbSize)) - 1
}
