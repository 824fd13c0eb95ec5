package hevc

// ShortTermRPS models one st_ref_pic_set() entry, either predicted from a
// previously decoded set or encoded directly as negative/positive deltas.
type ShortTermRPS struct {
	InterRefPicSetPredictionFlag bool
	DeltaIdx                     uint64
	DeltaRpsSign                 bool
	AbsDeltaRps                  uint64
	UsedByCurrPicFlags           []bool
	UseDeltaFlags                []bool

	NumNegativePics uint64
	NumPositivePics uint64

	DeltaPocS0           []uint64
	UsedByCurrPicS0Flags []bool
	DeltaPocS1           []uint64
	UsedByCurrPicS1Flags []bool
}

// ParseShortTermRPS decodes st_ref_pic_set(stRpsIdx). sps carries the
// already-decoded short_term_ref_pic_sets needed to resolve inter-RPS
// prediction; nbStRps is sps.NbStRps (the SPS's own
// num_short_term_ref_pic_sets, which equals len(sps.ShortTermRefPicSets);
// a slice header's own RPS is parsed with stRpsIdx == nbStRps, one past
// the SPS's last entry).
// isSliceHeader selects the delta_idx read condition documented in
// DESIGN.md's short-term-RPS resolution.
func ParseShortTermRPS(r *BitReader, sps *SPS, stRpsIdx int, nbStRps uint64, isSliceHeader bool) (ShortTermRPS, error) {
	var rps ShortTermRPS
	var err error

	if stRpsIdx > 0 && nbStRps > 0 {
		if rps.InterRefPicSetPredictionFlag, err = r.ReadBit(); err != nil {
			return rps, err
		}
	}

	if rps.InterRefPicSetPredictionFlag {
		if stRpsIdx == int(nbStRps) || isSliceHeader {
			if rps.DeltaIdx, err = r.ReadUE(); err != nil {
				return rps, err
			}
		}

		if rps.DeltaRpsSign, err = r.ReadBit(); err != nil {
			return rps, err
		}
		abs, err := r.ReadUE()
		if err != nil {
			return rps, err
		}
		rps.AbsDeltaRps = abs + 1

		refRpsIdx := stRpsIdx - (int(rps.DeltaIdx) + 1)
		if refRpsIdx < 0 || refRpsIdx >= len(sps.ShortTermRefPicSets) {
			return rps, ErrBitstreamUnderrun
		}
		refRps := sps.ShortTermRefPicSets[refRpsIdx]

		var numDeltaPocs int
		if refRps.InterRefPicSetPredictionFlag {
			for i := range refRps.UsedByCurrPicFlags {
				if refRps.UsedByCurrPicFlags[i] || refRps.UseDeltaFlags[i] {
					numDeltaPocs++
				}
			}
		} else {
			numDeltaPocs = int(refRps.NumNegativePics + refRps.NumPositivePics)
		}

		rps.UsedByCurrPicFlags = make([]bool, numDeltaPocs+1)
		rps.UseDeltaFlags = make([]bool, numDeltaPocs+1)
		for i := range rps.UseDeltaFlags {
			rps.UseDeltaFlags[i] = true
		}

		for i := 0; i <= numDeltaPocs; i++ {
			if rps.UsedByCurrPicFlags[i], err = r.ReadBit(); err != nil {
				return rps, err
			}
			if !rps.UsedByCurrPicFlags[i] {
				if rps.UseDeltaFlags[i], err = r.ReadBit(); err != nil {
					return rps, err
				}
			}
		}
	} else {
		if rps.NumNegativePics, err = r.ReadUE(); err != nil {
			return rps, err
		}
		if rps.NumPositivePics, err = r.ReadUE(); err != nil {
			return rps, err
		}

		for i := uint64(0); i < rps.NumNegativePics; i++ {
			v, err := r.ReadUE()
			if err != nil {
				return rps, err
			}
			rps.DeltaPocS0 = append(rps.DeltaPocS0, v+1)
			flag, err := r.ReadBit()
			if err != nil {
				return rps, err
			}
			rps.UsedByCurrPicS0Flags = append(rps.UsedByCurrPicS0Flags, flag)
		}

		for i := uint64(0); i < rps.NumPositivePics; i++ {
			v, err := r.ReadUE()
			if err != nil {
				return rps, err
			}
			rps.DeltaPocS1 = append(rps.DeltaPocS1, v+1)
			flag, err := r.ReadBit()
			if err != nil {
				return rps, err
			}
			rps.UsedByCurrPicS1Flags = append(rps.UsedByCurrPicS1Flags, flag)
		}
	}

	return rps, nil
}
