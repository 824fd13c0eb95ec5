package hevc

import "math/bits"

// SliceHeader is a decoded slice_segment_header(), truncated at the point
// where slice body parsing (entropy-coded syntax this package does not
// implement) would begin.
type SliceHeader struct {
	FirstSliceInPicFlag bool
	KeyFrame            bool
	PpsID               uint64
	SliceType           uint64

	DependentSliceSegmentFlag bool
	SliceSegmentAddr          uint64

	PicOrderCntLsb      uint64
	OutputPictureNumber int64
}

// ParseSliceHeader decodes a slice_segment_header() from r. table resolves
// the PPS referenced by pps_id and the SPS it in turn references, failing
// ErrInvalidPpsId / ErrInvalidSpsId if either is inactive. nal carries the
// NAL header (nal_type, temporal_id) needed to classify IRAP/IDR/BLA and to
// select the sub-layer reference kinds exempted from the poc_tid0 update.
// pocTid0 is the parser's running POC anchor; it is updated in place
// following the same sub-layer exemption rule as the rest of the POC
// machinery. The computed POC is returned as OutputPictureNumber.
func ParseSliceHeader(r *BitReader, table *ParamSetTable, nal NALHeader, pocTid0 *int64) (SliceHeader, error) {
	var sh SliceHeader
	var err error

	if sh.FirstSliceInPicFlag, err = r.ReadBit(); err != nil {
		return sh, err
	}

	if isIRAPNalType(nal.NalType) {
		sh.KeyFrame = true
		if err = r.SkipBits(1); err != nil { // no_output_of_prior_pics_flag
			return sh, err
		}
	}

	if sh.PpsID, err = r.ReadUE(); err != nil {
		return sh, err
	}
	pps, ok := table.PPS(sh.PpsID)
	if !ok {
		return sh, ErrInvalidPpsId
	}
	sps, ok := table.SPS(pps.SpsID)
	if !ok {
		return sh, ErrInvalidSpsId
	}

	if !sh.FirstSliceInPicFlag {
		if pps.DependentSliceSegmentsEnabledFlag {
			if sh.DependentSliceSegmentFlag, err = r.ReadBit(); err != nil {
				return sh, err
			}
		}

		addrLen := ceilLog2(sps.CtbWidth * sps.CtbHeight)
		if sh.SliceSegmentAddr, err = r.ReadBits(addrLen); err != nil {
			return sh, err
		}
	}

	if sh.DependentSliceSegmentFlag {
		return sh, nil
	}

	for i := uint8(0); i < pps.NumExtraSliceHeaderBits; i++ {
		if err = r.SkipBits(1); err != nil { // slice_reserved_undetermined_flag
			return sh, err
		}
	}

	if sh.SliceType, err = r.ReadUE(); err != nil {
		return sh, err
	}

	if pps.OutputFlagPresentFlag {
		if err = r.SkipBits(1); err != nil { // pic_output_flag
			return sh, err
		}
	}

	if sps.SeparateColourPlaneFlag {
		if err = r.SkipBits(2); err != nil { // colour_plane_id
			return sh, err
		}
	}

	if !isIDRNalType(nal.NalType) {
		lsb, err := r.ReadBits(int(sps.Log2MaxPocLsb))
		if err != nil {
			return sh, err
		}
		sh.PicOrderCntLsb = lsb
		sh.OutputPictureNumber = computePOC(sps, *pocTid0, int64(lsb), nal.NalType)
	} else {
		sh.OutputPictureNumber = 0
	}

	if nal.TemporalID == 0 && !isSubLayerNonRefNalType(nal.NalType) {
		*pocTid0 = sh.OutputPictureNumber
	}

	return sh, nil
}

func isIRAPNalType(nalType uint8) bool {
	return nalType >= 16 && nalType <= 23
}

func isIDRNalType(nalType uint8) bool {
	return nalType == NalIdrWRadl || nalType == NalIdrNLp
}

func isSubLayerNonRefNalType(nalType uint8) bool {
	switch nalType {
	case NalTrailN, NalTsaN, NalStsaN, NalRadlN, NalRaslN, NalRadlR, NalRaslR:
		return true
	default:
		return false
	}
}

// computePOC implements the MSB/LSB wraparound resolution against the
// running poc_tid0 anchor, in int64 to avoid the underflow a literal
// unsigned port of this arithmetic would hit when prev_msb < max_poc_lsb.
func computePOC(sps *SPS, pocTid0, pocLsb int64, nalType uint8) int64 {
	maxPocLsb := int64(1) << sps.Log2MaxPocLsb
	prevLsb := pocTid0 % maxPocLsb
	prevMsb := pocTid0 - prevLsb

	var pocMsb int64
	switch {
	case pocLsb < prevLsb && prevLsb-pocLsb >= maxPocLsb/2:
		pocMsb = prevMsb + maxPocLsb
	case pocLsb > prevLsb && pocLsb-prevLsb > maxPocLsb/2:
		pocMsb = prevMsb - maxPocLsb
	default:
		pocMsb = prevMsb
	}

	if nalType == NalBlaWLp || nalType == NalBlaWRadl || nalType == NalBlaNLp {
		pocMsb = 0
	}

	return pocMsb + pocLsb
}

// ceilLog2 returns ceil(log2(n)) for n >= 1, and 0 for n == 0.
func ceilLog2(n uint64) int {
	if n <= 1 {
		return 0
	}
	return bits.Len64(n - 1)
}
