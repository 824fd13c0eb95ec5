package hevc

import "fmt"

// Named nal_unit_type values, per ITU-T H.265 Table 7-1.
const (
	NalTrailN    = 0
	NalTrailR    = 1
	NalTsaN      = 2
	NalTsaR      = 3
	NalStsaN     = 4
	NalStsaR     = 5
	NalRadlN     = 6
	NalRadlR     = 7
	NalRaslN     = 8
	NalRaslR     = 9
	NalBlaWLp    = 16
	NalBlaWRadl  = 17
	NalBlaNLp    = 18
	NalIdrWRadl  = 19
	NalIdrNLp    = 20
	NalCraNut    = 21
	NalVps       = 32
	NalSps       = 33
	NalPps       = 34
	NalAud       = 35
	NalEosNut    = 36
	NalEobNut    = 37
	NalFdNut     = 38
	NalSeiPrefix = 39
	NalSeiSuffix = 40
	NalUnspec62  = 62
	NalUnspec63  = 63
)

// UnitType classifies a nal_unit_type value into its syntax family. Several
// ranges share identical handling (reserved VCL, reserved IRAP, reserved
// non-VCL, unspecified); ClassifyNALType resolves any value 0..63 into one
// of these, carrying the raw id for the families that span a range.
type UnitType struct {
	class rawNalClass
	id    uint8
}

type rawNalClass uint8

const (
	classTrailN rawNalClass = iota
	classTrailR
	classTsaN
	classTsaR
	classStsaN
	classStsaR
	classRadlN
	classRadlR
	classRaslN
	classRaslR
	classRsvVclN
	classRsvVclR
	classBlaWLp
	classBlaWRadl
	classBlaNLp
	classIdrWRadl
	classIdrNLp
	classCraNut
	classRsvIrapVcl
	classRsvVcl
	classVps
	classSps
	classPps
	classAud
	classEosNut
	classEobNut
	classFdNut
	classSeiPrefix
	classSeiSuffix
	classRsvNvcl
	classUnspec
)

// ClassifyNALType maps a 6-bit nal_unit_type (0..63) to its UnitType. It
// fails ErrUnitTypeOutOfRange outside that range.
func ClassifyNALType(id uint8) (UnitType, error) {
	switch {
	case id > 63:
		return UnitType{}, ErrUnitTypeOutOfRange
	case id == NalTrailN:
		return UnitType{classTrailN, id}, nil
	case id == NalTrailR:
		return UnitType{classTrailR, id}, nil
	case id == NalTsaN:
		return UnitType{classTsaN, id}, nil
	case id == NalTsaR:
		return UnitType{classTsaR, id}, nil
	case id == NalStsaN:
		return UnitType{classStsaN, id}, nil
	case id == NalStsaR:
		return UnitType{classStsaR, id}, nil
	case id == NalRadlN:
		return UnitType{classRadlN, id}, nil
	case id == NalRadlR:
		return UnitType{classRadlR, id}, nil
	case id == NalRaslN:
		return UnitType{classRaslN, id}, nil
	case id == NalRaslR:
		return UnitType{classRaslR, id}, nil
	case id == 10 || id == 12 || id == 14:
		return UnitType{classRsvVclN, id}, nil
	case id == 11 || id == 13 || id == 15:
		return UnitType{classRsvVclR, id}, nil
	case id == NalBlaWLp:
		return UnitType{classBlaWLp, id}, nil
	case id == NalBlaWRadl:
		return UnitType{classBlaWRadl, id}, nil
	case id == NalBlaNLp:
		return UnitType{classBlaNLp, id}, nil
	case id == NalIdrWRadl:
		return UnitType{classIdrWRadl, id}, nil
	case id == NalIdrNLp:
		return UnitType{classIdrNLp, id}, nil
	case id == NalCraNut:
		return UnitType{classCraNut, id}, nil
	case id == 22 || id == 23:
		return UnitType{classRsvIrapVcl, id}, nil
	case id >= 24 && id <= 31:
		return UnitType{classRsvVcl, id}, nil
	case id == NalVps:
		return UnitType{classVps, id}, nil
	case id == NalSps:
		return UnitType{classSps, id}, nil
	case id == NalPps:
		return UnitType{classPps, id}, nil
	case id == NalAud:
		return UnitType{classAud, id}, nil
	case id == NalEosNut:
		return UnitType{classEosNut, id}, nil
	case id == NalEobNut:
		return UnitType{classEobNut, id}, nil
	case id == NalFdNut:
		return UnitType{classFdNut, id}, nil
	case id == NalSeiPrefix:
		return UnitType{classSeiPrefix, id}, nil
	case id == NalSeiSuffix:
		return UnitType{classSeiSuffix, id}, nil
	case id >= 41 && id <= 47:
		return UnitType{classRsvNvcl, id}, nil
	default: // 48..63
		return UnitType{classUnspec, id}, nil
	}
}

// ID returns the raw nal_unit_type value this UnitType was built from.
func (u UnitType) ID() uint8 { return u.id }

// IsVCL reports whether this unit type carries slice-segment syntax.
func (u UnitType) IsVCL() bool {
	return u.class <= classRsvVcl
}

// IsIRAP reports whether this unit type is an intra random-access point
// (BLA, IDR, or CRA).
func (u UnitType) IsIRAP() bool {
	return u.id >= NalBlaWLp && u.id <= 23
}

func (u UnitType) String() string {
	names := map[rawNalClass]string{
		classTrailN: "TRAIL_N", classTrailR: "TRAIL_R",
		classTsaN: "TSA_N", classTsaR: "TSA_R",
		classStsaN: "STSA_N", classStsaR: "STSA_R",
		classRadlN: "RADL_N", classRadlR: "RADL_R",
		classRaslN: "RASL_N", classRaslR: "RASL_R",
		classRsvVclN: "RSV_VCL_N", classRsvVclR: "RSV_VCL_R",
		classBlaWLp: "BLA_W_LP", classBlaWRadl: "BLA_W_RADL", classBlaNLp: "BLA_N_LP",
		classIdrWRadl: "IDR_W_RADL", classIdrNLp: "IDR_N_LP", classCraNut: "CRA_NUT",
		classRsvIrapVcl: "RSV_IRAP_VCL", classRsvVcl: "RSV_VCL",
		classVps: "VPS", classSps: "SPS", classPps: "PPS", classAud: "AUD",
		classEosNut: "EOS_NUT", classEobNut: "EOB_NUT", classFdNut: "FD_NUT",
		classSeiPrefix: "SEI_PREFIX", classSeiSuffix: "SEI_SUFFIX",
		classRsvNvcl: "RSV_NVCL", classUnspec: "UNSPEC",
	}
	return fmt.Sprintf("%s(%d)", names[u.class], u.id)
}

// NALUStartCode identifies the width of the start-code prefix that
// introduced (or should introduce, on re-emission) a NAL unit.
type NALUStartCode uint8

const (
	StartCodeLength3 NALUStartCode = 3
	StartCodeLength4 NALUStartCode = 4
)

// Bytes returns the literal start-code prefix for this width.
func (s NALUStartCode) Bytes() []byte {
	if s == StartCodeLength4 {
		return []byte{0, 0, 0, 1}
	}
	return []byte{0, 0, 1}
}

// NALUnit is a parsed, immutable description of one NAL unit's framing and
// header fields. It never carries the payload bytes themselves — callers
// that need the bytes re-slice the original buffer using Start/End.
type NALUnit struct {
	Start, End int

	NalType    uint8
	LayerID    uint8
	TemporalID uint8

	StartCode NALUStartCode

	DecodedFrameIndex uint64
}

// IsSliceType reports whether nalType denotes a coded slice segment (the
// VCL NAL types this package assembles into access units).
func IsSliceType(nalType uint8) bool {
	switch nalType {
	case NalTrailN, NalTrailR, NalTsaN, NalTsaR, NalStsaN, NalStsaR,
		NalBlaWLp, NalBlaWRadl, NalBlaNLp, NalIdrWRadl, NalIdrNLp, NalCraNut,
		NalRadlN, NalRadlR, NalRaslN, NalRaslR:
		return true
	default:
		return false
	}
}

// IsSlice reports whether this NAL unit is a coded slice segment.
func (n NALUnit) IsSlice() bool {
	return IsSliceType(n.NalType)
}

// NALHeader holds the decoded fields of a 2-byte HEVC NAL header.
type NALHeader struct {
	NalType    uint8
	LayerID    uint8
	TemporalID uint8 // nuh_temporal_id_plus1 - 1
}

// ReadNALHeader decodes the 2-byte NAL header from r. It fails
// ErrForbiddenZeroBit if the top bit is set. Some muxers emit an EOS/EOB NAL
// with no payload beyond nal_unit_type; when fewer than 9 bits remain after
// nal_unit_type and the type is EOS (36) or EOB (37), the layer/temporal
// fields are left at zero instead of failing the underrun they'd otherwise
// trigger.
func ReadNALHeader(r *BitReader) (NALHeader, error) {
	forbidden, err := r.ReadBit()
	if err != nil {
		return NALHeader{}, err
	}
	if forbidden {
		return NALHeader{}, ErrForbiddenZeroBit
	}
	nalType, err := r.ReadBits(6)
	if err != nil {
		return NALHeader{}, err
	}

	hdr := NALHeader{NalType: uint8(nalType)}

	if (hdr.NalType == NalEosNut || hdr.NalType == NalEobNut) && r.BitsRemaining() < 9 {
		return hdr, nil
	}

	layerID, err := r.ReadBits(6)
	if err != nil {
		return NALHeader{}, err
	}
	tidPlus1, err := r.ReadBits(3)
	if err != nil {
		return NALHeader{}, err
	}
	hdr.LayerID = uint8(layerID)
	hdr.TemporalID = uint8(tidPlus1 - 1)
	return hdr, nil
}

// Frame is one assembled access unit: the NAL units that compose it, the
// cached first slice header, and its position in decode and presentation
// order.
type Frame struct {
	DecodedNumber      uint64
	PresentationNumber uint64
	FrameType          uint64 // slice_type of the first slice: 0=B, 1=P, 2=I

	Nals       []NALUnit
	FirstSlice SliceHeader
}
