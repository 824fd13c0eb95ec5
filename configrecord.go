package hevc

// configRecordMinLength is the fixed prefix length of an
// HEVCDecoderConfigurationRecord (ISO/IEC 14496-15 §8.3.3.1), before any
// NALU arrays.
const configRecordMinLength = 23

// HEVCDecoderConfigurationRecord is the ISO/IEC 14496-15 decoder
// configuration record carried in MP4 'hvcC' boxes and Matroska
// CodecPrivate for the V_MPEGH/ISO/HEVC codec ID.
type HEVCDecoderConfigurationRecord struct {
	ConfigurationVersion              uint8
	GeneralProfileSpace               uint8
	GeneralTierFlag                   bool
	GeneralProfileIDC                 uint8
	GeneralProfileCompatibilityFlags  uint32
	GeneralConstraintIndicatorFlags   uint64
	GeneralLevelIDC                   uint8
	MinSpatialSegmentationIDC         uint16
	ParallelismType                   uint8
	ChromaFormatIDC                   uint8
	BitDepthLumaMinus8                uint8
	BitDepthChromaMinus8              uint8
	AvgFrameRate                      uint16
	ConstantFrameRate                 uint8
	NumTemporalLayers                 uint8
	TemporalIDNested                  bool
	LengthSizeMinusOne                uint8

	Arrays []NALUArray
}

// NALUArray is one parsed nalArray element: the NAL type it holds and the
// length-prefixed NAL payloads themselves (RBSP bytes, start-code free).
type NALUArray struct {
	ArrayCompleteness bool
	NalUnitType       uint8
	Nalus             [][]byte
}

// NaluSizeLength returns the byte width of the length field prefixing each
// NAL in a length-prefixed (Matroska/MP4) sample using this record.
func (c HEVCDecoderConfigurationRecord) NaluSizeLength() int {
	return int(c.LengthSizeMinusOne) + 1
}

// ParseHEVCDecoderConfigurationRecord decodes an
// HEVCDecoderConfigurationRecord from data.
func ParseHEVCDecoderConfigurationRecord(data []byte) (*HEVCDecoderConfigurationRecord, error) {
	if len(data) < configRecordMinLength {
		return nil, NotEnoughDataError{Expected: configRecordMinLength, Actual: len(data)}
	}

	r := NewBitReader(data)
	c := &HEVCDecoderConfigurationRecord{}

	v, err := r.ReadBits(8)
	if err != nil {
		return nil, err
	}
	c.ConfigurationVersion = uint8(v)
	if c.ConfigurationVersion != 1 {
		return nil, UnsupportedConfigurationVersionError{Version: c.ConfigurationVersion}
	}

	if v, err = r.ReadBits(2); err != nil {
		return nil, err
	}
	c.GeneralProfileSpace = uint8(v)

	if c.GeneralTierFlag, err = r.ReadBit(); err != nil {
		return nil, err
	}

	if v, err = r.ReadBits(5); err != nil {
		return nil, err
	}
	c.GeneralProfileIDC = uint8(v)

	if v, err = r.ReadBits(32); err != nil {
		return nil, err
	}
	c.GeneralProfileCompatibilityFlags = uint32(v)

	if v, err = r.ReadBits(48); err != nil {
		return nil, err
	}
	c.GeneralConstraintIndicatorFlags = v

	if v, err = r.ReadBits(8); err != nil {
		return nil, err
	}
	c.GeneralLevelIDC = uint8(v)

	if err = r.SkipBits(4); err != nil { // reserved
		return nil, err
	}
	if v, err = r.ReadBits(12); err != nil {
		return nil, err
	}
	c.MinSpatialSegmentationIDC = uint16(v)

	if err = r.SkipBits(6); err != nil { // reserved
		return nil, err
	}
	if v, err = r.ReadBits(2); err != nil {
		return nil, err
	}
	c.ParallelismType = uint8(v)

	if err = r.SkipBits(6); err != nil { // reserved
		return nil, err
	}
	if v, err = r.ReadBits(2); err != nil {
		return nil, err
	}
	c.ChromaFormatIDC = uint8(v)

	if err = r.SkipBits(5); err != nil { // reserved
		return nil, err
	}
	if v, err = r.ReadBits(3); err != nil {
		return nil, err
	}
	c.BitDepthLumaMinus8 = uint8(v)

	if err = r.SkipBits(5); err != nil { // reserved
		return nil, err
	}
	if v, err = r.ReadBits(3); err != nil {
		return nil, err
	}
	c.BitDepthChromaMinus8 = uint8(v)

	if v, err = r.ReadBits(16); err != nil {
		return nil, err
	}
	c.AvgFrameRate = uint16(v)

	if v, err = r.ReadBits(2); err != nil {
		return nil, err
	}
	c.ConstantFrameRate = uint8(v)

	if v, err = r.ReadBits(3); err != nil {
		return nil, err
	}
	c.NumTemporalLayers = uint8(v)

	if c.TemporalIDNested, err = r.ReadBit(); err != nil {
		return nil, err
	}

	if v, err = r.ReadBits(2); err != nil {
		return nil, err
	}
	c.LengthSizeMinusOne = uint8(v)

	numArrays, err := r.ReadBits(8)
	if err != nil {
		return nil, err
	}

	for i := uint64(0); i < numArrays; i++ {
		hdr, err := r.ReadBits(8)
		if err != nil {
			return nil, err
		}
		arr := NALUArray{
			ArrayCompleteness: hdr&0x80 != 0,
			NalUnitType:       uint8(hdr & 0x3F),
		}

		numNalus, err := r.ReadBits(16)
		if err != nil {
			return nil, err
		}

		for j := uint64(0); j < numNalus; j++ {
			length, err := r.ReadBits(16)
			if err != nil {
				return nil, err
			}
			if int(length)*8 > r.BitsRemaining() {
				return nil, NotEnoughDataError{Expected: int(length), Actual: r.BitsRemaining() / 8}
			}

			start := r.BytePosition()
			if err = r.SkipBits(int(length) * 8); err != nil {
				return nil, err
			}
			end := r.BytePosition()

			nalBytes := data[start:end]
			if len(nalBytes) > 0 {
				actualType := nalBytes[0] >> 1
				if actualType != arr.NalUnitType {
					return nil, IncorrectNalTypeError{
						Expected: mustClassify(arr.NalUnitType),
						Actual:   mustClassify(actualType),
					}
				}
			}
			arr.Nalus = append(arr.Nalus, nalBytes)
		}

		c.Arrays = append(c.Arrays, arr)
	}

	return c, nil
}

// NalusOfType returns the concatenated payloads of every NAL across all
// arrays whose nal_unit_type matches nalType.
func (c HEVCDecoderConfigurationRecord) NalusOfType(nalType uint8) [][]byte {
	var out [][]byte
	for _, arr := range c.Arrays {
		if arr.NalUnitType != nalType {
			continue
		}
		out = append(out, arr.Nalus...)
	}
	return out
}

// ParamSetTable decodes every VPS/SPS/PPS NAL carried by the record's NALU
// arrays and returns a ParamSetTable primed with them, without requiring a
// full Parser/sequencer. This is the entry point a Matroska or MP4 reader
// uses to recover parameter sets from codec-private data before any slice
// has been seen.
func (c HEVCDecoderConfigurationRecord) ParamSetTable() (*ParamSetTable, error) {
	table := NewParamSetTable()

	for _, nalType := range [...]uint8{NalVps, NalSps, NalPps} {
		for _, raw := range c.NalusOfType(nalType) {
			rbsp := Unescape(raw)
			r := NewBitReader(rbsp)
			hdr, err := ReadNALHeader(r)
			if err != nil {
				return nil, err
			}

			switch hdr.NalType {
			case NalVps:
				vps, err := ParseVPS(r)
				if err != nil {
					return nil, err
				}
				table.PutVPS(rbsp, vps)
			case NalSps:
				sps, err := ParseSPS(r)
				if err != nil {
					return nil, err
				}
				table.PutSPS(rbsp, sps)
			case NalPps:
				pps, err := ParsePPS(r)
				if err != nil {
					return nil, err
				}
				table.PutPPS(rbsp, pps)
			}
		}
	}

	return table, nil
}

func mustClassify(id uint8) UnitType {
	u, err := ClassifyNALType(id)
	if err != nil {
		return UnitType{}
	}
	return u
}
