package hevc

// MaxParseSize bounds how many bytes of an unescaped NAL payload are ever
// handed to the bit-level decoders. Slice bodies and oversized SEI
// payloads beyond this are never inspected; NAL headers always fit well
// inside it.
const MaxParseSize = 2048

// GetOffsets scans chunk for the 3-byte start code {0x00,0x00,0x01} and
// appends, to out, the byte index immediately following each match (the
// first payload byte of the NAL it introduces). Matches never overlap:
// each hit advances the scan past the full 3-byte tag.
func GetOffsets(chunk []byte, out []int) []int {
	i := 0
	for i+3 <= len(chunk) {
		if chunk[i] == 0 && chunk[i+1] == 0 && chunk[i+2] == 1 {
			out = append(out, i+3)
			i += 3
			continue
		}
		i++
	}
	return out
}

// RawNAL is the minimal per-NAL description the splitter produces before
// any bit-level decoding: its byte range and the start-code width that
// introduced it.
type RawNAL struct {
	Offset    int
	Size      int
	StartCode NALUStartCode
}

// SplitNALs walks offsets (as produced by GetOffsets, in ascending order)
// and derives one RawNAL per offset. Since each offset already points past
// the 3-byte tag that introduced it, the gap to the next offset still
// contains that next tag in full; the 3-byte tag length is subtracted back
// out to recover the true payload size. When the byte immediately before
// that tag is also 0 (indicating the tag was actually 4-byte), the current
// NAL is shrunk by one more byte so the shared zero belongs to the next
// NAL's start code instead. The final NAL's size is measured against
// lastOffset — the index one past the end of the complete data available
// for this chunk — which carries no such adjustment.
func SplitNALs(chunk []byte, offsets []int, lastOffset int) []RawNAL {
	nals := make([]RawNAL, 0, len(offsets))
	for idx, offset := range offsets {
		var size int
		if idx+1 < len(offsets) {
			next := offsets[idx+1]
			size = next - offset - StartCodeLength3Int
			if next-StartCodeLength3Int-1 >= 0 && chunk[next-StartCodeLength3Int-1] == 0 {
				size--
			}
		} else {
			size = lastOffset - offset
		}

		// The tag occupies [offset-3, offset); its last byte is always the
		// 0x01 terminator, so the 4-vs-3-byte distinction is made one byte
		// further back, at the byte that would hold the tag's extra
		// leading zero.
		startCode := StartCodeLength3
		if pre := offset - StartCodeLength3Int - 1; pre >= 0 && chunk[pre] == 0 {
			startCode = StartCodeLength4
		}

		nals = append(nals, RawNAL{Offset: offset, Size: size, StartCode: startCode})
	}
	return nals
}

// StartCodeLength3Int is StartCodeLength3 as a plain int, for arithmetic on
// byte offsets.
const StartCodeLength3Int = int(StartCodeLength3)

// ParseNAL decodes the NAL at raw's offset/size within chunk. When parse is
// false, only the first byte is inspected to recover nal_unit_type and the
// function returns a NALUnit with no further fields populated beyond
// framing. When parse is true, the payload (clamped to MaxParseSize,
// unescaped) is handed to ReadNALHeader to recover the full header.
func ParseNAL(chunk []byte, raw RawNAL, decodedFrameIndex uint64, parse bool) (NALUnit, []byte, error) {
	end := raw.Offset + raw.Size
	if end > len(chunk) {
		end = len(chunk)
	}

	if !parse {
		if raw.Offset >= len(chunk) {
			return NALUnit{}, nil, ErrBitstreamUnderrun
		}
		return NALUnit{
			Start:             raw.Offset,
			End:               end,
			NalType:           chunk[raw.Offset] >> 1,
			StartCode:         raw.StartCode,
			DecodedFrameIndex: decodedFrameIndex,
		}, nil, nil
	}

	parseEnd := end
	if parseEnd > raw.Offset+MaxParseSize {
		parseEnd = raw.Offset + MaxParseSize
	}
	if parseEnd > len(chunk) {
		parseEnd = len(chunk)
	}
	if raw.Offset > parseEnd {
		return NALUnit{}, nil, ErrBitstreamUnderrun
	}

	rbsp := Unescape(chunk[raw.Offset:parseEnd])

	r := NewBitReader(rbsp)
	hdr, err := ReadNALHeader(r)
	if err != nil {
		return NALUnit{}, nil, err
	}

	nal := NALUnit{
		Start:             raw.Offset,
		End:               end,
		NalType:           hdr.NalType,
		LayerID:           hdr.LayerID,
		TemporalID:        hdr.TemporalID,
		StartCode:         raw.StartCode,
		DecodedFrameIndex: decodedFrameIndex,
	}

	return nal, rbsp, nil
}
