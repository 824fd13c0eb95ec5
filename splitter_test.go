package hevc

import "testing"

func TestGetOffsetsAndSplitNALs(t *testing.T) {
	t.Parallel()
	// 00 00 01 A 00 00 00 01 B
	chunk := []byte{0, 0, 1, 'A', 0, 0, 0, 1, 'B'}

	offsets := GetOffsets(chunk, nil)
	wantOffsets := []int{3, 8}
	if len(offsets) != len(wantOffsets) {
		t.Fatalf("GetOffsets() = %v, want %v", offsets, wantOffsets)
	}
	for i := range offsets {
		if offsets[i] != wantOffsets[i] {
			t.Fatalf("GetOffsets() = %v, want %v", offsets, wantOffsets)
		}
	}

	raws := SplitNALs(chunk, offsets, len(chunk))
	if len(raws) != 2 {
		t.Fatalf("SplitNALs() returned %d entries, want 2", len(raws))
	}

	nalA := raws[0]
	if nalA.Offset != 3 || nalA.Size != 1 {
		t.Errorf("NAL A = %+v, want offset 3 size 1", nalA)
	}
	if nalA.StartCode != StartCodeLength3 {
		t.Errorf("NAL A start code = %d, want %d", nalA.StartCode, StartCodeLength3)
	}
	if got := string(chunk[nalA.Offset : nalA.Offset+nalA.Size]); got != "A" {
		t.Errorf("NAL A payload = %q, want %q", got, "A")
	}

	nalB := raws[1]
	if nalB.Offset != 8 || nalB.Size != 1 {
		t.Errorf("NAL B = %+v, want offset 8 size 1", nalB)
	}
	if nalB.StartCode != StartCodeLength4 {
		t.Errorf("NAL B start code = %d, want %d", nalB.StartCode, StartCodeLength4)
	}
	if got := string(chunk[nalB.Offset : nalB.Offset+nalB.Size]); got != "B" {
		t.Errorf("NAL B payload = %q, want %q", got, "B")
	}
}

func TestParseNALClampsToMaxParseSize(t *testing.T) {
	t.Parallel()
	// A single NAL whose payload is larger than MaxParseSize: the parsed
	// header must still decode, and the returned rbsp must never exceed
	// MaxParseSize bytes even though the raw NAL is much larger.
	payload := make([]byte, MaxParseSize*2)
	payload[0] = NalTrailN << 1 // forbidden_zero_bit=0, nal_unit_type=TRAIL_N
	payload[1] = 0x01           // layer_id=0, temporal_id_plus1=1

	chunk := append([]byte{0, 0, 1}, payload...)
	raw := RawNAL{Offset: 3, Size: len(payload), StartCode: StartCodeLength3}

	nal, rbsp, err := ParseNAL(chunk, raw, 0, true)
	if err != nil {
		t.Fatalf("ParseNAL() error = %v", err)
	}
	if nal.NalType != NalTrailN {
		t.Errorf("NalType = %d, want %d", nal.NalType, NalTrailN)
	}
	if len(rbsp) > MaxParseSize {
		t.Errorf("len(rbsp) = %d, want <= %d", len(rbsp), MaxParseSize)
	}
}

func TestParseNALWithoutParseOnlyReadsFirstByte(t *testing.T) {
	t.Parallel()
	chunk := []byte{0, 0, 1, NalSps << 1, 0x01, 0xAA, 0xBB}
	raw := RawNAL{Offset: 3, Size: 4, StartCode: StartCodeLength3}

	nal, rbsp, err := ParseNAL(chunk, raw, 7, false)
	if err != nil {
		t.Fatalf("ParseNAL() error = %v", err)
	}
	if rbsp != nil {
		t.Errorf("rbsp = %v, want nil when parse=false", rbsp)
	}
	if nal.NalType != NalSps {
		t.Errorf("NalType = %d, want %d", nal.NalType, NalSps)
	}
	if nal.DecodedFrameIndex != 7 {
		t.Errorf("DecodedFrameIndex = %d, want 7", nal.DecodedFrameIndex)
	}
}
