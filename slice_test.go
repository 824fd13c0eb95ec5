package hevc

import "testing"

func TestComputePOCWraparound(t *testing.T) {
	t.Parallel()
	sps := &SPS{Log2MaxPocLsb: 4}

	tests := []struct {
		name     string
		pocTid0  int64
		pocLsb   int64
		nalType  uint8
		wantPOC  int64
	}{
		{"msb increments on lsb underflow", 30, 1, NalTrailR, 33},
		{"no wraparound needed", 30, 13, NalTrailR, 29},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := computePOC(sps, tt.pocTid0, tt.pocLsb, tt.nalType)
			if got != tt.wantPOC {
				t.Errorf("computePOC(pocTid0=%d, pocLsb=%d) = %d, want %d", tt.pocTid0, tt.pocLsb, got, tt.wantPOC)
			}
		})
	}
}

func TestComputePOCBlaResetsMSB(t *testing.T) {
	t.Parallel()
	sps := &SPS{Log2MaxPocLsb: 4}
	got := computePOC(sps, 30, 1, NalBlaWLp)
	if got != 1 {
		t.Errorf("computePOC for BLA_W_LP = %d, want 1 (msb reset to 0)", got)
	}
}

func TestIsIRAPAndIDRNalType(t *testing.T) {
	t.Parallel()
	if !isIRAPNalType(NalCraNut) {
		t.Error("isIRAPNalType(NalCraNut) = false, want true")
	}
	if isIRAPNalType(NalTrailN) {
		t.Error("isIRAPNalType(NalTrailN) = true, want false")
	}
	if !isIDRNalType(NalIdrNLp) {
		t.Error("isIDRNalType(NalIdrNLp) = false, want true")
	}
	if isIDRNalType(NalCraNut) {
		t.Error("isIDRNalType(NalCraNut) = true, want false")
	}
}

func TestParseSliceHeaderInvalidPpsId(t *testing.T) {
	t.Parallel()
	table := NewParamSetTable()
	// first_slice_segment_in_pic_flag=1, slice_pic_parameter_set_id=ue(0) -> "1" then "1"
	r := NewBitReader(packBits(bitsFromString("11")))
	pocTid0 := int64(0)
	_, err := ParseSliceHeader(r, table, NALHeader{NalType: NalTrailR}, &pocTid0)
	if err != ErrInvalidPpsId {
		t.Errorf("ParseSliceHeader() error = %v, want ErrInvalidPpsId", err)
	}
}
