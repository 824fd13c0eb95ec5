package hevc

import "testing"

func TestClassifyNALType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		id       uint8
		wantVCL  bool
		wantIRAP bool
	}{
		{NalTrailN, true, false},
		{NalIdrWRadl, true, true},
		{NalCraNut, true, true},
		{NalVps, false, false},
		{NalSps, false, false},
		{NalSeiPrefix, false, false},
		{NalUnspec62, false, false},
	}

	for _, tt := range tests {
		u, err := ClassifyNALType(tt.id)
		if err != nil {
			t.Fatalf("ClassifyNALType(%d) error = %v", tt.id, err)
		}
		if u.ID() != tt.id {
			t.Errorf("ID() = %d, want %d", u.ID(), tt.id)
		}
		if u.IsVCL() != tt.wantVCL {
			t.Errorf("nal_unit_type=%d IsVCL() = %v, want %v", tt.id, u.IsVCL(), tt.wantVCL)
		}
		if u.IsIRAP() != tt.wantIRAP {
			t.Errorf("nal_unit_type=%d IsIRAP() = %v, want %v", tt.id, u.IsIRAP(), tt.wantIRAP)
		}
	}
}

func TestClassifyNALTypeOutOfRange(t *testing.T) {
	t.Parallel()
	if _, err := ClassifyNALType(64); err != ErrUnitTypeOutOfRange {
		t.Errorf("ClassifyNALType(64) error = %v, want ErrUnitTypeOutOfRange", err)
	}
}

func TestIsSliceType(t *testing.T) {
	t.Parallel()
	if !IsSliceType(NalIdrWRadl) {
		t.Error("IsSliceType(NalIdrWRadl) = false, want true")
	}
	if IsSliceType(NalSps) {
		t.Error("IsSliceType(NalSps) = true, want false")
	}
}

func TestReadNALHeader(t *testing.T) {
	t.Parallel()
	// forbidden_zero_bit=0, nal_unit_type=VPS(32), layer_id=0, tid_plus1=1
	data := []byte{NalVps << 1, 0x01}
	r := NewBitReader(data)
	hdr, err := ReadNALHeader(r)
	if err != nil {
		t.Fatalf("ReadNALHeader() error = %v", err)
	}
	if hdr.NalType != NalVps {
		t.Errorf("NalType = %d, want %d", hdr.NalType, NalVps)
	}
	if hdr.LayerID != 0 {
		t.Errorf("LayerID = %d, want 0", hdr.LayerID)
	}
	if hdr.TemporalID != 0 {
		t.Errorf("TemporalID = %d, want 0", hdr.TemporalID)
	}
}

func TestReadNALHeaderForbiddenBit(t *testing.T) {
	t.Parallel()
	data := []byte{0x80, 0x01}
	r := NewBitReader(data)
	if _, err := ReadNALHeader(r); err != ErrForbiddenZeroBit {
		t.Errorf("ReadNALHeader() error = %v, want ErrForbiddenZeroBit", err)
	}
}

func TestReadNALHeaderShortEOS(t *testing.T) {
	t.Parallel()
	// forbidden_zero_bit=0, nal_unit_type=EOS_NUT(36), no further bits.
	data := []byte{NalEosNut << 1}
	r := NewBitReader(data)
	hdr, err := ReadNALHeader(r)
	if err != nil {
		t.Fatalf("ReadNALHeader() error = %v", err)
	}
	if hdr.NalType != NalEosNut {
		t.Errorf("NalType = %d, want %d", hdr.NalType, NalEosNut)
	}
	if hdr.LayerID != 0 || hdr.TemporalID != 0 {
		t.Errorf("LayerID/TemporalID = %d/%d, want 0/0 when skipped", hdr.LayerID, hdr.TemporalID)
	}
}

func TestStartCodeBytes(t *testing.T) {
	t.Parallel()
	if got := StartCodeLength3.Bytes(); string(got) != "\x00\x00\x01" {
		t.Errorf("StartCodeLength3.Bytes() = %v", got)
	}
	if got := StartCodeLength4.Bytes(); string(got) != "\x00\x00\x00\x01" {
		t.Errorf("StartCodeLength4.Bytes() = %v", got)
	}
}
