package hevc

import "testing"

func TestParamSetTableShadowingAndCascadeEviction(t *testing.T) {
	t.Parallel()
	tab := NewParamSetTable()

	vpsRaw := []byte{1, 2, 3}
	tab.PutVPS(vpsRaw, VPS{VpsID: 0})

	spsRaw := []byte{4, 5, 6}
	tab.PutSPS(spsRaw, &SPS{SpsID: 3, VpsID: 0})

	ppsRaw := []byte{7, 8, 9}
	tab.PutPPS(ppsRaw, &PPS{PpsID: 5, SpsID: 3})

	if _, ok := tab.VPS(0); !ok {
		t.Fatal("VPS(0) missing after install")
	}
	if _, ok := tab.SPS(3); !ok {
		t.Fatal("SPS(3) missing after install")
	}
	if _, ok := tab.PPS(5); !ok {
		t.Fatal("PPS(5) missing after install")
	}

	// A byte-identical resubmission of the same VPS must be a no-op: the
	// dependent SPS/PPS must survive.
	tab.PutVPS(append([]byte(nil), vpsRaw...), VPS{VpsID: 0})
	if _, ok := tab.SPS(3); !ok {
		t.Fatal("SPS(3) evicted by byte-identical VPS resubmission")
	}

	// A different VPS payload at the same ID must cascade-evict the SPS
	// (and transitively the PPS) that referenced it.
	tab.PutVPS([]byte{9, 9, 9}, VPS{VpsID: 0})

	if _, ok := tab.SPS(3); ok {
		t.Error("SPS(3) should have been evicted by a changed VPS(0)")
	}
	if _, ok := tab.PPS(5); ok {
		t.Error("PPS(5) should have been transitively evicted by a changed VPS(0)")
	}
	if _, ok := tab.VPS(0); !ok {
		t.Error("VPS(0) should still be present with its new payload")
	}
}

func TestParamSetTableSPSChangeEvictsOnlyDependentPPS(t *testing.T) {
	t.Parallel()
	tab := NewParamSetTable()

	tab.PutSPS([]byte{1}, &SPS{SpsID: 1})
	tab.PutPPS([]byte{2}, &PPS{PpsID: 10, SpsID: 1})
	tab.PutPPS([]byte{3}, &PPS{PpsID: 11, SpsID: 2})

	tab.PutSPS([]byte{9}, &SPS{SpsID: 1})

	if _, ok := tab.PPS(10); ok {
		t.Error("PPS(10) should have been evicted by a changed SPS(1)")
	}
	if _, ok := tab.PPS(11); !ok {
		t.Error("PPS(11) referencing a different SPS should survive")
	}
}

func TestParamSetTableOutOfRangeIDsAreIgnored(t *testing.T) {
	t.Parallel()
	tab := NewParamSetTable()
	tab.PutVPS([]byte{1}, VPS{VpsID: 200})
	if _, ok := tab.VPS(200); ok {
		t.Error("VPS(200) should not be stored, id is out of range for a uint8 index into a 16-slot table")
	}
	if _, ok := tab.SPS(16); ok {
		t.Error("SPS(16) should never be present, 16 is out of range for a 16-slot table")
	}
	if _, ok := tab.PPS(64); ok {
		t.Error("PPS(64) should never be present, 64 is out of range for a 64-slot table")
	}
}
