package hevc

import "testing"

// TestReorderFramesAcrossGOPs drives reorderFrames and Finish directly
// against two GOPs whose decode-order presentation numbers are
// [2,0,1] and [5,3,4] (spec property 7): after Finish, ordered_frames
// must carry presentation numbers [0,1,2,3,4,5] in order, and decode
// order (DecodedNumber) must stay confined to its own GOP.
func TestReorderFramesAcrossGOPs(t *testing.T) {
	t.Parallel()
	p := NewParser()

	p.frames = []Frame{
		{DecodedNumber: 0, PresentationNumber: 2},
		{DecodedNumber: 1, PresentationNumber: 0},
		{DecodedNumber: 2, PresentationNumber: 1},
	}
	p.reorderFrames()

	p.frames = []Frame{
		{DecodedNumber: 3, PresentationNumber: 5},
		{DecodedNumber: 4, PresentationNumber: 3},
		{DecodedNumber: 5, PresentationNumber: 4},
	}
	p.Finish()

	ordered := p.OrderedFrames()
	if len(ordered) != 6 {
		t.Fatalf("len(OrderedFrames()) = %d, want 6", len(ordered))
	}
	for i, f := range ordered {
		if f.PresentationNumber != uint64(i) {
			t.Errorf("ordered[%d].PresentationNumber = %d, want %d", i, f.PresentationNumber, i)
		}
	}

	for i := 0; i < 3; i++ {
		if ordered[i].DecodedNumber > 2 {
			t.Errorf("ordered[%d].DecodedNumber = %d, want a GOP-1 index (0-2)", i, ordered[i].DecodedNumber)
		}
	}
	for i := 3; i < 6; i++ {
		if ordered[i].DecodedNumber < 3 {
			t.Errorf("ordered[%d].DecodedNumber = %d, want a GOP-2 index (3-5)", i, ordered[i].DecodedNumber)
		}
	}
}

// TestFinishIsIdempotent covers spec property 8: calling Finish a second
// time with no intervening ProcessNAL calls must leave OrderedFrames
// unchanged.
func TestFinishIsIdempotent(t *testing.T) {
	t.Parallel()
	p := NewParser()
	p.frames = []Frame{
		{DecodedNumber: 0, PresentationNumber: 0},
	}
	p.Finish()

	before := append([]Frame(nil), p.OrderedFrames()...)
	p.Finish()
	after := p.OrderedFrames()

	if len(before) != len(after) {
		t.Fatalf("len(OrderedFrames()) changed across repeated Finish(): %d vs %d", len(before), len(after))
	}
	for i := range before {
		if before[i].DecodedNumber != after[i].DecodedNumber ||
			before[i].PresentationNumber != after[i].PresentationNumber {
			t.Errorf("frame %d changed across repeated Finish(): %+v vs %+v", i, before[i], after[i])
		}
	}
}
