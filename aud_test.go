package hevc

import (
	"bytes"
	"testing"
)

// TestEncodeAUDKeyFrame covers spec property 10: EncodeAUD(2) (an I frame)
// must produce the exact three-byte RBSP 0x46,0x01,0x10.
func TestEncodeAUDKeyFrame(t *testing.T) {
	t.Parallel()
	got := EncodeAUD(2)
	want := []byte{0x46, 0x01, 0x10}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeAUD(2) = % x, want % x", got, want)
	}
}
