package hevc

import "testing"

func TestParseVPSReservedBitsMismatch(t *testing.T) {
	t.Parallel()
	// vps_id(4)=0, vps_reserved_three_2bits(2)=0 (must be 3).
	data := []byte{0x00}
	r := NewBitReader(data)
	if _, err := ParseVPS(r); err != ErrReservedBitsMismatch {
		t.Errorf("ParseVPS() error = %v, want ErrReservedBitsMismatch", err)
	}
}

func TestParseVPSReservedSixteenBitsMismatch(t *testing.T) {
	t.Parallel()
	// vps_id(4)=0, reserved_three_2bits(2)=3, max_layers_minus1(6)=0,
	// max_sub_layers_minus1(3)=0, temporal_id_nesting(1)=0, then 16 bits
	// that are not 0xFFFF.
	bits := []bool{
		false, false, false, false, // vps_id
		true, true, // reserved_three_2bits = 3
		false, false, false, false, false, false, // max_layers_minus1
		false, false, false, // max_sub_layers_minus1
		false, // temporal_id_nesting_flag
	}
	for i := 0; i < 16; i++ {
		bits = append(bits, false) // all-zero instead of 0xFFFF
	}
	data := packBits(bits)

	r := NewBitReader(data)
	if _, err := ParseVPS(r); err != ErrReservedBitsMismatch {
		t.Errorf("ParseVPS() error = %v, want ErrReservedBitsMismatch", err)
	}
}
