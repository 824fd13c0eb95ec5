package hevc

// EncodeAUD returns the RBSP bytes (no start code) of an access unit
// delimiter NAL for a frame whose frame_type matches the 0=B, 1=P, 2=I
// encoding used elsewhere in this package. The byte layout is:
// forbidden_zero_bit=0, nal_unit_type=35 (AUD), nuh_layer_id=0,
// nuh_temporal_id_plus1=1, pic_type (3 bits), rbsp_stop_one_bit=1, then
// zero-padding to a byte boundary.
func EncodeAUD(frameType uint64) []byte {
	var picType byte
	switch frameType {
	case 2:
		picType = 0
	case 1:
		picType = 1
	case 0:
		picType = 2
	default:
		picType = 7
	}

	// Byte 0: forbidden_zero_bit(0) | nal_unit_type(6) | layer_id_msb(1)
	b0 := byte(NalAud) << 1
	// Byte 1: layer_id_lsb(5) | temporal_id_plus1(3) -- layer_id is 0,
	// temporal_id_plus1 is 1.
	b1 := byte(1)
	// Byte 2: pic_type(3) | rbsp_stop_one_bit(1) | zero padding(4)
	b2 := (picType << 5) | (1 << 4)

	return []byte{b0, b1, b2}
}
