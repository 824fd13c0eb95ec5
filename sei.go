package hevc

// SEIMessage describes one sei_message() within an SEI NAL's RBSP: its
// offset, payload type, and the byte range of its payload. The payload
// bytes themselves are not retained; callers re-slice the original RBSP
// using PayloadOffset/PayloadSize.
type SEIMessage struct {
	MsgOffset     int
	PayloadType   uint64
	PayloadOffset int
	PayloadSize   int
}

// ParseSEIMessages decodes the sei_message() loop from rbsp, which must be
// the unescaped RBSP of a SEI_PREFIX or SEI_SUFFIX NAL, including its
// 2-byte NAL header. It fails PayloadExceedsNaluError if a decoded
// payload_size would run past the end of rbsp.
func ParseSEIMessages(rbsp []byte) ([]SEIMessage, error) {
	r := NewBitReader(rbsp)

	if _, err := ReadNALHeader(r); err != nil {
		return nil, err
	}

	var messages []SEIMessage
	for {
		msg, err := parseSEIMessage(r)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)

		if r.BitsRemaining() <= 8 {
			break
		}
	}

	return messages, nil
}

func parseSEIMessage(r *BitReader) (SEIMessage, error) {
	var msg SEIMessage
	msg.MsgOffset = r.BytePosition()

	payloadTypeByte, err := r.ReadBits(8)
	if err != nil {
		return msg, err
	}
	for payloadTypeByte == 0xFF {
		msg.PayloadType += 255
		if payloadTypeByte, err = r.ReadBits(8); err != nil {
			return msg, err
		}
	}
	msg.PayloadType += payloadTypeByte

	payloadSizeByte, err := r.ReadBits(8)
	if err != nil {
		return msg, err
	}
	for payloadSizeByte == 0xFF {
		msg.PayloadSize += 255
		if payloadSizeByte, err = r.ReadBits(8); err != nil {
			return msg, err
		}
	}
	msg.PayloadSize += int(payloadSizeByte)
	msg.PayloadOffset = r.BytePosition()

	if msg.PayloadSize*8 > r.BitsRemaining() {
		return msg, PayloadExceedsNaluError{
			PayloadSize: msg.PayloadSize,
			Available:   r.BitsRemaining() / 8,
		}
	}

	if err := r.SkipBits(msg.PayloadSize * 8); err != nil {
		return msg, err
	}

	return msg, nil
}
