package hevc

import "io"

// AnnexBWriter re-emits NAL units as an Annex-B byte stream, choosing
// between 3- and 4-byte start codes per §6.4's policy: 4 bytes for the
// first NAL of every access unit and for NALs of type VPS, SPS, PPS, AUD,
// or UNSPEC62; 3 bytes otherwise.
type AnnexBWriter struct {
	w io.Writer
}

// NewAnnexBWriter returns a writer that emits to w.
func NewAnnexBWriter(w io.Writer) *AnnexBWriter {
	return &AnnexBWriter{w: w}
}

// forcesFourByteStartCode reports whether nalType always gets a 4-byte
// start code regardless of its position within an access unit.
func forcesFourByteStartCode(nalType uint8) bool {
	switch nalType {
	case NalVps, NalSps, NalPps, NalAud, NalUnspec62:
		return true
	default:
		return false
	}
}

// WriteNAL writes one start-code-prefixed NAL. firstOfAU selects the
// 4-byte start code for the first NAL of an access unit even when
// nalType itself would not otherwise force it.
func (w *AnnexBWriter) WriteNAL(nalType uint8, firstOfAU bool, payload []byte) error {
	var code NALUStartCode = StartCodeLength3
	if firstOfAU || forcesFourByteStartCode(nalType) {
		code = StartCodeLength4
	}

	if _, err := w.w.Write(code.Bytes()); err != nil {
		return err
	}
	_, err := w.w.Write(payload)
	return err
}

// WriteFrame writes every NAL of frame in order, marking the first one as
// the first NAL of the access unit. payloadOf resolves a NALUnit to its
// escaped RBSP bytes (including its 2-byte header); the writer does not
// own the source buffer.
func (w *AnnexBWriter) WriteFrame(frame Frame, payloadOf func(NALUnit) []byte) error {
	for i, nal := range frame.Nals {
		if err := w.WriteNAL(nal.NalType, i == 0, payloadOf(nal)); err != nil {
			return err
		}
	}
	return nil
}
