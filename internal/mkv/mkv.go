// Package mkv implements the Matroska ingestion contract: selecting the
// first V_MPEGH/ISO/HEVC video track, decoding its codec-private block as
// an HEVC Decoder Configuration Record, and walking each frame as a
// sequence of length-prefixed NAL units with the container's frame
// boundaries taken as authoritative.
package mkv

import (
	"errors"
	"fmt"
	"io"

	"github.com/remko/go-mkvparse"

	"github.com/zsiec/hevcparse"
)

// hevcCodecID is the exact Matroska CodecID this package looks for; any
// other video track is ignored.
const hevcCodecID = "V_MPEGH/ISO/HEVC"

// ErrNoHEVCTrack is returned when no track in the file advertises
// hevcCodecID.
var ErrNoHEVCTrack = errors.New("mkv: no V_MPEGH/ISO/HEVC track found")

// FrameSink receives each demuxed frame's NAL units in decode order, fed
// without start codes — the container's own framing is authoritative and
// the core's Annex-B start-code scanning never runs over Matroska input.
type FrameSink interface {
	OnFrame(nals [][]byte) error
}

// Demux reads a Matroska stream from r, locates the first HEVC video
// track, and feeds every frame's NAL units (split using the track's
// configuration record) to sink.
func Demux(r io.Reader, sink FrameSink) (*hevc.HEVCDecoderConfigurationRecord, error) {
	h := &handler{sink: sink}
	if err := mkvparse.Parse(r, h); err != nil {
		return nil, err
	}
	if h.config == nil {
		return nil, ErrNoHEVCTrack
	}
	return h.config, nil
}

type handler struct {
	mkvparse.DefaultHandler

	inTrackEntry    bool
	candidateNumber int64
	candidateCodec  string
	candidatePriv   []byte

	hevcTrackNumber int64
	config          *hevc.HEVCDecoderConfigurationRecord
	haveTrack       bool

	currentTrackNumber int64
}

func (h *handler) HandleMasterBegin(id mkvparse.ElementID, info mkvparse.ElementInfo) (bool, error) {
	if id == mkvparse.TrackEntryElement {
		h.inTrackEntry = true
		h.candidateNumber = 0
		h.candidateCodec = ""
		h.candidatePriv = nil
	}
	return true, nil
}

func (h *handler) HandleMasterEnd(id mkvparse.ElementID, info mkvparse.ElementInfo) error {
	if id == mkvparse.TrackEntryElement {
		h.inTrackEntry = false
		if !h.haveTrack && h.candidateCodec == hevcCodecID && len(h.candidatePriv) > 0 {
			config, err := hevc.ParseHEVCDecoderConfigurationRecord(h.candidatePriv)
			if err != nil {
				return fmt.Errorf("mkv: decoding codec private for track %d: %w", h.candidateNumber, err)
			}
			h.hevcTrackNumber = h.candidateNumber
			h.config = config
			h.haveTrack = true
		}
	}
	return nil
}

func (h *handler) HandleString(id mkvparse.ElementID, value string, info mkvparse.ElementInfo) error {
	if h.inTrackEntry && id == mkvparse.CodecIDElement {
		h.candidateCodec = value
	}
	return nil
}

func (h *handler) HandleInteger(id mkvparse.ElementID, value int64, info mkvparse.ElementInfo) error {
	if h.inTrackEntry && id == mkvparse.TrackNumberElement {
		h.candidateNumber = value
	}
	return nil
}

func (h *handler) HandleBinary(id mkvparse.ElementID, value []byte, info mkvparse.ElementInfo) error {
	switch id {
	case mkvparse.CodecPrivateElement:
		if h.inTrackEntry {
			h.candidatePriv = append([]byte(nil), value...)
		}
	case mkvparse.SimpleBlockElement, mkvparse.BlockElement:
		return h.handleBlock(value)
	}
	return nil
}

// handleBlock parses a (Simple)Block's leading track-number vint and, when
// it names the HEVC track, splits the remaining payload into
// length-prefixed NAL units per the track's configuration record.
func (h *handler) handleBlock(block []byte) error {
	if !h.haveTrack {
		return nil
	}

	trackNumber, headerLen, ok := readVint(block)
	if !ok || trackNumber != h.hevcTrackNumber {
		return nil
	}

	// Skip the 2-byte relative timecode and 1-byte flags that follow the
	// track number in a (Simple)Block header.
	const blockFlagsLen = 3
	payloadStart := headerLen + blockFlagsLen
	if payloadStart > len(block) {
		return nil
	}
	payload := block[payloadStart:]

	sizeLen := h.config.NaluSizeLength()
	nals, err := splitLengthPrefixed(payload, sizeLen)
	if err != nil {
		return err
	}
	if len(nals) == 0 {
		return nil
	}
	return h.sink.OnFrame(nals)
}

// splitLengthPrefixed walks payload as a sequence of big-endian
// sizeLen-byte length-prefixed NAL units, skipping zero-length entries and
// stopping early if a length would overrun the remaining bytes.
func splitLengthPrefixed(payload []byte, sizeLen int) ([][]byte, error) {
	var nals [][]byte
	pos := 0
	for pos+sizeLen <= len(payload) {
		var length int
		for i := 0; i < sizeLen; i++ {
			length = (length << 8) | int(payload[pos+i])
		}
		pos += sizeLen

		if length == 0 {
			continue
		}
		if pos+length > len(payload) {
			break
		}
		nals = append(nals, payload[pos:pos+length])
		pos += length
	}
	return nals, nil
}

// readVint decodes an EBML variable-length integer from the start of b,
// as used for the track number at the head of a (Simple)Block. It returns
// the decoded value, the number of bytes it occupied, and whether
// decoding succeeded.
func readVint(b []byte) (value int64, length int, ok bool) {
	if len(b) == 0 {
		return 0, 0, false
	}
	first := b[0]
	mask := byte(0x80)
	length = 1
	for mask != 0 && first&mask == 0 {
		mask >>= 1
		length++
	}
	if length > 8 || length > len(b) {
		return 0, 0, false
	}
	value = int64(first &^ mask)
	for i := 1; i < length; i++ {
		value = (value << 8) | int64(b[i])
	}
	return value, length, true
}
