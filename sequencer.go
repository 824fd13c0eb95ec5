package hevc

import "sort"

// Parser holds all mutable state for one HEVC bitstream: the active
// parameter-set tables, the running POC anchors, the access unit currently
// being assembled, and the frames awaiting reorder versus already
// finalized in presentation order. A Parser is not safe for concurrent
// use; parse independent streams with independent Parsers (see
// ParseConcurrent).
type Parser struct {
	Tables *ParamSetTable

	poc      int64
	pocTid0  int64

	currentFrame Frame
	haveFirst    bool

	decodedIndex      uint64
	presentationIndex uint64

	frames        []Frame
	orderedFrames []Frame
}

// NewParser returns a Parser with empty parameter-set tables and counters
// reset to zero.
func NewParser() *Parser {
	return &Parser{Tables: NewParamSetTable()}
}

// OrderedFrames returns the frames finalized so far, in presentation
// order. The returned slice aliases internal state and must not be
// mutated.
func (p *Parser) OrderedFrames() []Frame {
	return p.orderedFrames
}

// ProcessNAL decodes nal (whose rbsp is the already-unescaped payload,
// beginning at its 2-byte NAL header) and mutates the parser's state per
// the NAL-kind dispatch table: parameter sets are decoded and shadowed
// into Tables, slices are decoded and assembled into access units,
// SEI_SUFFIX, UNSPEC62, UNSPEC63, EOS and EOB are attached to the current
// access unit, and every other kind closes the current access unit; none of
// these last kinds is decoded beyond its header.
func (p *Parser) ProcessNAL(nal NALUnit, rbsp []byte) error {
	r := NewBitReader(rbsp)
	if _, err := ReadNALHeader(r); err != nil {
		return err
	}

	switch {
	case nal.NalType == NalVps:
		vps, err := ParseVPS(r)
		if err != nil {
			return err
		}
		p.Tables.PutVPS(rbsp, vps)
		p.closeCurrentFrame()
		nal.DecodedFrameIndex = p.decodedIndex
		p.currentFrame.Nals = append(p.currentFrame.Nals, nal)

	case nal.NalType == NalSps:
		sps, err := ParseSPS(r)
		if err != nil {
			return err
		}
		p.Tables.PutSPS(rbsp, sps)
		p.closeCurrentFrame()
		nal.DecodedFrameIndex = p.decodedIndex
		p.currentFrame.Nals = append(p.currentFrame.Nals, nal)

	case nal.NalType == NalPps:
		pps, err := ParsePPS(r)
		if err != nil {
			return err
		}
		p.Tables.PutPPS(rbsp, pps)
		p.closeCurrentFrame()
		nal.DecodedFrameIndex = p.decodedIndex
		p.currentFrame.Nals = append(p.currentFrame.Nals, nal)

	case IsSliceType(nal.NalType):
		nalHdr := NALHeader{NalType: nal.NalType, LayerID: nal.LayerID, TemporalID: nal.TemporalID}
		sh, err := ParseSliceHeader(r, p.Tables, nalHdr, &p.pocTid0)
		if err != nil {
			return err
		}
		p.poc = sh.OutputPictureNumber

		if p.haveFirst && sh.FirstSliceInPicFlag {
			p.closeCurrentFrame()
		}
		nal.DecodedFrameIndex = p.decodedIndex

		if sh.KeyFrame {
			p.reorderFrames()
		}

		if sh.FirstSliceInPicFlag {
			p.currentFrame.FirstSlice = sh
			p.currentFrame.DecodedNumber = p.decodedIndex
			p.haveFirst = true
		}

		p.currentFrame.Nals = append(p.currentFrame.Nals, nal)

	case nal.NalType == NalSeiSuffix || nal.NalType == NalUnspec62 || nal.NalType == NalUnspec63 ||
		nal.NalType == NalEosNut || nal.NalType == NalEobNut:
		p.currentFrame.Nals = append(p.currentFrame.Nals, nal)

	default:
		p.closeCurrentFrame()
		nal.DecodedFrameIndex = p.decodedIndex
		p.currentFrame.Nals = append(p.currentFrame.Nals, nal)
	}

	return nil
}

// closeCurrentFrame finalizes currentFrame into frames if it carries a
// recorded first slice, then resets it to empty.
func (p *Parser) closeCurrentFrame() {
	if !p.haveFirst {
		return
	}

	p.decodedIndex++
	p.currentFrame.PresentationNumber = uint64(p.currentFrame.FirstSlice.OutputPictureNumber)
	p.currentFrame.FrameType = p.currentFrame.FirstSlice.SliceType
	p.frames = append(p.frames, p.currentFrame)

	p.currentFrame = Frame{}
	p.haveFirst = false
}

// reorderFrames sorts the frames accumulated since the last reorder by
// presentation_number, renumbers them in rank order starting from
// presentationIndex, and appends them to orderedFrames.
func (p *Parser) reorderFrames() {
	sort.SliceStable(p.frames, func(i, j int) bool {
		return p.frames[i].PresentationNumber < p.frames[j].PresentationNumber
	})

	offset := p.presentationIndex
	for i := range p.frames {
		p.frames[i].PresentationNumber = offset
		offset++
	}
	p.presentationIndex = offset

	p.orderedFrames = append(p.orderedFrames, p.frames...)
	p.frames = nil
}

// Finish closes any in-progress access unit and performs one final
// reorder. It is idempotent: calling it again with no intervening
// ProcessNAL calls leaves OrderedFrames unchanged.
func (p *Parser) Finish() {
	p.closeCurrentFrame()
	p.reorderFrames()
}
