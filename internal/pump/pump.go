// Package pump implements the stream pump contract described for the core
// parser: it owns blocking I/O, chunked NAL-boundary detection, and
// progress reporting, and delivers fully-split NALs to a parser through a
// small capability interface so any transport (file, pipe, Matroska demux)
// can drive the same core.
package pump

import (
	"bufio"
	"errors"
	"io"
	"log/slog"

	"github.com/zsiec/hevcparse"
)

// DefaultChunkSize is the primary read buffer size used when the caller
// does not override it.
const DefaultChunkSize = 1 << 20 // 1 MiB

// pipeSecondaryBufferSize backs reads from an unbuffered pipe (e.g.
// stdin), which often deliver far less than a full chunk per Read call.
const pipeSecondaryBufferSize = 50 * 1024

// progressEveryBytes is the cadence at which Sink.UpdateProgress is
// called: once per 100 MB consumed.
const progressEveryBytes = 100 * 1024 * 1024

// Sink is the capability set any adapter (CLI progress bar, test harness,
// library caller) satisfies to observe a Pump's output. It is the only
// polymorphic seam in the core: ProcessNALs receives the bit-accurate
// chunk and the NALs split from it, UpdateProgress receives a delta
// (always 1, emitted every progressEveryBytes consumed), and Finalize is
// called once when the pump stops, either at end of input or on a
// stopping condition.
type Sink interface {
	ProcessNALs(chunk []byte, nals []hevc.NALUnit, parser *hevc.Parser) error
	UpdateProgress(delta int)
	Finalize(parser *hevc.Parser)
}

// Config controls a Pump's buffering and stopping behavior.
type Config struct {
	ChunkSize int

	// FrameLimit stops the pump once the parser has finalized at least
	// this many ordered frames. Zero means no limit.
	FrameLimit int

	// OneShot stops the pump as soon as a single complete frame has been
	// produced, regardless of FrameLimit.
	OneShot bool
}

// Pump reads an Annex-B byte stream from an io.Reader in chunks, splits it
// into NAL units via the core splitter, and feeds them to a Parser and a
// Sink.
type Pump struct {
	cfg    Config
	parser *hevc.Parser
	sink   Sink
}

// New returns a Pump that will drive parser and report to sink.
func New(cfg Config, parser *hevc.Parser, sink Sink) *Pump {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	return &Pump{cfg: cfg, parser: parser, sink: sink}
}

// Run reads from r until EOF or a stopping condition is reached, then
// calls sink.Finalize. It returns any I/O or parse error encountered,
// unless the error is io.EOF, which Run treats as a normal end of input.
func (p *Pump) Run(r io.Reader) error {
	buf := bufio.NewReaderSize(r, p.cfg.ChunkSize)

	var chunk []byte
	var offsets []int
	var totalRead int64
	var lastProgressMark int64

	primary := make([]byte, p.cfg.ChunkSize)
	secondary := make([]byte, pipeSecondaryBufferSize)

	for {
		n, readErr := buf.Read(primary)
		if n == 0 {
			n, readErr = buf.Read(secondary)
			if n > 0 {
				chunk = append(chunk, secondary[:n]...)
			}
		} else {
			chunk = append(chunk, primary[:n]...)
		}

		totalRead += int64(n)
		if totalRead-lastProgressMark >= progressEveryBytes {
			p.sink.UpdateProgress(1)
			lastProgressMark = totalRead
		}

		filledFull := n == len(primary)

		offsets = hevc.GetOffsets(chunk, offsets[:0])

		var lastOffset int
		if filledFull && len(offsets) > 0 {
			// The last NAL may be incomplete: end the data at its start
			// code (including a 4-byte code's leading zero) and carry the
			// start code over with the tail so the next scan finds it.
			lastOffset = offsets[len(offsets)-1] - hevc.StartCodeLength3Int
			if lastOffset > 0 && chunk[lastOffset-1] == 0 {
				lastOffset--
			}
			offsets = offsets[:len(offsets)-1]
		} else {
			lastOffset = len(chunk)
		}

		if len(offsets) > 0 {
			raws := hevc.SplitNALs(chunk, offsets, lastOffset)
			nals := make([]hevc.NALUnit, 0, len(raws))
			for _, raw := range raws {
				nal, rbsp, err := hevc.ParseNAL(chunk, raw, 0, true)
				if err != nil {
					return err
				}
				if err := p.parser.ProcessNAL(nal, rbsp); err != nil {
					return err
				}
				nals = append(nals, nal)
			}

			if err := p.sink.ProcessNALs(chunk[:lastOffset], nals, p.parser); err != nil {
				return err
			}

			if p.shouldStop() {
				p.parser.Finish()
				p.sink.Finalize(p.parser)
				return nil
			}
		}

		chunk = append(chunk[:0], chunk[lastOffset:]...)

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return readErr
		}
	}

	p.parser.Finish()
	p.sink.Finalize(p.parser)
	return nil
}

func (p *Pump) shouldStop() bool {
	n := len(p.parser.OrderedFrames())
	if p.cfg.OneShot && n >= 1 {
		return true
	}
	if p.cfg.FrameLimit > 0 && n >= p.cfg.FrameLimit {
		return true
	}
	return false
}

// LogSink is a minimal Sink that reports progress and completion through
// log/slog, doing nothing with the NALs themselves. It's useful as a
// building block for CLI tools that only need progress output.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) ProcessNALs(chunk []byte, nals []hevc.NALUnit, parser *hevc.Parser) error {
	return nil
}

func (s LogSink) UpdateProgress(delta int) {
	s.Logger.Debug("pump progress", "delta", delta)
}

func (s LogSink) Finalize(parser *hevc.Parser) {
	s.Logger.Info("pump finished", "frames", len(parser.OrderedFrames()))
}
