// Command hevcseq parses an HEVC Annex-B or Matroska input and prints its
// access units in presentation order.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"golang.org/x/sync/errgroup"

	hevc "github.com/zsiec/hevcparse"
	"github.com/zsiec/hevcparse/internal/ingest"
	"github.com/zsiec/hevcparse/internal/mkv"
	"github.com/zsiec/hevcparse/internal/pump"
)

func main() {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: hevcseq <input path>")
		os.Exit(2)
	}
	path := os.Args[1]

	frameLimit := 0
	if v := os.Getenv("FRAME_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Error("invalid FRAME_LIMIT", "error", err)
			os.Exit(1)
		}
		frameLimit = n
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	g, ctx := errgroup.WithContext(ctx)

	var parser *hevc.Parser

	g.Go(func() error {
		var err error
		parser, err = run(ctx, path, frameLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		slog.Error("hevcseq failed", "error", err)
		os.Exit(1)
	}

	for _, frame := range parser.OrderedFrames() {
		fmt.Printf("%s display %d poc %d decoded %d\n",
			pictureTypeLabel(frame.FrameType),
			frame.PresentationNumber,
			frame.FirstSlice.OutputPictureNumber,
			frame.DecodedNumber,
		)
	}
}

func run(ctx context.Context, path string, frameLimit int) (*hevc.Parser, error) {
	format := ingest.Detect(path)

	parser := hevc.NewParser()

	switch format {
	case ingest.FormatMatroska:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		sink := &frameFeeder{parser: parser}
		if _, err := mkv.Demux(f, sink); err != nil {
			return nil, err
		}
		parser.Finish()
		return parser, nil

	default:
		var r *os.File
		if format == ingest.FormatStdin {
			r = os.Stdin
		} else {
			f, err := os.Open(path)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			r = f
		}

		p := pump.New(pump.Config{FrameLimit: frameLimit}, parser, pump.LogSink{Logger: slog.Default()})
		if err := p.Run(r); err != nil {
			return nil, err
		}
		return parser, nil
	}
}

// frameFeeder adapts mkv.FrameSink to the core Parser: each length-prefixed
// NAL arriving from the container is handed to ProcessNAL without a start
// code, using the core's own unescape step since Matroska payloads may
// still carry emulation-prevention bytes.
type frameFeeder struct {
	parser            *hevc.Parser
	decodedFrameIndex uint64
}

func (f *frameFeeder) OnFrame(nals [][]byte) error {
	for _, raw := range nals {
		rbsp := hevc.Unescape(raw)
		r := hevc.NewBitReader(rbsp)
		hdr, err := hevc.ReadNALHeader(r)
		if err != nil {
			return err
		}

		nal := hevc.NALUnit{
			Start:             0,
			End:               len(raw),
			NalType:           hdr.NalType,
			LayerID:           hdr.LayerID,
			TemporalID:        hdr.TemporalID,
			StartCode:         hevc.StartCodeLength4,
			DecodedFrameIndex: f.decodedFrameIndex,
		}
		if err := f.parser.ProcessNAL(nal, rbsp); err != nil {
			return err
		}
	}
	f.decodedFrameIndex++
	return nil
}

func pictureTypeLabel(frameType uint64) string {
	switch frameType {
	case 2:
		return "I"
	case 1:
		return "P"
	case 0:
		return "B"
	default:
		return "?"
	}
}
