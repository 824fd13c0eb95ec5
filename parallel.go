package hevc

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// StreamResult pairs one input's finalized frames with the input index it
// came from, so ParseConcurrent's caller can correlate results back to the
// streams slice it passed in.
type StreamResult struct {
	Index  int
	Frames []Frame
}

// ParseConcurrent runs ProcessNAL over each of streams' pre-split NALs in
// its own goroutine and Parser instance — one parser instance must never
// be shared across goroutines, so each stream gets a fresh one — and
// returns one StreamResult per stream once every goroutine has finished.
// The group is canceled on first error, and ParseConcurrent then returns
// nil results and that error; ctx lets the caller bound the whole batch.
func ParseConcurrent(ctx context.Context, streams [][]struct {
	NAL  NALUnit
	RBSP []byte
}) ([]StreamResult, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]StreamResult, len(streams))

	for i, nals := range streams {
		i, nals := i, nals
		g.Go(func() error {
			parser := NewParser()
			for _, entry := range nals {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := parser.ProcessNAL(entry.NAL, entry.RBSP); err != nil {
					return err
				}
			}
			parser.Finish()
			results[i] = StreamResult{Index: i, Frames: parser.OrderedFrames()}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
