package core

import (
	"context"
	"errors"

	"github.com/lineheat/lineheat/internal/contract"
	"github.com/lineheat/lineheat/schema"
)

// absoluteStrategy derives heat from modification-frequency counts.
type absoluteStrategy struct{}

var _ ModeStrategy = &absoluteStrategy{}

// Mode implements the ModeStrategy interface.
func (s *absoluteStrategy) Mode() schema.Mode { return schema.LineCommitMode }

// ComputeBuckets implements the ModeStrategy interface. Counts come
// either from one line-range log per line or from a single aggregated
// patch log, per the configured strategy; the scale follows from that
// choice (log compression for per-line counts, linear for hunk counts).
func (s *absoluteStrategy) ComputeBuckets(ctx context.Context, client contract.VCSClient, mgr contract.CacheManager, cfg *contract.Config, doc *schema.Document) (*BucketAssignment, error) {
	signals, err := cachedSignals(ctx, client, mgr, cfg, doc, func() ([]int, error) {
		if cfg.Strategy == schema.HunksStrategy {
			return extractHunkCounts(ctx, client, cfg, doc)
		}
		return extractLineCounts(ctx, client, doc)
	})
	if err != nil {
		return nil, err
	}

	minSignal, maxSignal := signalRange(signals)
	if Degenerate(minSignal, maxSignal) {
		// A flat signal carries no information to visualize.
		return nil, nil
	}

	scale := cfg.BucketScale()
	buckets := make([]int, len(signals))
	for i, sig := range signals {
		buckets[i] = Bucket(sig, minSignal, maxSignal, cfg.HeatLevels, scale)
	}
	return &BucketAssignment{Buckets: buckets, Signals: signals}, nil
}

// extractLineCounts runs one line-range restricted log per document
// line and counts the history entries returned. An invocation failure
// for an individual line degrades to a zero count: boundary lines can
// fall outside the valid history range and should not kill the render.
func extractLineCounts(ctx context.Context, client contract.VCSClient, doc *schema.Document) ([]int, error) {
	counts := make([]int, doc.LineCount())
	for i := range counts {
		n, err := client.CountLineCommits(ctx, doc.Dir(), doc.Base(), i+1)
		if err != nil {
			if errors.Is(err, contract.ErrUnsupportedOperation) {
				// The whole capability is missing, not one boundary line.
				return nil, err
			}
			n = 0
		}
		counts[i] = n
	}
	return counts, nil
}

// extractHunkCounts derives all counts from a single full-file history
// scan. A failure here is file-level and therefore fatal for the
// extraction.
func extractHunkCounts(ctx context.Context, client contract.VCSClient, cfg *contract.Config, doc *schema.Document) ([]int, error) {
	out, err := client.PatchLog(ctx, doc.Dir(), doc.Base(), cfg.Follow)
	if err != nil {
		return nil, err
	}
	return countsFromPatchLog(out, doc.LineCount()), nil
}

// signalRange returns the min and max over the defined signal values.
func signalRange(signals []int) (int, int) {
	minSignal, maxSignal := 0, 0
	first := true
	for _, s := range signals {
		if s == schema.NoSignal {
			continue
		}
		if first {
			minSignal, maxSignal = s, s
			first = false
			continue
		}
		if s < minSignal {
			minSignal = s
		}
		if s > maxSignal {
			maxSignal = s
		}
	}
	return minSignal, maxSignal
}
