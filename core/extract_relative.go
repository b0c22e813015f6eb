package core

import (
	"context"
	"sort"
	"time"

	"github.com/lineheat/lineheat/internal/contract"
	"github.com/lineheat/lineheat/schema"
)

// relativeStrategy derives heat from the recency rank of each line's
// last change.
type relativeStrategy struct{}

var _ ModeStrategy = &relativeStrategy{}

// Mode implements the ModeStrategy interface.
func (s *relativeStrategy) Mode() schema.Mode { return schema.AgeMode }

// ComputeBuckets implements the ModeStrategy interface. One blame pass
// attributes every line to its last change; the distinct change times
// are ranked ascending (1 = oldest, ties share a rank) and each line's
// rank is both its heat signal and its displayed number. Uncommitted
// lines rank strictly newer than every committed line.
func (s *relativeStrategy) ComputeBuckets(ctx context.Context, client contract.VCSClient, mgr contract.CacheManager, cfg *contract.Config, doc *schema.Document) (*BucketAssignment, error) {
	ranks, err := cachedSignals(ctx, client, mgr, cfg, doc, func() ([]int, error) {
		blame, err := client.Blame(ctx, doc.Dir(), doc.Base())
		if err != nil {
			return nil, err
		}
		return rankLines(blame, doc.LineCount()), nil
	})
	if err != nil {
		return nil, err
	}

	maxRank := 0
	for _, r := range ranks {
		if r > maxRank {
			maxRank = r
		}
	}
	if maxRank == 0 {
		// Blame attributed nothing; there is nothing to paint.
		return nil, nil
	}

	buckets := make([]int, len(ranks))
	for i, r := range ranks {
		if r == schema.NoSignal {
			buckets[i] = NoBucket
			continue
		}
		buckets[i] = RankBucket(r, maxRank, cfg.HeatLevels)
	}
	return &BucketAssignment{Buckets: buckets, Signals: ranks}, nil
}

// rankLines converts blame attributions into per-line age ranks. The
// result has exactly lineCount entries: blame output shorter than the
// document leaves trailing lines unattributed, longer output is
// truncated.
func rankLines(blame []schema.BlameLine, lineCount int) []int {
	// Distinct change times across all attributed commits, deduplicated.
	seen := make(map[time.Time]struct{})
	for _, b := range blame {
		if b.Committed {
			seen[b.Time] = struct{}{}
		}
	}
	times := make([]time.Time, 0, len(seen))
	for t := range seen {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	rankOf := make(map[time.Time]int, len(times))
	for i, t := range times {
		rankOf[t] = i + 1 // oldest = rank 1
	}
	// Lines without history are strictly newer than every committed
	// line; with no committed lines at all they rank 1.
	syntheticRank := len(times) + 1

	ranks := make([]int, lineCount)
	for i := range ranks {
		if i >= len(blame) {
			ranks[i] = schema.NoSignal
			continue
		}
		if !blame[i].Committed {
			ranks[i] = syntheticRank
			continue
		}
		ranks[i] = rankOf[blame[i].Time]
	}
	return ranks
}
