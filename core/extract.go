package core

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lineheat/lineheat/internal/contract"
	"github.com/lineheat/lineheat/schema"
)

// signalVersion is bumped whenever the signal encoding changes, so
// stale cache entries are ignored rather than misread.
const signalVersion = 1

// BucketAssignment pairs each document line with a heat level and the
// raw signal value shown as the line's trailing annotation. Both slices
// have document length; NoBucket / schema.NoSignal mark skipped lines.
type BucketAssignment struct {
	Buckets []int
	Signals []int
}

// ModeStrategy owns the extraction and bucketing behavior of one heat
// mode. Each variant turns raw VCS history into a ready-to-paint
// assignment; a nil assignment with nil error means the signal was
// degenerate and nothing should be painted.
type ModeStrategy interface {
	Mode() schema.Mode
	ComputeBuckets(ctx context.Context, client contract.VCSClient, mgr contract.CacheManager, cfg *contract.Config, doc *schema.Document) (*BucketAssignment, error)
}

// StrategyFor returns the strategy variant for the configured mode.
func StrategyFor(mode schema.Mode) ModeStrategy {
	if mode == schema.LineCommitMode {
		return &absoluteStrategy{}
	}
	return &relativeStrategy{}
}

// cachedSignals looks up an extraction result for the current history
// tip, or runs extract and stores its output. Cache misses and cache
// errors both fall through to a fresh extraction; the cache never makes
// a render fail.
func cachedSignals(ctx context.Context, client contract.VCSClient, mgr contract.CacheManager, cfg *contract.Config, doc *schema.Document, extract func() ([]int, error)) ([]int, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetSignalStore()
	}
	if store == nil {
		return extract()
	}

	head, err := client.HeadRef(ctx, doc.Dir())
	if err != nil {
		// No stable history tip to key on; extract without caching.
		return extract()
	}
	// Every input that changes the extraction output is part of the key:
	// mode and strategy select the algorithm, follow changes hunk counts,
	// and the content checksum catches uncommitted edits at the same tip.
	key := fmt.Sprintf("signals:%s:%s:%s:%s:%t:%d:%x",
		head, doc.Path(), cfg.Mode, cfg.Strategy, cfg.Follow, doc.LineCount(), doc.Checksum())

	if raw, version, _, err := store.Get(key); err == nil && version == signalVersion {
		var signals []int
		if json.Unmarshal(raw, &signals) == nil && len(signals) == doc.LineCount() {
			return signals, nil
		}
	} else if err != nil && err != sql.ErrNoRows {
		contract.LogWarn("signal cache read failed", err)
	}

	signals, err := extract()
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(signals); err == nil {
		if err := store.Set(key, raw, signalVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("signal cache write failed", err)
		}
	}
	return signals, nil
}
