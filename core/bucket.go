package core

import (
	"math"

	"github.com/lineheat/lineheat/schema"
)

// NoBucket marks a line that receives no paint.
const NoBucket = -1

// Degenerate reports whether a signal range carries no information to
// visualize. A flat range skips bucketing entirely and paints nothing.
func Degenerate(minSignal, maxSignal int) bool {
	return maxSignal == minSignal
}

// Bucket maps one signal value onto a heat level in [0, levelCount-1].
// The caller must have rejected the degenerate range first.
//
// Linear scaling uses a ceiling step so the hottest signal still lands
// inside the top bucket. Logarithmic scaling compresses heavy-tailed
// modification counts: most lines are touched 0-2 times while a few hot
// lines accumulate dozens of changes, and a linear split would collapse
// the bulk of lines into the coolest bucket.
func Bucket(signal, minSignal, maxSignal, levelCount int, scale schema.Scale) int {
	if levelCount < 1 {
		return NoBucket
	}

	var bucket int
	switch scale {
	case schema.LogScale:
		span := math.Log(float64(maxSignal)+1) - math.Log(float64(minSignal)+1)
		if span == 0 {
			return 0
		}
		pos := math.Log(float64(signal)+1) - math.Log(float64(minSignal)+1)
		bucket = int(math.Floor(pos / span * float64(levelCount-1)))
	default: // linear
		step := int(math.Ceil(float64(maxSignal-minSignal) / float64(levelCount)))
		if step < 1 {
			step = 1
		}
		bucket = (signal - minSignal) / step
	}

	return clampBucket(bucket, levelCount)
}

// RankBucket maps a 1-based age rank onto a heat level. Ranks are a
// dense ordinal over the observed change times, so when they fit in the
// palette they index it directly; a file with more distinct change
// times than heat levels gets its ranks re-bucketed linearly instead of
// indexing past the palette end.
func RankBucket(rank, maxRank, levelCount int) int {
	if rank < 1 || levelCount < 1 {
		return NoBucket
	}
	if maxRank <= levelCount {
		return rank - 1
	}
	return clampBucket((rank-1)*levelCount/maxRank, levelCount)
}

func clampBucket(b, levelCount int) int {
	if b < 0 {
		return 0
	}
	if b > levelCount-1 {
		return levelCount - 1
	}
	return b
}
