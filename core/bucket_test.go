package core

import (
	"testing"

	"github.com/lineheat/lineheat/schema"
	"github.com/stretchr/testify/assert"
)

func TestDegenerate(t *testing.T) {
	assert.True(t, Degenerate(0, 0))
	assert.True(t, Degenerate(7, 7))
	assert.False(t, Degenerate(0, 1))
}

func TestBucketLinear(t *testing.T) {
	// Range 0..9 over 10 levels: step 1, identity mapping.
	for s := range 10 {
		assert.Equal(t, s, Bucket(s, 0, 9, 10, schema.LinearScale))
	}

	// Range 0..100 over 10 levels: step ceil(100/10)=10.
	assert.Equal(t, 0, Bucket(0, 0, 100, 10, schema.LinearScale))
	assert.Equal(t, 0, Bucket(9, 0, 100, 10, schema.LinearScale))
	assert.Equal(t, 1, Bucket(10, 0, 100, 10, schema.LinearScale))
	assert.Equal(t, 9, Bucket(100, 0, 100, 10, schema.LinearScale))
}

func TestBucketLog(t *testing.T) {
	assert.Equal(t, 0, Bucket(0, 0, 50, 10, schema.LogScale))
	assert.Equal(t, 9, Bucket(50, 0, 50, 10, schema.LogScale))

	// Log compression: a mid-range count lands above the linear midpoint.
	midLog := Bucket(7, 0, 50, 10, schema.LogScale)
	midLinear := Bucket(7, 0, 50, 10, schema.LinearScale)
	assert.Greater(t, midLog, midLinear)
}

// TestBucketRangeBounds checks that every non-degenerate signal lands
// inside [0, levels-1] for both scales.
func TestBucketRangeBounds(t *testing.T) {
	ranges := []struct{ min, max int }{
		{0, 1}, {0, 9}, {1, 10}, {0, 1000}, {5, 7}, {3, 200},
	}
	for _, levels := range []int{1, 2, 3, 10, 17} {
		for _, r := range ranges {
			for s := r.min; s <= r.max; s++ {
				for _, scale := range []schema.Scale{schema.LinearScale, schema.LogScale} {
					b := Bucket(s, r.min, r.max, levels, scale)
					assert.GreaterOrEqual(t, b, 0, "signal=%d range=%v levels=%d scale=%s", s, r, levels, scale)
					assert.LessOrEqual(t, b, levels-1, "signal=%d range=%v levels=%d scale=%s", s, r, levels, scale)
				}
			}
		}
	}
}

func TestRankBucketDirectIndexing(t *testing.T) {
	// Ranks that fit the palette index it directly.
	assert.Equal(t, 0, RankBucket(1, 5, 10))
	assert.Equal(t, 4, RankBucket(5, 5, 10))
}

func TestRankBucketReBucketing(t *testing.T) {
	// More distinct change times than levels: ranks are re-bucketed
	// instead of indexing past the palette end.
	levels := 10
	maxRank := 25
	for rank := 1; rank <= maxRank; rank++ {
		b := RankBucket(rank, maxRank, levels)
		assert.GreaterOrEqual(t, b, 0)
		assert.LessOrEqual(t, b, levels-1)
	}
	assert.Equal(t, 0, RankBucket(1, maxRank, levels))
	assert.Equal(t, levels-1, RankBucket(maxRank, maxRank, levels))
}

func TestRankBucketInvalid(t *testing.T) {
	assert.Equal(t, NoBucket, RankBucket(0, 5, 10))
	assert.Equal(t, NoBucket, RankBucket(1, 5, 0))
}
