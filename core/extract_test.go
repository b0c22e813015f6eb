package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lineheat/lineheat/internal/contract"
	"github.com/lineheat/lineheat/internal/heatcolor"
	"github.com/lineheat/lineheat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testConfig returns a validated-shape config for engine tests.
func testConfig() *contract.Config {
	return &contract.Config{
		HeatLevels: 10,
		HeatColor:  heatcolor.New(200, 0, 0),
		CoolColor:  heatcolor.WithAlpha(heatcolor.New(200, 0, 0), 0),
		Mode:       schema.AgeMode,
		Strategy:   schema.LineLogStrategy,
	}
}

func TestRelativeRanksTwoCommits(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	client := new(contract.MockVCSClient)
	client.On("Blame", mock.Anything, mock.Anything, mock.Anything).Return([]schema.BlameLine{
		{Ref: "b", Time: newer, Committed: true},
		{Ref: "a", Time: older, Committed: true},
	}, nil)

	doc := schema.NewDocument("/repo/two.go", "newer line\nolder line\n")
	cfg := testConfig()

	assignment, err := StrategyFor(schema.AgeMode).ComputeBuckets(context.Background(), client, nil, cfg, doc)
	require.NoError(t, err)
	require.NotNil(t, assignment)

	// The older line gets rank 1, the newer rank 2.
	assert.Equal(t, []int{2, 1}, assignment.Signals)
	assert.Equal(t, []int{1, 0}, assignment.Buckets)
}

func TestRelativeTiesShareRank(t *testing.T) {
	when := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	client := new(contract.MockVCSClient)
	client.On("Blame", mock.Anything, mock.Anything, mock.Anything).Return([]schema.BlameLine{
		{Ref: "a", Time: when, Committed: true},
		{Ref: "b", Time: when, Committed: true},
	}, nil)

	doc := schema.NewDocument("/repo/tied.go", "one\ntwo\n")
	assignment, err := StrategyFor(schema.AgeMode).ComputeBuckets(context.Background(), client, nil, testConfig(), doc)
	require.NoError(t, err)
	require.NotNil(t, assignment)
	assert.Equal(t, []int{1, 1}, assignment.Signals, "identical timestamps share a rank")
}

func TestRelativeUncommittedRanksNewest(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	client := new(contract.MockVCSClient)
	client.On("Blame", mock.Anything, mock.Anything, mock.Anything).Return([]schema.BlameLine{
		{Ref: "a", Time: older, Committed: true},
		{Committed: false},
	}, nil)

	doc := schema.NewDocument("/repo/wip.go", "committed\nfresh\n")
	assignment, err := StrategyFor(schema.AgeMode).ComputeBuckets(context.Background(), client, nil, testConfig(), doc)
	require.NoError(t, err)
	require.NotNil(t, assignment)
	assert.Equal(t, []int{1, 2}, assignment.Signals)
}

func TestRelativeAllUncommittedRankOne(t *testing.T) {
	client := new(contract.MockVCSClient)
	client.On("Blame", mock.Anything, mock.Anything, mock.Anything).Return([]schema.BlameLine{
		{Committed: false},
		{Committed: false},
	}, nil)

	doc := schema.NewDocument("/repo/new.go", "a\nb\n")
	assignment, err := StrategyFor(schema.AgeMode).ComputeBuckets(context.Background(), client, nil, testConfig(), doc)
	require.NoError(t, err)
	require.NotNil(t, assignment)
	assert.Equal(t, []int{1, 1}, assignment.Signals, "no committed lines at all means rank 1")
}

func TestRelativeBlameFailureIsFatal(t *testing.T) {
	client := new(contract.MockVCSClient)
	client.On("Blame", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	doc := schema.NewDocument("/repo/bad.go", "a\n")
	_, err := StrategyFor(schema.AgeMode).ComputeBuckets(context.Background(), client, nil, testConfig(), doc)
	assert.Error(t, err)
}

func TestRelativeManyTimestampsStayInPalette(t *testing.T) {
	client := new(contract.MockVCSClient)
	var blame []schema.BlameLine
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 25 {
		blame = append(blame, schema.BlameLine{
			Ref:       string(rune('a' + i)),
			Time:      base.AddDate(0, 0, i),
			Committed: true,
		})
	}
	client.On("Blame", mock.Anything, mock.Anything, mock.Anything).Return(blame, nil)

	content := ""
	for range 25 {
		content += "x\n"
	}
	doc := schema.NewDocument("/repo/many.go", content)
	cfg := testConfig()

	assignment, err := StrategyFor(schema.AgeMode).ComputeBuckets(context.Background(), client, nil, cfg, doc)
	require.NoError(t, err)
	require.NotNil(t, assignment)
	for i, b := range assignment.Buckets {
		assert.GreaterOrEqual(t, b, 0, "line %d", i+1)
		assert.LessOrEqual(t, b, cfg.HeatLevels-1, "line %d", i+1)
	}
}

func TestAbsoluteLineCounts(t *testing.T) {
	client := new(contract.MockVCSClient)
	counts := []int{1, 5, 1}
	for i, n := range counts {
		client.On("CountLineCommits", mock.Anything, mock.Anything, mock.Anything, i+1).Return(n, nil)
	}

	doc := schema.NewDocument("/repo/abs.go", "a\nb\nc\n")
	cfg := testConfig()
	cfg.Mode = schema.LineCommitMode

	assignment, err := StrategyFor(schema.LineCommitMode).ComputeBuckets(context.Background(), client, nil, cfg, doc)
	require.NoError(t, err)
	require.NotNil(t, assignment)
	assert.Equal(t, counts, assignment.Signals)
	assert.Equal(t, 0, assignment.Buckets[0])
	assert.Equal(t, cfg.HeatLevels-1, assignment.Buckets[1], "hottest count lands in the top bucket")
}

func TestAbsoluteLineFailureDegradesToZero(t *testing.T) {
	client := new(contract.MockVCSClient)
	client.On("CountLineCommits", mock.Anything, mock.Anything, mock.Anything, 1).Return(3, nil)
	client.On("CountLineCommits", mock.Anything, mock.Anything, mock.Anything, 2).Return(0, errors.New("line out of range"))

	doc := schema.NewDocument("/repo/edge.go", "a\nb\n")
	cfg := testConfig()
	cfg.Mode = schema.LineCommitMode

	assignment, err := StrategyFor(schema.LineCommitMode).ComputeBuckets(context.Background(), client, nil, cfg, doc)
	require.NoError(t, err)
	require.NotNil(t, assignment)
	assert.Equal(t, []int{3, 0}, assignment.Signals)
}

func TestAbsoluteNoHistoryIsDegenerate(t *testing.T) {
	client := new(contract.MockVCSClient)
	for i := 1; i <= 2; i++ {
		client.On("CountLineCommits", mock.Anything, mock.Anything, mock.Anything, i).Return(0, nil)
	}

	doc := schema.NewDocument("/repo/fresh.go", "a\nb\n")
	cfg := testConfig()
	cfg.Mode = schema.LineCommitMode

	assignment, err := StrategyFor(schema.LineCommitMode).ComputeBuckets(context.Background(), client, nil, cfg, doc)
	require.NoError(t, err)
	assert.Nil(t, assignment, "an all-zero signal paints nothing")
}

func TestAbsoluteUnsupportedOperationIsFatal(t *testing.T) {
	client := new(contract.MockVCSClient)
	client.VCSKind = schema.PerforceVCS
	client.On("CountLineCommits", mock.Anything, mock.Anything, mock.Anything, 1).Return(0, contract.ErrUnsupportedOperation)

	doc := schema.NewDocument("/depot/abs.go", "a\n")
	cfg := testConfig()
	cfg.Mode = schema.LineCommitMode

	_, err := StrategyFor(schema.LineCommitMode).ComputeBuckets(context.Background(), client, nil, cfg, doc)
	assert.ErrorIs(t, err, contract.ErrUnsupportedOperation)
}

func TestAbsoluteWrappedUnsupportedOperationIsFatal(t *testing.T) {
	client := new(contract.MockVCSClient)
	client.VCSKind = schema.PerforceVCS
	client.On("CountLineCommits", mock.Anything, mock.Anything, mock.Anything, 1).
		Return(0, fmt.Errorf("annotate failed: %w", contract.ErrUnsupportedOperation))

	doc := schema.NewDocument("/depot/wrap.go", "a\n")
	cfg := testConfig()
	cfg.Mode = schema.LineCommitMode

	_, err := StrategyFor(schema.LineCommitMode).ComputeBuckets(context.Background(), client, nil, cfg, doc)
	assert.ErrorIs(t, err, contract.ErrUnsupportedOperation, "a wrapped capability error is still fatal")
}

// recordingCache captures the keys written to the signal store; every
// read misses so each extraction stores a fresh entry.
type recordingCache struct {
	store *recordingStore
}

func (c *recordingCache) GetSignalStore() contract.CacheStore { return c.store }

type recordingStore struct {
	keys []string
}

func (s *recordingStore) Get(string) ([]byte, int, int64, error) { return nil, 0, 0, sql.ErrNoRows }
func (s *recordingStore) Set(key string, _ []byte, _ int, _ int64) error {
	s.keys = append(s.keys, key)
	return nil
}
func (s *recordingStore) GetStatus() (schema.CacheStatus, error) { return schema.CacheStatus{}, nil }
func (s *recordingStore) Close() error                           { return nil }

var (
	_ contract.CacheManager = &recordingCache{}
	_ contract.CacheStore   = &recordingStore{}
)

func TestCacheKeySeparatesFollow(t *testing.T) {
	log := `@@ -0,0 +1,1 @@
+one
`
	client := new(contract.MockVCSClient)
	client.On("HeadRef", mock.Anything, mock.Anything).Return("c0ffee", nil)
	client.On("PatchLog", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]byte(log), nil)

	doc := schema.NewDocument("/repo/k.go", "one\ntwo\n")
	mgr := &recordingCache{store: &recordingStore{}}

	cfg := testConfig()
	cfg.Mode = schema.LineCommitMode
	cfg.Strategy = schema.HunksStrategy

	_, err := StrategyFor(schema.LineCommitMode).ComputeBuckets(context.Background(), client, mgr, cfg, doc)
	require.NoError(t, err)

	followed := cfg.Clone()
	followed.Follow = true
	_, err = StrategyFor(schema.LineCommitMode).ComputeBuckets(context.Background(), client, mgr, followed, doc)
	require.NoError(t, err)

	require.Len(t, mgr.store.keys, 2)
	assert.NotEqual(t, mgr.store.keys[0], mgr.store.keys[1], "rename following changes the extraction result")
}

func TestCacheKeySeparatesContent(t *testing.T) {
	when := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	client := new(contract.MockVCSClient)
	client.On("HeadRef", mock.Anything, mock.Anything).Return("c0ffee", nil)
	client.On("Blame", mock.Anything, mock.Anything, mock.Anything).Return([]schema.BlameLine{
		{Ref: "a", Time: when, Committed: true},
	}, nil)

	mgr := &recordingCache{store: &recordingStore{}}
	cfg := testConfig()

	before := schema.NewDocument("/repo/c.go", "alpha\n")
	after := schema.NewDocument("/repo/c.go", "alpha edited\n")

	_, err := StrategyFor(schema.AgeMode).ComputeBuckets(context.Background(), client, mgr, cfg, before)
	require.NoError(t, err)
	_, err = StrategyFor(schema.AgeMode).ComputeBuckets(context.Background(), client, mgr, cfg, after)
	require.NoError(t, err)

	require.Len(t, mgr.store.keys, 2)
	assert.NotEqual(t, mgr.store.keys[0], mgr.store.keys[1], "an edit at the same tip and line count misses the cache")
}

func TestAbsoluteHunkStrategy(t *testing.T) {
	log := `commit aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa
diff --git a/h.go b/h.go
--- a/h.go
+++ b/h.go
@@ -0,0 +1,2 @@
+one
+two
`
	client := new(contract.MockVCSClient)
	client.On("PatchLog", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]byte(log), nil)
	client.On("CountLineCommits", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(0, nil).Maybe()

	doc := schema.NewDocument("/repo/h.go", "one\ntwo\nthree\n")
	cfg := testConfig()
	cfg.Mode = schema.LineCommitMode
	cfg.Strategy = schema.HunksStrategy

	assignment, err := StrategyFor(schema.LineCommitMode).ComputeBuckets(context.Background(), client, nil, cfg, doc)
	require.NoError(t, err)
	require.NotNil(t, assignment)
	assert.Equal(t, []int{1, 1, 0}, assignment.Signals)
	client.AssertNotCalled(t, "CountLineCommits", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
