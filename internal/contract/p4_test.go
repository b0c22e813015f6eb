package contract

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChangeTimes(t *testing.T) {
	out := []byte(`Change 103 on 2024/03/05 by user@ws 'later change'
Change 101 on 2024/01/02 by user@ws 'first change'
not a change line
`)
	times := parseChangeTimes(out)
	require.Len(t, times, 2)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), times["103"])
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), times["101"])
}

func TestParseAnnotate(t *testing.T) {
	times := map[string]time.Time{
		"101": time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		"103": time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}
	out := []byte("101: package main\n103: func main() {}\n999: orphan changelist\n")

	lines := parseAnnotate(out, times)
	require.Len(t, lines, 3)

	assert.Equal(t, "101", lines[0].Ref)
	assert.True(t, lines[0].Committed)
	assert.Equal(t, times["101"], lines[0].Time)

	assert.Equal(t, "103", lines[1].Ref)
	assert.True(t, lines[1].Committed)

	// A changelist with no submit record yields an unattributable line.
	assert.False(t, lines[2].Committed)
}

func TestParseAnnotateMalformed(t *testing.T) {
	lines := parseAnnotate([]byte("garbage without prefix\n"), nil)
	require.Len(t, lines, 1)
	assert.False(t, lines[0].Committed)
	assert.Empty(t, lines[0].Ref)
}

func TestPerforceUnsupportedOperations(t *testing.T) {
	client := NewLocalPerforceClient()
	ctx := context.Background()

	_, err := client.CountLineCommits(ctx, ".", "a.txt", 1)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)

	_, err = client.PatchLog(ctx, ".", "a.txt", false)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
}
