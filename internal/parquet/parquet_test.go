package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lineheat/lineheat/schema"
)

func TestConvertLineRecords(t *testing.T) {
	when := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []schema.LineRecord{
		{Path: "/repo/a.go", Line: 1, Signal: 3, Bucket: 2, Mode: schema.AgeMode},
		{Path: "/repo/a.go", Line: 2, Signal: 1, Bucket: 0, Mode: schema.AgeMode},
	}

	rows := ConvertLineRecords(records, when)
	require.Len(t, rows, 2)
	assert.Equal(t, "/repo/a.go", rows[0].FilePath)
	assert.Equal(t, int32(1), rows[0].LineNumber)
	assert.Equal(t, int32(3), rows[0].Signal)
	assert.Equal(t, int32(2), rows[0].Bucket)
	assert.Equal(t, "age", rows[0].Mode)
	assert.Equal(t, when, rows[0].RenderTime)
}

func TestWriteHeatLinesParquetRoundTrip(t *testing.T) {
	when := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := ConvertLineRecords([]schema.LineRecord{
		{Path: "/repo/a.go", Line: 1, Signal: 3, Bucket: 2, Mode: schema.LineCommitMode},
	}, when)

	path := filepath.Join(t.TempDir(), "heat.parquet")
	require.NoError(t, WriteHeatLinesParquet(rows, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	got, err := parquet.Read[HeatLine](f, mustSize(t, f))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rows[0].FilePath, got[0].FilePath)
	assert.Equal(t, rows[0].Signal, got[0].Signal)
	assert.Equal(t, "line_commit", got[0].Mode)
}

func mustSize(t *testing.T, f *os.File) int64 {
	t.Helper()
	info, err := f.Stat()
	require.NoError(t, err)
	return info.Size()
}
