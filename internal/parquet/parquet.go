// Package parquet exports per-line heatmap data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/lineheat/lineheat/schema"
)

// HeatLine represents one line of heatmap output in a Parquet export.
type HeatLine struct {
	// FilePath is the absolute path of the rendered document
	FilePath string `parquet:"file_path,snappy"`

	// LineNumber is the 1-based line number within the document
	LineNumber int32 `parquet:"line_number,snappy"`

	// Signal is the raw history signal: a recency rank in age mode, a
	// modification count in line-commit mode
	Signal int32 `parquet:"signal,snappy"`

	// Bucket is the heat level the line was assigned to
	Bucket int32 `parquet:"bucket,snappy"`

	// Mode indicates which heat mode produced the signal
	Mode string `parquet:"mode,snappy"`

	// RenderTime is when the document was rendered
	RenderTime time.Time `parquet:"render_time,snappy"`
}

// WriteHeatLinesParquet writes a slice of HeatLine structs to a Parquet file.
func WriteHeatLinesParquet(data []HeatLine, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema inference comes from the HeatLine struct tags
	writer := parquet.NewGenericWriter[HeatLine](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertLineRecords converts schema.LineRecord rows to HeatLine for
// Parquet export, stamping all rows with the same render time.
func ConvertLineRecords(records []schema.LineRecord, renderTime time.Time) []HeatLine {
	result := make([]HeatLine, len(records))
	for i, record := range records {
		result[i] = HeatLine{
			FilePath:   record.Path,
			LineNumber: int32(record.Line),
			Signal:     int32(record.Signal),
			Bucket:     int32(record.Bucket),
			Mode:       string(record.Mode),
			RenderTime: renderTime,
		}
	}
	return result
}
