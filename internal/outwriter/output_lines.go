package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/lineheat/lineheat/internal/contract"
	"github.com/lineheat/lineheat/internal/heatcolor"
	"github.com/lineheat/lineheat/internal/parquet"
	"github.com/lineheat/lineheat/schema"
)

// WriteLineResults exports per-line heatmap rows, dispatching based on
// the output format configured.
func WriteLineResults(records []schema.LineRecord, palette heatcolor.Palette, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeLineJSONResults(records, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeLineCSVResults(records, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeLineParquetResults(records, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to a human-readable per-bucket summary table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBucketTable(records, palette, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeLineJSONResults handles opening the file and calling the JSON writer.
func writeLineJSONResults(records []schema.LineRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, records)
	}, "Wrote JSON")
}

// writeLineCSVResults handles opening the file and calling the CSV writer.
func writeLineCSVResults(records []schema.LineRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"file", "line", "signal", "bucket", "mode"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, r := range records {
				rec := []string{
					r.Path,
					strconv.Itoa(r.Line),
					strconv.Itoa(r.Signal),
					strconv.Itoa(r.Bucket),
					string(r.Mode),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeLineParquetResults writes rows to a Parquet file. Parquet is a
// binary format, so it always needs an output file.
func writeLineParquetResults(records []schema.LineRecord, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	rows := parquet.ConvertLineRecords(records, time.Now().UTC())
	return parquet.WriteHeatLinesParquet(rows, cfg.OutputFile)
}

// writeBucketTable generates and writes the human-readable per-bucket summary.
func writeBucketTable(records []schema.LineRecord, palette heatcolor.Palette, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	summaries := SummarizeBuckets(records, palette)

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Bucket", "Color", "Lines", "Min Signal", "Max Signal"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, s := range summaries {
		data = append(data, []string{
			strconv.Itoa(s.Bucket),
			s.Color,
			strconv.Itoa(s.Lines),
			strconv.Itoa(s.MinSignal),
			strconv.Itoa(s.MaxSignal),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Summarized %d lines across %d buckets\n", len(records), len(summaries)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Extraction completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// SummarizeBuckets groups exported rows by heat level, in bucket order.
// Empty buckets are omitted.
func SummarizeBuckets(records []schema.LineRecord, palette heatcolor.Palette) []schema.BucketSummary {
	byBucket := make(map[int]*schema.BucketSummary)
	for _, r := range records {
		s, ok := byBucket[r.Bucket]
		if !ok {
			s = &schema.BucketSummary{
				Bucket:    r.Bucket,
				Color:     palette.Clamp(r.Bucket).Hex(),
				MinSignal: r.Signal,
				MaxSignal: r.Signal,
			}
			byBucket[r.Bucket] = s
		}
		s.Lines++
		if r.Signal < s.MinSignal {
			s.MinSignal = r.Signal
		}
		if r.Signal > s.MaxSignal {
			s.MaxSignal = r.Signal
		}
	}

	var out []schema.BucketSummary
	for b := 0; b < len(palette); b++ {
		if s, ok := byBucket[b]; ok {
			out = append(out, *s)
		}
	}
	return out
}
