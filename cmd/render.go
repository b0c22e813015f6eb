package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/lineheat/lineheat/core"
	"github.com/lineheat/lineheat/internal/contract"
	"github.com/lineheat/lineheat/internal/outwriter"
	"github.com/lineheat/lineheat/schema"
	"github.com/spf13/cobra"
)

// renderCmd paints or exports the line heatmap for one file.
var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render the line-history heatmap for a file.",
	Long: `Extract per-line history signals for a file and render them as heat.

In the default text output the file is listed with a colored background
per line: the hottest color marks the most recently changed (age mode)
or most frequently changed (line_commit mode) lines. Structured output
formats export the raw per-line signal and bucket instead.

Examples:
  # Paint recency heat over a file
  lineheat render main.go

  # Show modification-frequency heat instead
  lineheat render main.go --mode line_commit

  # Use the aggregated hunk walk for large files
  lineheat render main.go --mode line_commit --scale hunks

  # Export per-line data for tracking
  lineheat render main.go --output csv --output-file heat.csv

  # Columnar export for analytics pipelines
  lineheat render main.go --output parquet --output-file heat.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runRender(rootCtx); err != nil {
			contract.LogFatal("Cannot render heatmap", err)
		}
	},
}

// runRender runs one render cycle for the target document. Text output
// goes through the painting state machine; structured formats bypass it
// and export records directly.
func runRender(ctx context.Context) error {
	doc, err := loadTargetDocument()
	if err != nil {
		return err
	}

	if cfg.Output == schema.TextOut {
		session.Enable(doc.Path())
		if err := renderer.Render(ctx, cfg, doc); err != nil {
			if errors.Is(err, core.ErrUnsupportedVCS) {
				painter.WarnUnsupported(doc, err)
				return nil
			}
			return err
		}
		return nil
	}

	start := time.Now()
	records, err := renderer.Records(ctx, cfg, doc)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteLines(records, session.Palette(), cfg, time.Since(start))
}
