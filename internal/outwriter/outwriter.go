// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/lineheat/lineheat/internal/contract"
	"github.com/lineheat/lineheat/internal/heatcolor"
	"github.com/lineheat/lineheat/schema"
)

// OutWriter provides a unified interface for all export operations.
// It encapsulates the various output formats and provides a clean API
// for the command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteLines exports per-line heatmap rows using the configured output format.
func (ow *OutWriter) WriteLines(records []schema.LineRecord, palette heatcolor.Palette, cfg *contract.Config, duration time.Duration) error {
	return WriteLineResults(records, palette, cfg, duration)
}
