// Package schema has models, constants and shared types for all parts of lineheat.
package schema

import "time"

// NoSignal marks a line whose history could not be attributed.
// Lines carrying it are skipped during bucketing and never painted.
const NoSignal = -1

// BlameLine attributes one current line of a document to the change
// that last touched it.
type BlameLine struct {
	Ref       string    // Commit hash or changelist number
	Time      time.Time // Commit timestamp of Ref
	Committed bool      // False for uncommitted/new lines
}

// LinePaint is one paint instruction for the host painter: apply the
// background color to the line and append the annotation text.
type LinePaint struct {
	Line       int    // 1-based line number
	Bucket     int    // Palette index in [0, levels-1]
	Annotation string // Raw signal value shown after the line
}

// LineRecord is one exported row of heatmap data.
type LineRecord struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Signal int    `json:"signal"`
	Bucket int    `json:"bucket"`
	Mode   Mode   `json:"mode"`
}

// BucketSummary aggregates the lines assigned to one heat level.
type BucketSummary struct {
	Bucket    int
	Color     string // Hex color of the palette entry
	Lines     int
	MinSignal int
	MaxSignal int
}

// CacheStatus contains status information about the extraction cache.
type CacheStatus struct {
	Backend         string
	Connected       bool
	TotalEntries    int64
	TableSizeBytes  int64
	LastEntryTime   time.Time
	OldestEntryTime time.Time
}
