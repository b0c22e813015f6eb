package schema

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
)

// Document is the text-buffer abstraction the engine works against.
// The host provides line count and line content; the engine never
// mutates a document.
type Document struct {
	path  string
	lines []string
}

// LoadDocument reads a file from disk into a Document. The path is
// resolved to an absolute path so it can double as the document identity.
func LoadDocument(path string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot read document %q: %w", path, err)
	}
	return NewDocument(abs, string(data)), nil
}

// NewDocument builds a Document from in-memory content. Used directly
// by tests and by hosts that already hold the buffer.
func NewDocument(path, content string) *Document {
	lines := strings.Split(content, "\n")
	// A trailing newline yields a phantom empty final line; drop it so
	// LineCount matches what editors display.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return &Document{path: path, lines: lines}
}

// Path returns the document identity.
func (d *Document) Path() string { return d.path }

// Dir returns the containing directory, the working directory for all
// VCS invocations against this document.
func (d *Document) Dir() string { return filepath.Dir(d.path) }

// Base returns the file name relative to Dir.
func (d *Document) Base() string { return filepath.Base(d.path) }

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int { return len(d.lines) }

// Checksum returns a stable FNV-1a hash of the document content. It
// keys cached extraction results to the exact buffer state, so an
// uncommitted edit that keeps the line count still misses the cache.
func (d *Document) Checksum() uint64 {
	h := fnv.New64a()
	for _, l := range d.lines {
		_, _ = h.Write([]byte(l))
		_, _ = h.Write([]byte{'\n'})
	}
	return h.Sum64()
}

// Line returns the 1-based line's text, or "" when out of range.
func (d *Document) Line(n int) string {
	if n < 1 || n > len(d.lines) {
		return ""
	}
	return d.lines[n-1]
}
