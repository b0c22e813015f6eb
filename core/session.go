package core

import (
	"sync"

	"github.com/lineheat/lineheat/internal/contract"
	"github.com/lineheat/lineheat/internal/heatcolor"
	"github.com/lineheat/lineheat/schema"
)

// Session owns the per-session render state: the set of documents with
// the heatmap enabled and the current palette. It lives for the editing
// session and is never persisted. An RWMutex guards it because a
// long-lived host (the MCP server) may drive it from concurrent calls.
type Session struct {
	mu      sync.RWMutex
	enabled map[string]struct{}
	palette heatcolor.Palette
	mode    schema.Mode
}

// NewSession builds a session from a validated configuration snapshot.
func NewSession(cfg *contract.Config) (*Session, error) {
	s := &Session{enabled: make(map[string]struct{})}
	if err := s.Configure(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Configure rebuilds the palette and mode from a configuration
// snapshot. On error the previous palette and mode stay in effect, so
// an invalid reconfiguration never wipes visible state. Callers must
// Configure before triggering the repaint that uses the new palette.
func (s *Session) Configure(cfg *contract.Config) error {
	palette, err := heatcolor.BuildPalette(cfg.HeatLevels, cfg.HeatColor, cfg.CoolColor)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.palette = palette
	s.mode = cfg.Mode
	return nil
}

// Palette returns the current palette.
func (s *Session) Palette() heatcolor.Palette {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.palette
}

// Mode returns the active heat mode.
func (s *Session) Mode() schema.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode switches the active heat mode.
func (s *Session) SetMode(m schema.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
}

// Enable marks a document as heatmapped.
func (s *Session) Enable(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled[path] = struct{}{}
}

// Disable removes a document from the enabled set.
func (s *Session) Disable(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.enabled, path)
}

// Toggle flips a document's membership and reports the new state.
func (s *Session) Toggle(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.enabled[path]; ok {
		delete(s.enabled, path)
		return false
	}
	s.enabled[path] = struct{}{}
	return true
}

// Enabled reports whether a document is heatmapped.
func (s *Session) Enabled(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.enabled[path]
	return ok
}
