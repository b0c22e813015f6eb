// Package core has the line-history aggregation engine: VCS detection,
// history extraction, bucketing and the heatmap render state machine.
package core

import (
	"context"
	"errors"
	"strconv"

	"github.com/lineheat/lineheat/internal/contract"
	"github.com/lineheat/lineheat/internal/heatcolor"
	"github.com/lineheat/lineheat/schema"
)

// ErrUnsupportedVCS is surfaced to the user when a document is governed
// by no supported version control system. The document stays unpainted
// for the cycle and its enabled-set membership is unchanged.
var ErrUnsupportedVCS = errors.New("no supported version control system found")

// Painter is the host-side decoration surface. Every repaint clears all
// existing decorations for the document before applying new ones, so no
// stale paint from a previous mode or palette survives.
type Painter interface {
	Clear(doc *schema.Document)
	Paint(doc *schema.Document, palette heatcolor.Palette, paints []schema.LinePaint) error
}

// Renderer drives the render cycle for heatmapped documents. All
// failure modes are absorbed here: a render either paints, clears, or
// returns a user-facing error, and never panics into the host.
type Renderer struct {
	session *Session
	painter Painter
	mgr     contract.CacheManager
	clients map[schema.VCSKind]contract.VCSClient
}

// NewRenderer builds a renderer backed by the local git and p4 binaries.
// mgr may be nil to disable extraction caching.
func NewRenderer(session *Session, painter Painter, mgr contract.CacheManager) *Renderer {
	return &Renderer{
		session: session,
		painter: painter,
		mgr:     mgr,
		clients: map[schema.VCSKind]contract.VCSClient{
			schema.GitVCS:      contract.NewLocalGitClient(),
			schema.PerforceVCS: contract.NewLocalPerforceClient(),
		},
	}
}

// SetClient installs a client for its kind, replacing the local binary
// implementation. Used by tests.
func (r *Renderer) SetClient(client contract.VCSClient) {
	r.clients[client.Kind()] = client
}

// Render runs one full cycle for a document: consult the enabled set,
// re-detect the VCS, re-extract history for the active mode, re-bucket
// and repaint. Extraction failures and degenerate signals clear the
// paint and stop silently; only the unsupported-VCS case is reported.
func (r *Renderer) Render(ctx context.Context, cfg *contract.Config, doc *schema.Document) error {
	if !r.session.Enabled(doc.Path()) {
		r.painter.Clear(doc)
		return nil
	}

	kind := Detect(doc.Dir())
	client, ok := r.clients[kind]
	if !ok {
		// Leave current paint alone; an explicit disable is still
		// required to silence this warning on later triggers.
		return ErrUnsupportedVCS
	}

	assignment, err := StrategyFor(cfg.Mode).ComputeBuckets(ctx, client, r.mgr, cfg, doc)
	if err != nil || assignment == nil {
		r.painter.Clear(doc)
		return nil
	}

	paints := buildPaints(assignment)
	if len(paints) == 0 {
		r.painter.Clear(doc)
		return nil
	}

	r.painter.Clear(doc)
	return r.painter.Paint(doc, r.session.Palette(), paints)
}

// Records computes the exportable per-line rows for a document without
// touching the painter or the enabled set. Extraction failures are
// real errors here since the caller asked for data, not paint.
func (r *Renderer) Records(ctx context.Context, cfg *contract.Config, doc *schema.Document) ([]schema.LineRecord, error) {
	kind := Detect(doc.Dir())
	client, ok := r.clients[kind]
	if !ok {
		return nil, ErrUnsupportedVCS
	}

	assignment, err := StrategyFor(cfg.Mode).ComputeBuckets(ctx, client, r.mgr, cfg, doc)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, nil
	}

	records := make([]schema.LineRecord, 0, len(assignment.Buckets))
	for i, b := range assignment.Buckets {
		if b == NoBucket {
			continue
		}
		records = append(records, schema.LineRecord{
			Path:   doc.Path(),
			Line:   i + 1,
			Signal: assignment.Signals[i],
			Bucket: b,
			Mode:   cfg.Mode,
		})
	}
	return records, nil
}

// VCSType exposes detection for the show-VCS-type command.
func (r *Renderer) VCSType(doc *schema.Document) schema.VCSKind {
	return Detect(doc.Dir())
}

// buildPaints converts a bucket assignment into paint instructions,
// omitting lines without a signal.
func buildPaints(assignment *BucketAssignment) []schema.LinePaint {
	paints := make([]schema.LinePaint, 0, len(assignment.Buckets))
	for i, b := range assignment.Buckets {
		if b == NoBucket {
			continue
		}
		paints = append(paints, schema.LinePaint{
			Line:       i + 1,
			Bucket:     b,
			Annotation: strconv.Itoa(assignment.Signals[i]),
		})
	}
	return paints
}
