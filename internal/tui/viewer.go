// Package tui provides a Bubble Tea viewer for heatmapped documents.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lineheat/lineheat/core"
	"github.com/lineheat/lineheat/internal/contract"
	"github.com/lineheat/lineheat/internal/heatcolor"
	"github.com/lineheat/lineheat/schema"
)

var (
	// Title bar at the very top
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	gutterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	annotationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
)

// heatMsg carries a finished extraction into the update loop.
type heatMsg struct {
	mode       schema.Mode
	assignment *core.BucketAssignment
	err        error
}

// Model is the root Bubble Tea model for the heatmap viewer.
type Model struct {
	cfg      *contract.Config
	doc      *schema.Document
	client   contract.VCSClient
	mgr      contract.CacheManager
	vcs      schema.VCSKind
	mode     schema.Mode
	palette  heatcolor.Palette
	current  *core.BucketAssignment
	status   string
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

// New creates a viewer model. client may be nil when the document is
// not under a supported VCS; the viewer then shows the plain text.
func New(cfg *contract.Config, doc *schema.Document, client contract.VCSClient, mgr contract.CacheManager, palette heatcolor.Palette) Model {
	vcs := schema.NoVCS
	if client != nil {
		vcs = client.Kind()
	}
	return Model{
		cfg:     cfg,
		doc:     doc,
		client:  client,
		mgr:     mgr,
		vcs:     vcs,
		mode:    cfg.Mode,
		palette: palette,
	}
}

func (m Model) Init() tea.Cmd { return m.extractCmd(m.mode) }

// extractCmd runs extraction off the update loop and reports back.
func (m Model) extractCmd(mode schema.Mode) tea.Cmd {
	if m.client == nil {
		return nil
	}
	cfg := m.cfg.Clone()
	cfg.Mode = mode
	client, mgr, doc := m.client, m.mgr, m.doc
	return func() tea.Msg {
		assignment, err := core.StrategyFor(mode).ComputeBuckets(context.Background(), client, mgr, cfg, doc)
		return heatMsg{mode: mode, assignment: assignment, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "m":
			next := schema.AgeMode
			if m.mode == schema.AgeMode {
				next = schema.LineCommitMode
			}
			m.mode = next
			m.status = "extracting…"
			return m, m.extractCmd(next)
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case heatMsg:
		if msg.mode != m.mode {
			// A stale extraction from before the last mode switch.
			return m, nil
		}
		if msg.err != nil {
			m.current = nil
			m.status = fmt.Sprintf("extraction failed: %v", msg.err)
		} else {
			m.current = msg.assignment
			m.status = ""
			if msg.assignment == nil {
				m.status = "uniform history, nothing to highlight"
			}
		}
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.initViewport()
		return m, nil
	}
	return m, nil
}

// initViewport rebuilds the viewport for the current terminal size.
func (m *Model) initViewport() {
	// title(1) + statusBar(1) = 2 fixed rows
	vpHeight := m.height - 2
	if vpHeight < 1 {
		vpHeight = 1
	}
	vp := viewport.New(m.width, vpHeight)
	vp.SetContent(m.renderContent())
	m.viewport = vp
}

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	title := titleStyle.Width(m.width).Render(
		fmt.Sprintf("  lineheat  %s  [%s/%s]", m.doc.Base(), m.vcs, m.mode))

	hint := "  ↑/↓ scroll  m mode  q quit"
	right := m.status
	if right == "" {
		right = fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100)
	}
	pad := m.width - lipgloss.Width(hint) - lipgloss.Width(right) - 2
	if pad < 1 {
		pad = 1
	}
	statusBar := statusBarStyle.Width(m.width).Render(
		hint + strings.Repeat(" ", pad) + right,
	)

	return lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View(), statusBar)
}

// renderContent lays out the document with heat-colored backgrounds.
func (m *Model) renderContent() string {
	gutter := len(strconv.Itoa(m.doc.LineCount()))
	if gutter < 3 {
		gutter = 3
	}

	var sb strings.Builder
	for n := 1; n <= m.doc.LineCount(); n++ {
		sb.WriteString(gutterStyle.Render(fmt.Sprintf("%*d ", gutter, n)))

		text := strings.ReplaceAll(m.doc.Line(n), "\t", "    ")
		bucket, signal := m.lineHeat(n)
		if bucket >= 0 {
			c := m.palette.Clamp(bucket)
			if c.A > 0 {
				bg := heatcolor.New(uint8(float64(c.R)*c.A), uint8(float64(c.G)*c.A), uint8(float64(c.B)*c.A))
				text = lipgloss.NewStyle().Background(lipgloss.Color(bg.Hex())).Render(text)
			}
			text += annotationStyle.Render("  " + strconv.Itoa(signal))
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	if m.doc.LineCount() == 0 {
		sb.WriteString(dimStyle.Render("  (empty file)") + "\n")
	}
	return sb.String()
}

// lineHeat returns the bucket and signal for a 1-based line, or -1 when
// the line carries no heat.
func (m *Model) lineHeat(n int) (int, int) {
	if m.current == nil || n > len(m.current.Buckets) {
		return core.NoBucket, schema.NoSignal
	}
	return m.current.Buckets[n-1], m.current.Signals[n-1]
}

// Run starts the viewer for the given document.
func Run(cfg *contract.Config, doc *schema.Document, client contract.VCSClient, mgr contract.CacheManager, palette heatcolor.Palette) error {
	p := tea.NewProgram(New(cfg, doc, client, mgr, palette), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
