// Package termpaint paints heatmapped documents onto a terminal.
package termpaint

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/lineheat/lineheat/internal/contract"
	"github.com/lineheat/lineheat/internal/heatcolor"
	"github.com/lineheat/lineheat/schema"
)

// Color variables for console output.
var (
	annotationColor = color.New(color.Faint)                // annotationColor de-emphasizes the trailing signal value.
	gutterColor     = color.New(color.FgHiBlack)            // gutterColor keeps line numbers out of the way.
	warnColor       = color.New(color.FgYellow, color.Bold) // warnColor flags unsupported documents.
)

// rulerBlock is the single-cell heat mark shown in the ruler column.
const rulerBlock = "▊"

// TermPainter renders a full document listing with heat-colored line
// backgrounds. A terminal has no persistent decorations, so Clear is a
// frame boundary rather than an erase: each Paint emits a complete
// fresh listing.
type TermPainter struct {
	w   io.Writer
	cfg *contract.Config
}

// NewTermPainter paints to stdout.
func NewTermPainter(cfg *contract.Config) *TermPainter {
	return &TermPainter{w: os.Stdout, cfg: cfg}
}

// NewTermPainterTo paints to an arbitrary writer.
func NewTermPainterTo(w io.Writer, cfg *contract.Config) *TermPainter {
	return &TermPainter{w: w, cfg: cfg}
}

// Clear marks the start of a fresh frame for the document.
func (p *TermPainter) Clear(doc *schema.Document) {}

// Paint writes the document listing, one row per line: line number,
// optional ruler heat mark, the line text on a heat-colored background
// and the raw signal annotation.
func (p *TermPainter) Paint(doc *schema.Document, palette heatcolor.Palette, paints []schema.LinePaint) error {
	byLine := make(map[int]schema.LinePaint, len(paints))
	for _, lp := range paints {
		byLine[lp.Line] = lp
	}

	gutter := len(strconv.Itoa(doc.LineCount()))
	if gutter < 3 {
		gutter = 3
	}
	textWidth := MaxLineTextWidth(p.cfg, gutter)

	for n := 1; n <= doc.LineCount(); n++ {
		text := truncateLine(doc.Line(n), textWidth)
		number := fmt.Sprintf("%*d", gutter, n)
		if p.cfg.UseColors {
			number = gutterColor.Sprint(number)
		}

		lp, painted := byLine[n]
		if _, err := fmt.Fprintf(p.w, "%s %s %s%s\n",
			number,
			p.rulerCell(lp, painted, palette),
			p.lineCell(text, lp, painted, palette),
			p.annotationCell(lp, painted),
		); err != nil {
			return err
		}
	}
	return nil
}

// WarnUnsupported prints the unsupported-VCS notice for a document.
func (p *TermPainter) WarnUnsupported(doc *schema.Document, err error) {
	msg := fmt.Sprintf("%s: %v", doc.Path(), err)
	if p.cfg.UseColors {
		msg = warnColor.Sprint(msg)
	}
	_, _ = fmt.Fprintln(p.w, msg)
}

// rulerCell returns the one-cell overview mark for a line. Unpainted
// lines get a blank cell so the column stays aligned.
func (p *TermPainter) rulerCell(lp schema.LinePaint, painted bool, palette heatcolor.Palette) string {
	if !p.cfg.ShowInRuler || !painted {
		return " "
	}
	c := palette.Clamp(lp.Bucket)
	if !p.cfg.UseColors {
		// Without colors the bucket index itself is the overview,
		// capped to one cell.
		if lp.Bucket > 9 {
			return "+"
		}
		return strconv.Itoa(lp.Bucket)
	}
	r, g, b := composite(c)
	return color.RGB(int(r), int(g), int(b)).Sprint(rulerBlock)
}

// lineCell returns the line text, background-colored when painted.
func (p *TermPainter) lineCell(text string, lp schema.LinePaint, painted bool, palette heatcolor.Palette) string {
	if !painted || !p.cfg.UseColors {
		return text
	}
	c := palette.Clamp(lp.Bucket)
	if c.A == 0 {
		return text
	}
	r, g, b := composite(c)
	return color.BgRGB(int(r), int(g), int(b)).Sprint(text)
}

// annotationCell returns the trailing raw-signal annotation.
func (p *TermPainter) annotationCell(lp schema.LinePaint, painted bool) string {
	if !painted || lp.Annotation == "" {
		return ""
	}
	note := "  " + lp.Annotation
	if p.cfg.UseColors {
		return annotationColor.Sprint(note)
	}
	return note
}

// composite flattens a palette color's alpha against the terminal
// background. Terminals have no alpha channel, so a translucent heat
// color becomes a proportionally dimmer opaque one.
func composite(c heatcolor.Color) (uint8, uint8, uint8) {
	return uint8(float64(c.R) * c.A), uint8(float64(c.G) * c.A), uint8(float64(c.B) * c.A)
}

// truncateLine trims a line to the available width with an ellipsis
// suffix, expanding tabs first so the colored background stays flush.
func truncateLine(text string, maxWidth int) string {
	text = strings.ReplaceAll(text, "\t", "    ")
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// MaxLineTextWidth calculates the width available for line text based
// on terminal width and the painter's fixed columns.
func MaxLineTextWidth(cfg *contract.Config, gutter int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Gutter, ruler cell, separators and the trailing annotation.
	baseWidth := gutter + 2 + 12

	available := termWidth - baseWidth
	if available < 20 {
		// Minimum reasonable text width
		return 20
	}
	return available
}
