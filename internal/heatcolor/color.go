// Package heatcolor has the color value type and palette interpolation
// used to map heat levels onto line backgrounds.
package heatcolor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an immutable RGB value with an alpha fraction in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

var (
	tripleRe = regexp.MustCompile(`^(\d{1,3}),(\d{1,3}),(\d{1,3})$`)
	hexRe    = regexp.MustCompile(`^#([0-9a-fA-F]{6}|[0-9a-fA-F]{3})$`)
)

// New returns a fully opaque color.
func New(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// ParseColor parses a color specification in either decimal-triple form
// ("200,0,0") or hex form ("#c00" / "#cc0000", case-insensitive). All
// whitespace is stripped before matching. Input that matches neither
// form yields the supplied fallback; parsing never fails.
func ParseColor(spec string, fallback Color) Color {
	s := strings.Join(strings.Fields(spec), "")

	if m := tripleRe.FindStringSubmatch(s); m != nil {
		var ch [3]uint8
		for i, part := range m[1:] {
			v, err := strconv.Atoi(part)
			if err != nil || v > 255 {
				return fallback
			}
			ch[i] = uint8(v)
		}
		return New(ch[0], ch[1], ch[2])
	}

	if m := hexRe.FindStringSubmatch(s); m != nil {
		h := m[1]
		if len(h) == 3 {
			h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
		}
		c, err := colorful.Hex("#" + strings.ToLower(h))
		if err != nil {
			return fallback
		}
		r, g, b := c.RGB255()
		return New(r, g, b)
	}

	return fallback
}

// WithAlpha returns a copy of c with the alpha fraction replaced.
// Values outside [0, 1] are clamped.
func WithAlpha(c Color, a float64) Color {
	c.A = min(max(a, 0), 1)
	return c
}

// Mix linearly interpolates from a to b in RGB space at fraction t,
// where t=0 yields a and t=1 yields b. Alpha interpolates linearly.
func Mix(a, b Color, t float64) Color {
	t = min(max(t, 0), 1)
	blended := toColorful(a).BlendRgb(toColorful(b), t)
	r, g, bl := blended.RGB255()
	return Color{R: r, G: g, B: bl, A: a.A + (b.A-a.A)*t}
}

// Hex returns the color as a lowercase "#rrggbb" string. Alpha is not
// representable in this form and is dropped.
func (c Color) Hex() string {
	return toColorful(c).Hex()
}

// String implements fmt.Stringer for diagnostics.
func (c Color) String() string {
	return fmt.Sprintf("%s@%.2f", c.Hex(), c.A)
}

func toColorful(c Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
