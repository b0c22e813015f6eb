package heatcolor

import "fmt"

// Palette is an ordered sequence of heat-level colors. Index 0 is the
// coolest level, the last index the hottest. A palette never changes
// length once built; configuration changes rebuild it wholesale.
type Palette []Color

// BuildPalette produces a palette of exactly levels colors interpolated
// uniformly from cool (index 0) toward hot (last index). levels == 1
// yields the hot color alone. levels < 1 is a configuration error and
// no palette is built.
func BuildPalette(levels int, hot, cool Color) (Palette, error) {
	if levels < 1 {
		return nil, fmt.Errorf("heat levels must be at least 1 (received %d)", levels)
	}
	if levels == 1 {
		return Palette{hot}, nil
	}

	p := make(Palette, levels)
	step := 1.0 / float64(levels-1)
	for i := range levels {
		p[i] = Mix(cool, hot, float64(i)*step)
	}
	return p, nil
}

// Clamp returns the palette entry for bucket, clamping out-of-range
// indices to the nearest end.
func (p Palette) Clamp(bucket int) Color {
	if bucket < 0 {
		return p[0]
	}
	if bucket >= len(p) {
		return p[len(p)-1]
	}
	return p[bucket]
}
