package styles

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// parse returns the color for hex, or black when hex is malformed.
func parse(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

// Blend mixes a and b in sRGB, the way CSS gradients interpolate.
// t=0 is a, t=1 is b.
func Blend(a, b string, t float64) string {
	t = min(max(t, 0), 1)
	return parse(a).BlendRgb(parse(b), t).Clamped().Hex()
}

// Over composites fg at the given alpha onto an opaque bg.
func Over(fg string, alpha float64, bg string) string {
	return Blend(bg, fg, alpha)
}

// Fade emulates opacity on a terminal cell by pulling color toward the
// background it is drawn on.
func Fade(color string, opacity float64, bg string) string {
	if opacity >= 1 {
		return color
	}
	return Over(color, opacity, bg)
}

// Stops samples a multi-stop horizontal gradient at t in [0,1], with the
// stops spaced evenly.
func Stops(stops []string, t float64) string {
	switch len(stops) {
	case 0:
		return ""
	case 1:
		return stops[0]
	}
	t = min(max(t, 0), 1)
	seg := t * float64(len(stops)-1)
	i := int(math.Floor(seg))
	if i >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	return Blend(stops[i], stops[i+1], seg-float64(i))
}

// Lip converts a hex string to a lipgloss color.
func Lip(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}
