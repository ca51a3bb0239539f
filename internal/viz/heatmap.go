// Package viz renders vorticity fields and cycle results in the
// terminal.
package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// intensity ramp, low to high |value|
var ramp = []rune(" .:-=+*#%@")

var (
	posStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")) // red, right-handed
	negStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))  // blue, left-handed
)

// Heatmap renders a 2D slice as a character map. Glyph density encodes
// |value| relative to the slice maximum; color encodes sign.
func Heatmap(plane [][]float64) string {
	maxAbs := 0.0
	for _, row := range plane {
		for _, v := range row {
			if a := math.Abs(v); a > maxAbs {
				maxAbs = a
			}
		}
	}

	var b strings.Builder
	for _, row := range plane {
		for _, v := range row {
			b.WriteString(cellGlyph(v, maxAbs))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func cellGlyph(v, maxAbs float64) string {
	if maxAbs == 0 {
		return " "
	}

	idx := int(math.Abs(v) / maxAbs * float64(len(ramp)-1))
	if idx >= len(ramp) {
		idx = len(ramp) - 1
	}
	g := string(ramp[idx])
	if idx == 0 {
		return g
	}

	if v >= 0 {
		return posStyle.Render(g)
	}
	return negStyle.Render(g)
}
