package viz

import (
	"strings"
	"testing"
)

func TestHeatmapShape(t *testing.T) {
	plane := [][]float64{
		{0, 1, -1},
		{0.5, 0, -0.5},
		{0, 0, 0},
	}

	out := Heatmap(plane)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
}

func TestHeatmapZeroPlane(t *testing.T) {
	plane := [][]float64{{0, 0}, {0, 0}}
	out := Heatmap(plane)
	if strings.TrimSpace(out) != "" {
		t.Errorf("zero plane should render blank, got %q", out)
	}
}

func TestHeatmapExtremesUseDensestGlyph(t *testing.T) {
	plane := [][]float64{{0, 10}}
	out := Heatmap(plane)
	if !strings.Contains(out, "@") {
		t.Error("maximum cell should use the densest glyph")
	}
}
