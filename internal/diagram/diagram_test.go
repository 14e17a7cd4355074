package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gopmm/internal/geometry"
	"github.com/alexiusacademia/gopmm/internal/interaction"
	"github.com/alexiusacademia/gopmm/internal/mesh"
	"github.com/alexiusacademia/gopmm/internal/rebar"
	"github.com/alexiusacademia/gopmm/internal/section"
)

// sampleDiagram is a coarse diamond-shaped envelope at λ = 0.
func sampleDiagram() *interaction.Diagram {
	return &interaction.Diagram{
		RunID:  "test",
		Lambda: 0,
		Cap:    1500e3,
		Points: []interaction.Point{
			{P: -2000e3, Phi: 0.65, Family: 0, IsCapped: true},
			{P: -1000e3, Mx: 150e6, Phi: 0.65, Family: 1},
			{P: -400e3, Mx: 200e6, Phi: 0.75, Family: 2},
			{P: 0, Mx: 120e6, Phi: 0.9, Family: 3},
			{P: 300e3, Phi: 0.9, Family: 5},
			{P: -1500e3, Phi: 0.65, Family: 0, IsCapped: true, Clamped: true},
		},
		Solved: 5,
	}
}

func TestExportInteraction(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out", "pm.png")
	require.NoError(t, ExportInteraction(sampleDiagram(), file))

	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExportAppendsPNG(t *testing.T) {
	file := filepath.Join(t.TempDir(), "pm")
	require.NoError(t, ExportMomentPlane([]*interaction.Diagram{sampleDiagram()}, file))
	_, err := os.Stat(file + ".png")
	assert.NoError(t, err)
}

func TestExportRejectsEmptyDiagram(t *testing.T) {
	assert.Error(t, ExportInteraction(&interaction.Diagram{}, filepath.Join(t.TempDir(), "x.png")))
	assert.Error(t, ExportMomentPlane(nil, filepath.Join(t.TempDir(), "x.png")))
}

func TestExportMesh(t *testing.T) {
	r, err := mesh.NewRegion(0, mesh.Solid, []geometry.Node{{X: 0, Y: 0}, {X: 300, Y: 0}, {X: 300, Y: 500}, {X: 0, Y: 500}})
	require.NoError(t, err)
	sec, err := section.New([]mesh.Shape{r}, mesh.Discretization{Dx: 25, Dy: 25, DTheta: 10, RadialBands: 2})
	require.NoError(t, err)
	bar := rebar.Bar{ID: "1", Position: geometry.Node{X: -100, Y: -200}, Area: 314}

	file := filepath.Join(t.TempDir(), "mesh.svg")
	require.NoError(t, ExportMesh(sec, []rebar.Bar{bar}, nil, file))
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestASCIIInteraction(t *testing.T) {
	out, err := ASCIIInteraction(sampleDiagram(), 40, 10)
	require.NoError(t, err)
	assert.Contains(t, out, "λ = 0.0°")
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), 10)

	_, err = ASCIIInteraction(&interaction.Diagram{}, 40, 10)
	assert.Error(t, err)
}

func TestDrawSummaryBox(t *testing.T) {
	box := DrawSummaryBox("Summary", []string{"φPn,max = 1500 kN", "planes = 700"})
	lines := strings.Split(strings.TrimRight(box, "\n"), "\n")
	require.Len(t, lines, 6)
	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)))
	}
}
