package interaction

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gopmm/internal/aci"
	"github.com/alexiusacademia/gopmm/internal/geometry"
	"github.com/alexiusacademia/gopmm/internal/materials"
	"github.com/alexiusacademia/gopmm/internal/mesh"
	"github.com/alexiusacademia/gopmm/internal/rebar"
	"github.com/alexiusacademia/gopmm/internal/section"
)

var (
	testConcrete = materials.Concrete{Fc: 25, Law: materials.Rectangular}
	testMild     = &materials.MildSteel{Fy: 420, Es: 200000, EpsilonSU: 0.01}
	testStrand   = &materials.PrestressingSteel{Fpu: 1860, Fpy: 1674, Ep: 196500, EpsilonPU: 0.035, N: 7.36, K: 1.04, Q: 0.025}
	tiedPolicy   = aci.PhiPolicy{Mode: aci.PhiACI19, Transverse: aci.Ties}
)

// squareSection is a 300 x 300 mm section with its corner at the origin.
func squareSection(t *testing.T) *section.CrossSection {
	t.Helper()
	r, err := mesh.NewRegion(0, mesh.Solid, []geometry.Node{{X: 0, Y: 0}, {X: 300, Y: 0}, {X: 300, Y: 300}, {X: 0, Y: 300}})
	require.NoError(t, err)
	d, err := mesh.FromPreset(mesh.Coarse, r.BoundingBox())
	require.NoError(t, err)
	s, err := section.New([]mesh.Shape{r}, d)
	require.NoError(t, err)
	return s
}

// cornerBars places four 16 mm bars at 50 mm from each face.
func cornerBars(t *testing.T) []rebar.Bar {
	t.Helper()
	var bars []rebar.Bar
	for i, p := range []geometry.Node{{X: 50, Y: 50}, {X: 250, Y: 50}, {X: 250, Y: 250}, {X: 50, Y: 250}} {
		b, err := rebar.NewBar(string(rune('A'+i)), p, 16, 0, testMild)
		require.NoError(t, err)
		bars = append(bars, b)
	}
	return bars
}

func columnSolver(t *testing.T, opts ...Option) *Solver {
	t.Helper()
	cfg := materials.Config{Concrete: testConcrete, Mild: testMild}
	s, err := NewSolver(squareSection(t), cornerBars(t), nil, cfg, tiedPolicy, opts...)
	require.NoError(t, err)
	return s
}

// angleDiff returns a - b folded into (-90, 90].
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 180)
	switch {
	case d > 90:
		d -= 180
	case d <= -90:
		d += 180
	}
	return d
}
