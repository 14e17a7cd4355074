package section

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gopmm/internal/geometry"
	"github.com/alexiusacademia/gopmm/internal/mesh"
)

func rectRegion(t *testing.T, index int, sign mesh.Sign, x0, y0, x1, y1 float64) *mesh.Region {
	t.Helper()
	r, err := mesh.NewRegion(index, sign, []geometry.Node{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}})
	require.NoError(t, err)
	return r
}

func build(t *testing.T, p mesh.Preset, regions ...mesh.Shape) *CrossSection {
	t.Helper()
	box := regions[0].BoundingBox()
	for _, r := range regions[1:] {
		box = box.Union(r.BoundingBox())
	}
	d, err := mesh.FromPreset(p, box)
	require.NoError(t, err)
	s, err := New(regions, d)
	require.NoError(t, err)
	return s
}

func TestRectangleProperties(t *testing.T) {
	s := build(t, mesh.Coarse, rectRegion(t, 0, mesh.Solid, 100, 200, 400, 700))

	assert.InEpsilon(t, 150000, s.Area, 1e-9)
	assert.InDelta(t, 250, s.Origin.X, 1e-9)
	assert.InDelta(t, 450, s.Origin.Y, 1e-9)

	sx, sy := s.FirstMoments()
	assert.InDelta(t, 0, sx, 1e-6*s.Area)
	assert.InDelta(t, 0, sy, 1e-6*s.Area)

	assert.InEpsilon(t, 300*math.Pow(500, 3)/12, s.Ix, 1e-2)
	assert.InEpsilon(t, 500*math.Pow(300, 3)/12, s.Iy, 1e-2)
	assert.InDelta(t, 0, s.Ixy, 1e-6*s.Ix)

	lo, hi := s.Extent(geometry.Vector{Y: 1})
	assert.InDelta(t, -250, lo, 1e-9)
	assert.InDelta(t, 250, hi, 1e-9)

	c := s.ToCentroidal(geometry.Node{X: 250, Y: 700})
	assert.InDelta(t, 0, c.X, 1e-9)
	assert.InDelta(t, 250, c.Y, 1e-9)
}

func TestDiskInertiaConverges(t *testing.T) {
	const r = 200.0
	exact := math.Pi * math.Pow(r, 4) / 4

	prev := math.Inf(1)
	for _, p := range mesh.Presets {
		c, err := mesh.NewCircularRegion(0, mesh.Solid, geometry.Node{X: 500, Y: 500}, 0, r, 0, 0)
		require.NoError(t, err)
		s := build(t, p, c)

		assert.InEpsilon(t, math.Pi*r*r, s.Area, 1e-9, "preset %s", p)
		assert.InDelta(t, 500, s.Origin.X, 1e-6)
		assert.InDelta(t, 500, s.Origin.Y, 1e-6)

		e := math.Abs(s.Ix-exact) / exact
		assert.Less(t, e, prev, "preset %s", p)
		prev = e
	}
	assert.Less(t, prev, 1e-2)
}

func TestHollowSection(t *testing.T) {
	s := build(t, mesh.Medium,
		rectRegion(t, 0, mesh.Solid, 0, 0, 400, 400),
		rectRegion(t, 1, mesh.Void, 100, 100, 300, 300))

	assert.InEpsilon(t, 400*400-200*200, s.Area, 1e-9)
	assert.InDelta(t, 200, s.Origin.X, 1e-9)
	assert.Len(t, s.Solids, 1)
	assert.Len(t, s.Voids, 1)
	assert.Len(t, s.Outline(), 8)
}

func TestOutlineRemovesSharedEdges(t *testing.T) {
	s := build(t, mesh.Coarse,
		rectRegion(t, 0, mesh.Solid, 0, 0, 100, 100),
		rectRegion(t, 1, mesh.Void, 0, 0, 50, 100))

	assert.InEpsilon(t, 5000, s.Area, 1e-9)
	var length float64
	for _, seg := range s.Outline() {
		length += seg.Length()
	}
	// right edge, the two half edges and the void's inner edge
	assert.InDelta(t, 300, length, 1e-9)
	assert.Len(t, s.Outline(), 4)
}

func TestVoidRemovingEverything(t *testing.T) {
	d := mesh.Discretization{Dx: 10, Dy: 10, DTheta: 10, RadialBands: 2}
	_, err := New([]mesh.Shape{
		rectRegion(t, 0, mesh.Solid, 0, 0, 100, 100),
		rectRegion(t, 1, mesh.Void, -10, -10, 110, 110),
	}, d)
	assert.ErrorIs(t, err, ErrEmptySection)

	_, err = New([]mesh.Shape{rectRegion(t, 0, mesh.Void, 0, 0, 100, 100)}, d)
	assert.Error(t, err)

	_, err = New([]mesh.Shape{rectRegion(t, 0, mesh.Solid, 0, 0, 100, 100)}, mesh.Discretization{})
	assert.Error(t, err)
}

func TestPropertiesReport(t *testing.T) {
	s := build(t, mesh.Coarse, rectRegion(t, 0, mesh.Solid, 0, 0, 300, 600))
	p := s.Properties(1800, 0)
	assert.InDelta(t, 300, p.Width, 1e-9)
	assert.InDelta(t, 600, p.Height, 1e-9)
	assert.InDelta(t, 0.01, p.RhoMild, 1e-9)
	assert.Zero(t, p.RhoPrestressed)
	assert.Equal(t, len(s.Elements), p.Elements)
}
