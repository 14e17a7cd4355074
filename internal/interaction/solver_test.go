package interaction

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gopmm/internal/aci"
	"github.com/alexiusacademia/gopmm/internal/geometry"
	"github.com/alexiusacademia/gopmm/internal/materials"
	"github.com/alexiusacademia/gopmm/internal/rebar"
)

func TestSolverSquareColumn(t *testing.T) {
	s := columnSolver(t)

	assert.Len(t, s.Planes(), TotalPlanes)
	assert.InDelta(t, 0.0021, s.Limits().Y, 1e-12)
	assert.Equal(t, 0.01, s.Limits().SU)

	ast := 4 * math.Pi * 16 * 16 / 4
	po := 0.85*25*(90000-ast) + 420*ast
	assert.InEpsilon(t, 0.80*po, s.Cap(), 1e-9)

	p, err := s.SolvePlane(0, s.Planes()[0])
	require.NoError(t, err)
	assert.InEpsilon(t, -po, p.P, 1e-9)
	assert.InDelta(t, 0, p.Mx, 1e-3*po)
	assert.InDelta(t, 0, p.My, 1e-3*po)
	assert.Equal(t, aci.PhiTied, p.Phi)
}

func TestSolverMovesBarsToCentroid(t *testing.T) {
	s := columnSolver(t)
	for _, b := range s.Bars() {
		assert.InDelta(t, 100, math.Abs(b.Position.X), 1e-9)
		assert.InDelta(t, 100, math.Abs(b.Position.Y), 1e-9)
	}
}

func TestDiagramCapsCompression(t *testing.T) {
	s := columnSolver(t)
	d, err := s.Diagram(0)
	require.NoError(t, err)

	assert.NotEmpty(t, d.RunID)
	assert.Equal(t, TotalPlanes, d.Solved+len(d.Dropped))

	var capped, clamped int
	for _, p := range d.Points {
		if !p.IsCapped {
			assert.GreaterOrEqual(t, p.P, -s.Cap())
			continue
		}
		if p.Clamped {
			clamped++
			assert.Equal(t, -s.Cap(), p.P)
		} else {
			capped++
			assert.Less(t, p.P, -s.Cap())
		}
	}
	assert.Positive(t, capped)
	assert.Equal(t, capped, clamped)
	assert.Len(t, d.Points, d.Solved+clamped)

	for _, p := range d.Envelope() {
		assert.GreaterOrEqual(t, p.P, -s.Cap())
	}
}

func TestDiagramSymmetry(t *testing.T) {
	s := columnSolver(t)
	a, err := s.Diagram(0)
	require.NoError(t, err)
	b, err := s.Diagram(180)
	require.NoError(t, err)

	bySeq := make(map[int]Point)
	for _, p := range b.Points {
		if !p.Clamped {
			bySeq[p.Sequence] = p
		}
	}
	scale := s.Cap() * 300
	matched := 0
	for _, p := range a.Points {
		if p.Clamped {
			continue
		}
		q, ok := bySeq[p.Sequence]
		if !ok {
			continue
		}
		matched++
		assert.InDelta(t, p.P, q.P, 1e-9*s.Cap(), "plane %d", p.Sequence)
		assert.InDelta(t, -p.Mx, q.Mx, 1e-9*scale, "plane %d", p.Sequence)
		assert.InDelta(t, -p.My, q.My, 1e-9*scale, "plane %d", p.Sequence)
	}
	assert.Greater(t, matched, TotalPlanes/2)
}

func TestDiagramMomentFollowsLoadingPlane(t *testing.T) {
	s := columnSolver(t)
	d, err := s.Diagram(30)
	require.NoError(t, err)
	assert.Less(t, len(d.Dropped), TotalPlanes/20)

	// Moment component normal to the loading plane. The stepped stress block
	// leaves at most a few fibres of it where a plane lands on a jump.
	scale := s.Cap() * 300
	sin, cos := math.Sincos(30 * math.Pi / 180)
	for _, p := range d.Points {
		assert.InDelta(t, 0, p.Mx*sin-p.My*cos, 0.02*scale, "plane %d", p.Sequence)
	}
}

func TestDiagramObliqueAnglesKeepPlanes(t *testing.T) {
	for _, lambda := range []float64{15, 30, 60} {
		for _, law := range []materials.ConcreteLaw{materials.Rectangular, materials.Parabolic} {
			cfg := materials.Config{Concrete: materials.Concrete{Fc: 25, Law: law}, Mild: testMild}
			s, err := NewSolver(squareSection(t), cornerBars(t), nil, cfg, tiedPolicy)
			require.NoError(t, err)
			d, err := s.Diagram(lambda)
			require.NoError(t, err)
			assert.Less(t, len(d.Dropped), TotalPlanes/20, "λ = %g, %s law", lambda, law)
			assert.Equal(t, TotalPlanes, d.Solved+len(d.Dropped))
		}
	}

	s, err := NewSolver(squareSection(t), nil, nil, materials.Config{Concrete: testConcrete}, tiedPolicy)
	require.NoError(t, err)
	d, err := s.Diagram(15)
	require.NoError(t, err)
	assert.Less(t, len(d.Dropped), TotalPlanes/20, "plain concrete")
}

func TestDiagramCapacity(t *testing.T) {
	s := columnSolver(t)
	d, err := s.Diagram(0)
	require.NoError(t, err)

	m, ok := d.Capacity(-0.3 * s.Cap())
	require.True(t, ok)
	assert.Positive(t, m)

	pure, ok := d.Capacity(0)
	require.True(t, ok)
	assert.Greater(t, m, pure)

	_, ok = d.Capacity(-2 * s.Cap())
	assert.False(t, ok)
}

// failingFinder fails the first n searches and delegates the rest.
type failingFinder struct {
	n     int64
	calls atomic.Int64
}

func (f *failingFinder) Find(fn func(float64) (float64, error), x0 float64) (float64, error) {
	if f.calls.Add(1) <= f.n {
		return 0, ErrNoConvergence
	}
	return DefaultFinder.Find(fn, x0)
}

func TestDiagramDropsPlanes(t *testing.T) {
	s := columnSolver(t, WithRootFinder(&failingFinder{n: 7}))
	d, err := s.Diagram(0)
	require.NoError(t, err)
	assert.Len(t, d.Dropped, 7)
	assert.Equal(t, TotalPlanes-7, d.Solved)
	for _, dp := range d.Dropped {
		assert.Contains(t, dp.Reason, "did not converge")
	}
}

type brokenFinder struct{ err error }

func (f brokenFinder) Find(func(float64) (float64, error), float64) (float64, error) {
	return 0, f.err
}

type panickingFinder struct{}

func (panickingFinder) Find(func(float64) (float64, error), float64) (float64, error) {
	panic("index out of range")
}

func TestDiagramFatalErrors(t *testing.T) {
	boom := errors.New("boom")
	s := columnSolver(t, WithRootFinder(brokenFinder{boom}), WithWorkers(2))
	_, err := s.Diagram(0)
	assert.ErrorIs(t, err, boom)

	s = columnSolver(t, WithRootFinder(panickingFinder{}))
	_, err = s.Diagram(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index out of range")

	_, err = columnSolver(t).Diagram(math.NaN())
	assert.Error(t, err)
}

func TestSolverCachesAreOptional(t *testing.T) {
	cached := columnSolver(t)
	plain := columnSolver(t, WithCacheSize(0))
	plane := cached.Planes()[120]

	a, err := cached.SolvePlane(30, plane)
	require.NoError(t, err)
	b, err := plain.SolvePlane(30, plane)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Positive(t, cached.results.Len())
	assert.Zero(t, plain.results.Len())
}

func TestSolverPlainConcrete(t *testing.T) {
	s, err := NewSolver(squareSection(t), nil, nil, materials.Config{Concrete: testConcrete}, tiedPolicy)
	require.NoError(t, err)
	assert.Equal(t, DefaultLimits, s.Limits())
	assert.InEpsilon(t, 0.80*0.85*25*90000, s.Cap(), 1e-9)

	d, err := s.Diagram(90)
	require.NoError(t, err)
	assert.Positive(t, d.Solved)
}

func TestSolverRejectsMissingSteel(t *testing.T) {
	_, err := NewSolver(squareSection(t), cornerBars(t), nil, materials.Config{Concrete: testConcrete}, tiedPolicy)
	var cfgErr *materials.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "mild steel", cfgErr.Material)

	_, err = NewSolver(squareSection(t), nil, nil, materials.Config{Concrete: testConcrete}, aci.PhiPolicy{Mode: "lrfd"})
	assert.ErrorAs(t, err, &cfgErr)
}

func strand(t *testing.T, x, y float64) rebar.Tendon {
	t.Helper()
	tendon, err := rebar.NewTendon("T", geometry.Node{X: x, Y: y}, 0, 140, 0.006, testStrand)
	require.NoError(t, err)
	return tendon
}

func TestPrestressEquilibrium(t *testing.T) {
	cfg := materials.Config{Concrete: testConcrete, Prestressed: testStrand}
	sec := squareSection(t)

	s, err := NewSolver(sec, nil, []rebar.Tendon{strand(t, 150, 150)}, cfg, tiedPolicy)
	require.NoError(t, err)
	concentric := s.Tendons()[0]

	force := testStrand.Stress(0.006) * 140
	want := force / (testConcrete.Modulus() * (sec.Area - 140))
	assert.InEpsilon(t, want, concentric.Decompression, 1e-6)

	s, err = NewSolver(squareSection(t), nil, []rebar.Tendon{strand(t, 150, 60)}, cfg, tiedPolicy)
	require.NoError(t, err)
	eccentric := s.Tendons()[0]
	assert.Greater(t, eccentric.Decompression, concentric.Decompression)

	l := s.Limits()
	assert.InDelta(t, 0.035-0.006-eccentric.Decompression, l.SU, 1e-12)
	assert.Equal(t, aci.EpsilonTYPrestressed, l.Y)

	d, err := s.Diagram(0)
	require.NoError(t, err)
	assert.Positive(t, d.Solved)
}

func TestReviewCappedPoints(t *testing.T) {
	points := []Point{{P: -500, Sequence: 0}, {P: -90, Sequence: 1}, {P: 40, Sequence: 2}}
	out := reviewCappedPoints(points, 100)
	require.Len(t, out, 4)

	assert.True(t, out[0].IsCapped)
	assert.False(t, out[0].Clamped)
	assert.Equal(t, -500.0, out[0].P)
	assert.False(t, out[1].IsCapped)
	assert.False(t, out[2].IsCapped)

	assert.True(t, out[3].IsCapped)
	assert.True(t, out[3].Clamped)
	assert.Equal(t, -100.0, out[3].P)
	assert.Equal(t, 0, out[3].Sequence)

	assert.Equal(t, points, reviewCappedPoints(points, 0))
}

func TestFamilyColor(t *testing.T) {
	seen := make(map[string]bool)
	for f := 0; f < Families; f++ {
		c := FamilyColor(f)
		assert.Regexp(t, `^#[0-9a-f]{6}$`, c)
		seen[c] = true
	}
	assert.Len(t, seen, Families)
	assert.Equal(t, "#000000", FamilyColor(Families))
}

func TestCheckDemands(t *testing.T) {
	s := columnSolver(t)
	demands := aci.Demands(aci.LoadEffects{
		Dead: aci.Effect{P: -300, Mx: 20},
		Live: aci.Effect{P: -150, Mx: 10},
	}, aci.LoadCombinations[:2])

	checks, err := s.CheckDemands(demands)
	require.NoError(t, err)
	require.Len(t, checks, 2)
	for _, c := range checks {
		assert.True(t, c.InRange)
		assert.True(t, c.OK)
		assert.Equal(t, 0.0, c.Lambda)
		assert.InDelta(t, c.Demand.Moment()*1e6/c.PhiMn, c.Ratio, 1e-12)
	}

	crushing := []aci.Demand{{Effect: aci.Effect{P: -5000, Mx: 10}}}
	checks, err = s.CheckDemands(crushing)
	require.NoError(t, err)
	assert.False(t, checks[0].InRange)
	assert.False(t, checks[0].OK)
}
