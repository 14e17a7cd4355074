// Package interaction computes P–M–M interaction diagrams by strain
// compatibility. For every limiting strain plane the neutral axis is rotated
// until the resultant moment points along the loading plane, then element
// stresses are integrated into an axial force and two moments.
package interaction

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexiusacademia/gopmm/internal/aci"
	"github.com/alexiusacademia/gopmm/internal/geometry"
	"github.com/alexiusacademia/gopmm/internal/materials"
	"github.com/alexiusacademia/gopmm/internal/rebar"
	"github.com/alexiusacademia/gopmm/internal/section"
)

// Solver evaluates interaction diagrams of one section. All inputs are read
// only once the solver is built, so diagrams for several loading angles may
// be computed concurrently.
type Solver struct {
	section *section.CrossSection
	config  materials.Config
	policy  aci.PhiPolicy

	concrete []fiber
	steel    []steelFiber
	bars     []rebar.Bar
	tendons  []rebar.Tendon

	limits Limits
	planes []StrainPlane
	cap    float64

	finder  RootFinder
	workers int
	logger  *zap.Logger

	trig    *memo[float64, [2]float64]
	results *memo[resultKey, state]
}

type fiber struct {
	x, y, area float64
}

type steelFiber struct {
	fiber
	law    materials.SteelLaw
	offset float64 // prestrain plus decompression, zero for mild bars
}

type resultKey struct {
	theta    float64
	sequence int
}

// Option configures a Solver.
type Option func(*Solver)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Solver) { s.logger = l }
}

// WithWorkers bounds the number of planes evaluated at once.
func WithWorkers(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithRootFinder replaces the neutral axis search.
func WithRootFinder(f RootFinder) Option {
	return func(s *Solver) { s.finder = f }
}

// WithCacheSize bounds both LRU caches; zero disables them.
func WithCacheSize(n int) Option {
	return func(s *Solver) {
		s.trig = newMemo[float64, [2]float64](n)
		s.results = newMemo[resultKey, state](n)
	}
}

// NewSolver validates the materials, moves the reinforcement to centroidal
// coordinates and, when tendons are present, finds the prestress
// equilibrium. Bars and tendons are given in input coordinates.
func NewSolver(sec *section.CrossSection, bars []rebar.Bar, tendons []rebar.Tendon, cfg materials.Config, policy aci.PhiPolicy, opts ...Option) (*Solver, error) {
	if err := cfg.Validate(len(bars) > 0, len(tendons) > 0); err != nil {
		return nil, err
	}
	if err := policy.Validate(); err != nil {
		return nil, &materials.ConfigError{Material: "strength reduction", Msg: err.Error()}
	}
	s := &Solver{
		section: sec,
		config:  cfg,
		policy:  policy,
		finder:  DefaultFinder,
		workers: runtime.NumCPU(),
		logger:  zap.NewNop(),
	}
	WithCacheSize(1 << 16)(s)
	for _, o := range opts {
		o(s)
	}

	for _, e := range sec.Elements {
		c := e.Centroid()
		s.concrete = append(s.concrete, fiber{x: c.X, y: c.Y, area: e.Area()})
	}
	for _, b := range bars {
		b.Position = sec.ToCentroidal(b.Position)
		s.bars = append(s.bars, b)
	}
	for _, t := range tendons {
		t.Position = sec.ToCentroidal(t.Position)
		s.tendons = append(s.tendons, t)
	}
	if len(s.tendons) > 0 {
		if err := s.balancePrestress(); err != nil {
			return nil, err
		}
	}
	for _, b := range s.bars {
		s.steel = append(s.steel, steelFiber{fiber: fiber{b.Position.X, b.Position.Y, b.Area}, law: b.Law})
	}
	for _, t := range s.tendons {
		s.steel = append(s.steel, steelFiber{fiber: fiber{t.Position.X, t.Position.Y, t.Area}, law: t.Law, offset: t.Prestrain + t.Decompression})
	}

	var err error
	if s.limits, err = s.strainLimits(); err != nil {
		return nil, err
	}
	if s.planes, err = GeneratePlanes(s.limits); err != nil {
		return nil, err
	}
	s.cap = aci.MaxNominalCompression(s.capInput())
	return s, nil
}

// strainLimits takes yield and ultimate strains from the governing steel:
// mild bars first, then tendons, net of their locked-in strain.
func (s *Solver) strainLimits() (Limits, error) {
	l := DefaultLimits
	switch {
	case len(s.bars) > 0:
		l.Y = s.config.Mild.YieldStrain()
		l.SU = s.config.Mild.UltimateStrain()
	case len(s.tendons) > 0:
		l.SU = math.Inf(1)
		for _, t := range s.tendons {
			l.SU = math.Min(l.SU, t.Law.UltimateStrain()-t.Prestrain-t.Decompression)
		}
		if l.SU <= l.Y {
			return l, &materials.ConfigError{
				Material: "prestressing steel",
				Msg:      fmt.Sprintf("ultimate strain leaves only %.5f of usable strain after prestress", l.SU),
			}
		}
	}
	return l, nil
}

func (s *Solver) capInput() aci.CapInput {
	in := aci.CapInput{
		Fc:         s.config.Concrete.Fc,
		Ag:         s.section.Area,
		Ast:        rebar.TotalArea(s.bars),
		Apd:        rebar.TotalTendonArea(s.tendons),
		Transverse: s.policy.Transverse,
	}
	if s.config.Mild != nil {
		in.Fy = s.config.Mild.Fy
	}
	if p := s.config.Prestressed; p != nil && in.Apd > 0 {
		in.Ep = p.Ep
		for _, t := range s.tendons {
			in.Fse += p.Stress(t.Prestrain) * t.Area / in.Apd
		}
	}
	return in
}

// Planes returns the limiting strain planes.
func (s *Solver) Planes() []StrainPlane {
	return append([]StrainPlane(nil), s.planes...)
}

// Limits returns the strain limits of the plane families.
func (s *Solver) Limits() Limits { return s.limits }

// Cap returns the maximum nominal compression in N.
func (s *Solver) Cap() float64 { return s.cap }

// Tendons returns the tendons in centroidal coordinates with their
// decompression strain.
func (s *Solver) Tendons() []rebar.Tendon {
	return append([]rebar.Tendon(nil), s.tendons...)
}

// Bars returns the bars in centroidal coordinates.
func (s *Solver) Bars() []rebar.Bar {
	return append([]rebar.Bar(nil), s.bars...)
}

// Section returns the meshed section.
func (s *Solver) Section() *section.CrossSection { return s.section }

type outcome struct {
	point   Point
	solved  bool
	dropped *DroppedPlane
}

// Diagram computes the interaction diagram for the loading-plane angle
// lambda in degrees. Planes whose neutral axis search fails are listed in
// Dropped; any other error aborts the run once every worker has finished.
func (s *Solver) Diagram(lambda float64) (*Diagram, error) {
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		return nil, fmt.Errorf("loading angle must be finite, got %v", lambda)
	}
	results := make([]outcome, len(s.planes))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, plane := range s.planes {
		i, plane := i, plane
		g.Go(func() error {
			return s.run(lambda, plane, &results[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading angle %.2f°: %w", lambda, err)
	}

	d := &Diagram{RunID: uuid.NewString(), Lambda: lambda, Cap: s.cap}
	for _, r := range results {
		switch {
		case r.solved:
			d.Points = append(d.Points, r.point)
			d.Solved++
		case r.dropped != nil:
			d.Dropped = append(d.Dropped, *r.dropped)
			s.logger.Debug("strain plane dropped",
				zap.Float64("lambda", lambda),
				zap.Int("sequence", r.dropped.Plane.Sequence),
				zap.Int("family", r.dropped.Plane.Family),
				zap.String("reason", r.dropped.Reason))
		}
	}
	d.Points = reviewCappedPoints(d.Points, s.cap)

	s.logger.Info("interaction diagram computed",
		zap.String("run", d.RunID),
		zap.Float64("lambda", lambda),
		zap.Int("points", len(d.Points)),
		zap.Int("dropped", len(d.Dropped)))
	return d, nil
}

func (s *Solver) run(lambda float64, plane StrainPlane, out *outcome) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("strain plane %d: %v", plane.Sequence, r)
		}
	}()
	p, err := s.SolvePlane(lambda, plane)
	switch {
	case err == nil:
		*out = outcome{point: p, solved: true}
	case errors.Is(err, ErrNoConvergence):
		*out = outcome{dropped: &DroppedPlane{Plane: plane, Reason: err.Error()}}
	default:
		return err
	}
	return nil
}

// SolvePlane finds the neutral axis rotation of one plane for the loading
// angle lambda and returns its diagram point.
func (s *Solver) SolvePlane(lambda float64, plane StrainPlane) (Point, error) {
	theta, err := s.finder.Find(s.misalignment(lambda, plane), lambda)
	if err != nil {
		return Point{}, err
	}
	st, err := s.evaluate(theta, plane)
	if err != nil {
		return Point{}, err
	}
	return Point{
		P:        st.N,
		Mx:       st.Mx,
		My:       st.My,
		Phi:      st.Phi,
		Color:    FamilyColor(plane.Family),
		Family:   plane.Family,
		Sequence: plane.Sequence,
		Theta:    theta,
		EpsilonT: st.EpsT,
	}, nil
}

// maskTol hides angle differences that round-off cannot resolve.
const maskTol = 1e-9

// misalignment returns the angle in (-90, 90] between the resultant moment
// vector and the loading plane, both taken modulo 180°.
func (s *Solver) misalignment(lambda float64, plane StrainPlane) func(float64) (float64, error) {
	target := mod180(lambda)
	if 180-target <= maskTol {
		target = 0
	}
	return func(theta float64) (float64, error) {
		st, err := s.evaluate(theta, plane)
		if err != nil {
			return 0, err
		}
		if st.centered() {
			return 0, nil
		}
		alpha := mod180(math.Atan2(st.My, st.Mx) * 180 / math.Pi)
		if alpha <= maskTol || 180-alpha <= maskTol {
			alpha = 0
		}
		diff := alpha - target
		switch {
		case diff > 90:
			diff -= 180
		case diff <= -90:
			diff += 180
		}
		if math.Abs(diff) <= maskTol {
			return 0, nil
		}
		return diff, nil
	}
}

func mod180(a float64) float64 {
	r := math.Mod(a, 180)
	if r < 0 {
		r += 180
	}
	if r >= 180 {
		r = 0
	}
	return r
}

// sincos returns the sine and cosine of an angle in degrees.
func (s *Solver) sincos(theta float64) (float64, float64) {
	if v, ok := s.trig.Get(theta); ok {
		return v[0], v[1]
	}
	sn, cs := math.Sincos(theta * math.Pi / 180)
	s.trig.Put(theta, [2]float64{sn, cs})
	return sn, cs
}

// axis returns the unit normal of the neutral axis rotated by theta; the
// distance of a point across the axis is d = -x·sinθ + y·cosθ.
func (s *Solver) axis(theta float64) geometry.Vector {
	sn, cs := s.sincos(theta)
	return geometry.Vector{X: -sn, Y: cs}
}
