package interaction

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gopmm/internal/aci"
)

// state is the stress resultant of one plane at one rotation.
type state struct {
	N, Mx, My float64 // N, N·mm
	Phi       float64
	EpsT      float64 // net tensile strain of the extreme tension steel
	// Abs is Σ|F|·R, the scale below which the moment counts as zero.
	Abs float64
}

// centered reports a resultant with no usable moment direction, as under
// uniform strain on a symmetric section.
func (st state) centered() bool {
	return math.Hypot(st.Mx, st.My) <= 1e-9*st.Abs
}

// strainField anchors the plane on the section rotated by theta. The
// compressed end uses the concrete extreme fibre, the tensioned end the
// extreme steel when there is any.
func (s *Solver) strainField(theta float64, plane StrainPlane) Equation {
	n := s.axis(theta)
	lo, hi := s.section.Extent(n)
	dTop, dBottom := hi, lo
	if len(s.steel) > 0 {
		sLo, sHi := math.Inf(1), math.Inf(-1)
		for _, f := range s.steel {
			d := f.x*n.X + f.y*n.Y
			sLo = math.Min(sLo, d)
			sHi = math.Max(sHi, d)
		}
		if plane.Top > 0 {
			dTop = sHi
		}
		if plane.Bottom > 0 {
			dBottom = sLo
		}
	}
	return Through(plane.Top, dTop, plane.Bottom, dBottom)
}

// evaluate integrates the stresses of the plane rotated by theta degrees.
func (s *Solver) evaluate(theta float64, plane StrainPlane) (state, error) {
	key := resultKey{theta: theta, sequence: plane.Sequence}
	if st, ok := s.results.Get(key); ok {
		return st, nil
	}

	n := s.axis(theta)
	eq := s.strainField(theta, plane)
	concrete := s.config.Concrete
	lo, hi := s.section.Extent(n)
	radius := math.Max(math.Abs(lo), math.Abs(hi))

	var st state
	add := func(force, x, y float64) {
		st.N += force
		st.Mx -= force * y
		st.My += force * x
		st.Abs += math.Abs(force)
	}
	for _, f := range s.concrete {
		sig := concrete.Stress(eq.Evaluate(f.x*n.X + f.y*n.Y))
		if sig != 0 {
			add(sig*f.area, f.x, f.y)
		}
	}

	st.EpsT = math.Inf(-1)
	epsTY := aci.EpsilonTYPrestressed
	for _, f := range s.steel {
		eps := eq.Evaluate(f.x*n.X + f.y*n.Y)
		sig := f.law.Stress(eps+f.offset) - concrete.Stress(eps)
		add(sig*f.area, f.x, f.y)
		if eps > st.EpsT {
			st.EpsT = eps
			epsTY = f.law.YieldStrain()
		}
	}
	if len(s.steel) == 0 {
		st.EpsT = math.Max(eq.Evaluate(lo), eq.Evaluate(hi))
	}
	st.Abs *= radius
	st.Phi = s.policy.Phi(st.EpsT, epsTY)

	if math.IsNaN(st.N) || math.IsNaN(st.Mx) || math.IsNaN(st.My) ||
		math.IsInf(st.N, 0) || math.IsInf(st.Mx, 0) || math.IsInf(st.My, 0) {
		return state{}, fmt.Errorf("strain plane %d: non-finite stress resultant at θ=%.4f°", plane.Sequence, theta)
	}
	s.results.Put(key, st)
	return st, nil
}
