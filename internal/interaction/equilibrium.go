package interaction

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	equilibriumIterations = 50
	equilibriumTol        = 1e-9
	tangentStep           = 1e-7
)

// EquilibriumError reports that the section could not be brought into
// equilibrium under prestress alone.
type EquilibriumError struct {
	Iterations int
	Residual   float64 // N
	Err        error
}

func (e *EquilibriumError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("prestress equilibrium: %v after %d iterations", e.Err, e.Iterations)
	}
	return fmt.Sprintf("prestress equilibrium not reached after %d iterations (residual %.3g N)", e.Iterations, e.Residual)
}

func (e *EquilibriumError) Unwrap() error { return e.Err }

// balancePrestress finds the strain field ε = e0 + a·x + b·y under which the
// elastic concrete, the mild bars and the tendon forces are in equilibrium
// with no external load, and stores in every tendon the strain that brings
// its surrounding concrete back to zero.
func (s *Solver) balancePrestress() error {
	ec := s.config.Concrete.Modulus()

	var scale float64
	for _, t := range s.tendons {
		scale += math.Abs(t.Law.Stress(t.Prestrain) * t.Area)
	}
	if scale == 0 {
		return nil
	}
	box := s.section.BoundingBox()
	size := math.Max(box.Width(), box.Height())

	u := mat.NewVecDense(3, nil)
	var residual float64
	for it := 0; it < equilibriumIterations; it++ {
		r := mat.NewVecDense(3, nil)
		j := mat.NewSymDense(3, nil)
		strain := func(x, y float64) float64 {
			return u.AtVec(0) + u.AtVec(1)*x + u.AtVec(2)*y
		}
		accumulate := func(force, stiffness, x, y float64) {
			g := [3]float64{1, x, y}
			for m := 0; m < 3; m++ {
				r.SetVec(m, r.AtVec(m)+force*g[m])
				for n := m; n < 3; n++ {
					j.SetSym(m, n, j.At(m, n)+stiffness*g[m]*g[n])
				}
			}
		}

		for _, f := range s.concrete {
			eps := strain(f.x, f.y)
			accumulate(ec*eps*f.area, ec*f.area, f.x, f.y)
		}
		for _, b := range s.bars {
			x, y := b.Position.X, b.Position.Y
			eps := strain(x, y)
			tangent := (b.Law.Stress(eps+tangentStep) - b.Law.Stress(eps-tangentStep)) / (2 * tangentStep)
			accumulate((b.Law.Stress(eps)-ec*eps)*b.Area, (tangent-ec)*b.Area, x, y)
		}
		for _, t := range s.tendons {
			x, y := t.Position.X, t.Position.Y
			eps := strain(x, y)
			accumulate((t.Law.Stress(t.Prestrain)-ec*eps)*t.Area, -ec*t.Area, x, y)
		}

		residual = math.Max(math.Abs(r.AtVec(0)), math.Max(math.Abs(r.AtVec(1)), math.Abs(r.AtVec(2)))/size)
		if residual <= equilibriumTol*scale {
			for i := range s.tendons {
				p := s.tendons[i].Position
				s.tendons[i].Decompression = -strain(p.X, p.Y)
			}
			s.logger.Debug("prestress equilibrium reached")
			return nil
		}

		var du mat.VecDense
		r.ScaleVec(-1, r)
		if err := du.SolveVec(j, r); err != nil {
			return &EquilibriumError{Iterations: it + 1, Residual: residual, Err: err}
		}
		u.AddVec(u, &du)
	}
	return &EquilibriumError{Iterations: equilibriumIterations, Residual: residual}
}
