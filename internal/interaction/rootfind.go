package interaction

import (
	"errors"
	"math"
)

// ErrNoConvergence is returned when the neutral axis rotation matching the
// loading angle cannot be found. The plane is dropped.
var ErrNoConvergence = errors.New("neutral axis search did not converge")

// RootFinder solves f(x) = 0 starting from x0. f returns the misalignment in
// degrees; errors from f are fatal and must be returned unchanged.
type RootFinder interface {
	Find(f func(float64) (float64, error), x0 float64) (float64, error)
}

// BracketingFinder scans outwards from x0 for a sign change and refines it
// with Brent's method. Brackets across the ±90° wrap of the misalignment are
// skipped.
//
// A stepped stress law makes the misalignment jump where a fibre enters the
// stress block, so a bracket may shrink onto a jump instead of a zero. Once
// the bracket is narrower than XTol the endpoint with the smaller |f| is
// accepted, provided |f| stays below MaxJump.
type BracketingFinder struct {
	Step    float64 // degrees between scan points
	Span    float64 // maximum distance from x0, degrees
	Tol     float64 // accepted |f|, degrees
	XTol    float64 // accepted bracket width, degrees
	MaxJump float64 // largest |f| accepted on a collapsed bracket, degrees
	MaxIter int
}

// DefaultFinder is used when no finder is configured.
var DefaultFinder = BracketingFinder{Step: 5, Span: 90, Tol: 1e-6, XTol: 1e-9, MaxJump: 45, MaxIter: 200}

// Find implements RootFinder.
func (b BracketingFinder) Find(f func(float64) (float64, error), x0 float64) (float64, error) {
	f0, err := f(x0)
	if err != nil {
		return 0, err
	}
	if math.Abs(f0) <= b.Tol {
		return x0, nil
	}

	type sample struct{ x, fx float64 }
	left, right := sample{x0, f0}, sample{x0, f0}
	for k := 1; float64(k)*b.Step <= b.Span+1e-12; k++ {
		for _, dir := range []float64{1, -1} {
			prev := &right
			if dir < 0 {
				prev = &left
			}
			x := x0 + dir*float64(k)*b.Step
			fx, err := f(x)
			if err != nil {
				return 0, err
			}
			if math.Abs(fx) <= b.Tol {
				return x, nil
			}
			if (fx > 0) != (prev.fx > 0) && math.Abs(fx-prev.fx) < 90 {
				root, err := b.brent(f, prev.x, x, prev.fx, fx)
				if err == nil || !errors.Is(err, ErrNoConvergence) {
					return root, err
				}
			}
			*prev = sample{x, fx}
		}
	}
	return 0, ErrNoConvergence
}

// brent refines a bracket [a, b] with f(a), f(b) of opposite signs.
func (b BracketingFinder) brent(f func(float64) (float64, error), a, c, fa, fc float64) (float64, error) {
	xb, fb := c, fc
	xc, fcc := a, fa
	d := xb - a
	e := d
	for i := 0; i < b.MaxIter; i++ {
		if (fb > 0) == (fcc > 0) {
			xc, fcc = a, fa
			d = xb - a
			e = d
		}
		if math.Abs(fcc) < math.Abs(fb) {
			a, xb, xc = xb, xc, xb
			fa, fb, fcc = fb, fcc, fb
		}
		tol := 2*1e-15*math.Abs(xb) + 0.5*b.XTol
		m := 0.5 * (xc - xb)
		if math.Abs(fb) <= b.Tol {
			return xb, nil
		}
		if math.Abs(m) <= tol {
			// |fb| <= |fcc| after the swap above
			if math.Abs(fb) < b.MaxJump {
				return xb, nil
			}
			return 0, ErrNoConvergence
		}
		if math.Abs(e) >= tol && math.Abs(fa) > math.Abs(fb) {
			var p, q float64
			s := fb / fa
			if a == xc {
				p = 2 * m * s
				q = 1 - s
			} else {
				q0 := fa / fcc
				r := fb / fcc
				p = s * (2*m*q0*(q0-r) - (xb-a)*(r-1))
				q = (q0 - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			} else {
				p = -p
			}
			if 2*p < math.Min(3*m*q-math.Abs(tol*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = m
				e = d
			}
		} else {
			d = m
			e = d
		}
		a, fa = xb, fb
		if math.Abs(d) > tol {
			xb += d
		} else {
			xb += math.Copysign(tol, m)
		}
		var err error
		fb, err = f(xb)
		if err != nil {
			return 0, err
		}
	}
	if math.Abs(fb) <= 1e3*b.Tol {
		return xb, nil
	}
	return 0, ErrNoConvergence
}
