package interaction

import (
	"fmt"

	"github.com/alexiusacademia/gopmm/internal/aci"
)

// StrainPlane is one limiting strain distribution: the strain at the top
// (most compressed for base planes) and bottom anchor fibres.
type StrainPlane struct {
	Top      float64
	Bottom   float64
	Family   int // 0..5, see GeneratePlanes
	Sequence int // 0..699
}

// Mirrored reports whether the plane is one of the top/bottom swapped copies.
func (p StrainPlane) Mirrored() bool { return p.Sequence >= BasePlanes }

// Equation is the linear strain field ε(d) = Slope·d + Intercept, with d the
// distance measured across the neutral axis.
type Equation struct {
	Slope     float64
	Intercept float64
}

// Evaluate returns the strain at distance d.
func (e Equation) Evaluate(d float64) float64 {
	return e.Slope*d + e.Intercept
}

// Through returns the equation taking strain top at dTop and bottom at
// dBottom. Coincident anchors give a uniform field equal to top.
func Through(top, dTop, bottom, dBottom float64) Equation {
	if dTop-dBottom <= 1e-12 {
		return Equation{Intercept: top}
	}
	slope := (top - bottom) / (dTop - dBottom)
	return Equation{Slope: slope, Intercept: top - slope*dTop}
}

// Limits are the strains bounding the plane families. Tension is positive.
type Limits struct {
	CU float64 // concrete crushing strain, negative
	Y  float64 // yield strain of the governing steel
	TC float64 // tension-controlled limit
	SU float64 // usable tensile strain of the governing steel
}

// DefaultLimits is used for plain concrete sections.
var DefaultLimits = Limits{CU: -aci.EpsilonCU, Y: aci.EpsilonTYPrestressed, TC: aci.EpsilonTC, SU: 0.01}

// Validate checks the ordering CU < 0 < Y < SU.
func (l Limits) Validate() error {
	if l.CU >= 0 || l.Y <= 0 || l.SU <= l.Y {
		return fmt.Errorf("strain limits must satisfy εcu < 0 < εy < εsu, got %.5f, %.5f, %.5f", l.CU, l.Y, l.SU)
	}
	return nil
}

const (
	// BasePlanes is the number of planes before mirroring.
	BasePlanes = 350
	// TotalPlanes includes the mirrored copies.
	TotalPlanes = 2 * BasePlanes
	// Families is the number of plane families.
	Families = 6
)

// familySizes splits the base planes among the six families.
var familySizes = [Families]int{50, 70, 70, 60, 50, 50}

// GeneratePlanes returns the 700 limiting strain planes:
//
//	0: top εcu, bottom εcu → 0        (full compression)
//	1: top εcu, bottom 0 → εy
//	2: top εcu, bottom εy → εtc
//	3: top εcu, bottom εtc → εsu
//	4: bottom εsu, top εcu → 0
//	5: bottom εsu, top 0 → εsu        (ends in uniform tension)
//
// followed by the same planes with top and bottom swapped.
func GeneratePlanes(l Limits) ([]StrainPlane, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	tc := l.TC
	if tc <= l.Y || tc >= l.SU {
		tc = (l.Y + l.SU) / 2
	}
	lerp := func(a, b, t float64) float64 { return a + (b-a)*t }

	planes := make([]StrainPlane, 0, TotalPlanes)
	seq := 0
	for f, n := range familySizes {
		for k := 0; k < n; k++ {
			t := float64(k) / float64(n)
			if f == Families-1 {
				t = float64(k+1) / float64(n)
			}
			p := StrainPlane{Family: f, Sequence: seq}
			switch f {
			case 0:
				p.Top, p.Bottom = l.CU, lerp(l.CU, 0, t)
			case 1:
				p.Top, p.Bottom = l.CU, lerp(0, l.Y, t)
			case 2:
				p.Top, p.Bottom = l.CU, lerp(l.Y, tc, t)
			case 3:
				p.Top, p.Bottom = l.CU, lerp(tc, l.SU, t)
			case 4:
				p.Top, p.Bottom = lerp(l.CU, 0, t), l.SU
			case 5:
				p.Top, p.Bottom = lerp(0, l.SU, t), l.SU
			}
			planes = append(planes, p)
			seq++
		}
	}
	for i := 0; i < BasePlanes; i++ {
		p := planes[i]
		planes = append(planes, StrainPlane{Top: p.Bottom, Bottom: p.Top, Family: p.Family, Sequence: BasePlanes + i})
	}
	return planes, nil
}
