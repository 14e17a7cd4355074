package interaction

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/plot/palette"
)

// Point is one point of an interaction diagram. Forces are nominal (not
// multiplied by Phi); compression is negative.
type Point struct {
	P   float64 // N
	Mx  float64 // N·mm
	My  float64 // N·mm
	Phi float64

	// Color is the rainbow tag of the plane family, "#rrggbb".
	Color string
	// IsCapped marks points beyond the maximum nominal compression and
	// their clamped copies.
	IsCapped bool
	// Clamped is true only for the copy whose force equals the cap.
	Clamped bool

	Family   int
	Sequence int
	Theta    float64 // neutral axis rotation, degrees
	EpsilonT float64 // net tensile strain of the extreme tension fibre
}

// PhiP returns the design axial force.
func (p Point) PhiP() float64 { return p.Phi * p.P }

// PhiMx returns the design moment about x.
func (p Point) PhiMx() float64 { return p.Phi * p.Mx }

// PhiMy returns the design moment about y.
func (p Point) PhiMy() float64 { return p.Phi * p.My }

// MomentAlong projects the nominal moment vector on the loading direction
// lambda (degrees).
func (p Point) MomentAlong(lambda float64) float64 {
	l := lambda * math.Pi / 180
	return p.Mx*math.Cos(l) + p.My*math.Sin(l)
}

// DroppedPlane records a plane whose neutral axis search failed.
type DroppedPlane struct {
	Plane  StrainPlane
	Reason string
}

// Diagram is the result of one loading angle.
type Diagram struct {
	RunID  string
	Lambda float64 // degrees

	Points  []Point
	Dropped []DroppedPlane
	// Solved counts planes that produced a point, before capping.
	Solved int

	// Cap is the maximum nominal compression, a positive magnitude in N.
	Cap float64
}

// Envelope returns the capped design envelope: the clamped copies replace
// the points beyond the cap.
func (d *Diagram) Envelope() []Point {
	out := make([]Point, 0, len(d.Points))
	for _, p := range d.Points {
		if p.IsCapped && !p.Clamped {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Capacity returns the design moment capacity along the loading direction
// at the design axial force pu (N, compression negative), interpolated on the
// capped envelope. It reports false outside the axial range.
func (d *Diagram) Capacity(pu float64) (float64, bool) {
	type pm struct{ p, m float64 }
	var pts []pm
	for _, p := range d.Envelope() {
		m := p.Phi * p.MomentAlong(d.Lambda)
		if m < -1e-6 {
			continue
		}
		pts = append(pts, pm{p.PhiP(), math.Max(m, 0)})
	}
	if len(pts) == 0 {
		return 0, false
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].p < pts[j].p })
	if pu < pts[0].p-1e-6 || pu > pts[len(pts)-1].p+1e-6 {
		return 0, false
	}
	best, found := 0.0, false
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		if pu < a.p || pu > b.p {
			continue
		}
		m := math.Max(a.m, b.m)
		if b.p > a.p {
			m = a.m + (b.m-a.m)*(pu-a.p)/(b.p-a.p)
		}
		if !found || m > best {
			best, found = m, true
		}
	}
	if !found {
		// single point or pu on an end point
		for _, p := range pts {
			if math.Abs(p.p-pu) <= 1e-6 && (!found || p.m > best) {
				best, found = p.m, true
			}
		}
	}
	return best, found
}

// familyColors tags each plane family with a rainbow colour.
var familyColors = func() []string {
	cs := palette.Rainbow(Families, 0, 5.0/6, 1, 1, 1).Colors()
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = hexColor(c)
	}
	return out
}()

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// FamilyColor returns the tag of a plane family.
func FamilyColor(family int) string {
	if family < 0 || family >= len(familyColors) {
		return "#000000"
	}
	return familyColors[family]
}
