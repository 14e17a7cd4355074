// Package mesh turns signed regions into finite elements with an area and a
// centroid, and removes void regions from the generated elements.
package mesh

import (
	"math"

	"github.com/alexiusacademia/gopmm/internal/geometry"
)

// Element is the smallest mesh unit.
type Element interface {
	Area() float64
	Centroid() geometry.Node
	// Boundary is the convex outline used for void tests. Subtractions do
	// not change it.
	Boundary() *geometry.Polygon
	// Subtract removes the part covered by void. A nil element means nothing
	// is left.
	Subtract(void *geometry.Polygon) (Element, error)
	Translate(dx, dy float64)
}

// RectangularElement is a grid cell clipped to its polygonal region.
type RectangularElement struct {
	poly *geometry.Polygon
}

// NewRectangularElement wraps a clipped cell.
func NewRectangularElement(p *geometry.Polygon) *RectangularElement {
	return &RectangularElement{poly: p}
}

func (e *RectangularElement) Area() float64               { return e.poly.Area() }
func (e *RectangularElement) Centroid() geometry.Node     { return e.poly.Centroid() }
func (e *RectangularElement) Boundary() *geometry.Polygon { return e.poly }
func (e *RectangularElement) Translate(dx, dy float64)    { e.poly.Translate(dx, dy) }

// Subtract delegates to the polygon area/centroid bookkeeping.
func (e *RectangularElement) Subtract(void *geometry.Polygon) (Element, error) {
	p, err := e.poly.Subtract(void)
	if err != nil || p == nil {
		return nil, err
	}
	e.poly = p
	return e, nil
}

// AnnularSectorElement is the part of a ring between two radii and two
// angles. Area and centroid are exact; the boundary polygon joins the inner
// arc ends with a chord and follows the outer arc, which keeps it convex.
type AnnularSectorElement struct {
	Center     geometry.Node
	RInt, RExt float64
	Start, End float64 // radians, End > Start

	area     float64
	centroid geometry.Node
	boundary *geometry.Polygon
}

// NewAnnularSectorElement builds the sector. A full turn with a zero inner
// radius gives the central circular cell.
func NewAnnularSectorElement(center geometry.Node, rInt, rExt, start, end float64) (*AnnularSectorElement, error) {
	e := &AnnularSectorElement{Center: center, RInt: rInt, RExt: rExt, Start: start, End: end}
	span := end - start
	e.area = span / 2 * (rExt*rExt - rInt*rInt)

	// distance of the centroid from the centre along the bisector
	var rc float64
	if span < 2*math.Pi-1e-12 {
		rc = 2 * (rExt*rExt*rExt - rInt*rInt*rInt) / (3 * (rExt*rExt - rInt*rInt)) * math.Sin(span/2) / (span / 2)
	}
	mid := start + span/2
	e.centroid = geometry.Node{X: center.X + rc*math.Cos(mid), Y: center.Y + rc*math.Sin(mid)}

	b, err := geometry.NewPolygon(arcOutline(center, rInt, rExt, start, end))
	if err != nil {
		return nil, err
	}
	e.boundary = b
	return e, nil
}

// arcOutline returns a convex outline for a sector: points on the outer arc
// every 15 degrees at most, plus either the inner chord ends or the centre.
func arcOutline(center geometry.Node, rInt, rExt, start, end float64) []geometry.Node {
	span := end - start
	full := span >= 2*math.Pi-1e-12
	steps := int(math.Ceil(span / (math.Pi / 12)))
	if steps < 2 {
		steps = 2
	}
	var nodes []geometry.Node
	last := steps
	if full {
		last = steps - 1
	}
	for i := 0; i <= last; i++ {
		a := start + span*float64(i)/float64(steps)
		nodes = append(nodes, geometry.Node{X: center.X + rExt*math.Cos(a), Y: center.Y + rExt*math.Sin(a)})
	}
	if full {
		return nodes
	}
	if rInt > 0 {
		nodes = append(nodes,
			geometry.Node{X: center.X + rInt*math.Cos(end), Y: center.Y + rInt*math.Sin(end)},
			geometry.Node{X: center.X + rInt*math.Cos(start), Y: center.Y + rInt*math.Sin(start)})
	} else if span < math.Pi-1e-12 {
		nodes = append(nodes, center)
	}
	return nodes
}

func (e *AnnularSectorElement) Area() float64               { return e.area }
func (e *AnnularSectorElement) Centroid() geometry.Node     { return e.centroid }
func (e *AnnularSectorElement) Boundary() *geometry.Polygon { return e.boundary }

func (e *AnnularSectorElement) Translate(dx, dy float64) {
	e.Center = e.Center.Translate(dx, dy)
	e.centroid = e.centroid.Translate(dx, dy)
	e.boundary.Translate(dx, dy)
}

// Subtract removes the overlap between the outline and void from the exact
// area and centroid.
func (e *AnnularSectorElement) Subtract(void *geometry.Polygon) (Element, error) {
	in, ok, err := e.boundary.Overlap(void)
	if err != nil {
		return nil, err
	}
	if !ok {
		return e, nil
	}
	if in.Equal(e.boundary) {
		return nil, nil
	}
	area, c, ok := geometry.SubtractMass(e.area, e.centroid, in.Area(), in.Centroid())
	if !ok {
		return nil, nil
	}
	e.area, e.centroid = area, c
	return e, nil
}
