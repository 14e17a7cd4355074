package geometry

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrZeroArea is returned when a polygon would have no area.
var ErrZeroArea = errors.New("polygon has zero area")

// CollinearError is raised by the membership tests when the reference node of
// a boundary edge lies on that edge, which means three consecutive boundary
// points are aligned. It is a data-entry fault of the region that owns the
// polygon.
type CollinearError struct {
	Region int
	Nodes  [3]Node
}

func (e *CollinearError) Error() string {
	if e.Region < 0 {
		return fmt.Sprintf("boundary points %v, %v and %v are aligned", e.Nodes[0], e.Nodes[1], e.Nodes[2])
	}
	return fmt.Sprintf("region %d: boundary points %v, %v and %v are aligned; remove the middle point",
		e.Region+1, e.Nodes[0], e.Nodes[1], e.Nodes[2])
}

// Polygon is a convex polygon with counter-clockwise boundary nodes.
//
// Subtract adjusts area and centroid in place but keeps the original
// boundary, so later intersection tests still see the full outline.
type Polygon struct {
	// Region is the zero based index of the owning region, -1 if none.
	Region int

	nodes    []Node
	segments []Segment
	area     float64
	centroid Node
	consumed []Node
}

// NewPolygon builds a polygon from its boundary nodes. Duplicated nodes are
// merged and the remaining nodes are ordered counter-clockwise about their
// mean. Fewer than three distinct nodes, or a zero area, is an error.
func NewPolygon(nodes []Node) (*Polygon, error) {
	return newPolygon(nodes, false)
}

// newPolygon optionally drops nodes lying on the segment joining their
// neighbours; clipping produces such nodes through round-off.
func newPolygon(nodes []Node, simplify bool) (*Polygon, error) {
	u := UniqueNodes(nodes)
	if len(u) < 3 {
		return nil, fmt.Errorf("%w: %d distinct nodes", ErrZeroArea, len(u))
	}
	sortCCW(u)
	if simplify {
		u = dropAligned(u)
		if len(u) < 3 {
			return nil, fmt.Errorf("%w: nodes are aligned", ErrZeroArea)
		}
	}
	p := &Polygon{Region: -1, nodes: u}
	p.area, p.centroid = shoelace(u)
	if p.area <= Epsilon || !p.centroid.IsFinite() {
		return nil, ErrZeroArea
	}
	p.segments = make([]Segment, len(u))
	for i := range u {
		p.segments[i] = NewSegment(u[i], u[(i+1)%len(u)])
	}
	return p, nil
}

// NewRectangle returns the axis aligned rectangle between two corners.
func NewRectangle(x0, y0, x1, y1 float64) (*Polygon, error) {
	return NewPolygon([]Node{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}})
}

func sortCCW(nodes []Node) {
	c := Mean(nodes)
	sort.Slice(nodes, func(i, j int) bool {
		return math.Atan2(nodes[i].Y-c.Y, nodes[i].X-c.X) < math.Atan2(nodes[j].Y-c.Y, nodes[j].X-c.X)
	})
}

func dropAligned(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	n := len(nodes)
	for i := 0; i < n; i++ {
		prev, next := nodes[(i+n-1)%n], nodes[(i+1)%n]
		if NewLine(prev, next).Contains(nodes[i]) {
			continue
		}
		out = append(out, nodes[i])
	}
	return out
}

// shoelace returns the area and centroid of a closed ring of nodes.
func shoelace(nodes []Node) (area float64, c Node) {
	n := len(nodes)
	var signed, sx, sy float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := nodes[i].X*nodes[j].Y - nodes[j].X*nodes[i].Y
		signed += cross
		sx += (nodes[i].X + nodes[j].X) * cross
		sy += (nodes[i].Y + nodes[j].Y) * cross
	}
	signed /= 2
	if signed == 0 {
		return 0, Node{X: math.NaN(), Y: math.NaN()}
	}
	return math.Abs(signed), Node{X: sx / (6 * signed), Y: sy / (6 * signed)}
}

// Nodes returns a copy of the boundary nodes.
func (p *Polygon) Nodes() []Node {
	return append([]Node(nil), p.nodes...)
}

// Segments returns a copy of the boundary segments.
func (p *Polygon) Segments() []Segment {
	return append([]Segment(nil), p.segments...)
}

// Area returns the current area, after any subtraction.
func (p *Polygon) Area() float64 { return p.area }

// Centroid returns the current centroid, after any subtraction.
func (p *Polygon) Centroid() Node { return p.centroid }

// Consumed returns the intersection nodes used up by subtractions.
func (p *Polygon) Consumed() []Node {
	return append([]Node(nil), p.consumed...)
}

// BoundingBox returns the box enclosing the boundary.
func (p *Polygon) BoundingBox() BoundingBox {
	return NewBoundingBox(p.nodes...)
}

// Clone returns an independent copy.
func (p *Polygon) Clone() *Polygon {
	c := *p
	c.nodes = p.Nodes()
	c.segments = p.Segments()
	c.consumed = p.Consumed()
	return &c
}

// Translate shifts the boundary and the centroid by (dx, dy) in place.
func (p *Polygon) Translate(dx, dy float64) {
	for i := range p.nodes {
		p.nodes[i] = p.nodes[i].Translate(dx, dy)
	}
	for i := range p.segments {
		p.segments[i] = p.segments[i].Translate(dx, dy)
	}
	for i := range p.consumed {
		p.consumed[i] = p.consumed[i].Translate(dx, dy)
	}
	p.centroid = p.centroid.Translate(dx, dy)
}

// Validate checks that no three consecutive boundary nodes are aligned.
func (p *Polygon) Validate() error {
	for i := range p.segments {
		if _, err := p.reference(i); err != nil {
			return err
		}
	}
	return nil
}

// reference returns the signed distance from edge i to the next-but-one
// boundary node, a point known to be on the interior side.
func (p *Polygon) reference(i int) (float64, error) {
	n := len(p.nodes)
	ref := p.nodes[(i+2)%n]
	s := p.segments[i].Eval(ref)
	if math.Abs(s) <= Epsilon {
		return 0, &CollinearError{Region: p.Region, Nodes: [3]Node{p.nodes[i], p.nodes[(i+1)%n], ref}}
	}
	return s, nil
}

// Contains reports whether n is inside the polygon or on its boundary.
func (p *Polygon) Contains(n Node) (bool, error) {
	return p.contains(n, true)
}

// ContainsBorderless reports whether n is strictly inside the polygon.
func (p *Polygon) ContainsBorderless(n Node) (bool, error) {
	return p.contains(n, false)
}

func (p *Polygon) contains(n Node, border bool) (bool, error) {
	for i, seg := range p.segments {
		ref, err := p.reference(i)
		if err != nil {
			return false, err
		}
		s := seg.Eval(n)
		if math.Abs(s) <= Epsilon {
			if !border {
				return false, nil
			}
			continue
		}
		if (s > 0) != (ref > 0) {
			return false, nil
		}
	}
	return true, nil
}

// ContainsPolygon reports whether every boundary node of o is inside p,
// borders included.
func (p *Polygon) ContainsPolygon(o *Polygon) (bool, error) {
	for _, n := range o.nodes {
		in, err := p.Contains(n)
		if err != nil || !in {
			return false, err
		}
	}
	return true, nil
}

// sharedNodes collects the nodes bounding the common part of p and o: every
// boundary crossing plus the nodes of each polygon strictly inside the other.
func (p *Polygon) sharedNodes(o *Polygon) ([]Node, error) {
	var nodes []Node
	for _, a := range p.segments {
		for _, b := range o.segments {
			if n, ok := a.Intersect(b); ok {
				nodes = append(nodes, n)
			}
		}
	}
	for _, n := range p.nodes {
		in, err := o.ContainsBorderless(n)
		if err != nil {
			return nil, err
		}
		if in {
			nodes = append(nodes, n)
		}
	}
	for _, n := range o.nodes {
		in, err := p.ContainsBorderless(n)
		if err != nil {
			return nil, err
		}
		if in {
			nodes = append(nodes, n)
		}
	}
	return UniqueNodes(nodes), nil
}

// Overlap returns the polygon common to p and o. The boolean is false when
// the shared part has no area.
func (p *Polygon) Overlap(o *Polygon) (*Polygon, bool, error) {
	nodes, err := p.sharedNodes(o)
	if err != nil {
		return nil, false, err
	}
	if len(nodes) < 3 {
		return nil, false, nil
	}
	in, err := newPolygon(nodes, true)
	if err != nil {
		if errors.Is(err, ErrZeroArea) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return in, true, nil
}

// Intersection returns the intersection of p and o. When the shared part
// degenerates (fewer than three nodes or no area) p itself is returned;
// callers filter such results with a containment test.
func (p *Polygon) Intersection(o *Polygon) (*Polygon, error) {
	in, ok, err := p.Overlap(o)
	if err != nil {
		return nil, err
	}
	if !ok {
		return p, nil
	}
	in.Region = p.Region
	return in, nil
}

// Equal reports whether both polygons have the same area and centroid
// within a relative tolerance.
func (p *Polygon) Equal(o *Polygon) bool {
	scale := math.Max(1, math.Max(p.area, o.area))
	if math.Abs(p.area-o.area) > 1e3*Epsilon*scale {
		return false
	}
	d := math.Max(1, math.Sqrt(scale))
	return math.Abs(p.centroid.X-o.centroid.X) <= 1e3*Epsilon*d &&
		math.Abs(p.centroid.Y-o.centroid.Y) <= 1e3*Epsilon*d
}

// Subtract removes the part of p covered by o. Only the area and the centroid
// are updated; the boundary is left untouched and the shared nodes are
// appended to the consumed log. A nil polygon means p was removed entirely.
// Disjoint polygons leave p unchanged.
func (p *Polygon) Subtract(o *Polygon) (*Polygon, error) {
	in, ok, err := p.Overlap(o)
	if err != nil {
		return nil, err
	}
	if !ok {
		return p, nil
	}
	if in.Equal(p) {
		return nil, nil
	}
	area, c, ok := SubtractMass(p.area, p.centroid, in.area, in.centroid)
	if !ok {
		return nil, nil
	}
	p.area, p.centroid = area, c
	p.consumed = append(p.consumed, in.nodes...)
	return p, nil
}

// SubtractMass removes a part of area a2 and centroid c2 from a figure of
// area a1 and centroid c1. It reports false when nothing finite remains.
func SubtractMass(a1 float64, c1 Node, a2 float64, c2 Node) (float64, Node, bool) {
	a := a1 - a2
	if a <= Epsilon || math.IsNaN(a) || math.IsInf(a, 0) {
		return 0, Node{}, false
	}
	c := Node{X: (a1*c1.X - a2*c2.X) / a, Y: (a1*c1.Y - a2*c2.Y) / a}
	if !c.IsFinite() {
		return 0, Node{}, false
	}
	return a, c, true
}
