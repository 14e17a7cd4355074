package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexiusacademia/gopmm/internal/geometry"
)

// Sign tells whether a region adds or removes material.
type Sign int

const (
	Solid Sign = 1
	Void  Sign = -1
)

func (s Sign) String() string {
	if s == Void {
		return "void"
	}
	return "solid"
}

// RegionError is a data-entry fault attributed to one region.
type RegionError struct {
	Index int // zero based
	Msg   string
	Err   error
}

func (e *RegionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("region %d: %s: %v", e.Index+1, e.Msg, e.Err)
	}
	return fmt.Sprintf("region %d: %s", e.Index+1, e.Msg)
}

func (e *RegionError) Unwrap() error { return e.Err }

// Shape is a signed contour that can be meshed.
type Shape interface {
	Index() int
	Sign() Sign
	// Mesh returns the elements covering the interior.
	Mesh(d Discretization) ([]Element, error)
	// Outline is the convex polygon used when the shape acts as a void.
	Outline() *geometry.Polygon
	// Segments returns the boundary used for plotting.
	Segments() []geometry.Segment
	BoundingBox() geometry.BoundingBox
	// Extent returns the lowest and highest projection of the contour on
	// the unit direction n.
	Extent(n geometry.Vector) (lo, hi float64)
	Translate(dx, dy float64)
}

// Region is a signed convex polygonal contour.
type Region struct {
	index int
	sign  Sign
	poly  *geometry.Polygon
}

// NewRegion validates the contour. Aligned boundary points and zero areas are
// reported with the region index.
func NewRegion(index int, sign Sign, nodes []geometry.Node) (*Region, error) {
	poly, err := geometry.NewPolygon(nodes)
	if err != nil {
		return nil, &RegionError{Index: index, Msg: "invalid polygon", Err: err}
	}
	poly.Region = index
	if err := poly.Validate(); err != nil {
		return nil, err
	}
	return &Region{index: index, sign: sign, poly: poly}, nil
}

func (r *Region) Index() int                        { return r.index }
func (r *Region) Sign() Sign                        { return r.sign }
func (r *Region) Outline() *geometry.Polygon        { return r.poly }
func (r *Region) Segments() []geometry.Segment      { return r.poly.Segments() }
func (r *Region) BoundingBox() geometry.BoundingBox { return r.poly.BoundingBox() }
func (r *Region) Translate(dx, dy float64)          { r.poly.Translate(dx, dy) }

// Extent projects every boundary node on n.
func (r *Region) Extent(n geometry.Vector) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range r.poly.Nodes() {
		d := p.X*n.X + p.Y*n.Y
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// Mesh advances a dx by dy cell from the centroid towards each quadrant
// until the bounding box is left, clips every cell to the region and keeps
// the cells that end up inside it.
func (r *Region) Mesh(d Discretization) ([]Element, error) {
	if err := d.Validate(); err != nil {
		return nil, &RegionError{Index: r.index, Msg: "invalid discretization", Err: err}
	}
	box := r.poly.BoundingBox()
	c := r.poly.Centroid()
	minArea := 1e-9 * d.Dx * d.Dy

	var elements []Element
	for _, q := range [4][2]float64{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}} {
		for i := 0; ; i++ {
			x0 := c.X + q[0]*float64(i)*d.Dx
			if (q[0] > 0 && x0 >= box.MaxX) || (q[0] < 0 && x0 <= box.MinX) {
				break
			}
			x1 := x0 + q[0]*d.Dx
			for j := 0; ; j++ {
				y0 := c.Y + q[1]*float64(j)*d.Dy
				if (q[1] > 0 && y0 >= box.MaxY) || (q[1] < 0 && y0 <= box.MinY) {
					break
				}
				y1 := y0 + q[1]*d.Dy
				cell, err := geometry.NewRectangle(math.Min(x0, x1), math.Min(y0, y1), math.Max(x0, x1), math.Max(y0, y1))
				if err != nil {
					return nil, &RegionError{Index: r.index, Msg: "invalid cell", Err: err}
				}
				e, err := r.clip(cell, minArea)
				if err != nil {
					return nil, err
				}
				if e != nil {
					elements = append(elements, e)
				}
			}
		}
	}
	if len(elements) == 0 {
		return nil, &RegionError{Index: r.index, Msg: "mesh is empty; reduce the cell size"}
	}
	return elements, nil
}

func (r *Region) clip(cell *geometry.Polygon, minArea float64) (Element, error) {
	clipped, err := cell.Intersection(r.poly)
	if err != nil {
		return nil, err
	}
	if clipped.Area() < minArea || !clipped.Centroid().IsFinite() {
		return nil, nil
	}
	inside, err := r.poly.ContainsPolygon(clipped)
	if err != nil {
		return nil, err
	}
	if !inside {
		return nil, nil
	}
	clipped.Region = r.index
	return NewRectangularElement(clipped), nil
}

// CircularRegion is a signed ring sector; a zero inner radius and a full turn
// give a disk.
type CircularRegion struct {
	index      int
	sign       Sign
	Center     geometry.Node
	RInt, RExt float64 // mm
	Start, End float64 // degrees

	outline *geometry.Polygon
}

// voidSides is the number of sides of the polygon standing for a circular
// void.
const voidSides = 72

// NewCircularRegion validates radii and angles. Angles default to a full
// turn when both are zero.
func NewCircularRegion(index int, sign Sign, center geometry.Node, rInt, rExt, start, end float64) (*CircularRegion, error) {
	if start == 0 && end == 0 {
		end = 360
	}
	switch {
	case rExt <= 0:
		return nil, &RegionError{Index: index, Msg: fmt.Sprintf("outer radius must be positive, got %.3f", rExt)}
	case rInt < 0 || rInt >= rExt:
		return nil, &RegionError{Index: index, Msg: fmt.Sprintf("inner radius %.3f must be in [0, %.3f)", rInt, rExt)}
	case end <= start || end-start > 360+geometry.Epsilon:
		return nil, &RegionError{Index: index, Msg: fmt.Sprintf("angles %.3f..%.3f do not define a sector", start, end)}
	}
	c := &CircularRegion{index: index, sign: sign, Center: center, RInt: rInt, RExt: rExt, Start: start, End: end}

	if sign == Void && (rInt > 0 || (!c.Full() && end-start > 180)) {
		return nil, &RegionError{Index: index, Msg: "circular voids must be convex: zero inner radius and a full turn or at most 180 degrees"}
	}
	nodes := c.outlineNodes()
	poly, err := geometry.NewPolygon(nodes)
	if err != nil {
		return nil, &RegionError{Index: index, Msg: "invalid circular outline", Err: err}
	}
	poly.Region = index
	c.outline = poly
	return c, nil
}

// Full reports whether the region spans a whole turn.
func (c *CircularRegion) Full() bool {
	return c.End-c.Start >= 360-geometry.Epsilon
}

func (c *CircularRegion) outlineNodes() []geometry.Node {
	s, e := c.Start*math.Pi/180, c.End*math.Pi/180
	n := int(math.Ceil(voidSides * (c.End - c.Start) / 360))
	if n < 2 {
		n = 2
	}
	var nodes []geometry.Node
	last := n
	if c.Full() {
		last = n - 1
	}
	for i := 0; i <= last; i++ {
		a := s + (e-s)*float64(i)/float64(n)
		nodes = append(nodes, geometry.Node{X: c.Center.X + c.RExt*math.Cos(a), Y: c.Center.Y + c.RExt*math.Sin(a)})
	}
	if !c.Full() {
		if c.RInt > 0 {
			nodes = append(nodes,
				geometry.Node{X: c.Center.X + c.RInt*math.Cos(e), Y: c.Center.Y + c.RInt*math.Sin(e)},
				geometry.Node{X: c.Center.X + c.RInt*math.Cos(s), Y: c.Center.Y + c.RInt*math.Sin(s)})
		} else if c.End-c.Start < 180-geometry.Epsilon {
			// a half disk closes with its diameter
			nodes = append(nodes, c.Center)
		}
	}
	return nodes
}

func (c *CircularRegion) Index() int                 { return c.index }
func (c *CircularRegion) Sign() Sign                 { return c.sign }
func (c *CircularRegion) Outline() *geometry.Polygon { return c.outline }

func (c *CircularRegion) BoundingBox() geometry.BoundingBox {
	return geometry.NewBoundingBox(c.arcs()...)
}

// arcs samples both arcs every 5 degrees, inner arc reversed.
func (c *CircularRegion) arcs() []geometry.Node {
	n := int(math.Ceil((c.End - c.Start) / 5))
	var outer, inner []geometry.Node
	for i := 0; i <= n; i++ {
		a := (c.Start + (c.End-c.Start)*float64(i)/float64(n)) * math.Pi / 180
		outer = append(outer, geometry.Node{X: c.Center.X + c.RExt*math.Cos(a), Y: c.Center.Y + c.RExt*math.Sin(a)})
		inner = append(inner, geometry.Node{X: c.Center.X + c.RInt*math.Cos(a), Y: c.Center.Y + c.RInt*math.Sin(a)})
	}
	for i := len(inner) - 1; i >= 0; i-- {
		outer = append(outer, inner[i])
	}
	return outer
}

// Segments returns the sampled arcs, plus the radial edges of a sector.
func (c *CircularRegion) Segments() []geometry.Segment {
	var segs []geometry.Segment
	n := int(math.Ceil((c.End - c.Start) / 5))
	ring := func(r float64) {
		if r <= 0 {
			return
		}
		for i := 0; i < n; i++ {
			a0 := (c.Start + (c.End-c.Start)*float64(i)/float64(n)) * math.Pi / 180
			a1 := (c.Start + (c.End-c.Start)*float64(i+1)/float64(n)) * math.Pi / 180
			segs = append(segs, geometry.NewSegment(
				geometry.Node{X: c.Center.X + r*math.Cos(a0), Y: c.Center.Y + r*math.Sin(a0)},
				geometry.Node{X: c.Center.X + r*math.Cos(a1), Y: c.Center.Y + r*math.Sin(a1)}))
		}
	}
	ring(c.RExt)
	ring(c.RInt)
	if !c.Full() {
		for _, deg := range []float64{c.Start, c.End} {
			a := deg * math.Pi / 180
			segs = append(segs, geometry.NewSegment(
				geometry.Node{X: c.Center.X + c.RInt*math.Cos(a), Y: c.Center.Y + c.RInt*math.Sin(a)},
				geometry.Node{X: c.Center.X + c.RExt*math.Cos(a), Y: c.Center.Y + c.RExt*math.Sin(a)}))
		}
	}
	return segs
}

// Extent is exact: the outer arc reaches Center·n + RExt when the direction
// of n falls inside the sector, otherwise the arc end points govern.
func (c *CircularRegion) Extent(n geometry.Vector) (lo, hi float64) {
	base := c.Center.X*n.X + c.Center.Y*n.Y
	if c.Full() {
		return base - c.RExt, base + c.RExt
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	s, e := c.Start*math.Pi/180, c.End*math.Pi/180
	var cands []float64
	for _, a := range []float64{s, e} {
		for _, r := range []float64{c.RInt, c.RExt} {
			cands = append(cands, r*(math.Cos(a)*n.X+math.Sin(a)*n.Y))
		}
	}
	dir := math.Atan2(n.Y, n.X)
	if angleWithin(dir, s, e) {
		cands = append(cands, c.RExt)
	}
	if angleWithin(dir+math.Pi, s, e) {
		cands = append(cands, -c.RExt)
	}
	for _, v := range cands {
		lo = math.Min(lo, base+v)
		hi = math.Max(hi, base+v)
	}
	return lo, hi
}

func angleWithin(a, s, e float64) bool {
	for a < s {
		a += 2 * math.Pi
	}
	for a >= s+2*math.Pi {
		a -= 2 * math.Pi
	}
	return a <= e
}

func (c *CircularRegion) Translate(dx, dy float64) {
	c.Center = c.Center.Translate(dx, dy)
	c.outline.Translate(dx, dy)
}

// Radii returns the band limits r(i) = rInt + (rExt - rInt)(1 - (1 - i/n)^1.25),
// which tighten towards the outer radius.
func Radii(rInt, rExt float64, n int) []float64 {
	r := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		r[i] = rInt + (rExt-rInt)*(1-math.Pow(1-float64(i)/float64(n), 1.25))
	}
	r[n] = rExt
	return r
}

// Mesh splits the region into radial bands and angular sectors. A full disk
// gets a single circular cell in the innermost band.
func (c *CircularRegion) Mesh(d Discretization) ([]Element, error) {
	if err := d.Validate(); err != nil {
		return nil, &RegionError{Index: c.index, Msg: "invalid discretization", Err: err}
	}
	radii := Radii(c.RInt, c.RExt, d.RadialBands)
	sectors := int(math.Ceil((c.End-c.Start)/d.DTheta - 1e-9))
	if sectors < 1 {
		sectors = 1
	}
	step := (c.End - c.Start) / float64(sectors) * math.Pi / 180
	start := c.Start * math.Pi / 180

	var elements []Element
	for i := 0; i < d.RadialBands; i++ {
		if i == 0 && c.RInt == 0 && c.Full() {
			e, err := NewAnnularSectorElement(c.Center, 0, radii[1], 0, 2*math.Pi)
			if err != nil {
				return nil, &RegionError{Index: c.index, Msg: "invalid central cell", Err: err}
			}
			elements = append(elements, e)
			continue
		}
		for k := 0; k < sectors; k++ {
			a0 := start + float64(k)*step
			e, err := NewAnnularSectorElement(c.Center, radii[i], radii[i+1], a0, a0+step)
			if err != nil {
				if errors.Is(err, geometry.ErrZeroArea) {
					continue
				}
				return nil, &RegionError{Index: c.index, Msg: "invalid sector", Err: err}
			}
			elements = append(elements, e)
		}
	}
	return elements, nil
}
