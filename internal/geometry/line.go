package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Line is the infinite line through two nodes, stored in implicit form
// a·x + b·y + c = 0 with (a, b) normalised to unit length, so Eval returns a
// signed distance that is positive on the left of the P→Q direction.
type Line struct {
	P, Q    Node
	A, B, C float64
}

// NewLine builds the line through p and q. When p and q coincide the line is
// degenerate and every coefficient is zero.
func NewLine(p, q Node) Line {
	a := p.Y - q.Y
	b := q.X - p.X
	c := p.X*q.Y - q.X*p.Y
	l := math.Hypot(a, b)
	if l <= Epsilon {
		return Line{P: p, Q: q}
	}
	return Line{P: p, Q: q, A: a / l, B: b / l, C: c / l}
}

// Degenerate reports whether the defining nodes coincide.
func (l Line) Degenerate() bool {
	return l.A == 0 && l.B == 0
}

// Eval returns the signed distance from n to the line.
func (l Line) Eval(n Node) float64 {
	return l.A*n.X + l.B*n.Y + l.C
}

// Intersect solves both implicit equations by Cramer's rule. It reports false
// for parallel or degenerate lines.
func (l Line) Intersect(o Line) (Node, bool) {
	det := l.A*o.B - o.A*l.B
	if math.Abs(det) <= Epsilon {
		return Node{}, false
	}
	x := (-l.C*o.B + o.C*l.B) / det
	y := (-l.A*o.C + o.A*l.C) / det
	return Node{X: x, Y: y}, true
}

// Contains reports whether n lies on the line within Epsilon.
func (l Line) Contains(n Node) bool {
	return math.Abs(l.Eval(n)) <= Epsilon
}

// Segment is the bounded part of a line between P and Q.
type Segment struct {
	Line
	Vector Vector
	Box    BoundingBox
}

// NewSegment builds the segment from p to q.
func NewSegment(p, q Node) Segment {
	return Segment{
		Line:   NewLine(p, q),
		Vector: q.Sub(p),
		Box:    NewBoundingBox(p, q),
	}
}

// Length returns the distance between the end nodes.
func (s Segment) Length() float64 {
	return r2.Norm(s.Vector)
}

// Intersect returns the crossing node of both segments. Besides the line
// intersection the node must fall inside both bounding boxes.
func (s Segment) Intersect(o Segment) (Node, bool) {
	n, ok := s.Line.Intersect(o.Line)
	if !ok {
		return Node{}, false
	}
	if !s.Box.Contains(n) || !o.Box.Contains(n) {
		return Node{}, false
	}
	return n, true
}

// Collinear reports whether both end nodes of o lie on the line of s.
func (s Segment) Collinear(o Segment) bool {
	if s.Degenerate() {
		return false
	}
	return s.Line.Contains(o.P) && s.Line.Contains(o.Q)
}

// param returns the position of n along s, 0 at P and 1 at Q.
func (s Segment) param(n Node) float64 {
	return r2.Dot(n.Sub(s.P), s.Vector) / r2.Dot(s.Vector, s.Vector)
}

// Subtract removes from s the portion covered by o. The result holds zero, one
// or two remaining pieces, oriented like s. When o is not collinear with s or
// does not overlap it, s is returned unchanged. The boolean is false when o
// covers s completely and the segment is eliminated.
func (s Segment) Subtract(o Segment) ([]Segment, bool) {
	if !s.Collinear(o) {
		return []Segment{s}, true
	}
	p, q := o.P, o.Q
	if r2.Dot(s.Vector, o.Vector) < 0 {
		p, q = q, p
	}
	t1, t2 := s.param(p), s.param(q)
	tol := Epsilon / s.Length()
	if t2 <= tol || t1 >= 1-tol {
		return []Segment{s}, true
	}

	var out []Segment
	if t1 > tol {
		out = append(out, NewSegment(s.P, s.P.Add(r2.Scale(t1, s.Vector))))
	}
	if t2 < 1-tol {
		out = append(out, NewSegment(s.P.Add(r2.Scale(t2, s.Vector)), s.Q))
	}
	kept := out[:0]
	for _, seg := range out {
		if seg.Length() > Epsilon {
			kept = append(kept, seg)
		}
	}
	if len(kept) == 0 {
		return nil, false
	}
	return kept, true
}

// Translate returns the segment shifted by (dx, dy).
func (s Segment) Translate(dx, dy float64) Segment {
	return NewSegment(s.P.Translate(dx, dy), s.Q.Translate(dx, dy))
}
