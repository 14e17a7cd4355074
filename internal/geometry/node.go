// Package geometry provides the tolerance-based 2D primitives used to mesh
// concrete cross-sections: nodes, lines, segments and convex polygons.
//
// Coordinates follow the usual engineering convention: x increases to the
// right and y increases upward, so counter-clockwise is the positive
// orientation of a solid contour.
package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Epsilon is the absolute tolerance used for node equality, parallelism and
// on-line tests. Coordinates are expected in millimetres.
var Epsilon = 1e-9

// Vector is a free 2D vector.
type Vector = r2.Vec

// Node is a 2D point. Nodes are values: operations always return new nodes.
type Node struct {
	X float64 `json:"x" yaml:"x"` // mm
	Y float64 `json:"y" yaml:"y"` // mm
}

// Equal reports whether both coordinates differ by at most Epsilon.
func (n Node) Equal(o Node) bool {
	return math.Abs(n.X-o.X) <= Epsilon && math.Abs(n.Y-o.Y) <= Epsilon
}

// Sub returns the vector from o to n.
func (n Node) Sub(o Node) Vector {
	return Vector{X: n.X - o.X, Y: n.Y - o.Y}
}

// Add returns n displaced by v.
func (n Node) Add(v Vector) Node {
	return Node{X: n.X + v.X, Y: n.Y + v.Y}
}

// Translate returns n shifted by (dx, dy).
func (n Node) Translate(dx, dy float64) Node {
	return Node{X: n.X + dx, Y: n.Y + dy}
}

// Distance returns the euclidean distance between two nodes.
func (n Node) Distance(o Node) float64 {
	return r2.Norm(n.Sub(o))
}

// IsFinite reports whether both coordinates are finite numbers.
func (n Node) IsFinite() bool {
	return !math.IsNaN(n.X) && !math.IsNaN(n.Y) && !math.IsInf(n.X, 0) && !math.IsInf(n.Y, 0)
}

func (n Node) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", n.X, n.Y)
}

// UniqueNodes removes nodes that are equal within tolerance, keeping the
// first occurrence.
func UniqueNodes(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		dup := false
		for _, u := range out {
			if u.Equal(n) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, n)
		}
	}
	return out
}

// Mean returns the arithmetic mean of the nodes.
func Mean(nodes []Node) Node {
	var c Node
	if len(nodes) == 0 {
		return c
	}
	for _, n := range nodes {
		c.X += n.X
		c.Y += n.Y
	}
	k := float64(len(nodes))
	return Node{X: c.X / k, Y: c.Y / k}
}

// BoundingBox is an axis aligned rectangle.
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// NewBoundingBox returns the box enclosing all nodes.
func NewBoundingBox(nodes ...Node) BoundingBox {
	if len(nodes) == 0 {
		return BoundingBox{}
	}
	b := BoundingBox{MinX: nodes[0].X, MaxX: nodes[0].X, MinY: nodes[0].Y, MaxY: nodes[0].Y}
	for _, n := range nodes[1:] {
		b.MinX = math.Min(b.MinX, n.X)
		b.MaxX = math.Max(b.MaxX, n.X)
		b.MinY = math.Min(b.MinY, n.Y)
		b.MaxY = math.Max(b.MaxY, n.Y)
	}
	return b
}

// Contains reports whether n lies inside the box, borders included, with
// Epsilon slack.
func (b BoundingBox) Contains(n Node) bool {
	return n.X >= b.MinX-Epsilon && n.X <= b.MaxX+Epsilon &&
		n.Y >= b.MinY-Epsilon && n.Y <= b.MaxY+Epsilon
}

// Union returns the smallest box containing both boxes.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return BoundingBox{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Width returns the horizontal extent.
func (b BoundingBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b BoundingBox) Height() float64 { return b.MaxY - b.MinY }
