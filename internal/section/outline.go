package section

import (
	"github.com/alexiusacademia/gopmm/internal/geometry"
)

// Outline returns the boundary segments to draw: solid edges minus the parts
// shared with void edges, followed by the void edges that remain inside
// material.
func (s *CrossSection) Outline() []geometry.Segment {
	var voidEdges []geometry.Segment
	for _, v := range s.Voids {
		voidEdges = append(voidEdges, v.Segments()...)
	}
	var solidEdges []geometry.Segment
	for _, r := range s.Solids {
		solidEdges = append(solidEdges, r.Segments()...)
	}

	out := subtractAll(solidEdges, voidEdges)
	out = append(out, subtractAll(voidEdges, solidEdges)...)
	return out
}

// subtractAll removes from every segment of a the collinear overlapping
// parts of the segments of b.
func subtractAll(a, b []geometry.Segment) []geometry.Segment {
	var out []geometry.Segment
	for _, seg := range a {
		pieces := []geometry.Segment{seg}
		for _, cut := range b {
			var next []geometry.Segment
			for _, p := range pieces {
				rest, ok := p.Subtract(cut)
				if ok {
					next = append(next, rest...)
				}
			}
			pieces = next
			if len(pieces) == 0 {
				break
			}
		}
		out = append(out, pieces...)
	}
	return out
}
