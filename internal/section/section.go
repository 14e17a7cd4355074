// Package section assembles meshed regions into an arbitrary concrete cross
// section expressed about its own centroid.
package section

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexiusacademia/gopmm/internal/geometry"
	"github.com/alexiusacademia/gopmm/internal/mesh"
)

// ErrEmptySection is returned when the voids remove every element.
var ErrEmptySection = errors.New("section has no material left after removing voids")

// CrossSection is a meshed section in centroidal coordinates.
//
// After construction every element and every region has been shifted by
// (-Origin.X, -Origin.Y), so the centroid is at (0, 0).
type CrossSection struct {
	Elements []mesh.Element
	Solids   []mesh.Shape
	Voids    []mesh.Shape

	Area float64 // mm²
	Ix   float64 // mm⁴, about the centroidal x axis
	Iy   float64 // mm⁴, about the centroidal y axis
	Ixy  float64 // mm⁴

	// Origin is the centroid in the input coordinates.
	Origin geometry.Node

	Discretization mesh.Discretization
}

// New meshes the solid regions, removes the voids and moves everything to
// the centroid. Regions are split by Sign.
func New(regions []mesh.Shape, d mesh.Discretization) (*CrossSection, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("discretization: %w", err)
	}
	s := &CrossSection{Discretization: d}
	for _, r := range regions {
		if r.Sign() == mesh.Void {
			s.Voids = append(s.Voids, r)
		} else {
			s.Solids = append(s.Solids, r)
		}
	}
	if len(s.Solids) == 0 {
		return nil, errors.New("section needs at least one solid region")
	}

	var elements []mesh.Element
	for _, r := range s.Solids {
		els, err := r.Mesh(d)
		if err != nil {
			return nil, err
		}
		elements = append(elements, els...)
	}
	elements, err := mesh.ApplyVoids(elements, s.Voids)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, ErrEmptySection
	}
	s.Elements = elements

	var sx, sy float64
	for _, e := range s.Elements {
		c := e.Centroid()
		s.Area += e.Area()
		sx += e.Area() * c.X
		sy += e.Area() * c.Y
	}
	if s.Area <= 0 || math.IsNaN(s.Area) {
		return nil, ErrEmptySection
	}
	s.Origin = geometry.Node{X: sx / s.Area, Y: sy / s.Area}
	s.translate(-s.Origin.X, -s.Origin.Y)

	for _, e := range s.Elements {
		c := e.Centroid()
		s.Ix += e.Area() * c.Y * c.Y
		s.Iy += e.Area() * c.X * c.X
		s.Ixy += e.Area() * c.X * c.Y
	}
	return s, nil
}

func (s *CrossSection) translate(dx, dy float64) {
	for _, e := range s.Elements {
		e.Translate(dx, dy)
	}
	for _, r := range s.Solids {
		r.Translate(dx, dy)
	}
	for _, r := range s.Voids {
		r.Translate(dx, dy)
	}
}

// ToCentroidal converts a point given in input coordinates.
func (s *CrossSection) ToCentroidal(n geometry.Node) geometry.Node {
	return n.Translate(-s.Origin.X, -s.Origin.Y)
}

// Extent returns the lowest and highest distance of the concrete boundary
// measured along the unit direction n.
func (s *CrossSection) Extent(n geometry.Vector) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, r := range s.Solids {
		a, b := r.Extent(n)
		lo = math.Min(lo, a)
		hi = math.Max(hi, b)
	}
	return lo, hi
}

// BoundingBox encloses every solid region.
func (s *CrossSection) BoundingBox() geometry.BoundingBox {
	box := s.Solids[0].BoundingBox()
	for _, r := range s.Solids[1:] {
		box = box.Union(r.BoundingBox())
	}
	return box
}

// FirstMoments returns Σ A·x and Σ A·y over the elements, both zero up to
// round-off once the section is centred.
func (s *CrossSection) FirstMoments() (sx, sy float64) {
	for _, e := range s.Elements {
		c := e.Centroid()
		sx += e.Area() * c.X
		sy += e.Area() * c.Y
	}
	return sx, sy
}
