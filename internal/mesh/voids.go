package mesh

import (
	"github.com/alexiusacademia/gopmm/internal/geometry"
)

// ApplyVoids removes void material from the elements. Elements entirely
// inside a void are dropped; partial overlaps are subtracted and the element
// is kept only while some area remains.
func ApplyVoids(elements []Element, voids []Shape) ([]Element, error) {
	if len(voids) == 0 {
		return elements, nil
	}
	out := make([]Element, 0, len(elements))
	for _, e := range elements {
		kept, err := applyVoids(e, voids)
		if err != nil {
			return nil, err
		}
		if kept != nil {
			out = append(out, kept)
		}
	}
	return out, nil
}

func applyVoids(e Element, voids []Shape) (Element, error) {
	for _, v := range voids {
		outline := v.Outline()
		if !overlaps(e.Boundary().BoundingBox(), outline.BoundingBox()) {
			continue
		}
		inside, err := outline.ContainsPolygon(e.Boundary())
		if err != nil {
			return nil, err
		}
		if inside {
			return nil, nil
		}
		e, err = e.Subtract(outline)
		if err != nil {
			return nil, err
		}
		if e == nil {
			return nil, nil
		}
	}
	return e, nil
}

func overlaps(a, b geometry.BoundingBox) bool {
	return a.MinX <= b.MaxX+geometry.Epsilon && b.MinX <= a.MaxX+geometry.Epsilon &&
		a.MinY <= b.MaxY+geometry.Epsilon && b.MinY <= a.MaxY+geometry.Epsilon
}
