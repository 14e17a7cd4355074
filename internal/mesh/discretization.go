package mesh

import (
	"fmt"

	"github.com/alexiusacademia/gopmm/internal/geometry"
)

// Preset names a coarseness level of the mesh.
type Preset string

const (
	VeryCoarse Preset = "very-coarse"
	Coarse     Preset = "coarse"
	Medium     Preset = "medium"
	Fine       Preset = "fine"
	VeryFine   Preset = "very-fine"
)

// Presets lists the coarseness levels from coarse to fine.
var Presets = []Preset{VeryCoarse, Coarse, Medium, Fine, VeryFine}

// presetTable maps a preset to the number of cells across the section
// bounding box, the number of radial bands and the sector angle in degrees.
var presetTable = map[Preset]struct {
	divisor float64
	bands   int
	dTheta  float64
}{
	VeryCoarse: {8, 3, 30},
	Coarse:     {15, 5, 20},
	Medium:     {25, 8, 12},
	Fine:       {40, 12, 8},
	VeryFine:   {60, 18, 5},
}

// Discretization holds the mesh pitch.
type Discretization struct {
	Dx          float64 // mm
	Dy          float64 // mm
	DTheta      float64 // degrees
	RadialBands int
}

// FromPreset derives the pitch from the section bounding box.
func FromPreset(p Preset, box geometry.BoundingBox) (Discretization, error) {
	row, ok := presetTable[p]
	if !ok {
		return Discretization{}, fmt.Errorf("unknown discretization preset %q (use one of %v)", p, Presets)
	}
	if box.Width() <= 0 || box.Height() <= 0 {
		return Discretization{}, fmt.Errorf("section bounding box %.3f x %.3f mm has no area", box.Width(), box.Height())
	}
	return Discretization{
		Dx:          box.Width() / row.divisor,
		Dy:          box.Height() / row.divisor,
		DTheta:      row.dTheta,
		RadialBands: row.bands,
	}, nil
}

// Validate rejects contradictory or non-positive values.
func (d Discretization) Validate() error {
	switch {
	case d.Dx <= 0 || d.Dy <= 0:
		return fmt.Errorf("cell size must be positive, got dx=%.3f dy=%.3f", d.Dx, d.Dy)
	case d.DTheta <= 0 || d.DTheta > 180:
		return fmt.Errorf("sector angle must be in (0, 180] degrees, got %.3f", d.DTheta)
	case d.RadialBands < 1:
		return fmt.Errorf("radial bands must be at least 1, got %d", d.RadialBands)
	}
	return nil
}
