// Package project reads the input document of a run and turns it into a
// meshed section and a configured solver.
package project

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gopmm/internal/aci"
	"github.com/alexiusacademia/gopmm/internal/geometry"
	"github.com/alexiusacademia/gopmm/internal/materials"
)

// Region types
const (
	Polygon  = "polygon"
	Circular = "circular"
)

// Project is the input document of a run.
type Project struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Regions        []Region       `json:"regions" yaml:"regions"`
	Discretization Discretization `json:"discretization,omitempty" yaml:"discretization,omitempty"`

	Bars    []Bar    `json:"bars,omitempty" yaml:"bars,omitempty"`
	Tendons []Tendon `json:"tendons,omitempty" yaml:"tendons,omitempty"`

	Materials materials.Config `json:"materials" yaml:"materials"`
	Phi       aci.PhiPolicy    `json:"phi" yaml:"phi"`

	// Angles are the loading-plane angles λ in degrees.
	Angles []float64 `json:"angles,omitempty" yaml:"angles,omitempty"`

	// Loads are the unfactored effects checked by the check command.
	Loads *aci.LoadEffects `json:"loads,omitempty" yaml:"loads,omitempty"`
}

// Region is one signed contour of the section.
type Region struct {
	Type  string          `json:"type" yaml:"type"`                     // polygon or circular
	Sign  string          `json:"sign,omitempty" yaml:"sign,omitempty"` // solid (default) or void
	Nodes []geometry.Node `json:"nodes,omitempty" yaml:"nodes,omitempty"`

	Center geometry.Node `json:"center,omitempty" yaml:"center,omitempty"`
	RInt   float64       `json:"r_int,omitempty" yaml:"r_int,omitempty"` // mm
	RExt   float64       `json:"r_ext,omitempty" yaml:"r_ext,omitempty"` // mm
	Start  float64       `json:"start,omitempty" yaml:"start,omitempty"` // degrees
	End    float64       `json:"end,omitempty" yaml:"end,omitempty"`     // degrees
}

// Discretization is either a preset name or explicit pitches, never both.
type Discretization struct {
	Preset      string  `json:"preset,omitempty" yaml:"preset,omitempty"`
	Dx          float64 `json:"dx,omitempty" yaml:"dx,omitempty"`         // mm
	Dy          float64 `json:"dy,omitempty" yaml:"dy,omitempty"`         // mm
	DTheta      float64 `json:"dtheta,omitempty" yaml:"dtheta,omitempty"` // degrees
	RadialBands int     `json:"radial_bands,omitempty" yaml:"radial_bands,omitempty"`
}

func (d Discretization) explicit() bool {
	return d.Dx != 0 || d.Dy != 0 || d.DTheta != 0 || d.RadialBands != 0
}

// Bar is a mild steel bar. Area wins over diameter when both are given.
type Bar struct {
	ID       string  `json:"id,omitempty" yaml:"id,omitempty"`
	X        float64 `json:"x" yaml:"x"`                                   // mm
	Y        float64 `json:"y" yaml:"y"`                                   // mm
	Diameter float64 `json:"diameter,omitempty" yaml:"diameter,omitempty"` // mm
	Area     float64 `json:"area,omitempty" yaml:"area,omitempty"`         // mm²
}

// Tendon is a bonded prestressing tendon.
type Tendon struct {
	Bar       `yaml:",inline"`
	Prestrain float64 `json:"prestrain" yaml:"prestrain"`
}

// ValidationError is a data-entry fault in the project document.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func invalid(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Validate checks the document. Material laws are checked by Build, once
// the reinforcement classes in use are known.
func (p *Project) Validate() error {
	if len(p.Regions) == 0 {
		return invalid("at least one region is required")
	}
	solid := false
	for i, r := range p.Regions {
		if err := r.validate(i); err != nil {
			return err
		}
		if r.Sign != "void" {
			solid = true
		}
	}
	if !solid {
		return invalid("at least one solid region is required")
	}

	d := p.Discretization
	if d.Preset != "" && d.explicit() {
		return invalid("discretization: give either a preset or explicit values, not both")
	}

	ids := make(map[string]bool)
	for i, b := range p.Bars {
		if err := b.validate("bar", i, ids); err != nil {
			return err
		}
	}
	for i, t := range p.Tendons {
		if err := t.validate("tendon", i, ids); err != nil {
			return err
		}
		if t.Prestrain < 0 {
			return invalid("tendon %d: prestrain must not be negative", i+1)
		}
	}

	for _, a := range p.Angles {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return invalid("loading angles must be finite numbers")
		}
	}
	return nil
}

func (r Region) validate(i int) error {
	switch r.Sign {
	case "", "solid", "void":
	default:
		return invalid("region %d: sign must be solid or void, got %q", i+1, r.Sign)
	}
	switch r.Type {
	case Polygon:
		if len(r.Nodes) < 3 {
			return invalid("region %d: a polygon needs at least 3 nodes", i+1)
		}
	case Circular:
		if r.RExt <= 0 {
			return invalid("region %d: outer radius must be positive", i+1)
		}
	default:
		return invalid("region %d: type must be %s or %s, got %q", i+1, Polygon, Circular, r.Type)
	}
	return nil
}

func (b Bar) validate(kind string, i int, ids map[string]bool) error {
	if b.Area <= 0 && b.Diameter <= 0 {
		return invalid("%s %d: give a positive diameter or area", kind, i+1)
	}
	if b.ID == "" {
		return nil
	}
	if ids[b.ID] {
		return invalid("%s %d: duplicate id %q", kind, i+1, b.ID)
	}
	ids[b.ID] = true
	return nil
}

// LoadingAngles returns the angles to run, λ = 0 when none are given.
func (p *Project) LoadingAngles() []float64 {
	if len(p.Angles) == 0 {
		return []float64{0}
	}
	return p.Angles
}
