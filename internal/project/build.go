package project

import (
	"fmt"

	"github.com/alexiusacademia/gopmm/internal/geometry"
	"github.com/alexiusacademia/gopmm/internal/interaction"
	"github.com/alexiusacademia/gopmm/internal/materials"
	"github.com/alexiusacademia/gopmm/internal/mesh"
	"github.com/alexiusacademia/gopmm/internal/rebar"
	"github.com/alexiusacademia/gopmm/internal/section"
)

// DefaultPreset is used when the document gives no discretization.
const DefaultPreset = mesh.Medium

const (
	defaultDTheta      = 12.0 // degrees
	defaultRadialBands = 8
)

// Model is a built project, ready to compute diagrams.
type Model struct {
	Project *Project
	Section *section.CrossSection
	Solver  *interaction.Solver

	// Bars and tendons in input coordinates.
	Bars    []rebar.Bar
	Tendons []rebar.Tendon
}

// Properties returns the section summary with the reinforcement ratios.
func (m *Model) Properties() section.Properties {
	return m.Section.Properties(rebar.TotalArea(m.Bars), rebar.TotalTendonArea(m.Tendons))
}

// Build turns the document into a model. Phases run in order and the first
// fault stops the build: materials, regions, mesh and section, reinforcement,
// solver.
func (p *Project) Build(opts ...interaction.Option) (*Model, error) {
	if err := p.Materials.Validate(len(p.Bars) > 0, len(p.Tendons) > 0); err != nil {
		return nil, err
	}
	if err := p.Phi.Validate(); err != nil {
		return nil, &materials.ConfigError{Material: "strength reduction", Msg: err.Error()}
	}

	shapes, err := p.shapes()
	if err != nil {
		return nil, err
	}
	d, err := p.discretization(shapes)
	if err != nil {
		return nil, err
	}
	sec, err := section.New(shapes, d)
	if err != nil {
		return nil, err
	}

	m := &Model{Project: p, Section: sec}
	for i, b := range p.Bars {
		bar, err := rebar.NewBar(barID(b.ID, "B", i), geometry.Node{X: b.X, Y: b.Y}, b.Diameter, b.Area, *p.Materials.Mild)
		if err != nil {
			return nil, invalid("%v", err)
		}
		m.Bars = append(m.Bars, bar)
	}
	for i, t := range p.Tendons {
		tendon, err := rebar.NewTendon(barID(t.ID, "T", i), geometry.Node{X: t.X, Y: t.Y}, t.Diameter, t.Area, t.Prestrain, *p.Materials.Prestressed)
		if err != nil {
			return nil, invalid("%v", err)
		}
		m.Tendons = append(m.Tendons, tendon)
	}

	m.Solver, err = interaction.NewSolver(sec, m.Bars, m.Tendons, p.Materials, p.Phi, opts...)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func barID(id, prefix string, i int) string {
	if id != "" {
		return id
	}
	return fmt.Sprintf("%s%d", prefix, i+1)
}

func (p *Project) shapes() ([]mesh.Shape, error) {
	shapes := make([]mesh.Shape, 0, len(p.Regions))
	for i, r := range p.Regions {
		sign := mesh.Solid
		if r.Sign == "void" {
			sign = mesh.Void
		}
		var (
			s   mesh.Shape
			err error
		)
		if r.Type == Circular {
			s, err = mesh.NewCircularRegion(i, sign, r.Center, r.RInt, r.RExt, r.Start, r.End)
		} else {
			s, err = mesh.NewRegion(i, sign, r.Nodes)
		}
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

// discretization resolves the preset against the bounding box of the solid
// regions.
func (p *Project) discretization(shapes []mesh.Shape) (mesh.Discretization, error) {
	d := p.Discretization
	if d.explicit() {
		out := mesh.Discretization{Dx: d.Dx, Dy: d.Dy, DTheta: d.DTheta, RadialBands: d.RadialBands}
		// polygon-only sections may omit the circular pitch
		if out.DTheta == 0 {
			out.DTheta = defaultDTheta
		}
		if out.RadialBands == 0 {
			out.RadialBands = defaultRadialBands
		}
		if err := out.Validate(); err != nil {
			return mesh.Discretization{}, invalid("discretization: %v", err)
		}
		return out, nil
	}

	preset := mesh.Preset(d.Preset)
	if preset == "" {
		preset = DefaultPreset
	}
	var (
		box   geometry.BoundingBox
		first = true
	)
	for _, s := range shapes {
		if s.Sign() == mesh.Void {
			continue
		}
		if first {
			box, first = s.BoundingBox(), false
		} else {
			box = box.Union(s.BoundingBox())
		}
	}
	out, err := mesh.FromPreset(preset, box)
	if err != nil {
		return mesh.Discretization{}, invalid("discretization: %v", err)
	}
	return out, nil
}
