package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gopmm/internal/aci"
	"github.com/alexiusacademia/gopmm/internal/geometry"
	"github.com/alexiusacademia/gopmm/internal/materials"
	"github.com/alexiusacademia/gopmm/internal/mesh"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSONAndYAMLAgree(t *testing.T) {
	fromJSON, err := LoadFromFile("testdata/column.json")
	require.NoError(t, err)
	fromYAML, err := LoadFromFile("testdata/column.yaml")
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
	assert.Equal(t, "C1 400x400", fromJSON.Name)
	assert.Len(t, fromJSON.Bars, 4)
	assert.Equal(t, []float64{0, 45}, fromJSON.LoadingAngles())
	require.NotNil(t, fromJSON.Loads)
	assert.Equal(t, -800.0, fromJSON.Loads.Dead.P)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "column.toml", "name = 'x'")
	_, err := LoadFromFile(path)
	assert.ErrorContains(t, err, "unsupported project file extension")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "none.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "unknown field",
			doc:  `{"regions": [{"type": "polygon", "nodes": []}], "materials": {"concrete": {"fc": 28}}, "phi": {"mode": "fixed", "value": 0.7}, "colour": "red"}`,
			want: "colour",
		},
		{
			name: "missing materials",
			doc:  `{"regions": [{"type": "polygon", "nodes": []}], "phi": {"mode": "fixed", "value": 0.7}}`,
			want: "materials",
		},
		{
			name: "bad region type",
			doc:  `{"regions": [{"type": "ellipse"}], "materials": {"concrete": {"fc": 28}}, "phi": {"mode": "fixed", "value": 0.7}}`,
			want: "regions.0.type",
		},
		{
			name: "bad preset",
			doc:  `{"regions": [{"type": "circular", "r_ext": 100}], "discretization": {"preset": "extreme"}, "materials": {"concrete": {"fc": 28}}, "phi": {"mode": "fixed", "value": 0.7}}`,
			want: "preset",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.doc))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseYAMLEmpty(t *testing.T) {
	_, err := ParseYAML([]byte("\n"))
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestParseJSONSyntax(t *testing.T) {
	_, err := ParseJSON([]byte(`{"regions": [`))
	assert.ErrorContains(t, err, "parse project")
}

var tiedPolicy = aci.PhiPolicy{Mode: aci.PhiACI19, Transverse: aci.Ties}

func validProject() *Project {
	return &Project{
		Name: "test",
		Regions: []Region{{
			Type:  Polygon,
			Nodes: []geometry.Node{{X: 0, Y: 0}, {X: 300, Y: 0}, {X: 300, Y: 300}, {X: 0, Y: 300}},
		}},
		Discretization: Discretization{Preset: string(mesh.VeryCoarse)},
		Bars: []Bar{
			{X: 50, Y: 50, Diameter: 20}, {X: 250, Y: 50, Diameter: 20},
			{X: 250, Y: 250, Diameter: 20}, {X: 50, Y: 250, Diameter: 20},
		},
		Materials: materials.Config{
			Concrete: materials.Concrete{Fc: 25},
			Mild:     &materials.MildSteel{Fy: 420, EpsilonSU: 0.01},
		},
		Phi: tiedPolicy,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *Project)
		want   string
	}{
		{"no regions", func(p *Project) { p.Regions = nil }, "at least one region"},
		{"only voids", func(p *Project) { p.Regions[0].Sign = "void" }, "solid region"},
		{"bad sign", func(p *Project) { p.Regions[0].Sign = "hollow" }, "sign must be"},
		{"short polygon", func(p *Project) { p.Regions[0].Nodes = p.Regions[0].Nodes[:2] }, "at least 3 nodes"},
		{"circle without radius", func(p *Project) { p.Regions[0] = Region{Type: Circular} }, "outer radius"},
		{"preset and explicit", func(p *Project) { p.Discretization.Dx = 20 }, "not both"},
		{"bar without size", func(p *Project) { p.Bars[0].Diameter = 0 }, "bar 1"},
		{"duplicate ids", func(p *Project) { p.Bars[0].ID, p.Bars[1].ID = "A", "A" }, "duplicate id"},
		{"negative prestrain", func(p *Project) {
			p.Tendons = []Tendon{{Bar: Bar{X: 150, Y: 150, Area: 100}, Prestrain: -0.001}}
		}, "prestrain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProject()
			tt.modify(p)
			err := p.Validate()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
	assert.NoError(t, validProject().Validate())
}

func TestBuildColumn(t *testing.T) {
	p, err := LoadFromFile("testdata/column.json")
	require.NoError(t, err)
	m, err := p.Build()
	require.NoError(t, err)

	assert.InDelta(t, 160000, m.Section.Area, 1e-6)
	assert.InDelta(t, 200, m.Section.Origin.X, 1e-6)
	assert.InDelta(t, 200, m.Section.Origin.Y, 1e-6)
	require.Len(t, m.Bars, 4)
	assert.Equal(t, "B3", m.Bars[2].ID)
	assert.InDelta(t, 340, m.Bars[2].Position.X, 1e-9, "model keeps input coordinates")

	props := m.Properties()
	assert.InDelta(t, 4*490.87, props.MildSteelArea, 0.1)
	assert.InDelta(t, props.MildSteelArea/160000, props.RhoMild, 1e-12)
	assert.Equal(t, 700, len(m.Solver.Planes()))
}

func TestBuildDefaultBarIDs(t *testing.T) {
	m, err := validProject().Build()
	require.NoError(t, err)
	assert.Equal(t, "B1", m.Bars[0].ID)
	assert.Equal(t, "B4", m.Bars[3].ID)
}

func TestBuildHollowPrestressedPile(t *testing.T) {
	p, err := LoadFromFile("testdata/pile.yaml")
	require.NoError(t, err)
	m, err := p.Build()
	require.NoError(t, err)

	assert.Empty(t, m.Bars)
	require.Len(t, m.Solver.Tendons(), 4)
	for _, tendon := range m.Solver.Tendons() {
		assert.Greater(t, tendon.Decompression, 0.0)
	}
	assert.Less(t, m.Section.Area, 3.1416*(300*300-150*150)*1.01)
	assert.Greater(t, m.Section.Area, 3.1416*(300*300-150*150)*0.95)
}

func TestBuildChecksMaterialsBeforeGeometry(t *testing.T) {
	p := validProject()
	p.Materials.Concrete.Fc = 0
	p.Regions[0].Nodes = []geometry.Node{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}

	_, err := p.Build()
	var cerr *materials.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "concrete", cerr.Material)
}

func TestBuildMissingSteel(t *testing.T) {
	p := validProject()
	p.Materials.Mild = nil
	_, err := p.Build()
	var cerr *materials.ConfigError
	assert.ErrorAs(t, err, &cerr)
}

func TestBuildBadPhi(t *testing.T) {
	p := validProject()
	p.Phi.Mode = "lenient"
	_, err := p.Build()
	var cerr *materials.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "strength reduction", cerr.Material)
}

func TestBuildRegionFault(t *testing.T) {
	p := validProject()
	p.Regions = append(p.Regions, Region{Type: Circular, Sign: "void", Center: geometry.Node{X: 150, Y: 150}, RInt: 50, RExt: 40})
	_, err := p.Build()
	var rerr *mesh.RegionError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 1, rerr.Index)
}

func TestBuildExplicitDiscretizationDefaults(t *testing.T) {
	p := validProject()
	p.Discretization = Discretization{Dx: 30, Dy: 30}
	m, err := p.Build()
	require.NoError(t, err)
	assert.Equal(t, 100, len(m.Section.Elements))
	assert.Equal(t, defaultRadialBands, m.Section.Discretization.RadialBands)
}
