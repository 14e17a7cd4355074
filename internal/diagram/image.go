package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gopmm/internal/interaction"
	"github.com/alexiusacademia/gopmm/internal/rebar"
	"github.com/alexiusacademia/gopmm/internal/section"
)

// ExportInteraction plots the P–M curve of one loading angle: nominal points
// in grey, design points coloured by plane family and the axial cap as a
// dashed line. Compression is drawn upwards.
func ExportInteraction(d *interaction.Diagram, filename string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("P-M Interaction Diagram (λ = %.1f°)", d.Lambda)
	p.X.Label.Text = "Moment along λ (kN-m)"
	p.Y.Label.Text = "Axial compression (kN)"
	p.Add(plotter.NewGrid())

	var nominal plotter.XYs
	byFamily := make(map[int]plotter.XYs)
	for _, pt := range d.Points {
		if !pt.Clamped {
			nominal = append(nominal, plotter.XY{X: pt.MomentAlong(d.Lambda) / 1e6, Y: -pt.P / 1e3})
		}
	}
	for _, pt := range d.Envelope() {
		byFamily[pt.Family] = append(byFamily[pt.Family], plotter.XY{
			X: pt.Phi * pt.MomentAlong(d.Lambda) / 1e6,
			Y: -pt.PhiP() / 1e3,
		})
	}
	if len(nominal) == 0 {
		return fmt.Errorf("diagram at λ = %.1f° has no points", d.Lambda)
	}

	nom, err := plotter.NewScatter(nominal)
	if err != nil {
		return err
	}
	nom.GlyphStyle.Color = color.Gray{Y: 170}
	nom.GlyphStyle.Radius = vg.Points(1.5)
	nom.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(nom)
	p.Legend.Add("Nominal", nom)

	families := make([]int, 0, len(byFamily))
	for f := range byFamily {
		families = append(families, f)
	}
	sort.Ints(families)
	for _, f := range families {
		s, err := plotter.NewScatter(byFamily[f])
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = hexToRGBA(interaction.FamilyColor(f))
		s.GlyphStyle.Radius = vg.Points(2)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("Family %d", f), s)
	}

	if d.Cap > 0 {
		x0, x1 := momentRange(nominal)
		capLine, err := plotter.NewLine(plotter.XYs{{X: x0, Y: d.Cap / 1e3}, {X: x1, Y: d.Cap / 1e3}})
		if err != nil {
			return err
		}
		capLine.LineStyle.Color = color.RGBA{R: 255, A: 255}
		capLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(capLine)
		p.Legend.Add("Pn,max", capLine)
	}
	p.Legend.Top = true

	return save(p, filename, 8*vg.Inch, 8*vg.Inch)
}

// ExportMomentPlane plots the design moments of several loading angles in
// the Mx–My plane.
func ExportMomentPlane(diagrams []*interaction.Diagram, filename string) error {
	p := plot.New()
	p.Title.Text = "Design Moments"
	p.X.Label.Text = "φMx (kN-m)"
	p.Y.Label.Text = "φMy (kN-m)"
	p.Add(plotter.NewGrid())

	var n int
	for _, d := range diagrams {
		var pts plotter.XYs
		for _, pt := range d.Envelope() {
			pts = append(pts, plotter.XY{X: pt.PhiMx() / 1e6, Y: pt.PhiMy() / 1e6})
		}
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		s.GlyphStyle.Radius = vg.Points(1.5)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Color = plotutil.Color(n)
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("λ = %.0f°", d.Lambda), s)
		n++
	}
	if n == 0 {
		return fmt.Errorf("no diagram points to plot")
	}
	return save(p, filename, 8*vg.Inch, 8*vg.Inch)
}

// ExportMesh draws the section outline, the element centroids and the
// reinforcement in centroidal coordinates.
func ExportMesh(sec *section.CrossSection, bars []rebar.Bar, tendons []rebar.Tendon, filename string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Section Mesh (%d elements)", len(sec.Elements))
	p.X.Label.Text = "x (mm)"
	p.Y.Label.Text = "y (mm)"

	for _, seg := range sec.Outline() {
		l, err := plotter.NewLine(plotter.XYs{{X: seg.P.X, Y: seg.P.Y}, {X: seg.Q.X, Y: seg.Q.Y}})
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(2)
		l.LineStyle.Color = color.Black
		p.Add(l)
	}

	centroids := make(plotter.XYs, len(sec.Elements))
	for i, e := range sec.Elements {
		c := e.Centroid()
		centroids[i] = plotter.XY{X: c.X, Y: c.Y}
	}
	cs, err := plotter.NewScatter(centroids)
	if err != nil {
		return err
	}
	cs.GlyphStyle.Color = color.RGBA{R: 100, G: 149, B: 237, A: 255}
	cs.GlyphStyle.Radius = vg.Points(0.8)
	p.Add(cs)

	if len(bars) > 0 {
		pts := make(plotter.XYs, len(bars))
		for i, b := range bars {
			pts[i] = plotter.XY{X: b.Position.X, Y: b.Position.Y}
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = color.RGBA{R: 139, G: 69, B: 19, A: 255}
		s.GlyphStyle.Radius = vg.Points(4)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add("Bars", s)
	}
	if len(tendons) > 0 {
		pts := make(plotter.XYs, len(tendons))
		for i, t := range tendons {
			pts[i] = plotter.XY{X: t.Position.X, Y: t.Position.Y}
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = color.RGBA{R: 178, G: 34, B: 34, A: 255}
		s.GlyphStyle.Radius = vg.Points(4)
		s.GlyphStyle.Shape = draw.PyramidGlyph{}
		p.Add(s)
		p.Legend.Add("Tendons", s)
	}

	box := sec.BoundingBox()
	side := max(box.Width(), box.Height())/2 + 20
	p.X.Min, p.X.Max = -side, side
	p.Y.Min, p.Y.Max = -side, side

	return save(p, filename, 8*vg.Inch, 8*vg.Inch)
}

// save writes the plot in the format given by the file extension; unknown
// extensions get ".png" appended.
func save(p *plot.Plot, filename string, width, height vg.Length) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

func momentRange(pts plotter.XYs) (float64, float64) {
	lo, hi := pts[0].X, pts[0].X
	for _, pt := range pts {
		lo = min(lo, pt.X)
		hi = max(hi, pt.X)
	}
	return lo, hi
}

func hexToRGBA(s string) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
