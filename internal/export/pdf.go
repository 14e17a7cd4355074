package export

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/alexiusacademia/gopmm/internal/interaction"
	"github.com/alexiusacademia/gopmm/internal/section"
)

// Report is the content of the PDF summary.
type Report struct {
	Title      string
	Project    string
	Properties section.Properties
	Diagrams   []*interaction.Diagram
	Checks     []interaction.Check
	Date       time.Time
}

// WriteReport renders a one or two page summary: section properties, one
// line per loading angle and the demand checks. Core PDF fonts are Latin-1,
// so Greek symbols are spelled out.
func WriteReport(w io.Writer, r Report) error {
	if r.Date.IsZero() {
		r.Date = time.Now()
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(r.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, r.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", r.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", r.Date.Format("2006-01-02")))
	pdf.Ln(10)

	heading(pdf, "Section properties")
	p := r.Properties
	table(pdf, []float64{70, 50, 30}, nil, [][]string{
		{"Bounding box", fmt.Sprintf("%.0f x %.0f", p.Width, p.Height), "mm"},
		{"Area", fmt.Sprintf("%.0f", p.Area), "mm2"},
		{"Ix", fmt.Sprintf("%.4g", p.Ix), "mm4"},
		{"Iy", fmt.Sprintf("%.4g", p.Iy), "mm4"},
		{"Ixy", fmt.Sprintf("%.4g", p.Ixy), "mm4"},
		{"Elements", fmt.Sprintf("%d", p.Elements), ""},
		{"Mild steel", fmt.Sprintf("%.0f (rho = %.4f)", p.MildSteelArea, p.RhoMild), "mm2"},
		{"Prestressing steel", fmt.Sprintf("%.0f (rho = %.4f)", p.PrestressedSteelArea, p.RhoPrestressed), "mm2"},
	})

	if len(r.Diagrams) > 0 {
		heading(pdf, "Interaction diagrams")
		header := []string{"lambda (deg)", "Points", "Dropped", "Pn,max (kN)", "max phiMn (kN-m)"}
		var rows [][]string
		for _, d := range r.Diagrams {
			var mMax float64
			for _, pt := range d.Envelope() {
				mMax = math.Max(mMax, pt.Phi*pt.MomentAlong(d.Lambda))
			}
			rows = append(rows, []string{
				fmt.Sprintf("%.1f", d.Lambda),
				fmt.Sprintf("%d", d.Solved),
				fmt.Sprintf("%d", len(d.Dropped)),
				fmt.Sprintf("%.1f", d.Cap/1e3),
				fmt.Sprintf("%.1f", mMax/1e6),
			})
		}
		table(pdf, []float64{30, 25, 25, 35, 40}, header, rows)
	}

	if len(r.Checks) > 0 {
		heading(pdf, "Demand checks")
		header := []string{"Combination", "Pu (kN)", "Mu (kN-m)", "lambda", "phiMn (kN-m)", "Ratio", "Status"}
		var rows [][]string
		for _, c := range r.Checks {
			status := "OK"
			if !c.OK {
				status = "FAIL"
			}
			ratio := fmt.Sprintf("%.3f", c.Ratio)
			if math.IsInf(c.Ratio, 1) {
				ratio = "-"
			}
			rows = append(rows, []string{
				c.Demand.Combination.Description,
				fmt.Sprintf("%.1f", c.Demand.P),
				fmt.Sprintf("%.1f", c.Demand.Moment()),
				fmt.Sprintf("%.1f", c.Lambda),
				fmt.Sprintf("%.1f", c.PhiMn/1e6),
				ratio,
				status,
			})
		}
		table(pdf, []float64{55, 20, 22, 16, 27, 16, 16}, header, rows)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, text)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
}

func table(pdf *gofpdf.Fpdf, widths []float64, header []string, rows [][]string) {
	if header != nil {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range header {
			pdf.CellFormat(widths[i], 6, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}
	for _, row := range rows {
		for i, v := range row {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, v, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}
