// Package export writes analysis results to spreadsheets and PDF reports.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gopmm/internal/interaction"
	"github.com/alexiusacademia/gopmm/internal/section"
)

const propertiesSheet = "Properties"

var pointHeader = []interface{}{
	"Sequence", "Family", "Theta (deg)",
	"Pn (kN)", "Mnx (kN-m)", "Mny (kN-m)", "Phi",
	"PhiPn (kN)", "PhiMnx (kN-m)", "PhiMny (kN-m)",
	"Net tensile strain", "Capped", "Clamped", "Color",
}

// WriteWorkbook writes the section properties and one sheet of points per
// loading angle.
func WriteWorkbook(w io.Writer, props section.Properties, diagrams []*interaction.Diagram) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", propertiesSheet); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Property", "Value", "Unit"},
		{"Width", props.Width, "mm"},
		{"Height", props.Height, "mm"},
		{"Area", props.Area, "mm²"},
		{"Ix", props.Ix, "mm⁴"},
		{"Iy", props.Iy, "mm⁴"},
		{"Ixy", props.Ixy, "mm⁴"},
		{"Elements", props.Elements, ""},
		{"Mild steel area", props.MildSteelArea, "mm²"},
		{"Prestressing steel area", props.PrestressedSteelArea, "mm²"},
		{"Mild steel ratio", props.RhoMild, ""},
		{"Prestressing steel ratio", props.RhoPrestressed, ""},
	}
	if err := writeRows(f, propertiesSheet, rows); err != nil {
		return err
	}

	for _, d := range diagrams {
		sheet := fmt.Sprintf("Lambda %g", d.Lambda)
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		rows := [][]interface{}{
			{"Run", d.RunID},
			{"Loading angle (deg)", d.Lambda},
			{"Pn,max (kN)", d.Cap / 1e3},
			{"Solved planes", d.Solved},
			{"Dropped planes", len(d.Dropped)},
			{},
			pointHeader,
		}
		for _, p := range d.Points {
			rows = append(rows, []interface{}{
				p.Sequence, p.Family, p.Theta,
				p.P / 1e3, p.Mx / 1e6, p.My / 1e6, p.Phi,
				p.PhiP() / 1e3, p.PhiMx() / 1e6, p.PhiMy() / 1e6,
				p.EpsilonT, p.IsCapped, p.Clamped, p.Color,
			})
		}
		if err := writeRows(f, sheet, rows); err != nil {
			return err
		}
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      7,
			TopLeftCell: "A8",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
