package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopmm/internal/diagram"
)

var (
	sectionPropertiesFile string
	sectionPropertiesPlot string
)

var sectionPropertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "Print the properties of a meshed section",
	Long: `Mesh the section of a project file and print its gross area,
centroid, second moments of area and reinforcement ratios.

Examples:
  gopmm section properties --file column.yaml
  gopmm section properties -f pile.json --plot pile-mesh.png`,
	RunE: runSectionProperties,
}

func init() {
	sectionCmd.AddCommand(sectionPropertiesCmd)

	sectionPropertiesCmd.Flags().StringVarP(&sectionPropertiesFile, "file", "f", "", "Path to project file (.json, .yaml) [required]")
	sectionPropertiesCmd.MarkFlagRequired("file")

	sectionPropertiesCmd.Flags().StringVarP(&sectionPropertiesPlot, "plot", "p", "", "Export the mesh to an image (png, svg, pdf)")
}

func runSectionProperties(cmd *cobra.Command, args []string) error {
	m, logger, err := loadModel(sectionPropertiesFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	out := cmd.OutOrStdout()
	props := m.Properties()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "     SECTION PROPERTIES")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)
	if m.Project.Name != "" {
		fmt.Fprintf(out, "  Section: %s\n", m.Project.Name)
	}
	if m.Project.Description != "" {
		fmt.Fprintf(out, "  Description: %s\n", m.Project.Description)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "SECTION GEOMETRY:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Bounding box:\t%.0f x %.0f mm\n", props.Width, props.Height)
	fmt.Fprintf(w, "  Gross area (Ag):\t%.0f mm²\n", props.Area)
	fmt.Fprintf(w, "  Centroid:\t(%.2f, %.2f) mm\n", m.Section.Origin.X, m.Section.Origin.Y)
	fmt.Fprintf(w, "  Ix:\t%.4e mm⁴\n", props.Ix)
	fmt.Fprintf(w, "  Iy:\t%.4e mm⁴\n", props.Iy)
	fmt.Fprintf(w, "  Ixy:\t%.4e mm⁴\n", props.Ixy)
	fmt.Fprintf(w, "  Regions:\t%d solid, %d void\n", len(m.Section.Solids), len(m.Section.Voids))
	fmt.Fprintf(w, "  Elements:\t%d\n", props.Elements)
	w.Flush()
	fmt.Fprintln(out)

	if len(m.Bars)+len(m.Tendons) > 0 {
		fmt.Fprintln(out, "REINFORCEMENT:")
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  ID\tX (mm)\tY (mm)\tArea (mm²)\tType\n")
		fmt.Fprintf(w, "  ──\t──────\t──────\t──────────\t────\n")
		for _, b := range m.Bars {
			fmt.Fprintf(w, "  %s\t%.1f\t%.1f\t%.2f\tmild\n", b.ID, b.Position.X, b.Position.Y, b.Area)
		}
		for _, t := range m.Solver.Tendons() {
			fmt.Fprintf(w, "  %s\t%.1f\t%.1f\t%.2f\tprestressed (εpe %.5f, εdec %.6f)\n",
				t.ID, t.Position.X+m.Section.Origin.X, t.Position.Y+m.Section.Origin.Y, t.Area, t.Prestrain, t.Decompression)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	fmt.Fprint(out, diagram.DrawSummaryBox("REINFORCEMENT RATIOS", []string{
		fmt.Sprintf("As  = %.1f mm²   ρ  = %.4f", props.MildSteelArea, props.RhoMild),
		fmt.Sprintf("Aps = %.1f mm²   ρp = %.4f", props.PrestressedSteelArea, props.RhoPrestressed),
		fmt.Sprintf("Pn,max = %.1f kN", m.Solver.Cap()/1e3),
	}))
	fmt.Fprintln(out)

	if sectionPropertiesPlot != "" {
		if err := diagram.ExportMesh(m.Section, m.Solver.Bars(), m.Solver.Tendons(), sectionPropertiesPlot); err != nil {
			return fmt.Errorf("export mesh: %w", err)
		}
		fmt.Fprintf(out, "Mesh exported to: %s\n", sectionPropertiesPlot)
	}
	return nil
}
