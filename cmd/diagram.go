package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopmm/internal/diagram"
	"github.com/alexiusacademia/gopmm/internal/export"
	"github.com/alexiusacademia/gopmm/internal/interaction"
)

var (
	diagramFile        string
	diagramAngles      []float64
	diagramShowASCII   bool
	diagramShowPoints  bool
	diagramPlotFile    string
	diagramMomentsFile string
	diagramXLSXFile    string
	diagramPDFFile     string
)

var diagramCmd = &cobra.Command{
	Use:   "diagram",
	Short: "Compute P-M-M interaction diagrams",
	Long: `Compute the interaction diagram of a section for one or more
loading-plane angles λ. λ is the direction of the moment vector,
measured from the x axis: λ = 0 bends about x, λ = 90 about y.
Angles are used as given and not folded through |λ|: λ and -λ are
mirror loading planes with separate diagrams, while λ and λ + 180
name the same plane. The neutral axis search starts at θ = λ.

Each diagram is built from 700 strain planes covering pure
compression to pure tension. Planes whose neutral axis search does
not converge are dropped and counted.

Examples:
  gopmm diagram --file column.yaml
  gopmm diagram -f column.yaml --angle 0 --angle 45 --ascii
  gopmm diagram -f column.yaml --plot pm.png --xlsx points.xlsx --pdf report.pdf`,
	RunE: runDiagram,
}

func init() {
	rootCmd.AddCommand(diagramCmd)

	diagramCmd.Flags().StringVarP(&diagramFile, "file", "f", "", "Path to project file (.json, .yaml) [required]")
	diagramCmd.MarkFlagRequired("file")
	diagramCmd.Flags().Float64SliceVarP(&diagramAngles, "angle", "a", nil, "Loading-plane angle λ in degrees (overrides the project angles)")

	// Output options
	diagramCmd.Flags().BoolVar(&diagramShowASCII, "ascii", false, "Show ASCII plot of φMn against φPn")
	diagramCmd.Flags().BoolVar(&diagramShowPoints, "points", false, "List every point of the design envelope")
	diagramCmd.Flags().StringVarP(&diagramPlotFile, "plot", "p", "", "Export each diagram to an image (png, svg, pdf)")
	diagramCmd.Flags().StringVar(&diagramMomentsFile, "moments", "", "Export the Mx-My traces of all angles to an image")
	diagramCmd.Flags().StringVar(&diagramXLSXFile, "xlsx", "", "Write the points to an Excel workbook")
	diagramCmd.Flags().StringVar(&diagramPDFFile, "pdf", "", "Write a PDF summary report")
}

func runDiagram(cmd *cobra.Command, args []string) error {
	m, logger, err := loadModel(diagramFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	angles := m.Project.LoadingAngles()
	if len(diagramAngles) > 0 {
		angles = diagramAngles
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "     P-M-M INTERACTION DIAGRAM - ACI 318")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)
	if m.Project.Name != "" {
		fmt.Fprintf(out, "  Section: %s\n\n", m.Project.Name)
	}

	diagrams := make([]*interaction.Diagram, 0, len(angles))
	for _, lambda := range angles {
		d, err := m.Solver.Diagram(lambda)
		if err != nil {
			return err
		}
		diagrams = append(diagrams, d)
		printDiagram(cmd, d)

		if diagramPlotFile != "" {
			name := plotName(diagramPlotFile, lambda, len(angles))
			if err := diagram.ExportInteraction(d, name); err != nil {
				return fmt.Errorf("export diagram: %w", err)
			}
			fmt.Fprintf(out, "Diagram exported to: %s\n\n", name)
		}
	}

	if diagramMomentsFile != "" {
		if err := diagram.ExportMomentPlane(diagrams, diagramMomentsFile); err != nil {
			return fmt.Errorf("export moments: %w", err)
		}
		fmt.Fprintf(out, "Moment traces exported to: %s\n", diagramMomentsFile)
	}
	if diagramXLSXFile != "" {
		if err := writeFile(diagramXLSXFile, func(f *os.File) error {
			return export.WriteWorkbook(f, m.Properties(), diagrams)
		}); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
		fmt.Fprintf(out, "Workbook written to: %s\n", diagramXLSXFile)
	}
	if diagramPDFFile != "" {
		report := export.Report{
			Title:      "P-M-M Interaction Diagram",
			Project:    m.Project.Name,
			Properties: m.Properties(),
			Diagrams:   diagrams,
		}
		if err := writeFile(diagramPDFFile, func(f *os.File) error {
			return export.WriteReport(f, report)
		}); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(out, "Report written to: %s\n", diagramPDFFile)
	}
	return nil
}

func printDiagram(cmd *cobra.Command, d *interaction.Diagram) {
	out := cmd.OutOrStdout()

	var pMin, pMax, mMax float64
	capped := 0
	for _, p := range d.Envelope() {
		pMin = min(pMin, p.PhiP())
		pMax = max(pMax, p.PhiP())
		mMax = max(mMax, p.Phi*p.MomentAlong(d.Lambda))
	}
	for _, p := range d.Points {
		if p.IsCapped && !p.Clamped {
			capped++
		}
	}

	fmt.Fprint(out, diagram.DrawSummaryBox(fmt.Sprintf("LOADING ANGLE λ = %.1f°", d.Lambda), []string{
		fmt.Sprintf("Points: %d solved, %d dropped, %d capped", d.Solved, len(d.Dropped), capped),
		fmt.Sprintf("Pn,max = %.1f kN", d.Cap/1e3),
		fmt.Sprintf("φPn from %.1f kN to %.1f kN", pMin/1e3, pMax/1e3),
		fmt.Sprintf("max φMn = %.1f kN-m", mMax/1e6),
		fmt.Sprintf("Run: %s", d.RunID),
	}))
	fmt.Fprintln(out)

	if diagramShowPoints {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Plane\tFamily\tθ (°)\tφ\tφPn (kN)\tφMnx (kN-m)\tφMny (kN-m)\tεt\n")
		fmt.Fprintf(w, "  ─────\t──────\t─────\t─\t────────\t───────────\t───────────\t──\n")
		for _, p := range d.Envelope() {
			fmt.Fprintf(w, "  %d\t%d\t%.2f\t%.3f\t%.1f\t%.1f\t%.1f\t%.5f\n",
				p.Sequence, p.Family, p.Theta, p.Phi, p.PhiP()/1e3, p.PhiMx()/1e6, p.PhiMy()/1e6, p.EpsilonT)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	if diagramShowASCII {
		graph, err := diagram.ASCIIInteraction(d, 60, 15)
		if err != nil {
			fmt.Fprintf(out, "  %v\n\n", err)
			return
		}
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}
}

// plotName adds the loading angle to the file name when several diagrams
// are exported.
func plotName(filename string, lambda float64, n int) string {
	if n < 2 {
		return filename
	}
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	return fmt.Sprintf("%s_lambda%g%s", base, lambda, ext)
}

func writeFile(path string, write func(f *os.File) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
