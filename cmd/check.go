package cmd

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopmm/internal/aci"
	"github.com/alexiusacademia/gopmm/internal/diagram"
	"github.com/alexiusacademia/gopmm/internal/export"
	"github.com/alexiusacademia/gopmm/internal/interaction"
)

var (
	checkFile       string
	checkSimplified bool
	checkPDFFile    string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check factored load combinations against the design envelope",
	Long: `Factor the unfactored load effects of a project with the ACI 318
strength design load combinations and check each demand against the
design interaction diagram. Alternatives such as 0.5(Lr or R) are
checked as separate combinations.

Each demand (Pu, Mux, Muy) is checked in its own loading plane,
λ = atan2(Muy, Mux). The design moment capacity φMn is interpolated
on the capped envelope at the demand axial force.

Load types in the project file (P in kN, compression negative;
Mx and My in kN-m):
  dead, live, roof, wind, earthquake, rain

Examples:
  gopmm check --file column.yaml
  gopmm check -f column.yaml --simplified
  gopmm check -f column.yaml --pdf check.pdf`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "Path to project file (.json, .yaml) [required]")
	checkCmd.MarkFlagRequired("file")

	// Options
	checkCmd.Flags().BoolVarP(&checkSimplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")
	checkCmd.Flags().StringVar(&checkPDFFile, "pdf", "", "Write a PDF summary report")
}

func runCheck(cmd *cobra.Command, args []string) error {
	m, logger, err := loadModel(checkFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if m.Project.Loads == nil {
		return fmt.Errorf("project %q has no loads to check", m.Project.Name)
	}

	// Select which combinations to use
	combinations := aci.LoadCombinations
	if checkSimplified {
		combinations = aci.SimplifiedCombinations
	}
	demands := aci.Demands(*m.Project.Loads, combinations)

	checks, err := m.Solver.CheckDemands(demands)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "     DEMAND CHECK - ACI 318 LOAD COMBINATIONS")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)
	if m.Project.Name != "" {
		fmt.Fprintf(out, "  Section: %s\n\n", m.Project.Name)
	}

	fmt.Fprintln(out, "FACTORED DEMANDS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tCombination\tPu (kN)\tMux (kN-m)\tMuy (kN-m)\tλ (°)\tφMn (kN-m)\tRatio\tStatus\n")
	fmt.Fprintf(w, "  ─\t───────────\t───────\t──────────\t──────────\t─────\t──────────\t─────\t──────\n")

	governing := governingCheck(checks)
	for i, c := range checks {
		status := "✓ OK"
		switch {
		case !c.InRange:
			status = "✗ Pu out of range"
		case !c.OK:
			status = "✗ FAIL"
		}
		if i == governing {
			status += " ← GOVERNS"
		}
		fmt.Fprintf(w, "  %s\t%s\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%s\t%s\n",
			c.Demand.Combination.ID, c.Demand.Combination.Description,
			c.Demand.P, c.Demand.Mx, c.Demand.My, c.Lambda, c.PhiMn/1e6, formatRatio(c.Ratio), status)
	}
	w.Flush()
	fmt.Fprintln(out)

	if governing >= 0 {
		g := checks[governing]
		verdict := "SECTION IS ADEQUATE"
		if !g.OK {
			verdict = "SECTION IS NOT ADEQUATE"
		}
		fmt.Fprint(out, diagram.DrawSummaryBox(verdict, []string{
			fmt.Sprintf("Governing combination: %s (%s)", g.Demand.Combination.ID, g.Demand.Combination.Description),
			fmt.Sprintf("Mu / φMn = %s", formatRatio(g.Ratio)),
		}))
		fmt.Fprintln(out)
	}

	if checkPDFFile != "" {
		report := export.Report{
			Title:      "Demand Check",
			Project:    m.Project.Name,
			Properties: m.Properties(),
			Checks:     checks,
		}
		if err := writeFile(checkPDFFile, func(f *os.File) error {
			return export.WriteReport(f, report)
		}); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(out, "Report written to: %s\n", checkPDFFile)
	}
	return nil
}

// governingCheck returns the index of the highest demand ratio, or -1.
func governingCheck(checks []interaction.Check) int {
	best := -1
	for i, c := range checks {
		if best < 0 || c.Ratio > checks[best].Ratio {
			best = i
		}
	}
	return best
}

func formatRatio(r float64) string {
	if math.IsInf(r, 1) {
		return "∞"
	}
	return fmt.Sprintf("%.3f", r)
}
