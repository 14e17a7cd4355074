package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gopmm/internal/geometry"
	"github.com/alexiusacademia/gopmm/internal/interaction"
	"github.com/alexiusacademia/gopmm/internal/logging"
	"github.com/alexiusacademia/gopmm/internal/materials"
	"github.com/alexiusacademia/gopmm/internal/mesh"
	"github.com/alexiusacademia/gopmm/internal/project"
	"github.com/alexiusacademia/gopmm/internal/version"
)

var (
	verbose bool
	workers int
)

var rootCmd = &cobra.Command{
	Use:   "gopmm",
	Short: "P-M-M interaction diagrams for reinforced and prestressed concrete sections",
	Long: `gopmm - Go P-M-M Interaction Diagrams

A CLI tool that computes axial force - biaxial moment interaction
diagrams of arbitrary reinforced and prestressed concrete sections
following the ACI 318 strength design provisions.

This tool helps structural engineers:
  - Mesh sections built from polygonal and circular regions with voids
  - Compute section properties and reinforcement ratios
  - Build interaction diagrams for any loading-plane angle
  - Check factored load combinations against the design envelope
  - Export diagrams to images, spreadsheets and PDF reports

Sections are described in a JSON or YAML project file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gopmm v%-49s║\n", version.Version)
		fmt.Println("  ║   Go P-M-M Interaction Diagrams                           ║")
		fmt.Printf("  ║   %s © %-44s║\n", version.Author, version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Arbitrary sections from convex polygons and ring sectors")
		fmt.Println("    • Mild bars and bonded prestressing tendons")
		fmt.Println("    • ACI 318-05 and 318-19 strength reduction factors")
		fmt.Println("    • Demand checks with ACI load combinations")
		fmt.Println()
		fmt.Println("  Use 'gopmm --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every dropped strain plane")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "Number of strain planes solved in parallel (default: number of CPUs)")
}

// loadModel reads a project file and builds its section and solver.
func loadModel(path string) (*project.Model, *zap.Logger, error) {
	logger, err := logging.New(verbose)
	if err != nil {
		return nil, nil, err
	}
	p, err := project.LoadFromFile(path)
	if err != nil {
		return nil, logger, err
	}
	opts := []interaction.Option{interaction.WithLogger(logger)}
	if workers > 0 {
		opts = append(opts, interaction.WithWorkers(workers))
	}
	m, err := p.Build(opts...)
	if err != nil {
		return nil, logger, err
	}
	logger.Debug("model built",
		zap.String("project", p.Name),
		zap.Int("elements", len(m.Section.Elements)),
		zap.Int("bars", len(m.Bars)),
		zap.Int("tendons", len(m.Tendons)))
	return m, logger, nil
}

// describeError names the class of fault so the user knows where to look.
func describeError(err error) string {
	var (
		verr *project.ValidationError
		rerr *mesh.RegionError
		cerr *geometry.CollinearError
		merr *materials.ConfigError
		eerr *interaction.EquilibriumError
	)
	switch {
	case errors.As(err, &verr):
		return fmt.Sprintf("Error in project file: %v", err)
	case errors.As(err, &cerr), errors.As(err, &rerr):
		return fmt.Sprintf("Error in section geometry: %v", err)
	case errors.As(err, &merr):
		return fmt.Sprintf("Error in material definition: %v", err)
	case errors.As(err, &eerr):
		return fmt.Sprintf("Prestress equilibrium not found: %v", err)
	}
	return fmt.Sprintf("Error: %v", err)
}
