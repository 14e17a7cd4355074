package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopmm/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gopmm",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
		fmt.Fprintln(cmd.OutOrStdout(), "P-M-M Interaction Diagrams for RC and PC Sections")
		fmt.Fprintln(cmd.OutOrStdout(), "Based on ACI 318 strength design")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
