package cmd

import (
	"github.com/spf13/cobra"
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Arbitrary concrete section utilities",
	Long: `Inspect arbitrary concrete sections defined in JSON or YAML
project files.

A section is built from signed regions: convex polygons and ring
sectors (disks, rings, half disks), each either solid or void.
Mild bars and bonded tendons are points with an area or a diameter.

Subcommands:
  properties  - Mesh the section and print its properties

Example YAML project:
  name: C1 400x400
  regions:
    - type: polygon
      nodes: [{x: 0, y: 0}, {x: 400, y: 0}, {x: 400, y: 400}, {x: 0, y: 400}]
    - type: circular
      sign: void
      center: {x: 200, y: 200}
      r_ext: 60
  discretization:
    preset: medium
  bars:
    - {x: 60, y: 60, diameter: 25}
    - {x: 340, y: 60, diameter: 25}
    - {x: 340, y: 340, diameter: 25}
    - {x: 60, y: 340, diameter: 25}
  materials:
    concrete: {fc: 28}
    mild_steel: {fy: 420, epsilon_su: 0.01}
  phi: {mode: aci-318-19, transverse: ties}
  angles: [0, 30, 45]`,
}

func init() {
	rootCmd.AddCommand(sectionCmd)
}
