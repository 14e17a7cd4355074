// Package diagram renders interaction diagrams and section meshes as images
// and as terminal text.
package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gopmm/internal/interaction"
)

// ASCIIInteraction draws the design moment capacity along the loading plane
// against the axial force, sampled from full tension to the capped
// compression.
func ASCIIInteraction(d *interaction.Diagram, samples, height int) (string, error) {
	if samples < 2 {
		samples = 2
	}
	env := d.Envelope()
	if len(env) == 0 {
		return "", fmt.Errorf("diagram at λ = %.1f° has no points", d.Lambda)
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range env {
		lo = min(lo, p.PhiP())
		hi = max(hi, p.PhiP())
	}

	series := make([]float64, 0, samples)
	for i := 0; i < samples; i++ {
		pu := hi + (lo-hi)*float64(i)/float64(samples-1)
		m, ok := d.Capacity(pu)
		if !ok {
			m = 0
		}
		series = append(series, m/1e6)
	}

	graph := asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Precision(1),
		asciigraph.Caption(fmt.Sprintf("φMn (kN-m) at λ = %.1f°, φPn from %.0f kN (tension) to %.0f kN (compression)",
			d.Lambda, hi/1e3, lo/1e3)))
	return graph, nil
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s to n runes; the fmt width verbs count bytes.
func pad(s string, n int) string {
	if k := len([]rune(s)); k < n {
		return s + strings.Repeat(" ", n-k)
	}
	return s
}
