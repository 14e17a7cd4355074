package interaction

// reviewCappedPoints flags every point whose compression exceeds the cap and
// appends a copy with the force clamped to -cap. The original keeps its
// nominal values for plotting; only the clamped copy enters the design
// envelope.
func reviewCappedPoints(points []Point, cap float64) []Point {
	if cap <= 0 {
		return points
	}
	out := make([]Point, 0, len(points))
	var clamped []Point
	for _, p := range points {
		if p.P < -cap {
			p.IsCapped = true
			c := p
			c.P = -cap
			c.Clamped = true
			clamped = append(clamped, c)
		}
		out = append(out, p)
	}
	return append(out, clamped...)
}
