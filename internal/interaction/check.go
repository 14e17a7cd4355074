package interaction

import (
	"math"

	"github.com/alexiusacademia/gopmm/internal/aci"
)

// Check is the capacity check of one factored demand.
type Check struct {
	Demand aci.Demand
	Lambda float64 // degrees
	PhiMn  float64 // N·mm, design capacity at the demand axial force
	Ratio  float64 // Mu / φMn
	OK     bool
	// InRange is false when the axial demand lies outside the envelope.
	InRange bool
}

// CheckDemands compares factored demands (kN, kN-m) with the design envelope
// at each demand's loading angle. Diagrams of repeated angles are reused.
func (s *Solver) CheckDemands(demands []aci.Demand) ([]Check, error) {
	diagrams := make(map[float64]*Diagram)
	out := make([]Check, 0, len(demands))
	for _, dm := range demands {
		lambda := dm.LoadAngle()
		d, ok := diagrams[lambda]
		if !ok {
			var err error
			if d, err = s.Diagram(lambda); err != nil {
				return nil, err
			}
			diagrams[lambda] = d
		}

		c := Check{Demand: dm, Lambda: lambda}
		mu := dm.Moment() * 1e6
		c.PhiMn, c.InRange = d.Capacity(dm.P * 1e3)
		switch {
		case !c.InRange:
			c.Ratio = math.Inf(1)
		case c.PhiMn > 0:
			c.Ratio = mu / c.PhiMn
		case mu == 0:
			c.Ratio = 0
		default:
			c.Ratio = math.Inf(1)
		}
		c.OK = c.InRange && c.Ratio <= 1
		out = append(out, c)
	}
	return out, nil
}
