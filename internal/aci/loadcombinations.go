package aci

import (
	"fmt"
	"math"
	"strings"
)

// LoadType names an unfactored load case.
type LoadType string

// Load types of ACI 318-19 5.3.1. Snow is not carried.
const (
	Dead       LoadType = "D"
	Live       LoadType = "L"
	RoofLive   LoadType = "Lr"
	Wind       LoadType = "W"
	Earthquake LoadType = "E"
	Rain       LoadType = "R"
)

// loadOrder fixes the order of terms in descriptions and sums.
var loadOrder = []LoadType{Dead, Live, RoofLive, Rain, Wind, Earthquake}

// Term is one factored load case of a combination.
type Term struct {
	Load   LoadType
	Factor float64
}

// LoadCombination is a strength design load combination. Where Table 5.3.1
// offers a choice, such as 0.5(Lr or R), every alternative is its own
// combination and the check keeps the worst.
type LoadCombination struct {
	ID          string
	Description string
	Terms       []Term
}

func combination(id string, terms ...Term) LoadCombination {
	parts := make([]string, 0, len(terms))
	for _, l := range loadOrder {
		for _, t := range terms {
			if t.Load == l {
				parts = append(parts, fmt.Sprintf("%.1f%s", t.Factor, t.Load))
			}
		}
	}
	return LoadCombination{ID: id, Description: strings.Join(parts, " + "), Terms: terms}
}

// Factor returns the factor applied to a load type, zero when absent.
func (lc LoadCombination) Factor(l LoadType) float64 {
	f := 0.0
	for _, t := range lc.Terms {
		if t.Load == l {
			f += t.Factor
		}
	}
	return f
}

// LoadCombinations are the equations of ACI 318-19 Table 5.3.1 with the
// alternatives expanded.
var LoadCombinations = []LoadCombination{
	combination("5.3.1a", Term{Dead, 1.4}),
	combination("5.3.1b-Lr", Term{Dead, 1.2}, Term{Live, 1.6}, Term{RoofLive, 0.5}),
	combination("5.3.1b-R", Term{Dead, 1.2}, Term{Live, 1.6}, Term{Rain, 0.5}),
	combination("5.3.1c-Lr-L", Term{Dead, 1.2}, Term{RoofLive, 1.6}, Term{Live, 1.0}),
	combination("5.3.1c-Lr-W", Term{Dead, 1.2}, Term{RoofLive, 1.6}, Term{Wind, 0.5}),
	combination("5.3.1c-R-L", Term{Dead, 1.2}, Term{Rain, 1.6}, Term{Live, 1.0}),
	combination("5.3.1c-R-W", Term{Dead, 1.2}, Term{Rain, 1.6}, Term{Wind, 0.5}),
	combination("5.3.1d-Lr", Term{Dead, 1.2}, Term{Wind, 1.0}, Term{Live, 1.0}, Term{RoofLive, 0.5}),
	combination("5.3.1d-R", Term{Dead, 1.2}, Term{Wind, 1.0}, Term{Live, 1.0}, Term{Rain, 0.5}),
	combination("5.3.1e", Term{Dead, 1.2}, Term{Earthquake, 1.0}, Term{Live, 1.0}),
	combination("5.3.1f", Term{Dead, 0.9}, Term{Wind, 1.0}),
	combination("5.3.1g", Term{Dead, 0.9}, Term{Earthquake, 1.0}),
}

// SimplifiedCombinations are the gravity-only combinations.
var SimplifiedCombinations = []LoadCombination{
	combination("5.3.1a", Term{Dead, 1.4}),
	combination("5.3.1b", Term{Dead, 1.2}, Term{Live, 1.6}),
}

// Effect is an axial force with biaxial moments.
// Compression is negative; Mx compresses the +y fibre.
type Effect struct {
	P  float64 `json:"p" yaml:"p"`   // kN
	Mx float64 `json:"mx" yaml:"mx"` // kN-m
	My float64 `json:"my" yaml:"my"` // kN-m
}

func (e Effect) scaled(f float64) Effect {
	return Effect{P: f * e.P, Mx: f * e.Mx, My: f * e.My}
}

func (e Effect) plus(o Effect) Effect {
	return Effect{P: e.P + o.P, Mx: e.Mx + o.Mx, My: e.My + o.My}
}

// LoadAngle returns the direction of the moment vector in degrees, the
// loading-plane angle λ of the demand.
func (e Effect) LoadAngle() float64 {
	if e.Mx == 0 && e.My == 0 {
		return 0
	}
	return math.Atan2(e.My, e.Mx) * 180 / math.Pi
}

// Moment returns the magnitude of the moment vector.
func (e Effect) Moment() float64 {
	return math.Hypot(e.Mx, e.My)
}

// LoadEffects holds the unfactored effects of each load type.
type LoadEffects struct {
	Dead       Effect `json:"dead" yaml:"dead"`
	Live       Effect `json:"live,omitempty" yaml:"live,omitempty"`
	Roof       Effect `json:"roof,omitempty" yaml:"roof,omitempty"`
	Wind       Effect `json:"wind,omitempty" yaml:"wind,omitempty"`
	Earthquake Effect `json:"earthquake,omitempty" yaml:"earthquake,omitempty"`
	Rain       Effect `json:"rain,omitempty" yaml:"rain,omitempty"`
}

// Of returns the effect of one load type.
func (e LoadEffects) Of(l LoadType) Effect {
	switch l {
	case Dead:
		return e.Dead
	case Live:
		return e.Live
	case RoofLive:
		return e.Roof
	case Wind:
		return e.Wind
	case Earthquake:
		return e.Earthquake
	case Rain:
		return e.Rain
	}
	return Effect{}
}

// Factored sums the factored effects of the combination.
func (lc LoadCombination) Factored(e LoadEffects) Effect {
	var out Effect
	for _, t := range lc.Terms {
		out = out.plus(e.Of(t.Load).scaled(t.Factor))
	}
	return out
}

// Demand is a factored effect tagged with its combination.
type Demand struct {
	Combination LoadCombination
	Effect
}

// Demands factors the effects with every combination.
func Demands(e LoadEffects, combinations []LoadCombination) []Demand {
	out := make([]Demand, 0, len(combinations))
	for _, combo := range combinations {
		out = append(out, Demand{Combination: combo, Effect: combo.Factored(e)})
	}
	return out
}
