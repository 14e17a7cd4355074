// Package rebar defines point reinforcement: mild bars and bonded tendons.
package rebar

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gopmm/internal/geometry"
	"github.com/alexiusacademia/gopmm/internal/materials"
)

// Bar is a mild steel bar.
type Bar struct {
	ID       string
	Position geometry.Node
	Area     float64 // mm²
	Law      materials.SteelLaw
}

// NewBar builds a bar from its area, or from its diameter when area is zero.
func NewBar(id string, pos geometry.Node, diameter, area float64, law materials.SteelLaw) (Bar, error) {
	if area <= 0 {
		if diameter <= 0 {
			return Bar{}, fmt.Errorf("bar %q: give a positive diameter or area", id)
		}
		area = math.Pi * diameter * diameter / 4
	}
	if law == nil {
		return Bar{}, fmt.Errorf("bar %q: no steel law", id)
	}
	return Bar{ID: id, Position: pos, Area: area, Law: law}, nil
}

// Tendon is a bonded prestressing tendon.
type Tendon struct {
	Bar
	// Prestrain is the effective tensile strain locked in the tendon.
	Prestrain float64
	// Decompression is the strain that brings the surrounding concrete back
	// to zero strain, found by the prestress equilibrium search.
	Decompression float64
}

// NewTendon builds a tendon.
func NewTendon(id string, pos geometry.Node, diameter, area, prestrain float64, law materials.SteelLaw) (Tendon, error) {
	b, err := NewBar(id, pos, diameter, area, law)
	if err != nil {
		return Tendon{}, err
	}
	if prestrain < 0 {
		return Tendon{}, fmt.Errorf("tendon %q: prestrain must not be negative, got %.5f", id, prestrain)
	}
	return Tendon{Bar: b, Prestrain: prestrain}, nil
}

// Strain returns the total tendon strain for the concrete strain at its
// level.
func (t Tendon) Strain(concrete float64) float64 {
	return concrete + t.Prestrain + t.Decompression
}

// TotalArea sums bar areas.
func TotalArea(bars []Bar) float64 {
	var a float64
	for _, b := range bars {
		a += b.Area
	}
	return a
}

// TotalTendonArea sums tendon areas.
func TotalTendonArea(tendons []Tendon) float64 {
	var a float64
	for _, t := range tendons {
		a += t.Area
	}
	return a
}
