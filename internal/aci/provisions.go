// Package aci holds the code provisions used by the strength calculations:
// stress block factor, strength reduction factors and the axial cap. The
// values follow ACI 318 (adopted by NSCP 2015).
package aci

import (
	"fmt"
	"math"
)

const (
	// Beta1 factors for equivalent rectangular stress block
	// ACI 318-19 Table 22.2.2.4.3
	Beta1Max = 0.85 // for f'c <= 28 MPa
	Beta1Min = 0.65 // minimum value

	// Strain limits
	EpsilonCU = 0.003 // Ultimate concrete strain (22.2.2.1)
	EpsilonTC = 0.005 // Tension-controlled limit for ACI 318-05 to 318-14

	// EpsilonTYPrestressed is the yield strain used for prestressing steel
	// when classifying sections (21.2.2.1).
	EpsilonTYPrestressed = 0.002

	// Strength reduction factors (Table 21.2.2)
	PhiTension  = 0.90 // Tension-controlled sections
	PhiTied     = 0.65 // Compression-controlled, ties
	PhiSpiral05 = 0.70 // Compression-controlled, spirals, ACI 318-05 to 318-14
	PhiSpiral19 = 0.75 // Compression-controlled, spirals, ACI 318-19

	// Axial cap factors (Table 22.4.2.1)
	CapTied   = 0.80
	CapSpiral = 0.85

	// Modulus of elasticity for steel (20.2.2.2)
	Es = 200000.0 // MPa
)

// Beta1 calculates the factor for equivalent rectangular stress block
func Beta1(fc float64) float64 {
	if fc <= 28 {
		return Beta1Max
	}
	// β1 = 0.85 - 0.05(f'c - 28)/7 for f'c > 28 MPa
	beta1 := Beta1Max - 0.05*(fc-28)/7
	return math.Max(beta1, Beta1Min)
}

// ConcreteModulus returns Ec = 4700√f'c in MPa (19.2.2.1).
func ConcreteModulus(fc float64) float64 {
	return 4700 * math.Sqrt(fc)
}

// Transverse is the type of transverse reinforcement of a member.
type Transverse string

const (
	Ties   Transverse = "ties"
	Spiral Transverse = "spiral"
)

// PhiMode selects how φ is obtained.
type PhiMode string

const (
	PhiFixed PhiMode = "fixed"
	// PhiACI05 interpolates between εty and 0.005 (ACI 318-05 to 318-14).
	PhiACI05 PhiMode = "aci-318-05"
	// PhiACI19 interpolates between εty and εty + 0.003 (ACI 318-19).
	PhiACI19 PhiMode = "aci-318-19"
)

// PhiPolicy is the strength reduction factor policy of a run.
type PhiPolicy struct {
	Mode       PhiMode    `json:"mode" yaml:"mode"`
	Transverse Transverse `json:"transverse,omitempty" yaml:"transverse,omitempty"`
	Value      float64    `json:"value,omitempty" yaml:"value,omitempty"` // used by PhiFixed
}

// Validate reports an unusable policy.
func (p PhiPolicy) Validate() error {
	switch p.Mode {
	case PhiFixed:
		if p.Value <= 0 || p.Value > 1 {
			return fmt.Errorf("fixed φ must be in (0, 1], got %.3f", p.Value)
		}
		return nil
	case PhiACI05, PhiACI19:
	default:
		return fmt.Errorf("unknown φ mode %q (use %q, %q or %q)", p.Mode, PhiFixed, PhiACI05, PhiACI19)
	}
	switch p.Transverse {
	case Ties, Spiral, "":
		return nil
	}
	return fmt.Errorf("unknown transverse reinforcement %q (use %q or %q)", p.Transverse, Ties, Spiral)
}

// PhiMin returns φ for compression-controlled sections.
func (p PhiPolicy) PhiMin() float64 {
	switch {
	case p.Mode == PhiFixed:
		return p.Value
	case p.Transverse != Spiral:
		return PhiTied
	case p.Mode == PhiACI19:
		return PhiSpiral19
	}
	return PhiSpiral05
}

// Phi calculates the strength reduction factor from the net tensile strain
// εt of the extreme tension steel (tension positive) and its yield strain.
func (p PhiPolicy) Phi(epsilonT, epsilonTY float64) float64 {
	if p.Mode == PhiFixed {
		return p.Value
	}
	phiMin := p.PhiMin()
	limit := EpsilonTC
	if p.Mode == PhiACI19 {
		limit = epsilonTY + 0.003
	}
	if limit <= epsilonTY {
		limit = epsilonTY + 0.003
	}

	if epsilonT >= limit {
		// Tension-controlled
		return PhiTension
	} else if epsilonT <= epsilonTY {
		// Compression-controlled
		return phiMin
	}
	// Transition zone
	return phiMin + (PhiTension-phiMin)*(epsilonT-epsilonTY)/(limit-epsilonTY)
}

// CapInput gathers the quantities of the maximum nominal axial strength.
type CapInput struct {
	Fc  float64 // MPa
	Ag  float64 // mm², gross concrete area
	Ast float64 // mm², mild steel
	Fy  float64 // MPa
	Apd float64 // mm², prestressing steel
	Fse float64 // MPa, effective prestress
	Ep  float64 // MPa

	Transverse Transverse
}

// NominalCompression returns Po (22.4.2.2 and 22.4.2.3). Plain sections
// reduce to 0.85 f'c Ag.
func NominalCompression(in CapInput) float64 {
	po := 0.85*in.Fc*(in.Ag-in.Ast-in.Apd) + in.Fy*in.Ast
	if in.Apd > 0 {
		po -= (in.Fse - EpsilonCU*in.Ep) * in.Apd
	}
	return po
}

// MaxNominalCompression returns Pn,max, the cap on the nominal axial
// compression (Table 22.4.2.1). The result is a positive magnitude.
func MaxNominalCompression(in CapInput) float64 {
	factor := CapTied
	if in.Transverse == Spiral {
		factor = CapSpiral
	}
	return factor * NominalCompression(in)
}
