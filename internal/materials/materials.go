// Package materials provides the stress–strain laws of concrete, mild
// reinforcing steel and prestressing steel. Laws are plain values: a Config
// is built once, validated, and then only read.
//
// Strains and stresses are negative in compression.
package materials

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gopmm/internal/aci"
)

// ConcreteLaw selects the concrete stress block.
type ConcreteLaw string

const (
	// Rectangular is the equivalent rectangular (Whitney) block.
	Rectangular ConcreteLaw = "rectangular"
	// Parabolic is the Hognestad parabola with a plateau.
	Parabolic ConcreteLaw = "parabolic"
)

// Concrete is the concrete law.
type Concrete struct {
	Fc  float64     `json:"fc" yaml:"fc"`                       // MPa
	Law ConcreteLaw `json:"law,omitempty" yaml:"law,omitempty"` // default rectangular
}

// Beta1 returns the stress block depth factor.
func (c Concrete) Beta1() float64 { return aci.Beta1(c.Fc) }

// Modulus returns the elastic modulus in MPa.
func (c Concrete) Modulus() float64 { return aci.ConcreteModulus(c.Fc) }

// Stress returns the concrete stress for a strain. Concrete carries no
// tension. The rectangular block acts only on fibres strained beyond
// (1-β1)·εcu, which reproduces a block of depth β1·c.
func (c Concrete) Stress(eps float64) float64 {
	if eps >= 0 {
		return 0
	}
	peak := 0.85 * c.Fc
	if c.Law == Parabolic {
		const eps0 = 0.002
		u := -eps / eps0
		if u >= 1 {
			return -peak
		}
		return -peak * (2*u - u*u)
	}
	if eps <= -(1-c.Beta1())*aci.EpsilonCU {
		return -peak
	}
	return 0
}

// Validate reports an unusable concrete definition.
func (c Concrete) Validate() error {
	if c.Fc <= 0 {
		return &ConfigError{Material: "concrete", Msg: fmt.Sprintf("f'c must be positive, got %.2f MPa", c.Fc)}
	}
	switch c.Law {
	case Rectangular, Parabolic, "":
		return nil
	}
	return &ConfigError{Material: "concrete", Msg: fmt.Sprintf("unknown law %q (use %q or %q)", c.Law, Rectangular, Parabolic)}
}

// SteelLaw is the law shared by all bars of one class.
type SteelLaw interface {
	Stress(eps float64) float64
	// YieldStrain is the strain used to classify sections for φ.
	YieldStrain() float64
	// UltimateStrain is the usable tensile strain.
	UltimateStrain() float64
}

// MildSteel is an elastic-perfectly plastic (bilinear) law.
type MildSteel struct {
	Fy        float64 `json:"fy" yaml:"fy"`                     // MPa
	Es        float64 `json:"es,omitempty" yaml:"es,omitempty"` // MPa, default 200000
	EpsilonSU float64 `json:"epsilon_su" yaml:"epsilon_su"`     // ultimate tensile strain
}

// Stress clamps Es·ε to ±fy.
func (s MildSteel) Stress(eps float64) float64 {
	return math.Max(-s.Fy, math.Min(s.Fy, s.modulus()*eps))
}

func (s MildSteel) modulus() float64 {
	if s.Es > 0 {
		return s.Es
	}
	return aci.Es
}

func (s MildSteel) YieldStrain() float64    { return s.Fy / s.modulus() }
func (s MildSteel) UltimateStrain() float64 { return s.EpsilonSU }

// Tangent returns the tangent modulus at a strain.
func (s MildSteel) Tangent(eps float64) float64 {
	if math.Abs(eps) < s.YieldStrain() {
		return s.modulus()
	}
	return 0
}

// Validate reports an unusable mild steel definition.
func (s MildSteel) Validate() error {
	switch {
	case s.Fy <= 0:
		return &ConfigError{Material: "mild steel", Msg: fmt.Sprintf("fy must be positive, got %.2f MPa", s.Fy)}
	case s.Es < 0:
		return &ConfigError{Material: "mild steel", Msg: fmt.Sprintf("Es must be positive, got %.2f MPa", s.Es)}
	case s.EpsilonSU <= s.YieldStrain():
		return &ConfigError{Material: "mild steel", Msg: fmt.Sprintf("ultimate strain %.4f must exceed the yield strain %.4f", s.EpsilonSU, s.YieldStrain())}
	}
	return nil
}

// PrestressingSteel follows the Menegotto–Pinto power formula
//
//	fps = Ep·ε·[Q + (1-Q) / (1 + (Ep·ε/(K·fpy))^N)^(1/N)] <= fpu
type PrestressingSteel struct {
	Fpu       float64 `json:"fpu" yaml:"fpu"`               // MPa
	Fpy       float64 `json:"fpy" yaml:"fpy"`               // MPa
	Ep        float64 `json:"ep" yaml:"ep"`                 // MPa
	EpsilonPU float64 `json:"epsilon_pu" yaml:"epsilon_pu"` // ultimate strain
	N         float64 `json:"n" yaml:"n"`
	K         float64 `json:"k" yaml:"k"`
	Q         float64 `json:"q" yaml:"q"`
}

// Stress is odd in ε.
func (s PrestressingSteel) Stress(eps float64) float64 {
	e := math.Abs(eps)
	x := s.Ep * e
	f := x * (s.Q + (1-s.Q)/math.Pow(1+math.Pow(x/(s.K*s.Fpy), s.N), 1/s.N))
	f = math.Min(f, s.Fpu)
	if eps < 0 {
		return -f
	}
	return f
}

func (s PrestressingSteel) YieldStrain() float64    { return aci.EpsilonTYPrestressed }
func (s PrestressingSteel) UltimateStrain() float64 { return s.EpsilonPU }

// Validate reports an unusable prestressing steel definition.
func (s PrestressingSteel) Validate() error {
	switch {
	case s.Fpu <= 0 || s.Fpy <= 0 || s.Fpy > s.Fpu:
		return &ConfigError{Material: "prestressing steel", Msg: fmt.Sprintf("need 0 < fpy <= fpu, got fpy=%.1f fpu=%.1f", s.Fpy, s.Fpu)}
	case s.Ep <= 0:
		return &ConfigError{Material: "prestressing steel", Msg: fmt.Sprintf("Ep must be positive, got %.1f", s.Ep)}
	case s.EpsilonPU <= 0:
		return &ConfigError{Material: "prestressing steel", Msg: fmt.Sprintf("ultimate strain must be positive, got %.4f", s.EpsilonPU)}
	case s.N <= 0 || s.K <= 0 || s.Q < 0 || s.Q >= 1:
		return &ConfigError{Material: "prestressing steel", Msg: fmt.Sprintf("curve constants need N>0, K>0, 0<=Q<1, got N=%.3f K=%.3f Q=%.3f", s.N, s.K, s.Q)}
	}
	return nil
}
