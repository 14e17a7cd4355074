package materials

import "fmt"

// ConfigError is a fatal setup fault: a material is missing or invalid.
type ConfigError struct {
	Material string
	Msg      string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Material, e.Msg)
}

// Config is the section-wide material configuration. It is built once before
// meshing and never modified afterwards.
type Config struct {
	Concrete    Concrete           `json:"concrete" yaml:"concrete"`
	Mild        *MildSteel         `json:"mild_steel,omitempty" yaml:"mild_steel,omitempty"`
	Prestressed *PrestressingSteel `json:"prestressing_steel,omitempty" yaml:"prestressing_steel,omitempty"`
}

// Validate checks every law and that each reinforcement class in use has a
// material.
func (c Config) Validate(hasBars, hasTendons bool) error {
	if err := c.Concrete.Validate(); err != nil {
		return err
	}
	if hasBars && c.Mild == nil {
		return &ConfigError{Material: "mild steel", Msg: "section has bars but no mild steel is defined"}
	}
	if hasTendons && c.Prestressed == nil {
		return &ConfigError{Material: "prestressing steel", Msg: "section has tendons but no prestressing steel is defined"}
	}
	if c.Mild != nil {
		if err := c.Mild.Validate(); err != nil {
			return err
		}
	}
	if c.Prestressed != nil {
		if err := c.Prestressed.Validate(); err != nil {
			return err
		}
	}
	return nil
}
