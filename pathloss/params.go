package pathloss

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidParameter reports a missing, non-positive or non-finite input
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvalidRange reports a sweep whose start lies beyond its end
	ErrInvalidRange = errors.New("invalid range")
)

type AreaType int

const (
	Urban AreaType = iota
	Suburban
	Rural
)

var AreaTypes = [...]string{
	"Urban",
	"Suburban",
	"Rural",
}

func (a AreaType) String() string {
	if a < 0 || int(a) >= len(AreaTypes) {
		return "Unknown-AreaType"
	}
	return AreaTypes[a]
}

func (a AreaType) valid() bool {
	return a == Urban || a == Suburban || a == Rural
}

// ParseAreaType maps "urban", "suburban" or "rural" (any case) to an AreaType
func ParseAreaType(s string) (AreaType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range AreaTypes {
		if strings.ToLower(name) == key {
			return AreaType(i), nil
		}
	}
	return 0, fmt.Errorf("area type %q: %w", s, ErrInvalidParameter)
}

// Parameters of a single link. Frequency in MHz, heights in metres, distance in km
type Parameters struct {
	FreqMHz    float64  `mapstructure:"fc" yaml:"frequency_mhz"`
	BSHeightM  float64  `mapstructure:"hte" yaml:"bs_height_m"`
	MSHeightM  float64  `mapstructure:"hre" yaml:"ms_height_m"`
	DistanceKm float64  `mapstructure:"d" yaml:"distance_km,omitempty"`
	Area       AreaType `mapstructure:"area" yaml:"-"`
}

// Validate checks that every logarithm argument is positive and finite
func (p Parameters) Validate() error {
	if err := p.validateLink(); err != nil {
		return err
	}
	return positive("distance", p.DistanceKm)
}

// validateLink checks everything except the distance
func (p Parameters) validateLink() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"frequency", p.FreqMHz},
		{"base station height", p.BSHeightM},
		{"mobile station height", p.MSHeightM},
	}
	for _, c := range checks {
		if err := positive(c.name, c.value); err != nil {
			return err
		}
	}
	if !p.Area.valid() {
		return fmt.Errorf("area type %d: %w", int(p.Area), ErrInvalidParameter)
	}
	return nil
}

func positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return fmt.Errorf("%s %v must be positive and finite: %w", name, v, ErrInvalidParameter)
	}
	return nil
}

// Result of a scalar evaluation
type Result struct {
	Model  ModelType  `yaml:"-"`
	Params Parameters `yaml:"parameters"`
	LossDb float64    `yaml:"path_loss_db"`
}

func (r Result) String() string {
	return fmt.Sprintf("Path Loss: %.2f dB", r.LossDb)
}
