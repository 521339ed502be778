package apportion

import (
	"fmt"
	"math"
	"strings"
)

// Rounding converts a quotient weight/divisor to a whole number of seats.
// Implementations must be monotone non-decreasing in x.
type Rounding interface {
	Round(x float64) float64
	Name() string
}

type halfEven struct{}

func (halfEven) Round(x float64) float64 { return math.RoundToEven(x) }
func (halfEven) Name() string            { return "half-even" }

type halfUp struct{}

func (halfUp) Round(x float64) float64 { return math.Floor(x + 0.5) }
func (halfUp) Name() string            { return "half-up" }

var (
	// HalfEven rounds exact halves to the nearest even integer (banker's rounding).
	HalfEven Rounding = halfEven{}
	// HalfUp rounds exact halves towards positive infinity.
	HalfUp Rounding = halfUp{}
)

// RoundingNames lists the names accepted by ParseRounding.
func RoundingNames() []string {
	return []string{HalfEven.Name(), HalfUp.Name()}
}

// ParseRounding resolves a rounding policy by name (case-insensitive).
func ParseRounding(name string) (Rounding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", HalfEven.Name(), "even", "bankers":
		return HalfEven, nil
	case HalfUp.Name(), "up":
		return HalfUp, nil
	}
	return nil, fmt.Errorf("unknown rounding policy %q (valid: %s)", name, strings.Join(RoundingNames(), ", "))
}
