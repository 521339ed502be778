package election

import (
	"fmt"
	"strings"

	"github.com/agbru/seatcalc/internal/apportion"
)

// DefaultSeats is the nominal size of the parliament before overhang and
// balance seats.
const DefaultSeats = 598

// TiePolicy decides what happens when two parties share the highest
// first-vote count in a constituency.
type TiePolicy string

const (
	// TieBallotOrder awards the constituency to the tied party that comes
	// first in the election's ballot order.
	TieBallotOrder TiePolicy = "ballot-order"
	// TieFail aborts the tally with a TieError.
	TieFail TiePolicy = "error"
)

// ParseTiePolicy resolves a tie policy by name.
func ParseTiePolicy(name string) (TiePolicy, error) {
	switch TiePolicy(strings.ToLower(strings.TrimSpace(name))) {
	case "", TieBallotOrder:
		return TieBallotOrder, nil
	case TieFail:
		return TieFail, nil
	}
	return "", fmt.Errorf("unknown tie policy %q (valid: %s, %s)", name, TieBallotOrder, TieFail)
}

// QualificationRule holds the two alternative thresholds for list seats.
type QualificationRule struct {
	// MinShare is the minimum national second-vote share (0.05 = 5%).
	MinShare float64
	// MinDirectMandates is the minimum number of constituencies won nationally.
	MinDirectMandates int
}

// DefaultQualificationRule returns the 5% / 3 direct mandates rule.
func DefaultQualificationRule() QualificationRule {
	return QualificationRule{MinShare: 0.05, MinDirectMandates: 3}
}

// Options configures the stages.
type Options struct {
	Apportion     apportion.Options
	TiePolicy     TiePolicy
	Qualification QualificationRule
	// Workers bounds concurrent apportionment calls in the per-region and
	// per-party stages. Values <= 1 run them sequentially.
	Workers int
}

// DefaultOptions returns the standard configuration.
func DefaultOptions() Options {
	return Options{
		Apportion:     apportion.DefaultOptions(),
		TiePolicy:     TieBallotOrder,
		Qualification: DefaultQualificationRule(),
		Workers:       1,
	}
}
