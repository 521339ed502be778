package dataset

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/agbru/seatcalc/internal/election"
)

// Dataset is a loaded election plus the settings it carries.
type Dataset struct {
	Election election.Election
	// Seats is the nominal seat count stored with the data, 0 if none.
	Seats int
	// Source describes where the data came from, for logs.
	Source string
}

// Loader produces a Dataset.
type Loader interface {
	Load(ctx context.Context) (*Dataset, error)
}

// parseCount parses a non-negative count. Integral floats ("1234.0") are
// accepted because spreadsheet exports often write them; an empty cell is 0.
func parseCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative count %d", n)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	if f < 0 {
		return 0, fmt.Errorf("negative count %q", s)
	}
	return int64(f), nil
}
