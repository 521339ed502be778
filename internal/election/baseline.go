package election

import (
	"fmt"

	"github.com/agbru/seatcalc/internal/apportion"
	apperrors "github.com/agbru/seatcalc/internal/errors"
)

// RegionBaseline apportions the nominal seat count to regions by population.
func RegionBaseline(population map[Region]int64, seats int, opts Options) (map[Region]int, error) {
	if seats <= 0 {
		return nil, apperrors.DegenerateInputError{
			Operation: "region-baseline",
			Reason:    fmt.Sprintf("nominal seat count must be positive, got %d", seats),
		}
	}
	weights := make(map[Region]float64, len(population))
	for r, n := range population {
		weights[r] = float64(n)
	}
	return apportion.Apportion(weights, seats, opts.Apportion.WithLabel("region-baseline"))
}
