package election

import (
	"context"

	"github.com/agbru/seatcalc/internal/apportion"
	"github.com/agbru/seatcalc/internal/parallel"
)

// RegionListSeats apportions each region's baseline among the qualified
// parties by their second votes in that region. Column sums equal the
// baselines; every qualified party gets a cell in every region.
func RegionListSeats(ctx context.Context, secondByRegion map[Region]map[Party]int64, baseline map[Region]int, qualified PartySet, opts Options) (SeatTable, error) {
	regions := sortedRegions(baseline)
	parties := qualified.Sorted()
	results := make([]map[Party]int, len(regions))

	err := parallel.ForEach(ctx, len(regions), opts.Workers, func(_ context.Context, i int) error {
		r := regions[i]
		weights := make(map[Party]float64, len(parties))
		for _, p := range parties {
			weights[p] = float64(secondByRegion[r][p])
		}
		seats, err := apportion.Apportion(weights, baseline[r], opts.Apportion.WithLabel("region-list/"+string(r)))
		if err != nil {
			return err
		}
		results[i] = seats
		return nil
	})
	if err != nil {
		return SeatTable{}, err
	}

	table := NewSeatTable()
	for i, r := range regions {
		for p, n := range results[i] {
			table.set(p, r, n)
		}
	}
	return table, nil
}

func sortedRegions[V any](m map[Region]V) []Region {
	out := make([]Region, 0, len(m))
	for r := range m {
		out = append(out, r)
	}
	sortRegions(out)
	return out
}
