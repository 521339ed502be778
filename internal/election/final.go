package election

import (
	"context"

	"github.com/agbru/seatcalc/internal/apportion"
	"github.com/agbru/seatcalc/internal/parallel"
)

// FinalDistribution spreads each party's national total across regions in
// proportion to its regional second votes, never giving a party fewer seats
// in a region than the direct mandates it won there. Row sums equal the
// national totals. Only parties present in totals appear in the result.
func FinalDistribution(ctx context.Context, secondByRegion map[Region]map[Party]int64, direct SeatTable, totals map[Party]int, regions []Region, opts Options) (SeatTable, error) {
	parties := make([]Party, 0, len(totals))
	for p := range totals {
		parties = append(parties, p)
	}
	sortParties(parties)
	results := make([]map[Region]int, len(parties))

	err := parallel.ForEach(ctx, len(parties), opts.Workers, func(_ context.Context, i int) error {
		p := parties[i]
		weights := make(map[Region]float64, len(regions))
		floors := make(map[Region]int, len(regions))
		for _, r := range regions {
			weights[r] = float64(secondByRegion[r][p])
			floors[r] = direct.Get(p, r)
		}
		seats, err := apportion.ApportionWithFloors(weights, floors, totals[p], opts.Apportion.WithLabel("final/"+string(p)))
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
	for i, p := range parties {
		table.addRow(p)
		for r, n := range results[i] {
			table.set(p, r, n)
		}
	}
	return table, nil
}
