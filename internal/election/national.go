package election

import (
	"github.com/agbru/seatcalc/internal/apportion"
)

// NationalTotals fixes each qualified party's national seat total. The
// floor of a party is its row sum in the minimum-seat table; the divisor
// starts at total qualified second votes over the sum of floors and shrinks
// until every party's rounded quotient reaches its floor. The parliament
// grows exactly as far as needed for that.
func NationalTotals(minimum SeatTable, nationalVotes map[Party]int64, qualified PartySet, opts Options) (map[Party]int, error) {
	weights := make(map[Party]float64, len(qualified))
	floors := make(map[Party]int, len(qualified))
	for p := range qualified {
		weights[p] = float64(nationalVotes[p])
		floors[p] = minimum.RowSum(p)
	}
	return apportion.SatisfyFloors(weights, floors, opts.Apportion.WithLabel("national-totals"))
}
