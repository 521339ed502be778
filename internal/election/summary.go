package election

import "sort"

// PartySummary condenses one qualified party's path through the pipeline.
type PartySummary struct {
	Party          Party
	DirectMandates int
	// ListSeats is the sum of the party's regional list apportionments.
	ListSeats int
	// Overhang is the sum over regions of direct mandates beyond list seats.
	Overhang int
	// Floor is ListSeats + Overhang, the party's guaranteed national minimum.
	Floor int
	// Total is the final national seat total.
	Total int
	// Balance is the seats added on top of the floor to restore proportionality.
	Balance int
}

// Summarize builds one PartySummary per party in totals, sorted by total
// seats (descending) then name.
func Summarize(direct, list SeatTable, totals map[Party]int) []PartySummary {
	out := make([]PartySummary, 0, len(totals))
	for p, total := range totals {
		s := PartySummary{Party: p, DirectMandates: direct.RowSum(p), ListSeats: list.RowSum(p), Total: total}
		for _, r := range unionRegions(direct, list) {
			if d, l := direct.Get(p, r), list.Get(p, r); d > l {
				s.Overhang += d - l
			}
		}
		s.Floor = s.ListSeats + s.Overhang
		s.Balance = s.Total - s.Floor
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Party < out[j].Party
	})
	return out
}

func unionRegions(a, b SeatTable) []Region {
	seen := make(map[Region]struct{})
	for _, r := range a.Regions() {
		seen[r] = struct{}{}
	}
	for _, r := range b.Regions() {
		seen[r] = struct{}{}
	}
	return sortedRegions(seen)
}
