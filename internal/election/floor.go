package election

// MinimumSeats returns the guaranteed floor per party and region: the larger
// of the direct mandates won there and the list seats apportioned there.
// A party missing from one table counts as zero there.
func MinimumSeats(direct, list SeatTable) SeatTable {
	return ElementwiseMax(direct, list)
}
