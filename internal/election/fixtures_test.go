package election

// overhangElection is a two-region election in which party P wins every
// constituency of region A, more than its list share there.
//
//	Region A (4 constituencies): second votes P 32, Q 48, R 20
//	Region B (2 constituencies): second votes P 20, Q 42, R 38
func overhangElection() Election {
	var cs []ConstituencyRecord
	for _, id := range []string{"A1", "A2", "A3", "A4"} {
		cs = append(cs, ConstituencyRecord{
			ID:          id,
			Region:      "A",
			FirstVotes:  map[Party]int64{"P": 50, "Q": 30, "R": 10},
			SecondVotes: map[Party]int64{"P": 8, "Q": 12, "R": 5},
		})
	}
	for _, id := range []string{"B1", "B2"} {
		cs = append(cs, ConstituencyRecord{
			ID:          id,
			Region:      "B",
			FirstVotes:  map[Party]int64{"P": 30, "Q": 40, "R": 20},
			SecondVotes: map[Party]int64{"P": 10, "Q": 21, "R": 19},
		})
	}
	return Election{
		Population:     map[Region]int64{"A": 50, "B": 50},
		Constituencies: cs,
		PartyOrder:     []Party{"P", "Q", "R"},
	}
}

// table is a shorthand for literal seat tables in tests.
func table(m map[Party]map[Region]int) SeatTable {
	return SeatTableFromMap(m)
}
