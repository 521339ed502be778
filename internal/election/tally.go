package election

import (
	apperrors "github.com/agbru/seatcalc/internal/errors"
)

// Tie records a constituency whose plurality was shared.
type Tie struct {
	Constituency string
	Region       Region
	Parties      []Party
	Winner       Party
}

// TallyDirectMandates determines the plurality winner of every constituency
// and counts, per region, the constituencies each party won. The table has
// no target: it reports raw win counts.
//
// Ties are resolved according to policy and returned for auditing. A
// constituency where no party has a positive first-vote count has no winner.
func TallyDirectMandates(e Election, policy TiePolicy) (SeatTable, []Tie, error) {
	rank := make(map[Party]int)
	for i, p := range e.Parties() {
		rank[p] = i
	}

	table := NewSeatTable()
	var ties []Tie
	for _, c := range e.Constituencies {
		leaders := pluralityLeaders(c.FirstVotes, rank)
		if len(leaders) == 0 {
			continue
		}
		winner := leaders[0]
		if len(leaders) > 1 {
			if policy == TieFail {
				names := make([]string, len(leaders))
				for i, p := range leaders {
					names[i] = string(p)
				}
				return SeatTable{}, nil, apperrors.TieError{Constituency: c.ID, Parties: names}
			}
			ties = append(ties, Tie{Constituency: c.ID, Region: c.Region, Parties: leaders, Winner: winner})
		}
		table.set(winner, c.Region, table.Get(winner, c.Region)+1)
	}
	return table, ties, nil
}

// pluralityLeaders returns the parties sharing the highest positive vote
// count, ordered by ballot rank.
func pluralityLeaders(votes map[Party]int64, rank map[Party]int) []Party {
	var leaders []Party
	var best int64
	for p, v := range votes {
		switch {
		case v <= 0:
		case v > best:
			best = v
			leaders = append(leaders[:0], p)
		case v == best:
			leaders = append(leaders, p)
		}
	}
	for i := 1; i < len(leaders); i++ {
		for j := i; j > 0 && rank[leaders[j]] < rank[leaders[j-1]]; j-- {
			leaders[j], leaders[j-1] = leaders[j-1], leaders[j]
		}
	}
	return leaders
}
