package election

import (
	"fmt"
	"sort"

	apperrors "github.com/agbru/seatcalc/internal/errors"
)

// Party identifies a party list.
type Party string

// Region identifies an administrative region (e.g. a federal state).
type Region string

// ConstituencyRecord holds the tallies of one constituency.
type ConstituencyRecord struct {
	ID          string
	Region      Region
	FirstVotes  map[Party]int64
	SecondVotes map[Party]int64
}

// Election bundles the three input tables of a run.
type Election struct {
	// Population maps each region to its population count.
	Population map[Region]int64
	// Constituencies holds one record per constituency.
	Constituencies []ConstituencyRecord
	// PartyOrder is the ballot order of the parties. It is the preference
	// order used to break plurality ties; parties missing from it rank after
	// the listed ones, in lexicographic order.
	PartyOrder []Party
}

// Regions returns every region named by the population table or by a
// constituency, sorted.
func (e Election) Regions() []Region {
	seen := make(map[Region]struct{}, len(e.Population))
	for r := range e.Population {
		seen[r] = struct{}{}
	}
	for _, c := range e.Constituencies {
		seen[c.Region] = struct{}{}
	}
	regions := make([]Region, 0, len(seen))
	for r := range seen {
		regions = append(regions, r)
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i] < regions[j] })
	return regions
}

// Parties returns every party in ballot order: first those listed in
// PartyOrder, then any other party appearing in a tally, sorted.
func (e Election) Parties() []Party {
	listed := make(map[Party]struct{}, len(e.PartyOrder))
	parties := make([]Party, 0, len(e.PartyOrder))
	for _, p := range e.PartyOrder {
		if _, dup := listed[p]; dup {
			continue
		}
		listed[p] = struct{}{}
		parties = append(parties, p)
	}

	var extra []Party
	seen := make(map[Party]struct{})
	collect := func(votes map[Party]int64) {
		for p := range votes {
			if _, ok := listed[p]; ok {
				continue
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			extra = append(extra, p)
		}
	}
	for _, c := range e.Constituencies {
		collect(c.FirstVotes)
		collect(c.SecondVotes)
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(parties, extra...)
}

// SecondVotesByRegion sums second votes per region and party.
func (e Election) SecondVotesByRegion() map[Region]map[Party]int64 {
	out := make(map[Region]map[Party]int64)
	for _, c := range e.Constituencies {
		row, ok := out[c.Region]
		if !ok {
			row = make(map[Party]int64)
			out[c.Region] = row
		}
		for p, v := range c.SecondVotes {
			row[p] += v
		}
	}
	return out
}

// NationalSecondVotes sums second votes per party across all constituencies.
func (e Election) NationalSecondVotes() map[Party]int64 {
	out := make(map[Party]int64)
	for _, c := range e.Constituencies {
		for p, v := range c.SecondVotes {
			out[p] += v
		}
	}
	return out
}

// Validate checks the structural soundness of the input tables: unique
// constituency identifiers, known regions, and non-negative counts.
func (e Election) Validate() error {
	if len(e.Population) == 0 {
		return apperrors.ValidationError{Field: "population", Message: "no regions"}
	}
	for r, n := range e.Population {
		if n < 0 {
			return apperrors.ValidationError{Field: "population", Message: fmt.Sprintf("negative population %d for region %q", n, r)}
		}
	}
	ids := make(map[string]struct{}, len(e.Constituencies))
	for _, c := range e.Constituencies {
		if _, dup := ids[c.ID]; dup {
			return apperrors.ValidationError{Field: "constituency", Message: fmt.Sprintf("duplicate constituency %q", c.ID)}
		}
		ids[c.ID] = struct{}{}
		if _, ok := e.Population[c.Region]; !ok {
			return apperrors.ValidationError{Field: "region", Message: fmt.Sprintf("constituency %q names unknown region %q", c.ID, c.Region)}
		}
		for p, v := range c.FirstVotes {
			if v < 0 {
				return apperrors.ValidationError{Field: "first_votes", Message: fmt.Sprintf("negative count for %q in %q", p, c.ID)}
			}
		}
		for p, v := range c.SecondVotes {
			if v < 0 {
				return apperrors.ValidationError{Field: "second_votes", Message: fmt.Sprintf("negative count for %q in %q", p, c.ID)}
			}
		}
	}
	return nil
}

// PartySet is an unordered set of parties.
type PartySet map[Party]struct{}

// NewPartySet builds a set from the given parties.
func NewPartySet(parties ...Party) PartySet {
	s := make(PartySet, len(parties))
	for _, p := range parties {
		s[p] = struct{}{}
	}
	return s
}

// Contains reports whether p is in the set.
func (s PartySet) Contains(p Party) bool {
	_, ok := s[p]
	return ok
}

// Sorted returns the members in lexicographic order.
func (s PartySet) Sorted() []Party {
	out := make([]Party, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortRegions(rs []Region) {
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
}

func sortParties(ps []Party) {
	sort.Slice(ps, func(i, j int) bool { return ps[i] < ps[j] })
}
