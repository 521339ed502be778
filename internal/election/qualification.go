package election

// Standing describes how a party fares against the qualification rule.
type Standing struct {
	Party          Party
	SecondVotes    int64
	Share          float64
	DirectMandates int
	ByShare        bool
	ByMandates     bool
}

// Qualified reports whether either condition holds.
func (s Standing) Qualified() bool { return s.ByShare || s.ByMandates }

// Qualification is the outcome of the threshold check.
type Qualification struct {
	Parties   PartySet
	Standings []Standing
}

// Qualify returns the parties that reach MinShare of all second votes cast
// nationally, or win at least MinDirectMandates constituencies. Standings
// are listed for every party appearing in either input, in ballot order.
func Qualify(e Election, direct SeatTable, rule QualificationRule) Qualification {
	national := e.NationalSecondVotes()
	var total int64
	for _, v := range national {
		total += v
	}

	parties := e.Parties()
	known := NewPartySet(parties...)
	for _, p := range direct.Parties() {
		if !known.Contains(p) {
			parties = append(parties, p)
		}
	}

	q := Qualification{Parties: NewPartySet()}
	for _, p := range parties {
		s := Standing{Party: p, SecondVotes: national[p], DirectMandates: direct.RowSum(p)}
		if total > 0 {
			s.Share = float64(s.SecondVotes) / float64(total)
			s.ByShare = s.Share >= rule.MinShare
		}
		s.ByMandates = s.DirectMandates >= rule.MinDirectMandates
		if s.Qualified() {
			q.Parties[p] = struct{}{}
		}
		q.Standings = append(q.Standings, s)
	}
	return q
}
