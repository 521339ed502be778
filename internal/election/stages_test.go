package election

import (
	"context"
	"errors"
	"reflect"
	"testing"

	apperrors "github.com/agbru/seatcalc/internal/errors"
)

func TestTallyDirectMandates(t *testing.T) {
	t.Parallel()

	t.Run("plurality winner takes the constituency", func(t *testing.T) {
		t.Parallel()
		e := Election{
			Population: map[Region]int64{"A": 1},
			Constituencies: []ConstituencyRecord{
				{ID: "1", Region: "A", FirstVotes: map[Party]int64{"X": 100, "Y": 80}},
			},
		}
		got, ties, err := TallyDirectMandates(e, TieBallotOrder)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Get("X", "A") != 1 || got.HasParty("Y") {
			t.Errorf("unexpected tally %v", got.ToMap())
		}
		if len(ties) != 0 {
			t.Errorf("expected no ties, got %v", ties)
		}
	})

	t.Run("aggregates per region", func(t *testing.T) {
		t.Parallel()
		got, _, err := TallyDirectMandates(overhangElection(), TieBallotOrder)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := table(map[Party]map[Region]int{"P": {"A": 4}, "Q": {"B": 2}})
		if !got.Equal(want) {
			t.Errorf("tally = %v, want %v", got.ToMap(), want.ToMap())
		}
	})

	t.Run("constituency without votes has no winner", func(t *testing.T) {
		t.Parallel()
		e := Election{Constituencies: []ConstituencyRecord{{ID: "1", Region: "A"}}}
		got, _, err := TallyDirectMandates(e, TieFail)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Total() != 0 {
			t.Errorf("expected empty tally, got %v", got.ToMap())
		}
	})

	t.Run("all-zero first votes are neither a win nor a tie", func(t *testing.T) {
		t.Parallel()
		e := Election{
			Population: map[Region]int64{"A": 1},
			Constituencies: []ConstituencyRecord{
				{ID: "1", Region: "A", FirstVotes: map[Party]int64{"X": 0, "Y": 0}},
				{ID: "2", Region: "A", FirstVotes: map[Party]int64{"X": 0, "Y": 3}},
			},
		}
		got, ties, err := TallyDirectMandates(e, TieFail)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Total() != 1 || got.Get("Y", "A") != 1 || len(ties) != 0 {
			t.Errorf("tally = %v ties = %v, want one win for Y and no ties", got.ToMap(), ties)
		}
	})
}

func TestTallyDirectMandates_Ties(t *testing.T) {
	t.Parallel()
	e := Election{
		Population: map[Region]int64{"A": 1},
		PartyOrder: []Party{"Z", "M", "A"},
		Constituencies: []ConstituencyRecord{
			{ID: "7", Region: "A", FirstVotes: map[Party]int64{"A": 50, "M": 50, "Z": 10}},
		},
	}

	t.Run("ballot order breaks the tie", func(t *testing.T) {
		t.Parallel()
		got, ties, err := TallyDirectMandates(e, TieBallotOrder)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Get("M", "A") != 1 || got.Get("A", "A") != 0 {
			t.Errorf("ballot order should favour M, got %v", got.ToMap())
		}
		want := []Tie{{Constituency: "7", Region: "A", Parties: []Party{"M", "A"}, Winner: "M"}}
		if !reflect.DeepEqual(ties, want) {
			t.Errorf("ties = %+v, want %+v", ties, want)
		}
	})

	t.Run("error policy refuses the tie", func(t *testing.T) {
		t.Parallel()
		_, _, err := TallyDirectMandates(e, TieFail)
		var tieErr apperrors.TieError
		if !errors.As(err, &tieErr) {
			t.Fatalf("expected TieError, got %v", err)
		}
		if tieErr.Constituency != "7" || !reflect.DeepEqual(tieErr.Parties, []string{"M", "A"}) {
			t.Errorf("unexpected TieError %+v", tieErr)
		}
	})
}

func TestParseTiePolicy(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]TiePolicy{"": TieBallotOrder, "ballot-order": TieBallotOrder, "ERROR": TieFail} {
		got, err := ParseTiePolicy(in)
		if err != nil || got != want {
			t.Errorf("ParseTiePolicy(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseTiePolicy("coin-flip"); err == nil {
		t.Error("unknown policy should fail")
	}
}

func TestRegionBaseline(t *testing.T) {
	t.Parallel()
	got, err := RegionBaseline(map[Region]int64{"A": 60, "B": 40}, 10, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, map[Region]int{"A": 6, "B": 4}) {
		t.Errorf("RegionBaseline() = %v", got)
	}

	for _, seats := range []int{0, -3} {
		_, err := RegionBaseline(map[Region]int64{"A": 60}, seats, DefaultOptions())
		var degErr apperrors.DegenerateInputError
		if !errors.As(err, &degErr) {
			t.Errorf("seats=%d: expected DegenerateInputError, got %v", seats, err)
		}
	}

	_, err = RegionBaseline(map[Region]int64{"A": 0, "B": 0}, 10, DefaultOptions())
	var degErr apperrors.DegenerateInputError
	if !errors.As(err, &degErr) {
		t.Errorf("all-zero population: expected DegenerateInputError, got %v", err)
	}
}

func TestQualify(t *testing.T) {
	t.Parallel()
	// 10,000 second votes: A exactly 5.00%, B 4.99%, D 4.99% with 3 mandates.
	e := Election{
		Population: map[Region]int64{"R": 1},
		PartyOrder: []Party{"A", "B", "C", "D"},
		Constituencies: []ConstituencyRecord{
			{ID: "1", Region: "R", SecondVotes: map[Party]int64{"A": 500, "B": 499, "C": 8502, "D": 499}},
		},
	}
	direct := table(map[Party]map[Region]int{"B": {"R": 2}, "D": {"R": 3}, "E": {"R": 1}})

	q := Qualify(e, direct, DefaultQualificationRule())
	want := NewPartySet("A", "C", "D")
	if !reflect.DeepEqual(q.Parties, want) {
		t.Errorf("qualified = %v, want %v", q.Parties.Sorted(), want.Sorted())
	}

	byParty := make(map[Party]Standing)
	for _, s := range q.Standings {
		byParty[s.Party] = s
	}
	if s := byParty["A"]; !s.ByShare || s.ByMandates || s.Share != 0.05 {
		t.Errorf("A standing %+v", s)
	}
	if s := byParty["D"]; s.ByShare || !s.ByMandates || s.DirectMandates != 3 {
		t.Errorf("D standing %+v", s)
	}
	if s, ok := byParty["E"]; !ok || s.Qualified() {
		t.Errorf("E should be listed and not qualify, got %+v (listed %v)", s, ok)
	}
	if len(q.Standings) != 5 || q.Standings[0].Party != "A" || q.Standings[4].Party != "E" {
		t.Errorf("standings should follow ballot order, got %+v", q.Standings)
	}
}

func TestQualify_NoVotes(t *testing.T) {
	t.Parallel()
	q := Qualify(Election{}, NewSeatTable(), DefaultQualificationRule())
	if len(q.Parties) != 0 {
		t.Errorf("expected nobody to qualify, got %v", q.Parties.Sorted())
	}
}

func TestRegionListSeats(t *testing.T) {
	t.Parallel()
	e := overhangElection()
	baseline := map[Region]int{"A": 5, "B": 5}

	for _, workers := range []int{1, 4} {
		opts := DefaultOptions()
		opts.Workers = workers
		got, err := RegionListSeats(context.Background(), e.SecondVotesByRegion(), baseline, NewPartySet("P", "Q", "R"), opts)
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		want := table(map[Party]map[Region]int{
			"P": {"A": 2, "B": 1},
			"Q": {"A": 2, "B": 2},
			"R": {"A": 1, "B": 2},
		})
		if !got.Equal(want) {
			t.Errorf("workers=%d: list seats = %v, want %v", workers, got.ToMap(), want.ToMap())
		}
		for r, seats := range baseline {
			if got.ColumnSum(r) != seats {
				t.Errorf("column %s sums to %d, want %d", r, got.ColumnSum(r), seats)
			}
		}
	}
}

func TestRegionListSeats_ExcludesUnqualified(t *testing.T) {
	t.Parallel()
	e := overhangElection()
	got, err := RegionListSeats(context.Background(), e.SecondVotesByRegion(), map[Region]int{"A": 5, "B": 5}, NewPartySet("Q", "R"), DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.HasParty("P") {
		t.Error("unqualified party must not receive list seats")
	}
	if got.Total() != 10 {
		t.Errorf("total = %d, want 10", got.Total())
	}
}

func TestRegionListSeats_NoQualifiedParty(t *testing.T) {
	t.Parallel()
	e := overhangElection()
	_, err := RegionListSeats(context.Background(), e.SecondVotesByRegion(), map[Region]int{"A": 5}, NewPartySet(), DefaultOptions())
	var degErr apperrors.DegenerateInputError
	if !errors.As(err, &degErr) {
		t.Errorf("expected DegenerateInputError, got %v", err)
	}
}

func TestMinimumSeats(t *testing.T) {
	t.Parallel()
	direct := table(map[Party]map[Region]int{"P": {"A": 4}, "Q": {"B": 2}})
	list := table(map[Party]map[Region]int{
		"P": {"A": 2, "B": 1},
		"Q": {"A": 2, "B": 2},
		"R": {"A": 1, "B": 2},
	})

	got := MinimumSeats(direct, list)
	want := table(map[Party]map[Region]int{
		"P": {"A": 4, "B": 1},
		"Q": {"A": 2, "B": 2},
		"R": {"A": 1, "B": 2},
	})
	if !got.Equal(want) {
		t.Errorf("MinimumSeats() = %v, want %v", got.ToMap(), want.ToMap())
	}
	for _, p := range got.Parties() {
		for _, r := range got.Regions() {
			if got.Get(p, r) < direct.Get(p, r) || got.Get(p, r) < list.Get(p, r) {
				t.Errorf("%s/%s below an input", p, r)
			}
		}
	}
}

func TestNationalTotals(t *testing.T) {
	t.Parallel()
	minimum := table(map[Party]map[Region]int{
		"P": {"A": 4, "B": 1},
		"Q": {"A": 2, "B": 2},
		"R": {"A": 1, "B": 2},
		"X": {"A": 1},
	})
	votes := map[Party]int64{"P": 52, "Q": 90, "R": 58, "X": 3}

	got, err := NationalTotals(minimum, votes, NewPartySet("P", "Q", "R"), DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[Party]int{"P": 5, "Q": 8, "R": 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NationalTotals() = %v, want %v", got, want)
	}
	for p, n := range got {
		if n < minimum.RowSum(p) {
			t.Errorf("%s total %d below floor %d", p, n, minimum.RowSum(p))
		}
	}
}

func TestFinalDistribution(t *testing.T) {
	t.Parallel()
	e := overhangElection()
	direct := table(map[Party]map[Region]int{"P": {"A": 4}, "Q": {"B": 2}})
	totals := map[Party]int{"P": 5, "Q": 8, "R": 5}

	for _, workers := range []int{1, 3} {
		opts := DefaultOptions()
		opts.Workers = workers
		got, err := FinalDistribution(context.Background(), e.SecondVotesByRegion(), direct, totals, e.Regions(), opts)
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		want := table(map[Party]map[Region]int{
			"P": {"A": 4, "B": 1},
			"Q": {"A": 4, "B": 4},
			"R": {"A": 2, "B": 3},
		})
		if !got.Equal(want) {
			t.Errorf("workers=%d: final = %v, want %v", workers, got.ToMap(), want.ToMap())
		}
		for p, n := range totals {
			if got.RowSum(p) != n {
				t.Errorf("%s row sums to %d, want %d", p, got.RowSum(p), n)
			}
		}
	}
}

func TestFinalDistribution_Canceled(t *testing.T) {
	t.Parallel()
	e := overhangElection()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FinalDistribution(ctx, e.SecondVotesByRegion(), NewSeatTable(), map[Party]int{"P": 5}, e.Regions(), DefaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	direct := table(map[Party]map[Region]int{"P": {"A": 4}, "Q": {"B": 2}})
	list := table(map[Party]map[Region]int{
		"P": {"A": 2, "B": 1},
		"Q": {"A": 2, "B": 2},
		"R": {"A": 1, "B": 2},
	})
	got := Summarize(direct, list, map[Party]int{"P": 5, "Q": 8, "R": 5})
	want := []PartySummary{
		{Party: "Q", DirectMandates: 2, ListSeats: 4, Overhang: 0, Floor: 4, Total: 8, Balance: 4},
		{Party: "P", DirectMandates: 4, ListSeats: 3, Overhang: 2, Floor: 5, Total: 5, Balance: 0},
		{Party: "R", DirectMandates: 0, ListSeats: 3, Overhang: 0, Floor: 3, Total: 5, Balance: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}
