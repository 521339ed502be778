package dataset

import (
	"context"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/agbru/seatcalc/internal/election"
	apperrors "github.com/agbru/seatcalc/internal/errors"
)

// Scenario models a self-contained YAML election file:
//
//	seats: 10
//	parties: [P, Q, R]
//	population:
//	  A: 60
//	  B: 40
//	constituencies:
//	  - id: A1
//	    region: A
//	    first: {P: 50, Q: 30}
//	    second: {P: 8, Q: 12}
type Scenario struct {
	Seats          int                   `yaml:"seats,omitempty"`
	Parties        []string              `yaml:"parties,omitempty"`
	Population     map[string]int64      `yaml:"population"`
	Constituencies []ScenarioConstituency `yaml:"constituencies"`
}

// ScenarioConstituency is one entry of Scenario.Constituencies.
type ScenarioConstituency struct {
	ID     string           `yaml:"id"`
	Region string           `yaml:"region"`
	First  map[string]int64 `yaml:"first"`
	Second map[string]int64 `yaml:"second"`
}

// ScenarioLoader reads a Scenario file.
type ScenarioLoader struct {
	Path string
}

// Load reads and converts the scenario.
func (l ScenarioLoader) Load(_ context.Context) (*Dataset, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, apperrors.DataError{Source: l.Path, Cause: err}
	}
	defer f.Close()
	ds, err := ReadScenario(f)
	if err != nil {
		return nil, apperrors.DataError{Source: l.Path, Cause: err}
	}
	ds.Source = "scenario:" + l.Path
	return ds, nil
}

// ReadScenario decodes a scenario. Unknown keys are rejected.
func ReadScenario(r io.Reader) (*Dataset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, err
	}
	return &Dataset{Election: s.Election(), Seats: s.Seats}, nil
}

// Election converts the scenario to the domain model.
func (s Scenario) Election() election.Election {
	e := election.Election{Population: make(map[election.Region]int64, len(s.Population))}
	for r, n := range s.Population {
		e.Population[election.Region(r)] = n
	}
	for _, p := range s.Parties {
		e.PartyOrder = append(e.PartyOrder, election.Party(p))
	}
	for _, c := range s.Constituencies {
		e.Constituencies = append(e.Constituencies, election.ConstituencyRecord{
			ID:          c.ID,
			Region:      election.Region(c.Region),
			FirstVotes:  partyVotes(c.First),
			SecondVotes: partyVotes(c.Second),
		})
	}
	return e
}

// ScenarioFrom is the inverse of Scenario.Election.
func ScenarioFrom(e election.Election, seats int) Scenario {
	s := Scenario{Seats: seats, Population: make(map[string]int64, len(e.Population))}
	for r, n := range e.Population {
		s.Population[string(r)] = n
	}
	for _, p := range e.PartyOrder {
		s.Parties = append(s.Parties, string(p))
	}
	for _, c := range e.Constituencies {
		sc := ScenarioConstituency{ID: c.ID, Region: string(c.Region), First: map[string]int64{}, Second: map[string]int64{}}
		for p, v := range c.FirstVotes {
			sc.First[string(p)] = v
		}
		for p, v := range c.SecondVotes {
			sc.Second[string(p)] = v
		}
		s.Constituencies = append(s.Constituencies, sc)
	}
	return s
}

// WriteScenario encodes e as a scenario document.
func WriteScenario(w io.Writer, e election.Election, seats int) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ScenarioFrom(e, seats)); err != nil {
		return err
	}
	return enc.Close()
}

func partyVotes(m map[string]int64) map[election.Party]int64 {
	out := make(map[election.Party]int64, len(m))
	for p, v := range m {
		out[election.Party(p)] = v
	}
	return out
}
