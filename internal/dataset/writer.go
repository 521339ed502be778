package dataset

import (
	"encoding/csv"
	"io"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/agbru/seatcalc/internal/election"
	"github.com/agbru/seatcalc/internal/orchestration"
)

// WriteCSV writes t as "party,region,seats" rows, parties and regions sorted.
func WriteCSV(w io.Writer, t election.SeatTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"party", "region", "seats"}); err != nil {
		return err
	}
	regions := t.Regions()
	for _, p := range t.Parties() {
		for _, r := range regions {
			if err := cw.Write([]string{string(p), string(r), strconv.Itoa(t.Get(p, r))}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// Report is the JSON shape of a run.
type Report struct {
	RunID             string                    `json:"run_id"`
	NominalSeats      int                       `json:"nominal_seats"`
	TotalSeats        int                       `json:"total_seats"`
	Seats             map[string]map[string]int `json:"seats"`
	Parties           []PartyReport             `json:"parties"`
	UnqualifiedDirect map[string]map[string]int `json:"unqualified_direct_mandates,omitempty"`
	Ties              []TieReport               `json:"ties,omitempty"`
	Stages            []StageReport             `json:"stages,omitempty"`
}

// PartyReport is one party's summary line.
type PartyReport struct {
	Party          string `json:"party"`
	DirectMandates int    `json:"direct_mandates"`
	ListSeats      int    `json:"list_seats"`
	Overhang       int    `json:"overhang"`
	Balance        int    `json:"balance"`
	Total          int    `json:"total"`
}

// TieReport records a constituency decided by the tie policy.
type TieReport struct {
	Constituency string   `json:"constituency"`
	Region       string   `json:"region"`
	Parties      []string `json:"parties"`
	Winner       string   `json:"winner"`
}

// StageReport is a stage timing in microseconds.
type StageReport struct {
	Stage        string `json:"stage"`
	Microseconds int64  `json:"us"`
}

// NewReport flattens a Result for serialisation.
func NewReport(res *orchestration.Result) Report {
	rep := Report{
		RunID:        res.RunID,
		NominalSeats: res.NominalSeats,
		TotalSeats:   res.TotalSeats,
		Seats:        tableMap(res.Final),
	}
	for _, s := range res.Summaries {
		rep.Parties = append(rep.Parties, PartyReport{
			Party:          string(s.Party),
			DirectMandates: s.DirectMandates,
			ListSeats:      s.ListSeats,
			Overhang:       s.Overhang,
			Balance:        s.Balance,
			Total:          s.Total,
		})
	}
	if res.UnqualifiedDirect.Total() > 0 {
		rep.UnqualifiedDirect = tableMap(res.UnqualifiedDirect)
	}
	for _, t := range res.Ties {
		tr := TieReport{Constituency: t.Constituency, Region: string(t.Region), Winner: string(t.Winner)}
		for _, p := range t.Parties {
			tr.Parties = append(tr.Parties, string(p))
		}
		rep.Ties = append(rep.Ties, tr)
	}
	for _, st := range res.Stages {
		rep.Stages = append(rep.Stages, StageReport{Stage: string(st.Stage), Microseconds: st.Duration.Microseconds()})
	}
	return rep
}

// WriteJSON writes the report of res as indented JSON.
func WriteJSON(w io.Writer, res *orchestration.Result) error {
	data, err := json.MarshalIndent(NewReport(res), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func tableMap(t election.SeatTable) map[string]map[string]int {
	out := make(map[string]map[string]int)
	for p, row := range t.ToMap() {
		m := make(map[string]int, len(row))
		for r, n := range row {
			m[string(r)] = n
		}
		out[string(p)] = m
	}
	return out
}
