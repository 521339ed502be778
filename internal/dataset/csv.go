package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agbru/seatcalc/internal/election"
	apperrors "github.com/agbru/seatcalc/internal/errors"
)

// DefaultRegionColumn is the region column of the vote files.
const DefaultRegionColumn = "Bundesland"

// CSVLoader reads the three-file layout: a population file with one row per
// region (first column region, second column population) and two vote files
// with one row per constituency. A vote file's first column is the
// constituency, RegionColumn names the region, and every other column is a
// party. Column order defines ballot order.
type CSVLoader struct {
	PopulationPath  string
	FirstVotesPath  string
	SecondVotesPath string
	RegionColumn    string
}

// Load reads all three files.
func (l CSVLoader) Load(ctx context.Context) (*Dataset, error) {
	population, err := readFile(l.PopulationPath, ReadPopulation)
	if err != nil {
		return nil, err
	}
	column := l.RegionColumn
	if column == "" {
		column = DefaultRegionColumn
	}
	readVotes := func(r io.Reader) (*VoteTable, error) { return ReadVotes(r, column) }
	first, err := readFile(l.FirstVotesPath, readVotes)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	second, err := readFile(l.SecondVotesPath, readVotes)
	if err != nil {
		return nil, err
	}
	e, err := MergeVotes(population, first, second)
	if err != nil {
		return nil, apperrors.DataError{Source: l.SecondVotesPath, Cause: err}
	}
	return &Dataset{Election: e, Source: "csv:" + l.FirstVotesPath}, nil
}

func readFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, apperrors.DataError{Source: path, Cause: err}
	}
	defer f.Close()
	v, err := read(f)
	if err != nil {
		return zero, apperrors.DataError{Source: path, Cause: err}
	}
	return v, nil
}

// ReadPopulation parses a population table. The header row is skipped.
func ReadPopulation(r io.Reader) (map[election.Region]int64, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, errors.New("population table has no data rows")
	}
	out := make(map[election.Region]int64, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < 2 {
			return nil, lineError(i+2, "expected region and population")
		}
		region := election.Region(strings.TrimSpace(row[0]))
		if _, dup := out[region]; dup {
			return nil, lineError(i+2, "duplicate region "+string(region))
		}
		n, err := parseCount(row[1])
		if err != nil {
			return nil, lineError(i+2, err.Error())
		}
		out[region] = n
	}
	return out, nil
}

// VoteTable is one parsed vote file.
type VoteTable struct {
	Parties []election.Party
	Rows    []VoteRow
}

// VoteRow is one constituency of a vote file.
type VoteRow struct {
	Constituency string
	Region       election.Region
	Votes        map[election.Party]int64
}

// ReadVotes parses a vote file whose region column is named regionColumn.
func ReadVotes(r io.Reader, regionColumn string) (*VoteTable, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("vote table is empty")
	}
	header := rows[0]
	regionIdx := -1
	for i, h := range header {
		if strings.TrimSpace(h) == regionColumn {
			regionIdx = i
		}
	}
	if regionIdx <= 0 {
		return nil, errors.New("vote table has no region column " + regionColumn + " after the constituency column")
	}

	t := &VoteTable{}
	partyIdx := make([]int, 0, len(header))
	for i, h := range header {
		if i == 0 || i == regionIdx {
			continue
		}
		t.Parties = append(t.Parties, election.Party(strings.TrimSpace(h)))
		partyIdx = append(partyIdx, i)
	}
	for line, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, lineError(line+2, "column count does not match header")
		}
		vr := VoteRow{
			Constituency: strings.TrimSpace(row[0]),
			Region:       election.Region(strings.TrimSpace(row[regionIdx])),
			Votes:        make(map[election.Party]int64, len(partyIdx)),
		}
		for j, idx := range partyIdx {
			n, err := parseCount(row[idx])
			if err != nil {
				return nil, lineError(line+2, err.Error())
			}
			vr.Votes[t.Parties[j]] = n
		}
		t.Rows = append(t.Rows, vr)
	}
	return t, nil
}

// MergeVotes joins first and second votes on the constituency column. Both
// tables must list the same constituencies in the same regions; the order
// of the first table is kept.
func MergeVotes(population map[election.Region]int64, first, second *VoteTable) (election.Election, error) {
	secondByID := make(map[string]VoteRow, len(second.Rows))
	for _, row := range second.Rows {
		secondByID[row.Constituency] = row
	}
	if len(secondByID) != len(first.Rows) {
		return election.Election{}, errors.New("first and second vote tables list different constituencies")
	}

	e := election.Election{Population: population}
	seen := make(map[election.Party]bool)
	for _, p := range append(append([]election.Party(nil), first.Parties...), second.Parties...) {
		if !seen[p] {
			seen[p] = true
			e.PartyOrder = append(e.PartyOrder, p)
		}
	}
	for _, row := range first.Rows {
		s, ok := secondByID[row.Constituency]
		if !ok {
			return election.Election{}, errors.New("constituency " + row.Constituency + " has no second votes")
		}
		if s.Region != row.Region {
			return election.Election{}, errors.New("constituency " + row.Constituency + " is in different regions in the two tables")
		}
		e.Constituencies = append(e.Constituencies, election.ConstituencyRecord{
			ID:          row.Constituency,
			Region:      row.Region,
			FirstVotes:  row.Votes,
			SecondVotes: s.Votes,
		})
	}
	return e, nil
}

func readAll(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	return cr.ReadAll()
}

func lineError(line int, msg string) error {
	return fmt.Errorf("line %d: %s", line, msg)
}
