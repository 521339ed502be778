package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/agbru/seatcalc/internal/election"
	apperrors "github.com/agbru/seatcalc/internal/errors"
)

// Schema creates the input tables and the results table.
const Schema = `
CREATE TABLE IF NOT EXISTS population (
	region     TEXT PRIMARY KEY,
	population INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS votes (
	constituency TEXT NOT NULL,
	region       TEXT NOT NULL,
	party        TEXT NOT NULL,
	first        INTEGER NOT NULL DEFAULT 0,
	second       INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (constituency, party)
);
CREATE TABLE IF NOT EXISTS results (
	run_id     TEXT NOT NULL,
	created_at TEXT NOT NULL,
	party      TEXT NOT NULL,
	region     TEXT NOT NULL,
	seats      INTEGER NOT NULL,
	PRIMARY KEY (run_id, party, region)
);
`

// OpenSQLite opens the database at path (":memory:" for a private
// in-memory database) and makes sure the schema exists.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, apperrors.DataError{Source: path, Cause: fmt.Errorf("open database: %w", err)}
	}
	if path == ":memory:" {
		// Every pooled connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, apperrors.DataError{Source: path, Cause: fmt.Errorf("create schema: %w", err)}
	}
	return db, nil
}

// OpenSQLiteReadOnly opens an existing database without creating the file
// or the schema.
func OpenSQLiteReadOnly(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.DataError{Source: path, Cause: err}
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, apperrors.DataError{Source: path, Cause: fmt.Errorf("open database: %w", err)}
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, apperrors.DataError{Source: path, Cause: fmt.Errorf("open database: %w", err)}
	}
	return db, nil
}

// SQLiteLoader reads an election from the population and votes tables.
type SQLiteLoader struct {
	Path string
}

// Load opens the database read-only and reads the election.
func (l SQLiteLoader) Load(ctx context.Context) (*Dataset, error) {
	db, err := OpenSQLiteReadOnly(l.Path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	e, err := ReadElection(ctx, db)
	if err != nil {
		return nil, apperrors.DataError{Source: l.Path, Cause: err}
	}
	return &Dataset{Election: e, Source: "sqlite:" + l.Path}, nil
}

// ReadElection reads the election stored in db. Ballot order is the order in
// which parties first appear in the votes table.
func ReadElection(ctx context.Context, db *sql.DB) (election.Election, error) {
	e := election.Election{Population: make(map[election.Region]int64)}

	rows, err := db.QueryContext(ctx, `SELECT region, population FROM population`)
	if err != nil {
		return e, fmt.Errorf("query population: %w", err)
	}
	for rows.Next() {
		var region string
		var n int64
		if err := rows.Scan(&region, &n); err != nil {
			rows.Close()
			return e, fmt.Errorf("scan population: %w", err)
		}
		e.Population[election.Region(region)] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return e, err
	}

	rows, err = db.QueryContext(ctx, `
		SELECT constituency, region, party, first, second
		FROM votes
		ORDER BY rowid`)
	if err != nil {
		return e, fmt.Errorf("query votes: %w", err)
	}
	defer rows.Close()

	index := make(map[string]int)
	seen := make(map[election.Party]bool)
	for rows.Next() {
		var id, region, party string
		var first, second int64
		if err := rows.Scan(&id, &region, &party, &first, &second); err != nil {
			return e, fmt.Errorf("scan votes: %w", err)
		}
		p := election.Party(party)
		if !seen[p] {
			seen[p] = true
			e.PartyOrder = append(e.PartyOrder, p)
		}
		i, ok := index[id]
		if !ok {
			i = len(e.Constituencies)
			index[id] = i
			e.Constituencies = append(e.Constituencies, election.ConstituencyRecord{
				ID:          id,
				Region:      election.Region(region),
				FirstVotes:  make(map[election.Party]int64),
				SecondVotes: make(map[election.Party]int64),
			})
		}
		c := &e.Constituencies[i]
		if c.Region != election.Region(region) {
			return e, fmt.Errorf("constituency %s listed in regions %s and %s", id, c.Region, region)
		}
		c.FirstVotes[p] = first
		c.SecondVotes[p] = second
	}
	return e, rows.Err()
}

// WriteElection stores e in db inside one transaction, replacing any
// existing input rows.
func WriteElection(ctx context.Context, db *sql.DB, e election.Election) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM population`, `DELETE FROM votes`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	for _, r := range e.Regions() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO population (region, population) VALUES (?, ?)`, string(r), e.Population[r]); err != nil {
			return fmt.Errorf("insert population: %w", err)
		}
	}
	parties := e.Parties()
	for _, c := range e.Constituencies {
		for _, p := range parties {
			first, hasFirst := c.FirstVotes[p]
			second, hasSecond := c.SecondVotes[p]
			if !hasFirst && !hasSecond {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO votes (constituency, region, party, first, second) VALUES (?, ?, ?, ?, ?)`,
				c.ID, string(c.Region), string(p), first, second); err != nil {
				return fmt.Errorf("insert votes: %w", err)
			}
		}
	}
	return tx.Commit()
}

// SaveSeats appends the cells of a seat table to the results table under
// runID.
func SaveSeats(ctx context.Context, db *sql.DB, runID string, t election.SeatTable) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	created := time.Now().UTC().Format(time.RFC3339)
	for _, p := range t.Parties() {
		for r, n := range t.Row(p) {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO results (run_id, created_at, party, region, seats) VALUES (?, ?, ?, ?, ?)`,
				runID, created, string(p), string(r), n); err != nil {
				return fmt.Errorf("insert result: %w", err)
			}
		}
	}
	return tx.Commit()
}
