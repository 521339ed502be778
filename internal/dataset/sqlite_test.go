package dataset

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/agbru/seatcalc/internal/election"
	apperrors "github.com/agbru/seatcalc/internal/errors"
)

func sampleElection() election.Election {
	return election.Election{
		Population: map[election.Region]int64{"A": 60, "B": 40},
		PartyOrder: []election.Party{"Q", "P"},
		Constituencies: []election.ConstituencyRecord{
			{ID: "A1", Region: "A", FirstVotes: map[election.Party]int64{"P": 50, "Q": 30}, SecondVotes: map[election.Party]int64{"P": 8, "Q": 12}},
			{ID: "B1", Region: "B", FirstVotes: map[election.Party]int64{"P": 10, "Q": 40}, SecondVotes: map[election.Party]int64{"P": 10, "Q": 21}},
		},
	}
}

// setupTestDB opens a private in-memory database.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLite_ElectionRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := setupTestDB(t)
	want := sampleElection()

	if err := WriteElection(ctx, db, want); err != nil {
		t.Fatalf("WriteElection() error: %v", err)
	}
	got, err := ReadElection(ctx, db)
	if err != nil {
		t.Fatalf("ReadElection() error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}

	// Writing again replaces rather than duplicates.
	if err := WriteElection(ctx, db, want); err != nil {
		t.Fatalf("second WriteElection() error: %v", err)
	}
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("votes rows = %d, want 4", n)
	}
}

func TestSQLiteLoader_File(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "election.db")
	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteElection(ctx, db, sampleElection()); err != nil {
		t.Fatal(err)
	}
	db.Close()

	ds, err := SQLiteLoader{Path: path}.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(ds.Election.Constituencies) != 2 || ds.Source != "sqlite:"+path {
		t.Errorf("dataset = %+v", ds)
	}
}

func TestSQLiteLoader_MissingFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "typo.db")

	_, err := SQLiteLoader{Path: path}.Load(context.Background())
	var dataErr apperrors.DataError
	if !errors.As(err, &dataErr) {
		t.Fatalf("Load() error = %v, want DataError", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("loading must not create the database file")
	}
}

func TestSQLiteLoader_NoTables(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "empty.db")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := SQLiteLoader{Path: path}.Load(context.Background())
	var dataErr apperrors.DataError
	if !errors.As(err, &dataErr) {
		t.Fatalf("Load() error = %v, want DataError", err)
	}
}

func TestReadElection_RegionConflict(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := setupTestDB(t)
	_, err := db.ExecContext(ctx, `INSERT INTO votes (constituency, region, party, first, second) VALUES
		('K1', 'A', 'P', 1, 1),
		('K1', 'B', 'Q', 2, 2)`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ReadElection(ctx, db); err == nil {
		t.Error("a constituency in two regions should be rejected")
	}
}

func TestSaveSeats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := setupTestDB(t)
	table := election.SeatTableFromMap(map[election.Party]map[election.Region]int{
		"P": {"A": 4, "B": 1},
		"Q": {"A": 4, "B": 4},
	})
	if err := SaveSeats(ctx, db, "run-1", table); err != nil {
		t.Fatalf("SaveSeats() error: %v", err)
	}
	if err := SaveSeats(ctx, db, "run-2", table); err != nil {
		t.Fatalf("SaveSeats() second run error: %v", err)
	}

	var rows, seats int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*), SUM(seats) FROM results WHERE run_id = ?`, "run-1").Scan(&rows, &seats)
	if err != nil {
		t.Fatal(err)
	}
	if rows != 4 || seats != 13 {
		t.Errorf("run-1: %d rows, %d seats; want 4 and 13", rows, seats)
	}
	if err := SaveSeats(ctx, db, "run-1", table); err == nil {
		t.Error("saving the same run twice should violate the primary key")
	}
}
