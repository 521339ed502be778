package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agbru/seatcalc/internal/config"
)

func TestWriteResult(t *testing.T) {
	t.Parallel()
	res := runResult(t)
	tmpDir := t.TempDir()

	testCases := []struct {
		name      string
		cfg       OutputConfig
		checkFunc func(t *testing.T, stdout string)
	}{
		{
			name: "CSV to stdout",
			cfg:  OutputConfig{Format: config.FormatCSV},
			checkFunc: func(t *testing.T, stdout string) {
				if !strings.HasPrefix(stdout, "party,region,seats\n") {
					t.Errorf("missing CSV header: %q", stdout)
				}
				if !strings.Contains(stdout, "P,A,4\n") {
					t.Errorf("missing row P,A,4: %q", stdout)
				}
			},
		},
		{
			name: "JSON to stdout",
			cfg:  OutputConfig{Format: config.FormatJSON},
			checkFunc: func(t *testing.T, stdout string) {
				var rep struct {
					TotalSeats int `json:"total_seats"`
				}
				if err := json.Unmarshal([]byte(stdout), &rep); err != nil {
					t.Fatalf("invalid JSON: %v", err)
				}
				if rep.TotalSeats != 18 {
					t.Errorf("total_seats = %d, want 18", rep.TotalSeats)
				}
			},
		},
		{
			name: "Table to nested file",
			cfg:  OutputConfig{Format: config.FormatTable, OutputFile: filepath.Join(tmpDir, "nested", "dir", "seats.txt")},
			checkFunc: func(t *testing.T, stdout string) {
				if !strings.Contains(stdout, "Result saved to") {
					t.Errorf("stdout = %q, want save notice", stdout)
				}
				content, err := os.ReadFile(filepath.Join(tmpDir, "nested", "dir", "seats.txt"))
				if err != nil {
					t.Fatalf("failed to read output file: %v", err)
				}
				if !strings.Contains(string(content), "Final distribution") {
					t.Errorf("file content = %q", content)
				}
			},
		},
		{
			name: "Quiet file",
			cfg:  OutputConfig{Format: config.FormatCSV, OutputFile: filepath.Join(tmpDir, "quiet.csv"), Quiet: true},
			checkFunc: func(t *testing.T, stdout string) {
				if stdout != "" {
					t.Errorf("stdout = %q, want nothing in quiet mode", stdout)
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			if err := WriteResult(&out, res, tc.cfg); err != nil {
				t.Fatalf("WriteResult() error: %v", err)
			}
			tc.checkFunc(t, out.String())
		})
	}
}

func TestWriteResultErrors(t *testing.T) {
	t.Parallel()
	res := runResult(t)

	if err := WriteResult(&bytes.Buffer{}, res, OutputConfig{Format: "xml"}); err == nil {
		t.Error("expected error for unknown format")
	}

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	err := WriteResult(&bytes.Buffer{}, res, OutputConfig{Format: config.FormatCSV, OutputFile: filepath.Join(blocker, "out.csv")})
	if err == nil {
		t.Error("expected error when the output directory is a file")
	}
}
