package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E verifies the built binary end to end.
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}
	tmpDir := t.TempDir()
	binName := "seatcalc"
	if runtime.GOOS == "windows" {
		binName = "seatcalc.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs in the package directory; build from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/seatcalc")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build seatcalc: %v", err)
	}

	csvArgs := []string{
		"--population", "testdata/population.csv",
		"--first-votes", "testdata/first_votes.csv",
		"--second-votes", "testdata/second_votes.csv",
	}
	with := func(base []string, extra ...string) []string {
		return append(append([]string(nil), base...), extra...)
	}

	tests := []struct {
		name     string
		args     []string
		wantOut  []string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Scenario Table",
			args:     []string{"--scenario", "testdata/scenario.yaml"},
			wantOut:  []string{"final distribution", "parliament: 18 seats (nominal 10, +8)"},
			wantCode: 0,
		},
		{
			name:     "CSV Input CSV Output",
			args:     with(csvArgs, "--seats", "10", "--format", "csv", "-q"),
			wantOut:  []string{"party,region,seats", "P,A,4", "Q,B,4", "R,B,3"},
			wantCode: 0,
		},
		{
			name:     "Parallel JSON",
			args:     with(csvArgs, "--seats", "10", "--format", "json", "--parallel", "--workers", "4", "-q"),
			wantOut:  []string{`"total_seats": 18`, `"overhang": 2`},
			wantCode: 0,
		},
		{
			name:     "Stages",
			args:     []string{"--scenario", "testdata/scenario.yaml", "--stages"},
			wantOut:  []string{"regional baseline", "qualification", "stage timings"},
			wantCode: 0,
		},
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  []string{"usage"},
			wantCode: 0,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  []string{"seatcalc"},
			wantCode: 0,
		},
		{
			name:     "Missing Input",
			args:     nil,
			wantOut:  []string{"no input"},
			wantCode: 4,
		},
		{
			name:     "Unreadable File",
			args:     []string{"--scenario", "testdata/missing.yaml"},
			wantOut:  []string{"missing.yaml"},
			wantCode: 6,
		},
		{
			name:     "Tie Fails With Error Policy",
			args:     []string{"--scenario", "testdata/tie.yaml", "--tie-policy", "error"},
			wantOut:  []string{"tie"},
			wantCode: 1,
		},
		{
			name:     "Tie Ballot Order",
			args:     []string{"--scenario", "testdata/tie.yaml", "--format", "csv", "-q"},
			wantOut:  []string{"P,A,2", "Q,A,2"},
			wantCode: 0,
		},
		{
			name:     "No Qualified Party",
			args:     []string{"--scenario", "testdata/scenario.yaml", "--min-share", "0.9", "--min-direct", "9"},
			wantOut:  []string{"error"},
			wantCode: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("Command failed to run: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput: %s", code, tt.wantCode, outStr)
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(strings.ToLower(outStr), strings.ToLower(want)) {
					t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", want, outStr)
				}
			}
		})
	}
}
