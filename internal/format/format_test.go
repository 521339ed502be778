package format

import (
	"testing"
	"time"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{42 * time.Millisecond, "42ms"},
		{1500 * time.Millisecond, "1.5s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatNumbers(t *testing.T) {
	t.Parallel()
	if got := FormatCount(83166711); got != "83,166,711" {
		t.Errorf("FormatCount = %q", got)
	}
	if got := FormatBytes(1_000_000); got != "1.0 MB" {
		t.Errorf("FormatBytes = %q", got)
	}
	if got := FormatShare(0.05); got != "5.00%" {
		t.Errorf("FormatShare = %q", got)
	}
	for n, want := range map[int]string{3: "+3", 0: "0", -2: "-2"} {
		if got := FormatDelta(n); got != want {
			t.Errorf("FormatDelta(%d) = %q, want %q", n, got, want)
		}
	}
}
