package format

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatCount renders a vote or population count with thousands separators.
func FormatCount(n int64) string {
	return humanize.Comma(n)
}

// FormatBytes renders a byte count in SI units ("1.0 MB").
func FormatBytes(b uint64) string {
	return humanize.Bytes(b)
}

// FormatShare renders a fraction as a percentage with two decimals.
func FormatShare(f float64) string {
	return fmt.Sprintf("%.2f%%", f*100)
}

// FormatDelta renders a seat difference with an explicit sign; zero is "0".
func FormatDelta(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}
