package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build information, set with -ldflags "-X".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args request the version. It is checked
// before flag parsing so that --version works without an input source.
func HasVersionFlag(args []string) bool {
	for _, a := range args {
		switch a {
		case "--version", "-version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the build information.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "seatcalc %s (commit %s, built %s, %s %s/%s)\n",
		Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
