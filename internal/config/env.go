// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the SEATCALC_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

func intOverride(set func(*AppConfig, int)) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			set(c, parsed)
		}
	}
}

func boolOverride(get func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		p := get(c)
		*p = parseBoolEnv(v, *p)
	}
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	{"SEATS", []string{"seats"}, intOverride(func(c *AppConfig, n int) { c.Seats = n })},
	{"MIN_DIRECT", []string{"min-direct"}, intOverride(func(c *AppConfig, n int) { c.MinDirectMandates = n })},
	{"MAX_ITERATIONS", []string{"max-iterations"}, intOverride(func(c *AppConfig, n int) { c.MaxIterations = n })},
	{"WORKERS", []string{"workers"}, intOverride(func(c *AppConfig, n int) { c.Workers = n })},
	{"MIN_SHARE", []string{"min-share"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.MinShare = parsed
		}
	}},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	// String overrides
	{"POPULATION", []string{"population"}, func(c *AppConfig, v string) { c.PopulationFile = v }},
	{"FIRST_VOTES", []string{"first-votes"}, func(c *AppConfig, v string) { c.FirstVotesFile = v }},
	{"SECOND_VOTES", []string{"second-votes"}, func(c *AppConfig, v string) { c.SecondVotesFile = v }},
	{"REGION_COLUMN", []string{"region-column"}, func(c *AppConfig, v string) { c.RegionColumn = v }},
	{"SCENARIO", []string{"scenario"}, func(c *AppConfig, v string) { c.ScenarioFile = v }},
	{"DB", []string{"db"}, func(c *AppConfig, v string) { c.Database = v }},
	{"ROUNDING", []string{"rounding"}, func(c *AppConfig, v string) { c.Rounding = v }},
	{"TIE_POLICY", []string{"tie-policy"}, func(c *AppConfig, v string) { c.TiePolicy = v }},
	{"FORMAT", []string{"format"}, func(c *AppConfig, v string) { c.Format = v }},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) { c.OutputFile = v }},
	{"METRICS_FILE", []string{"metrics-file"}, func(c *AppConfig, v string) { c.MetricsFile = v }},
	{"RESULTS_DB", []string{"results-db"}, func(c *AppConfig, v string) { c.ResultsDB = v }},

	// Boolean overrides
	{"PARALLEL", []string{"parallel"}, boolOverride(func(c *AppConfig) *bool { return &c.Parallel })},
	{"STAGES", []string{"stages"}, boolOverride(func(c *AppConfig) *bool { return &c.ShowStages })},
	{"VERBOSE", []string{"v", "verbose"}, boolOverride(func(c *AppConfig) *bool { return &c.Verbose })},
	{"QUIET", []string{"quiet", "q"}, boolOverride(func(c *AppConfig) *bool { return &c.Quiet })},
	{"NO_COLOR", []string{"no-color"}, boolOverride(func(c *AppConfig) *bool { return &c.NoColor })},
	{"TUI", []string{"tui"}, boolOverride(func(c *AppConfig) *bool { return &c.TUI })},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > config file > Defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
