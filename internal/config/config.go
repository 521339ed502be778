// Package config defines the application configuration, parsed from command
// line flags, SEATCALC_ environment variables and an optional YAML file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/agbru/seatcalc/internal/apportion"
	"github.com/agbru/seatcalc/internal/election"
	apperrors "github.com/agbru/seatcalc/internal/errors"
	"github.com/agbru/seatcalc/internal/parallel"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "SEATCALC_"

// Output formats.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

// Defaults.
const (
	DefaultTimeout      = time.Minute
	DefaultRegionColumn = "Bundesland"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Seats is the nominal parliament size.
	Seats int
	// SeatsSet is true when Seats came from a flag, the environment or the
	// config file rather than the default.
	SeatsSet bool

	// Input: either the three CSV files, a scenario, or a database.
	PopulationFile  string
	FirstVotesFile  string
	SecondVotesFile string
	RegionColumn    string
	ScenarioFile    string
	Database        string

	// Allocation rules.
	Rounding          string
	TiePolicy         string
	MinShare          float64
	MinDirectMandates int
	MaxIterations     int

	// Execution.
	Parallel bool
	Workers  int
	Timeout  time.Duration

	// Output.
	Format         string
	OutputFile     string
	MetricsFile    string
	ResultsDB      string
	ExportScenario string
	ShowStages     bool
	Verbose        bool
	Quiet          bool
	NoColor        bool
	// TUI runs the interactive dashboard instead of printing the result.
	TUI bool

	// ConfigFile is the YAML file the values above may come from.
	ConfigFile string
}

// Default returns the configuration used when nothing is set.
func Default() AppConfig {
	rule := election.DefaultQualificationRule()
	return AppConfig{
		Seats:             election.DefaultSeats,
		RegionColumn:      DefaultRegionColumn,
		Rounding:          apportion.HalfEven.Name(),
		TiePolicy:         string(election.TieBallotOrder),
		MinShare:          rule.MinShare,
		MinDirectMandates: rule.MinDirectMandates,
		MaxIterations:     apportion.DefaultMaxIterations,
		Timeout:           DefaultTimeout,
		Format:            FormatTable,
	}
}

// ParseConfig parses args into an AppConfig. Values are resolved in the
// order: command-line flags, environment variables, the YAML config file,
// defaults. The result is validated.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	config := Default()

	fs.IntVar(&config.Seats, "seats", config.Seats, "Nominal number of seats before overhang and balance seats.")
	fs.StringVar(&config.PopulationFile, "population", "", "CSV file with one row per region: region, population.")
	fs.StringVar(&config.FirstVotesFile, "first-votes", "", "CSV file with first votes per constituency.")
	fs.StringVar(&config.SecondVotesFile, "second-votes", "", "CSV file with second votes per constituency.")
	fs.StringVar(&config.RegionColumn, "region-column", config.RegionColumn, "Name of the region column in the vote files.")
	fs.StringVar(&config.ScenarioFile, "scenario", "", "YAML scenario file holding the whole election.")
	fs.StringVar(&config.Database, "db", "", "SQLite database with population and votes tables.")
	fs.StringVar(&config.Rounding, "rounding", config.Rounding, "Rounding policy ("+strings.Join(apportion.RoundingNames(), ", ")+").")
	fs.StringVar(&config.TiePolicy, "tie-policy", config.TiePolicy, "Plurality tie handling (ballot-order, error).")
	fs.Float64Var(&config.MinShare, "min-share", config.MinShare, "Minimum national second-vote share to qualify (0.05 = 5%).")
	fs.IntVar(&config.MinDirectMandates, "min-direct", config.MinDirectMandates, "Minimum direct mandates to qualify.")
	fs.IntVar(&config.MaxIterations, "max-iterations", config.MaxIterations, "Divisor adjustments allowed per apportionment.")
	fs.BoolVar(&config.Parallel, "parallel", false, "Apportion regions and parties concurrently.")
	fs.IntVar(&config.Workers, "workers", 0, "Concurrent apportionments with --parallel (0 = one per CPU).")
	fs.DurationVar(&config.Timeout, "timeout", config.Timeout, "Maximum run time.")
	fs.StringVar(&config.Format, "format", config.Format, "Output format (table, csv, json).")
	fs.StringVar(&config.OutputFile, "output", "", "Write the result to this file instead of stdout.")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for --output.")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile.")
	fs.StringVar(&config.ResultsDB, "results-db", "", "Append the final seat table to this SQLite database.")
	fs.StringVar(&config.ExportScenario, "export-scenario", "", "Write the loaded election as a YAML scenario.")
	fs.BoolVar(&config.ShowStages, "stages", false, "Show intermediate stage tables.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Debug logging.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Only print the result.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&config.TUI, "tui", false, "Run the interactive dashboard.")
	fs.StringVar(&config.ConfigFile, "config", "", "YAML configuration file.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.ConfigError{Message: err.Error()}
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if !isFlagSet(fs, "config") {
		config.ConfigFile = getEnvString("CONFIG", config.ConfigFile)
	}
	config.SeatsSet = isFlagSet(fs, "seats")
	if config.ConfigFile != "" {
		fc, err := LoadFile(config.ConfigFile)
		if err != nil {
			return AppConfig{}, err
		}
		fc.apply(&config, fs)
		config.SeatsSet = config.SeatsSet || fc.Seats != nil
	}
	applyEnvOverrides(&config, fs)
	config.SeatsSet = config.SeatsSet || getEnvString("SEATS", "") != ""

	if err := config.Validate(); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the configuration for consistency.
func (c AppConfig) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Seats, validation.Required.Error("must be positive"), validation.Min(1).Error("must be positive")),
		validation.Field(&c.Rounding, validation.By(func(v any) error {
			_, err := apportion.ParseRounding(v.(string))
			return err
		})),
		validation.Field(&c.TiePolicy, validation.By(func(v any) error {
			_, err := election.ParseTiePolicy(v.(string))
			return err
		})),
		validation.Field(&c.MinShare, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.MinDirectMandates, validation.Required.Error("must be at least 1"), validation.Min(1)),
		validation.Field(&c.MaxIterations, validation.Required.Error("must be at least 1"), validation.Min(1)),
		validation.Field(&c.Workers, validation.Min(0)),
		validation.Field(&c.Timeout, validation.Required.Error("must be positive"), validation.Min(time.Duration(1)).Error("must be positive")),
		validation.Field(&c.Format, validation.In(FormatTable, FormatCSV, FormatJSON)),
	)
	if err != nil {
		return apperrors.ConfigError{Message: "invalid configuration: " + err.Error()}
	}
	if c.Verbose && c.Quiet {
		return apperrors.NewConfigError("--verbose and --quiet are mutually exclusive")
	}
	if c.TUI && (c.Quiet || c.Format != FormatTable || c.OutputFile != "") {
		return apperrors.NewConfigError("--tui cannot be combined with --quiet, --output or a non-table --format")
	}
	return c.validateInput()
}

func (c AppConfig) validateInput() error {
	csvParts := 0
	for _, f := range []string{c.PopulationFile, c.FirstVotesFile, c.SecondVotesFile} {
		if f != "" {
			csvParts++
		}
	}
	if csvParts != 0 && csvParts != 3 {
		return apperrors.NewConfigError("--population, --first-votes and --second-votes must be given together")
	}
	sources := 0
	if csvParts == 3 {
		sources++
	}
	if c.ScenarioFile != "" {
		sources++
	}
	if c.Database != "" {
		sources++
	}
	switch sources {
	case 0:
		return apperrors.NewConfigError("no input: use the CSV files, --scenario or --db")
	case 1:
		return nil
	}
	return apperrors.NewConfigError("more than one input source given")
}

// ElectionOptions translates the configuration into stage options. Workers
// is 1 unless Parallel is set.
func (c AppConfig) ElectionOptions() (election.Options, error) {
	rounding, err := apportion.ParseRounding(c.Rounding)
	if err != nil {
		return election.Options{}, apperrors.ConfigError{Message: err.Error()}
	}
	tie, err := election.ParseTiePolicy(c.TiePolicy)
	if err != nil {
		return election.Options{}, apperrors.ConfigError{Message: err.Error()}
	}
	opts := election.DefaultOptions()
	opts.Apportion.Rounding = rounding
	opts.Apportion.MaxIterations = c.MaxIterations
	opts.TiePolicy = tie
	opts.Qualification = election.QualificationRule{MinShare: c.MinShare, MinDirectMandates: c.MinDirectMandates}
	opts.Workers = 1
	if c.Parallel {
		opts.Workers = parallel.Workers(c.Workers)
	}
	return opts, nil
}

// IsHelp reports whether err is the flag package's help request.
func IsHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// String renders the settings that affect the result, for logs.
func (c AppConfig) String() string {
	return fmt.Sprintf("seats=%d rounding=%s tie-policy=%s min-share=%g min-direct=%d parallel=%t",
		c.Seats, c.Rounding, c.TiePolicy, c.MinShare, c.MinDirectMandates, c.Parallel)
}
