package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/seatcalc/internal/errors"
)

// FileConfig models the YAML configuration file. Absent keys leave the
// corresponding setting untouched.
//
//	seats: 598
//	input:
//	  scenario: election.yaml
//	rules:
//	  rounding: half-even
//	  min_share: 0.05
//	output:
//	  format: json
type FileConfig struct {
	Seats *int        `yaml:"seats"`
	Input InputConfig `yaml:"input"`
	Rules RulesConfig `yaml:"rules"`
	Run   RunConfig   `yaml:"run"`
	Out   OutConfig   `yaml:"output"`
}

// InputConfig is the input section.
type InputConfig struct {
	Population   *string `yaml:"population"`
	FirstVotes   *string `yaml:"first_votes"`
	SecondVotes  *string `yaml:"second_votes"`
	RegionColumn *string `yaml:"region_column"`
	Scenario     *string `yaml:"scenario"`
	Database     *string `yaml:"db"`
}

// RulesConfig is the allocation rules section.
type RulesConfig struct {
	Rounding          *string  `yaml:"rounding"`
	TiePolicy         *string  `yaml:"tie_policy"`
	MinShare          *float64 `yaml:"min_share"`
	MinDirectMandates *int     `yaml:"min_direct"`
	MaxIterations     *int     `yaml:"max_iterations"`
}

// RunConfig is the execution section.
type RunConfig struct {
	Parallel *bool   `yaml:"parallel"`
	Workers  *int    `yaml:"workers"`
	Timeout  *string `yaml:"timeout"`
}

// OutConfig is the output section.
type OutConfig struct {
	Format      *string `yaml:"format"`
	File        *string `yaml:"file"`
	MetricsFile *string `yaml:"metrics_file"`
	ResultsDB   *string `yaml:"results_db"`
	Stages      *bool   `yaml:"stages"`
	NoColor     *bool   `yaml:"no_color"`
	TUI         *bool   `yaml:"tui"`
}

// LoadFile reads and decodes a configuration file. Unknown keys are errors.
func LoadFile(path string) (*FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewConfigError("config file: %v", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var fc FileConfig
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.NewConfigError("config file %s: %v", path, err)
	}
	if fc.Run.Timeout != nil {
		if _, err := time.ParseDuration(*fc.Run.Timeout); err != nil {
			return nil, apperrors.NewConfigError("config file %s: run.timeout: %v", path, err)
		}
	}
	return &fc, nil
}

// apply copies every present value onto c unless its flag was set.
func (fc *FileConfig) apply(c *AppConfig, fs *flag.FlagSet) {
	setInt := func(dst *int, v *int, flags ...string) {
		if v != nil && !isFlagSetAny(fs, flags...) {
			*dst = *v
		}
	}
	setString := func(dst *string, v *string, flags ...string) {
		if v != nil && !isFlagSetAny(fs, flags...) {
			*dst = *v
		}
	}
	setBool := func(dst *bool, v *bool, flags ...string) {
		if v != nil && !isFlagSetAny(fs, flags...) {
			*dst = *v
		}
	}

	setInt(&c.Seats, fc.Seats, "seats")
	setString(&c.PopulationFile, fc.Input.Population, "population")
	setString(&c.FirstVotesFile, fc.Input.FirstVotes, "first-votes")
	setString(&c.SecondVotesFile, fc.Input.SecondVotes, "second-votes")
	setString(&c.RegionColumn, fc.Input.RegionColumn, "region-column")
	setString(&c.ScenarioFile, fc.Input.Scenario, "scenario")
	setString(&c.Database, fc.Input.Database, "db")
	setString(&c.Rounding, fc.Rules.Rounding, "rounding")
	setString(&c.TiePolicy, fc.Rules.TiePolicy, "tie-policy")
	if fc.Rules.MinShare != nil && !isFlagSet(fs, "min-share") {
		c.MinShare = *fc.Rules.MinShare
	}
	setInt(&c.MinDirectMandates, fc.Rules.MinDirectMandates, "min-direct")
	setInt(&c.MaxIterations, fc.Rules.MaxIterations, "max-iterations")
	setBool(&c.Parallel, fc.Run.Parallel, "parallel")
	setInt(&c.Workers, fc.Run.Workers, "workers")
	if fc.Run.Timeout != nil && !isFlagSet(fs, "timeout") {
		// Checked in LoadFile.
		c.Timeout, _ = time.ParseDuration(*fc.Run.Timeout)
	}
	setString(&c.Format, fc.Out.Format, "format")
	setString(&c.OutputFile, fc.Out.File, "output", "o")
	setString(&c.MetricsFile, fc.Out.MetricsFile, "metrics-file")
	setString(&c.ResultsDB, fc.Out.ResultsDB, "results-db")
	setBool(&c.ShowStages, fc.Out.Stages, "stages")
	setBool(&c.NoColor, fc.Out.NoColor, "no-color")
	setBool(&c.TUI, fc.Out.TUI, "tui")
}
