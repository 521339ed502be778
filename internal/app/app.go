package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/seatcalc/internal/config"
	"github.com/agbru/seatcalc/internal/dataset"
	"github.com/agbru/seatcalc/internal/logging"
	"github.com/agbru/seatcalc/internal/ui"
)

// Application represents the seatcalc application instance.
type Application struct {
	Config    config.AppConfig
	Loader    dataset.Loader
	Logger    logging.Logger
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLoader replaces the loader chosen from the configuration.
func WithLoader(l dataset.Loader) AppOption {
	return func(a *Application) { a.Loader = l }
}

// WithLogger replaces the zerolog logger built from the configuration.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := "seatcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app := &Application{Config: cfg, ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Loader == nil {
		app.Loader = loaderFor(cfg)
	}
	if app.Logger == nil {
		app.Logger = newLogger(cfg, errWriter)
	}
	return app, nil
}

// loaderFor picks the loader matching the configured input source.
// ParseConfig guarantees exactly one is set.
func loaderFor(cfg config.AppConfig) dataset.Loader {
	switch {
	case cfg.ScenarioFile != "":
		return dataset.ScenarioLoader{Path: cfg.ScenarioFile}
	case cfg.Database != "":
		return dataset.SQLiteLoader{Path: cfg.Database}
	}
	return dataset.CSVLoader{
		PopulationPath:  cfg.PopulationFile,
		FirstVotesPath:  cfg.FirstVotesFile,
		SecondVotesPath: cfg.SecondVotesFile,
		RegionColumn:    cfg.RegionColumn,
	}
}

func newLogger(cfg config.AppConfig, w io.Writer) logging.Logger {
	level := zerolog.WarnLevel
	switch {
	case cfg.Verbose:
		level = zerolog.DebugLevel
	case cfg.Quiet:
		level = zerolog.ErrorLevel
	}
	zl := zerolog.New(w).Level(level).With().Timestamp().Str("component", "seatcalc").Logger()
	return logging.NewZerologAdapter(zl)
}

// Run executes one seat allocation and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	// The dashboard bounds each run itself and stays open afterwards.
	if a.Config.TUI {
		return a.runTUI(ctx)
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	return a.runAllocate(ctx, out)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
