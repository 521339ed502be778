package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/agbru/seatcalc/internal/cli"
	"github.com/agbru/seatcalc/internal/config"
	"github.com/agbru/seatcalc/internal/dataset"
	apperrors "github.com/agbru/seatcalc/internal/errors"
	"github.com/agbru/seatcalc/internal/logging"
	"github.com/agbru/seatcalc/internal/metrics"
	"github.com/agbru/seatcalc/internal/orchestration"
	"github.com/agbru/seatcalc/internal/sysmon"
	"github.com/agbru/seatcalc/internal/ui"
)

// runAllocate loads the election, runs the pipeline and writes every
// configured output.
func (a *Application) runAllocate(ctx context.Context, out io.Writer) int {
	start := time.Now()
	handler := cli.CLIResultPresenter{}
	recorder := metrics.NewRecorder()
	fail := func(err error) int {
		recorder.RecordFailure()
		a.writeMetrics(recorder)
		return handler.HandleError(err, time.Since(start), a.ErrWriter)
	}

	ds, err := a.Loader.Load(ctx)
	if err != nil {
		return fail(err)
	}
	seats := a.seatsFor(ds)
	a.Logger.Debug("election loaded",
		logging.String("source", ds.Source),
		logging.Int("constituencies", len(ds.Election.Constituencies)),
		logging.Int("regions", len(ds.Election.Regions())),
		logging.Int("seats", seats),
	)

	if a.Config.ExportScenario != "" {
		if err := exportScenario(a.Config.ExportScenario, ds, seats); err != nil {
			return fail(err)
		}
	}

	eopts, err := a.Config.ElectionOptions()
	if err != nil {
		return fail(err)
	}
	eopts.Apportion.Observer = recorder.ObserveApportionment

	showHeader := !a.Config.Quiet && a.Config.Format == config.FormatTable
	if showHeader {
		printExecutionConfig(a.Config, ds, seats, out)
	}

	var reporter orchestration.StageReporter = cli.CLIStageReporter{}
	if a.Config.Quiet {
		reporter = orchestration.NullStageReporter{}
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()
	res, err := orchestration.Run(ctx, ds.Election, orchestration.Options{
		Seats:    seats,
		Election: eopts,
		Logger:   a.Logger,
		Reporter: reporter,
		Out:      a.ErrWriter,
	})
	usage := collector.Snapshot().Since(before)
	recorder.RecordMemory(usage)
	recorder.RecordSystem(sysmon.Sample())
	if err != nil {
		return fail(err)
	}
	recorder.RecordResult(res)

	outputCfg := cli.OutputConfig{
		Format:     a.Config.Format,
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		ShowStages: a.Config.ShowStages,
	}
	if err := cli.WriteResult(out, res, outputCfg); err != nil {
		return fail(err)
	}
	if a.Config.ResultsDB != "" {
		if err := saveResults(ctx, a.Config.ResultsDB, res); err != nil {
			return fail(err)
		}
		a.Logger.Info("results saved", logging.String("run_id", res.RunID), logging.String("db", a.Config.ResultsDB))
	}
	if err := a.writeMetrics(recorder); err != nil {
		return handler.HandleError(err, time.Since(start), a.ErrWriter)
	}
	if a.Config.Verbose {
		cli.DisplayMemoryStats(usage, a.ErrWriter)
	}
	return apperrors.ExitSuccess
}

// seatsFor returns the nominal seat count. A count stored with the data
// applies unless one was configured explicitly.
func (a *Application) seatsFor(ds *dataset.Dataset) int {
	if ds.Seats > 0 && !a.Config.SeatsSet {
		return ds.Seats
	}
	return a.Config.Seats
}

func (a *Application) writeMetrics(r *metrics.Recorder) error {
	if a.Config.MetricsFile == "" {
		return nil
	}
	if err := r.WriteTextfile(a.Config.MetricsFile); err != nil {
		a.Logger.Error("writing metrics failed", err, logging.String("path", a.Config.MetricsFile))
		return fmt.Errorf("metrics file: %w", err)
	}
	return nil
}

func exportScenario(path string, ds *dataset.Dataset, seats int) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.DataError{Source: path, Cause: err}
	}
	if err := dataset.WriteScenario(f, ds.Election, seats); err != nil {
		f.Close()
		return apperrors.DataError{Source: path, Cause: err}
	}
	if err := f.Close(); err != nil {
		return apperrors.DataError{Source: path, Cause: err}
	}
	return nil
}

func saveResults(ctx context.Context, path string, res *orchestration.Result) error {
	db, err := dataset.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := dataset.SaveSeats(ctx, db, res.RunID, res.Final); err != nil {
		return apperrors.DataError{Source: path, Cause: err}
	}
	return nil
}

// printExecutionConfig displays what is about to be computed.
func printExecutionConfig(cfg config.AppConfig, ds *dataset.Dataset, seats int, out io.Writer) {
	st := ui.CurrentStyles()
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Allocating %s seats across %d regions and %d constituencies %s.\n",
		st.Success.Render(fmt.Sprint(seats)),
		len(ds.Election.Regions()), len(ds.Election.Constituencies),
		st.Dim.Render("("+ds.Source+")"))
	fmt.Fprintf(out, "Rules: %s rounding, threshold %.4g%% or %d direct mandates, ties by %s.\n",
		cfg.Rounding, cfg.MinShare*100, cfg.MinDirectMandates, cfg.TiePolicy)
	mode := "sequential"
	if cfg.Parallel {
		mode = fmt.Sprintf("parallel (%d logical processors)", runtime.NumCPU())
	}
	fmt.Fprintf(out, "Environment: %s, Go %s, timeout %s.\n", mode, runtime.Version(), cfg.Timeout)
}
