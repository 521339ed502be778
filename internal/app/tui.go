package app

import (
	"context"
	"time"

	"github.com/agbru/seatcalc/internal/cli"
	"github.com/agbru/seatcalc/internal/logging"
	"github.com/agbru/seatcalc/internal/orchestration"
	"github.com/agbru/seatcalc/internal/tui"
)

// runTUI loads the election and hands it to the interactive dashboard.
// Logging is silenced because the dashboard owns the terminal.
func (a *Application) runTUI(ctx context.Context) int {
	start := time.Now()
	handler := cli.CLIResultPresenter{}

	loadCtx, cancel := context.WithTimeout(ctx, a.Config.Timeout)
	ds, err := a.Loader.Load(loadCtx)
	cancel()
	if err != nil {
		return handler.HandleError(err, time.Since(start), a.ErrWriter)
	}
	eopts, err := a.Config.ElectionOptions()
	if err != nil {
		return handler.HandleError(err, time.Since(start), a.ErrWriter)
	}

	return tui.Run(ctx, tui.Session{
		Election: ds.Election,
		Options: orchestration.Options{
			Seats:    a.seatsFor(ds),
			Election: eopts,
			Logger:   logging.NopLogger{},
		},
		Timeout: a.Config.Timeout,
		Version: Version,
		Source:  ds.Source,
	})
}
