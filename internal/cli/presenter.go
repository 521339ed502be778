package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/agbru/seatcalc/internal/election"
	apperrors "github.com/agbru/seatcalc/internal/errors"
	"github.com/agbru/seatcalc/internal/format"
	"github.com/agbru/seatcalc/internal/metrics"
	"github.com/agbru/seatcalc/internal/orchestration"
	"github.com/agbru/seatcalc/internal/ui"
)

// CLIStageReporter implements orchestration.StageReporter for CLI output.
type CLIStageReporter struct{}

// Verify that CLIStageReporter implements orchestration.StageReporter.
var _ orchestration.StageReporter = CLIStageReporter{}

// DisplayStages displays a spinner and progress bar while the stages run.
func (CLIStageReporter) DisplayStages(wg *sync.WaitGroup, events <-chan orchestration.StageEvent, numStages int, out io.Writer) {
	DisplayStages(wg, events, numStages, out)
}

// CLIResultPresenter renders results as lipgloss tables.
type CLIResultPresenter struct {
	// ShowStages adds the intermediate tables and stage timings.
	ShowStages bool
	// Quiet prints the final seat table only.
	Quiet bool
}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentResult writes the final seat table and the party summary.
func (p CLIResultPresenter) PresentResult(res *orchestration.Result, out io.Writer) error {
	st := ui.CurrentStyles()
	if p.Quiet {
		_, err := fmt.Fprintln(out, renderSeatTable(res.Final, st))
		return err
	}

	if p.ShowStages {
		presentStages(res, st, out)
	}

	fmt.Fprintf(out, "\n%s\n", st.Header.Render("Final distribution"))
	fmt.Fprintln(out, renderSeatTable(res.Final, st))
	fmt.Fprintf(out, "\n%s\n", st.Header.Render("Parties"))
	fmt.Fprintln(out, renderSummaries(res.Summaries, st))

	if res.UnqualifiedDirect.Total() > 0 {
		fmt.Fprintf(out, "\n%s\n", st.Warning.Render("Direct mandates of parties below the threshold (not seated)"))
		fmt.Fprintln(out, renderSeatTable(res.UnqualifiedDirect, st))
	}
	for _, tie := range res.Ties {
		fmt.Fprintln(out, st.Warning.Render(fmt.Sprintf("Tie in %s (%s): %v, awarded to %s",
			tie.Constituency, tie.Region, tie.Parties, tie.Winner)))
	}

	_, err := fmt.Fprintf(out, "\nParliament: %s seats (nominal %d, %s) %s\n",
		st.Total.UnsetPadding().Render(strconv.Itoa(res.TotalSeats)), res.NominalSeats,
		format.FormatDelta(res.TotalSeats-res.NominalSeats),
		st.Dim.Render("run "+res.RunID))
	return err
}

func presentStages(res *orchestration.Result, st ui.Styles, out io.Writer) {
	fmt.Fprintf(out, "\n%s\n", st.Header.Render("Direct mandates"))
	fmt.Fprintln(out, renderSeatTable(res.Direct, st))

	fmt.Fprintf(out, "\n%s\n", st.Header.Render("Regional baseline"))
	regions := make([]election.Region, 0, len(res.Baseline))
	for r := range res.Baseline {
		regions = append(regions, r)
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i] < regions[j] })
	rows := make([][]string, 0, len(regions)+1)
	sum := 0
	for _, r := range regions {
		rows = append(rows, []string{string(r), strconv.Itoa(res.Baseline[r])})
		sum += res.Baseline[r]
	}
	rows = append(rows, []string{"Total", strconv.Itoa(sum)})
	fmt.Fprintln(out, renderTable([]string{"Region", "Seats"}, rows, st, true))

	fmt.Fprintf(out, "\n%s\n", st.Header.Render("Qualification"))
	fmt.Fprintln(out, renderStandings(res.Qualification.Standings, st))

	fmt.Fprintf(out, "\n%s\n", st.Header.Render("Regional list seats"))
	fmt.Fprintln(out, renderSeatTable(res.List, st))

	fmt.Fprintf(out, "\n%s\n", st.Header.Render("Minimum seats"))
	fmt.Fprintln(out, renderSeatTable(res.Minimum, st))

	fmt.Fprintf(out, "\n%s\n", st.Header.Render("Stage timings"))
	rows = rows[:0]
	for _, s := range res.Stages {
		rows = append(rows, []string{string(s.Stage), format.FormatExecutionDuration(s.Duration)})
	}
	rows = append(rows, []string{"Total", format.FormatExecutionDuration(res.Duration)})
	fmt.Fprintln(out, renderTable([]string{"Stage", "Duration"}, rows, st, true))
}

// renderSeatTable renders parties as rows and regions as columns, with a
// total column and a total row.
func renderSeatTable(t election.SeatTable, st ui.Styles) string {
	regions := t.Regions()
	headers := make([]string, 0, len(regions)+2)
	headers = append(headers, "Party")
	for _, r := range regions {
		headers = append(headers, string(r))
	}
	headers = append(headers, "Total")

	parties := t.Parties()
	rows := make([][]string, 0, len(parties)+1)
	for _, p := range parties {
		row := make([]string, 0, len(headers))
		row = append(row, string(p))
		for _, r := range regions {
			row = append(row, strconv.Itoa(t.Get(p, r)))
		}
		rows = append(rows, append(row, strconv.Itoa(t.RowSum(p))))
	}
	total := make([]string, 0, len(headers))
	total = append(total, "Total")
	for _, r := range regions {
		total = append(total, strconv.Itoa(t.ColumnSum(r)))
	}
	rows = append(rows, append(total, strconv.Itoa(t.Total())))
	return renderTable(headers, rows, st, true)
}

func renderSummaries(summaries []election.PartySummary, st ui.Styles) string {
	rows := make([][]string, 0, len(summaries)+1)
	var sum election.PartySummary
	for _, s := range summaries {
		rows = append(rows, []string{
			string(s.Party),
			strconv.Itoa(s.DirectMandates),
			strconv.Itoa(s.ListSeats),
			strconv.Itoa(s.Overhang),
			strconv.Itoa(s.Floor),
			format.FormatDelta(s.Balance),
			strconv.Itoa(s.Total),
		})
		sum.DirectMandates += s.DirectMandates
		sum.ListSeats += s.ListSeats
		sum.Overhang += s.Overhang
		sum.Floor += s.Floor
		sum.Balance += s.Balance
		sum.Total += s.Total
	}
	rows = append(rows, []string{
		"Total",
		strconv.Itoa(sum.DirectMandates),
		strconv.Itoa(sum.ListSeats),
		strconv.Itoa(sum.Overhang),
		strconv.Itoa(sum.Floor),
		format.FormatDelta(sum.Balance),
		strconv.Itoa(sum.Total),
	})
	headers := []string{"Party", "Direct", "List", "Overhang", "Floor", "Balance", "Seats"}
	return renderTable(headers, rows, st, true)
}

func renderStandings(standings []election.Standing, st ui.Styles) string {
	rows := make([][]string, 0, len(standings))
	for _, s := range standings {
		status := "no"
		switch {
		case s.ByShare && s.ByMandates:
			status = "share, mandates"
		case s.ByShare:
			status = "share"
		case s.ByMandates:
			status = "mandates"
		}
		rows = append(rows, []string{
			string(s.Party),
			format.FormatCount(s.SecondVotes),
			format.FormatShare(s.Share),
			strconv.Itoa(s.DirectMandates),
			status,
		})
	}
	return renderTable([]string{"Party", "Second votes", "Share", "Direct", "Qualified"}, rows, st, false)
}

// renderTable draws a bordered table. The first column is styled as a
// label; with totalRow the last row is emphasised.
func renderTable(headers []string, rows [][]string, st ui.Styles, totalRow bool) string {
	last := len(rows) - 1
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return st.Header
			case totalRow && row == last:
				return st.Total
			case col == 0:
				return st.Party
			}
			return st.Cell
		}).
		String()
}

// HandleError prints err and returns the matching exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	code := apperrors.ExitCodeFor(err)
	if code == apperrors.ExitSuccess {
		return code
	}
	st := ui.CurrentStyles()
	elapsed := format.FormatExecutionDuration(duration)

	var (
		tieErr  apperrors.TieError
		calcErr apperrors.CalculationError
	)
	switch code {
	case apperrors.ExitErrorTimeout:
		fmt.Fprintln(out, st.Error.Render(fmt.Sprintf("Timed out after %s: %v", elapsed, err)))
	case apperrors.ExitErrorCanceled:
		fmt.Fprintln(out, st.Warning.Render(fmt.Sprintf("Canceled after %s.", elapsed)))
	default:
		msg := err.Error()
		if errors.As(err, &calcErr) {
			msg = fmt.Sprintf("stage %s: %v", calcErr.Stage, calcErr.Cause)
		}
		fmt.Fprintln(out, st.Error.Render("Error: "+msg))
		if errors.As(err, &tieErr) {
			fmt.Fprintln(out, st.Dim.Render("Use --tie-policy ballot-order to resolve ties by ballot position."))
		}
	}
	return code
}

// DisplayMemoryStats shows memory statistics after a run.
func DisplayMemoryStats(u metrics.MemoryUsage, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(u.HeapAlloc))
	fmt.Fprintf(out, "  Allocated:       %s\n", format.FormatBytes(u.Allocated))
	fmt.Fprintf(out, "  GC cycles:       %d\n", u.GCCycles)
	if u.PauseNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(u.PauseNs)/1e6)
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms\n")
	}
}
