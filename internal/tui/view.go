package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/agbru/seatcalc/internal/election"
	"github.com/agbru/seatcalc/internal/format"
)

// Layout constants for the dashboard.
const (
	StagesPanelWidth = 34
	minSeatsWidth    = 30
	barLabelWidth    = 10
)

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	stages := panelStyle.Width(StagesPanelWidth).Render(m.stagesView())
	seatsWidth := max(m.width-lipgloss.Width(stages)-2, minSeatsWidth)
	seats := panelStyle.Width(seatsWidth).Render(m.seatsView(seatsWidth - 4))
	body := lipgloss.JoinHorizontal(lipgloss.Top, stages, seats)
	system := panelStyle.Width(max(lipgloss.Width(body)-2, minSeatsWidth)).Render(m.systemView())

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, system, m.footerView())
}

func (m Model) stagesView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Stages") + "\n")
	for _, s := range m.stages {
		var mark string
		switch {
		case s.failed:
			mark = errorStyle.Render("✗")
		case s.done:
			mark = successStyle.Render("✓")
		case s.running:
			mark = accentStyle.Render("●")
		default:
			mark = dimStyle.Render("·")
		}
		line := fmt.Sprintf("%s %-20s", mark, s.stage)
		if s.done || s.failed {
			line += dimStyle.Render(format.FormatExecutionDuration(s.duration))
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) seatsView(width int) string {
	switch {
	case m.err != nil:
		return errorStyle.Render("Error: ") + m.err.Error()
	case m.result == nil:
		return dimStyle.Render("Allocating seats...")
	}

	res := m.result
	var b strings.Builder
	if m.byRegion {
		b.WriteString(titleStyle.Render("Seats by region") + "\n")
		b.WriteString(regionTable(res.Final))
	} else {
		b.WriteString(titleStyle.Render("Seats by party") + " " +
			dimStyle.Render("list") + " " + warningStyle.Render("overhang") + " " + successStyle.Render("balance") + "\n")
		b.WriteString(partyBars(res.Summaries, width))
	}
	b.WriteString(fmt.Sprintf("\nParliament: %s seats (nominal %d, %s)",
		accentStyle.Render(strconv.Itoa(res.TotalSeats)), res.NominalSeats,
		format.FormatDelta(res.TotalSeats-res.NominalSeats)))
	if n := res.UnqualifiedDirect.Total(); n > 0 {
		b.WriteString("\n" + warningStyle.Render(fmt.Sprintf("%d direct mandates below the threshold not seated", n)))
	}
	if len(res.Ties) > 0 {
		b.WriteString("\n" + warningStyle.Render(fmt.Sprintf("%d plurality ties decided by ballot order", len(res.Ties))))
	}
	return b.String()
}

// partyBars draws one bar per party, scaled so the largest total fills
// the available width. The bar is split into list, overhang and balance
// segments.
func partyBars(summaries []election.PartySummary, width int) string {
	largest := 0
	for _, s := range summaries {
		largest = max(largest, s.Total)
	}
	if largest == 0 {
		return ""
	}
	barWidth := max(width-barLabelWidth-8, 1)
	scale := func(n int) int { return n * barWidth / largest }

	var b strings.Builder
	for _, s := range summaries {
		list := scale(s.ListSeats)
		over := scale(s.ListSeats+s.Overhang) - list
		bal := scale(s.Total) - list - over
		label := string(s.Party)
		if len(label) > barLabelWidth {
			label = label[:barLabelWidth]
		}
		fmt.Fprintf(&b, "%-*s %s%s%s %d\n", barLabelWidth, label,
			barStyle.Render(strings.Repeat("█", list)),
			overhangBarStyle.Render(strings.Repeat("█", over)),
			balanceBarStyle.Render(strings.Repeat("█", max(bal, 0))),
			s.Total)
	}
	return strings.TrimRight(b.String(), "\n")
}

func regionTable(t election.SeatTable) string {
	regions := t.Regions()
	headers := []string{"Party"}
	for _, r := range regions {
		headers = append(headers, string(r))
	}
	headers = append(headers, "Total")
	var rows [][]string
	for _, p := range t.Parties() {
		row := []string{string(p)}
		for _, r := range regions {
			row = append(row, strconv.Itoa(t.Get(p, r)))
		}
		rows = append(rows, append(row, strconv.Itoa(t.RowSum(p))))
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers(headers...).
		Rows(rows...).
		String()
}

func (m Model) systemView() string {
	return fmt.Sprintf("%s %s %5.1f%%   %s %s %5.1f%%   heap %s   goroutines %d",
		dimStyle.Render("CPU"), accentStyle.Render(Sparkline(m.cpu.Values())), m.cpu.Last(),
		dimStyle.Render("MEM"), warningStyle.Render(Sparkline(m.mem.Values())), m.mem.Last(),
		format.FormatBytes(m.lastStats.HeapAlloc), m.lastStats.Goroutines)
}

func (m Model) footerView() string {
	var parts []string
	for _, k := range m.keymap.ShortHelp() {
		h := k.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+dimStyle.Render(h.Desc))
	}
	status := accentStyle.Render("RUNNING")
	switch {
	case m.err != nil:
		status = errorStyle.Render("ERROR")
	case m.done:
		status = successStyle.Render("DONE")
	}
	return " " + status + "  " + strings.Join(parts, "  ")
}
