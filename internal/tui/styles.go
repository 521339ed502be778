package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/seatcalc/internal/ui"
)

// Style variables for the dashboard.
// Initialized from the ui theme via initTUIStyles().
var (
	panelStyle       lipgloss.Style
	headerStyle      lipgloss.Style
	titleStyle       lipgloss.Style
	dimStyle         lipgloss.Style
	accentStyle      lipgloss.Style
	successStyle     lipgloss.Style
	warningStyle     lipgloss.Style
	errorStyle       lipgloss.Style
	barStyle         lipgloss.Style
	overhangBarStyle lipgloss.Style
	balanceBarStyle  lipgloss.Style
	footerKeyStyle   lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Secondary).
		Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	dimStyle = lipgloss.NewStyle().Foreground(t.Secondary)
	accentStyle = lipgloss.NewStyle().Foreground(t.Info).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(t.Success)
	warningStyle = lipgloss.NewStyle().Foreground(t.Warning)
	errorStyle = lipgloss.NewStyle().Foreground(t.Error).Bold(true)
	barStyle = lipgloss.NewStyle().Foreground(t.Primary)
	overhangBarStyle = lipgloss.NewStyle().Foreground(t.Warning)
	balanceBarStyle = lipgloss.NewStyle().Foreground(t.Success)
	footerKeyStyle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
}
