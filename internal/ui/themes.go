package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for UI output.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color (headers, party names).
	Primary lipgloss.TerminalColor
	// Secondary is used for less prominent elements (borders, timings).
	Secondary lipgloss.TerminalColor
	// Success marks completed stages and balance seats.
	Success lipgloss.TerminalColor
	// Warning marks overhang seats and decided ties.
	Warning lipgloss.TerminalColor
	// Error indicates failures.
	Error lipgloss.TerminalColor
	// Info is used for informational figures such as totals.
	Info lipgloss.TerminalColor
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   lipgloss.Color("39"),
		Secondary: lipgloss.Color("245"),
		Success:   lipgloss.Color("82"),
		Warning:   lipgloss.Color("220"),
		Error:     lipgloss.Color("196"),
		Info:      lipgloss.Color("141"),
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   lipgloss.Color("27"),
		Secondary: lipgloss.Color("240"),
		Success:   lipgloss.Color("28"),
		Warning:   lipgloss.Color("130"),
		Error:     lipgloss.Color("124"),
		Info:      lipgloss.Color("54"),
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or --no-color flag is provided.
	NoColorTheme = Theme{
		Name:      "none",
		Primary:   lipgloss.NoColor{},
		Secondary: lipgloss.NoColor{},
		Success:   lipgloss.NoColor{},
		Warning:   lipgloss.NoColor{},
		Error:     lipgloss.NoColor{},
		Info:      lipgloss.NoColor{},
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Header  lipgloss.Style
	Party   lipgloss.Style
	Cell    lipgloss.Style
	Total   lipgloss.Style
	Border  lipgloss.Style
	Dim     lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles builds the styles for t. With NoColorTheme the styles keep
// their layout (padding, alignment) but emit no color or emphasis.
func NewStyles(t Theme) Styles {
	plain := t.Name == "none"
	bold := func(s lipgloss.Style) lipgloss.Style {
		if plain {
			return s
		}
		return s.Bold(true)
	}
	return Styles{
		Header:  bold(lipgloss.NewStyle().Foreground(t.Primary).Padding(0, 1)),
		Party:   lipgloss.NewStyle().Foreground(t.Primary).Padding(0, 1),
		Cell:    lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right),
		Total:   bold(lipgloss.NewStyle().Foreground(t.Info).Padding(0, 1).Align(lipgloss.Right)),
		Border:  lipgloss.NewStyle().Foreground(t.Secondary),
		Dim:     lipgloss.NewStyle().Foreground(t.Secondary),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
		Error:   bold(lipgloss.NewStyle().Foreground(t.Error)),
	}
}

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// CurrentStyles returns the styles of the active theme.
func CurrentStyles() Styles {
	return NewStyles(GetCurrentTheme())
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name.
// Valid names are: "dark", "light", "none". Unknown names default to dark.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme initializes the theme based on the noColor flag and environment.
// It respects the NO_COLOR environment variable (https://no-color.org/).
// If noColor is true or NO_COLOR is set, colors are disabled.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}
