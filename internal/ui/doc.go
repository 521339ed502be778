// Package ui provides theme and color support for the application's user interface.
// It defines lipgloss color schemes and the styles built from them, so the CLI
// renders consistently and honours NO_COLOR.
//
// This package is designed to be a shared dependency for packages that need
// color output, reducing coupling between business logic and presentation.
package ui
