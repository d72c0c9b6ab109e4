// Package tui provides the terminal user interface for crumbwork.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/crumbwork/crumbwork/internal/config"
	"github.com/crumbwork/crumbwork/internal/tui/components"
)

// Theme contains all style definitions for the TUI.
type Theme struct {
	PrimaryColor lipgloss.Color
	AccentColor  lipgloss.Color
	MutedColor   lipgloss.Color
	ErrorColor   lipgloss.Color
	WarningColor lipgloss.Color
	SuccessColor lipgloss.Color

	// Base styles
	Base    lipgloss.Style
	Primary lipgloss.Style
	Accent  lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style

	// Component styles
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Box      lipgloss.Style
	Selected lipgloss.Style

	// Table styles
	TableHeader lipgloss.Style
	TableRow    lipgloss.Style
	TableRowAlt lipgloss.Style

	// Status bar
	StatusDivider lipgloss.Style
}

// NewTheme creates a theme from the configured color scheme.
func NewTheme(scheme config.ColorScheme) *Theme {
	switch scheme {
	case config.ColorSchemeRye:
		return newRyeTheme()
	case config.ColorSchemePlain:
		return newPlainTheme()
	default:
		return newWheatTheme()
	}
}

// newWheatTheme is the default warm golden palette.
func newWheatTheme() *Theme {
	return buildTheme(
		lipgloss.Color("#E0B25C"), // primary: wheat gold
		lipgloss.Color("#F2D49B"), // accent: pale gold
		lipgloss.Color("#8A6D3B"), // muted: dark straw
	)
}

// newRyeTheme is a darker earthy palette.
func newRyeTheme() *Theme {
	return buildTheme(
		lipgloss.Color("#B08D57"), // primary: rye brown
		lipgloss.Color("#D9BC8C"), // accent
		lipgloss.Color("#6B5436"), // muted
	)
}

// newPlainTheme is a monochrome palette for limited terminals.
func newPlainTheme() *Theme {
	return buildTheme(
		lipgloss.Color("#FFFFFF"),
		lipgloss.Color("#FFFFFF"),
		lipgloss.Color("#888888"),
	)
}

func buildTheme(primary, accent, muted lipgloss.Color) *Theme {
	errorColor := lipgloss.Color("#E05555")
	warningColor := lipgloss.Color("#E0A030")
	successColor := lipgloss.Color("#70C070")

	t := &Theme{
		PrimaryColor: primary,
		AccentColor:  accent,
		MutedColor:   muted,
		ErrorColor:   errorColor,
		WarningColor: warningColor,
		SuccessColor: successColor,
	}

	t.Base = lipgloss.NewStyle().Foreground(primary)
	t.Primary = lipgloss.NewStyle().Foreground(primary)
	t.Accent = lipgloss.NewStyle().Foreground(accent)
	t.Muted = lipgloss.NewStyle().Foreground(muted)
	t.Error = lipgloss.NewStyle().Foreground(errorColor)
	t.Warning = lipgloss.NewStyle().Foreground(warningColor)
	t.Success = lipgloss.NewStyle().Foreground(successColor)

	t.Header = lipgloss.NewStyle().
		Foreground(primary).
		Bold(true).
		Padding(0, 1)

	t.Footer = lipgloss.NewStyle().
		Foreground(muted).
		Padding(0, 1)

	t.Title = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true).
		Padding(0, 1)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(primary).
		Padding(0, 1)

	t.Label = lipgloss.NewStyle().Foreground(muted)
	t.Value = lipgloss.NewStyle().Foreground(primary)

	t.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted).
		Padding(0, 1)

	t.Selected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(primary).
		Bold(true)

	t.TableHeader = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)

	t.TableRow = lipgloss.NewStyle().Foreground(primary)
	t.TableRowAlt = lipgloss.NewStyle().Foreground(muted)

	t.StatusDivider = lipgloss.NewStyle().
		Foreground(muted).
		SetString(" │ ")

	return t
}

// TableStyles adapts the theme for the table component.
func (t *Theme) TableStyles() components.TableStyles {
	return components.TableStyles{
		Header:   t.TableHeader,
		Row:      t.TableRow,
		RowAlt:   t.TableRowAlt,
		Selected: t.Selected,
		Border:   t.Muted,
	}
}

// DrawHorizontalLine draws a single horizontal rule.
func (t *Theme) DrawHorizontalLine(width int) string {
	return t.Muted.Render(strings.Repeat("─", width))
}

// DrawDoubleLine draws a double horizontal rule.
func (t *Theme) DrawDoubleLine(width int) string {
	return t.Primary.Render(strings.Repeat("═", width))
}
