// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/dayrun-tui/internal/model"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Terminal capabilities
	Preference   model.ThemePreference
	HasTrueColor bool
	ColorProfile termenv.Profile

	palette Palette

	// ==========================================================================
	// LAYOUT STYLES
	// ==========================================================================

	App    lipgloss.Style
	Header lipgloss.Style
	Title  lipgloss.Style

	// ==========================================================================
	// FORM STYLES
	// ==========================================================================

	FormBox      lipgloss.Style
	Label        lipgloss.Style
	LabelFocused lipgloss.Style
	Hint         lipgloss.Style

	// ==========================================================================
	// ENTRY LIST STYLES
	// ==========================================================================

	ListTitle    lipgloss.Style
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
	ListDate     lipgloss.Style
	ListFavorite lipgloss.Style
	ListEmpty    lipgloss.Style

	// ==========================================================================
	// STATUS STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
}

// NewTheme creates a theme for the given preference.
func NewTheme(pref model.ThemePreference) *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		Preference:   pref.OrDefault(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	if t.Preference == model.ThemeDark {
		t.palette = DarkPalette
	} else {
		t.palette = LightPalette
	}

	t.initStyles()
	return t
}

// Palette exposes the active color palette.
func (t *Theme) Palette() Palette {
	return t.palette
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	p := t.palette

	t.App = lipgloss.NewStyle()

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Overlay).
		Padding(0, 2)

	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	t.FormBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Overlay).
		Padding(1, 3)

	t.Label = lipgloss.NewStyle().
		Foreground(p.TextSecondary)

	t.LabelFocused = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	t.Hint = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)

	t.ListTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextPrimary)

	t.ListItem = lipgloss.NewStyle().
		Foreground(p.TextPrimary)

	t.ListSelected = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextInverse).
		Background(p.Accent)

	t.ListDate = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	t.ListFavorite = lipgloss.NewStyle().
		Foreground(p.Warning)

	t.ListEmpty = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true).
		Padding(1, 2)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Background(p.SurfaceBright).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(p.Success).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(p.Warning)

	t.InfoStyle = lipgloss.NewStyle().
		Foreground(p.Accent)
}

// RenderStatus draws a status message with the severity's indicator shape.
func (t *Theme) RenderStatus(kind StatusKind, message string) string {
	switch kind {
	case StatusSuccess:
		return t.SuccessStyle.Render("✓ " + message)
	case StatusError:
		return t.ErrorStyle.Render("✗ " + message)
	case StatusWarning:
		return t.WarningStyle.Render("▲ " + message)
	default:
		return t.InfoStyle.Render("ℹ " + message)
	}
}

// StatusKind selects the rendering of a status message.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarning
	StatusError
)
