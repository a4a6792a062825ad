// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the dayrun TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette holds the concrete colors for one theme. Colors are fixed per
// theme rather than adaptive: the logged-in user's stored preference decides
// light or dark, not the terminal background.
type Palette struct {
	Accent     lipgloss.Color
	AccentDeep lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	Surface       lipgloss.Color
	SurfaceBright lipgloss.Color
	Overlay       lipgloss.Color

	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color
	TextInverse   lipgloss.Color
}

// LightPalette is the light theme palette.
var LightPalette = Palette{
	Accent:     lipgloss.Color("#0891B2"),
	AccentDeep: lipgloss.Color("#0E7490"),

	Success: lipgloss.Color("#059669"),
	Error:   lipgloss.Color("#E11D48"),
	Warning: lipgloss.Color("#D97706"),

	Surface:       lipgloss.Color("#FFFFFF"),
	SurfaceBright: lipgloss.Color("#F5F5F5"),
	Overlay:       lipgloss.Color("#D4D4D4"),

	TextPrimary:   lipgloss.Color("#1F2937"),
	TextSecondary: lipgloss.Color("#6B7280"),
	TextMuted:     lipgloss.Color("#9CA3AF"),
	TextInverse:   lipgloss.Color("#FFFFFF"),
}

// DarkPalette is the dark theme palette.
var DarkPalette = Palette{
	Accent:     lipgloss.Color("#22D3EE"),
	AccentDeep: lipgloss.Color("#164E63"),

	Success: lipgloss.Color("#34D399"),
	Error:   lipgloss.Color("#FB7185"),
	Warning: lipgloss.Color("#FBBF24"),

	Surface:       lipgloss.Color("#1E1E2E"),
	SurfaceBright: lipgloss.Color("#313244"),
	Overlay:       lipgloss.Color("#45475A"),

	TextPrimary:   lipgloss.Color("#CDD6F4"),
	TextSecondary: lipgloss.Color("#A6ADC8"),
	TextMuted:     lipgloss.Color("#6C7086"),
	TextInverse:   lipgloss.Color("#1E1E2E"),
}
