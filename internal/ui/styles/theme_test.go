// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/jeranaias/dayrun-tui/internal/model"
)

func TestNewThemePalettes(t *testing.T) {
	light := NewTheme(model.ThemeLight)
	if light.Palette() != LightPalette {
		t.Error("light preference did not select the light palette")
	}

	dark := NewTheme(model.ThemeDark)
	if dark.Palette() != DarkPalette {
		t.Error("dark preference did not select the dark palette")
	}

	// Unknown preferences fall back to light.
	fallback := NewTheme(model.ThemePreference("neon"))
	if fallback.Palette() != LightPalette {
		t.Error("unknown preference did not fall back to light")
	}
}

func TestRenderStatusIndicators(t *testing.T) {
	theme := NewTheme(model.ThemeLight)

	tests := []struct {
		kind      StatusKind
		indicator string
	}{
		{StatusSuccess, "✓"},
		{StatusError, "✗"},
		{StatusWarning, "▲"},
		{StatusInfo, "ℹ"},
	}
	for _, tt := range tests {
		out := theme.RenderStatus(tt.kind, "message")
		if !strings.Contains(out, tt.indicator) {
			t.Errorf("RenderStatus(%v) missing indicator %q: %q", tt.kind, tt.indicator, out)
		}
		if !strings.Contains(out, "message") {
			t.Errorf("RenderStatus(%v) missing message text", tt.kind)
		}
	}
}
