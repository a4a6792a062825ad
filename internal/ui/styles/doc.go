// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the dayrun TUI.
//
// A Theme bundles every lipgloss style the views use. Themes are built per
// user: the stored theme preference picks the light or dark palette, so two
// users on the same terminal can see different colors.
package styles
