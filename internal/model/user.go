// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// THEME PREFERENCE
// =============================================================================

// ThemePreference is the persisted UI theme choice for a user.
type ThemePreference string

const (
	// ThemeLight is the light color scheme.
	ThemeLight ThemePreference = "light"

	// ThemeDark is the dark color scheme.
	ThemeDark ThemePreference = "dark"
)

// Valid reports whether the preference is a known theme name.
func (t ThemePreference) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// OrDefault returns the preference, falling back to light when the stored
// value is empty or unknown.
func (t ThemePreference) OrDefault() ThemePreference {
	if !t.Valid() {
		return ThemeLight
	}
	return t
}

// =============================================================================
// USER
// =============================================================================

// User is a persisted credential record: the identity row in the users table.
// PasswordHash and Salt are hex strings produced by the auth package.
type User struct {
	ID           int64           `json:"id"`
	Username     string          `json:"username"`
	PasswordHash string          `json:"-"`
	Salt         string          `json:"-"`
	Theme        ThemePreference `json:"theme"`
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the in-memory state of an authenticated user. It exists only
// between a successful login and the matching logout; exactly one session is
// active per running process.
type Session struct {
	// ID is a random identifier for this login, used in log correlation.
	ID string `json:"id"`

	UserID   int64           `json:"user_id"`
	Username string          `json:"username"`
	Theme    ThemePreference `json:"theme"`
}
