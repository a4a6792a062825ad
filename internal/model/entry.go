// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"
)

// =============================================================================
// JOURNAL ENTRY
// =============================================================================

// Entry is a single journal entry owned by a user.
type Entry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Favorite  bool      `json:"favorite"`
}

// DisplayDate formats the creation date for list views.
func (e *Entry) DisplayDate() string {
	return e.CreatedAt.Format("2006-01-02")
}

// Preview returns a single-line preview of the content, truncated to
// maxRunes characters.
func (e *Entry) Preview(maxRunes int) string {
	content := e.Content
	runes := []rune(content)
	if len(runes) > maxRunes {
		if maxRunes > 3 {
			content = string(runes[:maxRunes-3]) + "..."
		} else {
			content = string(runes[:maxRunes])
		}
	}
	out := make([]rune, 0, len(content))
	for _, r := range content {
		if r == '\n' || r == '\r' || r == '\t' {
			r = ' '
		}
		out = append(out, r)
	}
	return string(out)
}
