// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// TEXT EXPORTER
// =============================================================================

// TextExporter exports journals to plain text.
type TextExporter struct {
	options *Options
}

// NewTextExporter creates a new plain text exporter.
func NewTextExporter(opts *Options) *TextExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &TextExporter{options: opts}
}

// Export renders the journal as plain text, one block per entry separated
// by a rule line.
func (e *TextExporter) Export(journal *Journal) ([]byte, error) {
	if journal == nil || len(journal.Entries) == 0 {
		return nil, ErrNoEntries
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Journal of %s\n", journal.Username))
	sb.WriteString(fmt.Sprintf("Exported %s\n", formatTimestamp(time.Now())))
	sb.WriteString(fmt.Sprintf("%d entries\n", len(journal.Entries)))
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")

	for i, entry := range journal.Entries {
		if i > 0 {
			sb.WriteString("\n" + strings.Repeat("-", 60) + "\n\n")
		}

		sb.WriteString(entry.Title + "\n")
		if e.options.IncludeTimestamps {
			sb.WriteString(fmt.Sprintf("Created: %s\n", formatTimestamp(entry.CreatedAt)))
			if !entry.UpdatedAt.Equal(entry.CreatedAt) {
				sb.WriteString(fmt.Sprintf("Updated: %s\n", formatTimestamp(entry.UpdatedAt)))
			}
		}
		if entry.Favorite {
			sb.WriteString("Favorite: yes\n")
		}
		sb.WriteString("\n")
		sb.WriteString(strings.TrimRight(entry.Content, "\n"))
		sb.WriteString("\n")
	}

	return []byte(sb.String()), nil
}

// FileExtension returns ".txt".
func (e *TextExporter) FileExtension() string {
	return ".txt"
}

// MimeType returns the plain text MIME type.
func (e *TextExporter) MimeType() string {
	return "text/plain; charset=utf-8"
}
