// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports journals to Markdown format.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export renders the journal as Markdown with YAML frontmatter.
func (e *MarkdownExporter) Export(journal *Journal) ([]byte, error) {
	if journal == nil || len(journal.Entries) == 0 {
		return nil, ErrNoEntries
	}

	var sb strings.Builder

	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("title: Journal of %s\n", escapeYAML(journal.Username)))
	sb.WriteString(fmt.Sprintf("entries: %d\n", len(journal.Entries)))
	sb.WriteString(fmt.Sprintf("exported: %s\n", time.Now().Format(time.RFC3339)))
	sb.WriteString("generator: dayrun\n")
	sb.WriteString("---\n\n")

	sb.WriteString(fmt.Sprintf("# Journal of %s\n\n", escapeMarkdown(journal.Username)))

	for _, entry := range journal.Entries {
		title := escapeMarkdown(entry.Title)
		if entry.Favorite {
			title += " ★"
		}
		sb.WriteString(fmt.Sprintf("## %s\n\n", title))

		if e.options.IncludeTimestamps {
			sb.WriteString(fmt.Sprintf("*Created %s*", formatTimestamp(entry.CreatedAt)))
			if !entry.UpdatedAt.Equal(entry.CreatedAt) {
				sb.WriteString(fmt.Sprintf(" · *updated %s*", formatTimestamp(entry.UpdatedAt)))
			}
			sb.WriteString("\n\n")
		}

		sb.WriteString(strings.TrimRight(entry.Content, "\n"))
		sb.WriteString("\n\n")
	}

	return []byte(sb.String()), nil
}

// FileExtension returns ".md".
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the Markdown MIME type.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown; charset=utf-8"
}

// =============================================================================
// ESCAPING
// =============================================================================

// escapeMarkdown escapes characters that would change heading rendering.
func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"#", `\#`,
		"*", `\*`,
		"_", `\_`,
		"[", `\[`,
		"]", `\]`,
		"`", "\\`",
	)
	return replacer.Replace(s)
}

// escapeYAML quotes a string when it contains YAML-significant characters.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#{}[],&*!|>'\"%@`") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
