// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package journal

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/dayrun-tui/internal/export"
)

// =============================================================================
// STORAGE COMMANDS
// =============================================================================

// loadEntries refreshes the entry list with the active search and favorites
// filter applied.
func (m Model) loadEntries() tea.Cmd {
	userID := m.session.UserID
	search := m.searchInput.Value()
	favoritesOnly := m.favoritesOnly
	store := m.store

	return func() tea.Msg {
		var msg entriesLoadedMsg
		if favoritesOnly {
			msg.entries, msg.err = store.ListFavorites(userID)
		} else {
			msg.entries, msg.err = store.ListEntries(userID, search)
		}
		return msg
	}
}

func (m Model) saveEntry(entryID int64, title, content, date string) tea.Cmd {
	userID := m.session.UserID
	store := m.store

	return func() tea.Msg {
		if entryID == 0 {
			if _, err := store.CreateEntry(userID, title, content, date); err != nil {
				return entryMutatedMsg{err: err}
			}
			return entryMutatedMsg{status: "Entry saved"}
		}
		if err := store.UpdateEntry(userID, entryID, title, content, date); err != nil {
			return entryMutatedMsg{err: err}
		}
		return entryMutatedMsg{status: "Entry updated"}
	}
}

func (m Model) deleteEntry(entryID int64) tea.Cmd {
	userID := m.session.UserID
	store := m.store

	return func() tea.Msg {
		if err := store.DeleteEntry(userID, entryID); err != nil {
			return entryMutatedMsg{err: err}
		}
		return entryMutatedMsg{status: "Entry deleted"}
	}
}

func (m Model) toggleFavorite(entryID int64, favorite bool) tea.Cmd {
	userID := m.session.UserID
	store := m.store

	return func() tea.Msg {
		if err := store.SetFavorite(userID, entryID, favorite); err != nil {
			return entryMutatedMsg{err: err}
		}
		if favorite {
			return entryMutatedMsg{status: "Marked as favorite"}
		}
		return entryMutatedMsg{status: "Removed from favorites"}
	}
}

// =============================================================================
// EXPORT COMMANDS
// =============================================================================

// exportFormats enumerates the export menu in display order.
var exportFormats = []struct {
	Name string
	New  func(*export.Options) export.Exporter
}{
	{"Plain text (.txt)", func(o *export.Options) export.Exporter { return export.NewTextExporter(o) }},
	{"Markdown (.md)", func(o *export.Options) export.Exporter { return export.NewMarkdownExporter(o) }},
	{"PDF (.pdf)", func(o *export.Options) export.Exporter { return export.NewPDFExporter(o) }},
}

func (m Model) runExport(formatIdx int) tea.Cmd {
	opts := m.exportOpts
	journal := &export.Journal{
		Username: m.session.Username,
		Entries:  m.entries,
	}
	exporter := exportFormats[formatIdx].New(&opts)

	return func() tea.Msg {
		path, err := export.ExportToFile(journal, exporter, &opts)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

// =============================================================================
// SESSION COMMANDS
// =============================================================================

func logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return LoggedOutMsg{}
	}
}

func errStatus(err error) string {
	return fmt.Sprintf("Something went wrong: %v", err)
}
