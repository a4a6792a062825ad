// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package journal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/dayrun-tui/internal/model"
	"github.com/jeranaias/dayrun-tui/internal/util"
)

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.state {
	case StateList:
		body = m.viewList()
	case StateReader:
		body = m.reader.View()
	case StateEditor:
		body = m.viewEditor()
	case StateConfirmDelete:
		body = m.viewConfirmDelete()
	case StateExport:
		body = m.viewExport()
	case StateSettings:
		body = m.viewSettings()
	case StatePasswordForm:
		body = m.viewForm("Change password")
	case StateUsernameForm:
		body = m.viewForm("Change username")
	case StateDeleteAccount:
		body = m.viewForm("Delete account - this cannot be undone")
	}

	header := m.theme.Header.Render(fmt.Sprintf("dayrun · %s", m.session.Username))

	var status string
	if m.status != "" {
		status = m.theme.RenderStatus(m.statusKind, m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		status,
		m.viewShortcuts(),
	)
}

// =============================================================================
// LIST VIEW
// =============================================================================

func (m Model) viewList() string {
	var sb strings.Builder

	listTitle := "Entries"
	if m.favoritesOnly {
		listTitle = "Favorites"
	}
	if search := m.searchInput.Value(); search != "" && !m.searching {
		listTitle += fmt.Sprintf(" matching %q", search)
	}
	sb.WriteString(m.theme.ListTitle.Render(listTitle))
	sb.WriteString("\n\n")

	if m.searching {
		sb.WriteString(m.searchInput.View())
		sb.WriteString("\n\n")
	}

	if len(m.entries) == 0 {
		empty := "No entries yet. Press n to write your first one."
		if m.favoritesOnly {
			empty = "No favorites yet. Press f on an entry to star it."
		}
		sb.WriteString(m.theme.ListEmpty.Render(empty))
		return sb.String()
	}

	for i, entry := range m.entries {
		line := m.renderListLine(&entry)
		if i == m.cursor {
			line = m.theme.ListSelected.Render("› " + line)
		} else {
			line = m.theme.ListItem.Render("  " + line)
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

func (m Model) renderListLine(entry *model.Entry) string {
	star := "  "
	if entry.Favorite {
		star = m.theme.ListFavorite.Render("★ ")
	}
	date := m.theme.ListDate.Render(entry.DisplayDate())

	width := m.width
	if width <= 0 {
		width = 80
	}
	// Cursor prefix, star, date and separators eat 18 columns.
	avail := width - 18

	titleWidth := avail
	var preview string
	if avail > 48 {
		titleWidth = 40
		text := util.TruncateWidth(util.CollapseWhitespace(entry.Content), avail-titleWidth-3)
		preview = "  " + m.theme.Hint.Render(text)
	}
	title := util.TruncateWidth(entry.Title, titleWidth)

	return fmt.Sprintf("%s%s  %s%s", star, date, title, preview)
}

// renderEntry renders a full entry for the reader viewport.
func (m Model) renderEntry(entry *model.Entry) string {
	var sb strings.Builder
	sb.WriteString(m.theme.Title.Render(entry.Title))
	sb.WriteString("\n")

	meta := "Created " + entry.CreatedAt.Format("2006-01-02 15:04")
	if !entry.UpdatedAt.Equal(entry.CreatedAt) {
		meta += " · updated " + entry.UpdatedAt.Format("2006-01-02 15:04")
	}
	if entry.Favorite {
		meta += " · ★ favorite"
	}
	sb.WriteString(m.theme.Hint.Render(meta))
	sb.WriteString("\n\n")
	sb.WriteString(entry.Content)
	return sb.String()
}

// =============================================================================
// EDITOR VIEW
// =============================================================================

func (m Model) viewEditor() string {
	var sb strings.Builder

	action := "New entry"
	if m.editingID != 0 {
		action = "Edit entry"
	}
	sb.WriteString(m.theme.ListTitle.Render(action))
	sb.WriteString("\n\n")

	titleLabel := m.theme.Label.Render("Title")
	if m.editorFocus == editorTitle {
		titleLabel = m.theme.LabelFocused.Render("Title")
	}
	sb.WriteString(titleLabel + "\n")
	sb.WriteString(m.titleInput.View() + "\n\n")

	dateLabel := m.theme.Label.Render("Date")
	if m.editorFocus == editorDate {
		dateLabel = m.theme.LabelFocused.Render("Date")
	}
	sb.WriteString(dateLabel + "\n")
	sb.WriteString(m.dateInput.View() + "\n\n")

	bodyLabel := m.theme.Label.Render("Content")
	if m.editorFocus == editorBody {
		bodyLabel = m.theme.LabelFocused.Render("Content")
	}
	sb.WriteString(bodyLabel + "\n")
	sb.WriteString(m.bodyInput.View())
	return sb.String()
}

// =============================================================================
// OVERLAY VIEWS
// =============================================================================

func (m Model) viewConfirmDelete() string {
	entry := m.selectedEntry()
	if entry == nil {
		return ""
	}
	prompt := fmt.Sprintf("Delete %q? This cannot be undone. (y/n)", entry.Title)
	return m.theme.FormBox.Render(m.theme.WarningStyle.Render(prompt))
}

func (m Model) viewExport() string {
	var sb strings.Builder
	sb.WriteString(m.theme.ListTitle.Render(fmt.Sprintf("Export %d entries", len(m.entries))))
	sb.WriteString("\n\n")

	for i, format := range exportFormats {
		line := "  " + format.Name
		if i == m.exportCursor {
			line = m.theme.ListSelected.Render("› " + format.Name)
		}
		sb.WriteString(line + "\n")
	}
	return m.theme.FormBox.Render(sb.String())
}

func (m Model) viewSettings() string {
	var sb strings.Builder
	sb.WriteString(m.theme.ListTitle.Render("Settings"))
	sb.WriteString("\n\n")

	for i, item := range settingsItems {
		label := item
		if item == "Switch theme" {
			label = fmt.Sprintf("%s (current: %s)", item, m.session.Theme)
		}
		if i == m.settingsCursor {
			sb.WriteString(m.theme.ListSelected.Render("› "+label) + "\n")
		} else {
			sb.WriteString("  " + label + "\n")
		}
	}
	return m.theme.FormBox.Render(sb.String())
}

func (m Model) viewForm(title string) string {
	var sb strings.Builder
	sb.WriteString(m.theme.ListTitle.Render(title))
	sb.WriteString("\n\n")

	for i := range m.formInputs {
		sb.WriteString(m.formInputs[i].View() + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.theme.Hint.Render("enter submit · esc back"))
	return m.theme.FormBox.Render(sb.String())
}

// =============================================================================
// SHORTCUT BAR
// =============================================================================

func (m Model) viewShortcuts() string {
	type shortcut struct{ key, desc string }

	var shortcuts []shortcut
	switch m.state {
	case StateList:
		shortcuts = []shortcut{
			{"n", "new"}, {"e", "edit"}, {"d", "delete"}, {"f", "favorite"},
			{"/", "search"}, {"F", "favorites"}, {"x", "export"}, {"s", "settings"},
			{"C-l", "log out"},
		}
	case StateReader:
		shortcuts = []shortcut{{"esc", "back"}, {"e", "edit"}, {"f", "favorite"}}
	case StateEditor:
		shortcuts = []shortcut{{"C-s", "save"}, {"tab", "switch field"}, {"esc", "discard"}}
	default:
		shortcuts = []shortcut{{"enter", "select"}, {"esc", "back"}}
	}

	parts := make([]string, len(shortcuts))
	for i, s := range shortcuts {
		parts[i] = m.theme.ShortcutKey.Render(s.key) + " " + m.theme.ShortcutDesc.Render(s.desc)
	}
	return m.theme.StatusBar.Render(strings.Join(parts, "  "))
}
