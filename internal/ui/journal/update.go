// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/dayrun-tui/internal/auth"
	"github.com/jeranaias/dayrun-tui/internal/export"
	"github.com/jeranaias/dayrun-tui/internal/model"
	"github.com/jeranaias/dayrun-tui/internal/ui/styles"
)

// settingsItems enumerates the settings menu in display order.
var settingsItems = []string{
	"Change password",
	"Change username",
	"Switch theme",
	"Delete account",
	"Back",
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.reader.Width = msg.Width - 4
		m.reader.Height = msg.Height - 6
		m.bodyInput.SetWidth(msg.Width - 8)
		m.bodyInput.SetHeight(msg.Height - 12)
		return m, nil

	case entriesLoadedMsg:
		if msg.err != nil {
			m.setStatus(styles.StatusError, errStatus(msg.err))
			return m, nil
		}
		m.entries = msg.entries
		if m.cursor >= len(m.entries) {
			m.cursor = len(m.entries) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case entryMutatedMsg:
		if msg.err != nil {
			m.setStatus(styles.StatusError, errStatus(msg.err))
			return m, nil
		}
		m.setStatus(styles.StatusSuccess, msg.status)
		return m, m.loadEntries()

	case exportDoneMsg:
		m.state = StateList
		if msg.err != nil {
			if msg.err == export.ErrNoEntries {
				m.setStatus(styles.StatusWarning, "Nothing to export yet")
			} else {
				m.setStatus(styles.StatusError, errStatus(msg.err))
			}
			return m, nil
		}
		m.setStatus(styles.StatusSuccess, "Exported to "+msg.path)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocusedWidget(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.state {
	case StateList:
		return m.updateList(msg)
	case StateReader:
		return m.updateReader(msg)
	case StateEditor:
		return m.updateEditor(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	case StateExport:
		return m.updateExport(msg)
	case StateSettings:
		return m.updateSettings(msg)
	case StatePasswordForm, StateUsernameForm, StateDeleteAccount:
		return m.updateForm(msg)
	}
	return m, nil
}

// =============================================================================
// LIST
// =============================================================================

func (m Model) updateList(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Search input captures everything except exit keys while active.
	if m.searching {
		switch msg.String() {
		case "enter":
			m.searching = false
			m.searchInput.Blur()
			return m, m.loadEntries()
		case "esc":
			m.searching = false
			m.searchInput.Blur()
			m.searchInput.SetValue("")
			return m, m.loadEntries()
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if entry := m.selectedEntry(); entry != nil {
			m.state = StateReader
			m.reader.SetContent(m.renderEntry(entry))
			m.reader.GotoTop()
		}
	case key.Matches(msg, m.keys.New):
		m.openEditor(nil)
	case key.Matches(msg, m.keys.Edit):
		if entry := m.selectedEntry(); entry != nil {
			m.openEditor(entry)
		}
	case key.Matches(msg, m.keys.Delete):
		if m.selectedEntry() != nil {
			m.state = StateConfirmDelete
		}
	case key.Matches(msg, m.keys.Favorite):
		if entry := m.selectedEntry(); entry != nil {
			return m, m.toggleFavorite(entry.ID, !entry.Favorite)
		}
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Filter):
		m.favoritesOnly = !m.favoritesOnly
		m.cursor = 0
		return m, m.loadEntries()
	case key.Matches(msg, m.keys.Export):
		if len(m.entries) == 0 {
			m.setStatus(styles.StatusWarning, "Nothing to export yet")
			return m, nil
		}
		m.state = StateExport
		m.exportCursor = 0
	case key.Matches(msg, m.keys.Settings):
		m.state = StateSettings
		m.settingsCursor = 0
	case key.Matches(msg, m.keys.Logout):
		m.manager.Logout()
		return m, logoutCmd()
	}
	return m, nil
}

func (m *Model) openEditor(entry *model.Entry) {
	m.state = StateEditor
	m.editorFocus = editorTitle
	if entry == nil {
		m.editingID = 0
		m.titleInput.SetValue("")
		m.dateInput.SetValue("")
		m.bodyInput.SetValue("")
	} else {
		m.editingID = entry.ID
		m.titleInput.SetValue(entry.Title)
		m.dateInput.SetValue(entry.DisplayDate())
		m.bodyInput.SetValue(entry.Content)
	}
	m.titleInput.Focus()
	m.dateInput.Blur()
	m.bodyInput.Blur()
}

// =============================================================================
// READER
// =============================================================================

func (m Model) updateReader(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = StateList
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		if entry := m.selectedEntry(); entry != nil {
			m.openEditor(entry)
		}
		return m, nil
	case key.Matches(msg, m.keys.Favorite):
		if entry := m.selectedEntry(); entry != nil {
			return m, m.toggleFavorite(entry.ID, !entry.Favorite)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.reader, cmd = m.reader.Update(msg)
	return m, cmd
}

// =============================================================================
// EDITOR
// =============================================================================

func (m Model) updateEditor(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = StateList
		return m, nil
	case "tab":
		return m.cycleEditorFocus(1)
	case "shift+tab":
		return m.cycleEditorFocus(-1)
	case "ctrl+s":
		title := strings.TrimSpace(m.titleInput.Value())
		date := strings.TrimSpace(m.dateInput.Value())
		content := m.bodyInput.Value()
		if title == "" {
			m.setStatus(styles.StatusError, "Title cannot be empty")
			return m, nil
		}
		if date != "" {
			if _, err := time.ParseInLocation("2006-01-02", date, time.Local); err != nil {
				m.setStatus(styles.StatusError, "Date must be YYYY-MM-DD")
				return m, nil
			}
		}
		if strings.TrimSpace(content) == "" {
			m.setStatus(styles.StatusError, "Entry content cannot be empty")
			return m, nil
		}
		m.state = StateList
		return m, m.saveEntry(m.editingID, title, content, date)
	case "enter":
		// Enter advances through the one-line fields.
		if m.editorFocus == editorTitle || m.editorFocus == editorDate {
			return m.cycleEditorFocus(1)
		}
	}

	var cmd tea.Cmd
	switch m.editorFocus {
	case editorTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case editorDate:
		m.dateInput, cmd = m.dateInput.Update(msg)
	default:
		m.bodyInput, cmd = m.bodyInput.Update(msg)
	}
	return m, cmd
}

func (m Model) cycleEditorFocus(delta int) (Model, tea.Cmd) {
	m.titleInput.Blur()
	m.dateInput.Blur()
	m.bodyInput.Blur()

	m.editorFocus = editorField((int(m.editorFocus) + delta + 3) % 3)
	switch m.editorFocus {
	case editorTitle:
		m.titleInput.Focus()
		return m, textinput.Blink
	case editorDate:
		m.dateInput.Focus()
		return m, textinput.Blink
	default:
		return m, m.bodyInput.Focus()
	}
}

// =============================================================================
// DELETE CONFIRMATION
// =============================================================================

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		entry := m.selectedEntry()
		m.state = StateList
		if entry != nil {
			return m, m.deleteEntry(entry.ID)
		}
		return m, nil
	case "n", "N", "esc":
		m.state = StateList
	}
	return m, nil
}

// =============================================================================
// EXPORT MENU
// =============================================================================

func (m Model) updateExport(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.exportCursor > 0 {
			m.exportCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.exportCursor < len(exportFormats)-1 {
			m.exportCursor++
		}
	case key.Matches(msg, m.keys.Open):
		m.setStatus(styles.StatusInfo, "Exporting...")
		return m, m.runExport(m.exportCursor)
	case key.Matches(msg, m.keys.Back):
		m.state = StateList
	}
	return m, nil
}

// =============================================================================
// SETTINGS
// =============================================================================

func (m Model) updateSettings(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.settingsCursor < len(settingsItems)-1 {
			m.settingsCursor++
		}
	case key.Matches(msg, m.keys.Back):
		m.state = StateList
	case key.Matches(msg, m.keys.Open):
		switch settingsItems[m.settingsCursor] {
		case "Change password":
			m.openForm(StatePasswordForm, "current password", "new password", "confirm new password")
		case "Change username":
			m.openForm(StateUsernameForm, "new username")
		case "Switch theme":
			return m.switchTheme()
		case "Delete account":
			m.openForm(StateDeleteAccount, "password")
		case "Back":
			m.state = StateList
		}
	}
	return m, nil
}

func (m *Model) openForm(state State, placeholders ...string) {
	m.state = state
	m.formFocus = 0
	m.formInputs = make([]textinput.Model, len(placeholders))
	for i, placeholder := range placeholders {
		input := textinput.New()
		input.Placeholder = placeholder
		if strings.Contains(placeholder, "password") {
			input.EchoMode = textinput.EchoPassword
			input.EchoCharacter = '•'
		}
		m.formInputs[i] = input
	}
	m.formInputs[0].Focus()
}

func (m Model) switchTheme() (Model, tea.Cmd) {
	next := model.ThemeDark
	if m.session.Theme == model.ThemeDark {
		next = model.ThemeLight
	}
	outcome := m.manager.SaveTheme(next)
	if !outcome.OK() {
		m.setStatus(styles.StatusError, outcome.Message)
		return m, nil
	}
	m.session.Theme = next
	m.setStatus(styles.StatusSuccess, fmt.Sprintf("Theme switched to %s", next))
	return m, func() tea.Msg {
		return ThemeChangedMsg{Theme: next}
	}
}

// =============================================================================
// SETTINGS FORMS
// =============================================================================

func (m Model) updateForm(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = StateSettings
		return m, nil
	case "tab", "down":
		m.cycleFormFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.cycleFormFocus(-1)
		return m, nil
	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	return m, cmd
}

func (m *Model) cycleFormFocus(delta int) {
	n := len(m.formInputs)
	if n == 0 {
		return
	}
	m.formInputs[m.formFocus].Blur()
	m.formFocus = (m.formFocus + delta + n) % n
	m.formInputs[m.formFocus].Focus()
}

func (m Model) submitForm() (Model, tea.Cmd) {
	var outcome auth.Outcome

	switch m.state {
	case StatePasswordForm:
		outcome = m.manager.ChangePassword(
			m.formInputs[0].Value(),
			m.formInputs[1].Value(),
			m.formInputs[2].Value(),
		)
	case StateUsernameForm:
		outcome = m.manager.ChangeUsername(m.formInputs[0].Value())
		if outcome.OK() {
			if session := m.manager.Session(); session != nil {
				m.session = *session
			}
		}
	case StateDeleteAccount:
		outcome = m.manager.DeleteAccount(m.formInputs[0].Value())
		if outcome.OK() {
			return m, logoutCmd()
		}
	}

	if !outcome.OK() {
		m.setStatus(statusKindFor(outcome.Kind), outcome.Message)
		for i := range m.formInputs {
			if m.formInputs[i].EchoMode == textinput.EchoPassword {
				m.formInputs[i].SetValue("")
			}
		}
		return m, nil
	}

	m.state = StateSettings
	m.setStatus(styles.StatusSuccess, outcome.Message)
	return m, nil
}

func statusKindFor(kind auth.Kind) styles.StatusKind {
	switch kind {
	case auth.KindOK:
		return styles.StatusSuccess
	case auth.KindLockedOut:
		return styles.StatusWarning
	default:
		return styles.StatusError
	}
}

// =============================================================================
// WIDGET PASSTHROUGH
// =============================================================================

func (m Model) updateFocusedWidget(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case StateReader:
		m.reader, cmd = m.reader.Update(msg)
	case StateEditor:
		switch m.editorFocus {
		case editorBody:
			m.bodyInput, cmd = m.bodyInput.Update(msg)
		case editorDate:
			m.dateInput, cmd = m.dateInput.Update(msg)
		default:
			m.titleInput, cmd = m.titleInput.Update(msg)
		}
	}
	return m, cmd
}
