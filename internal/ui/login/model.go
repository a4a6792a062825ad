// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login provides the login and registration view for the TUI.
package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/dayrun-tui/internal/auth"
	"github.com/jeranaias/dayrun-tui/internal/model"
	"github.com/jeranaias/dayrun-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// LoggedInMsg is emitted to the parent model after a successful login.
type LoggedInMsg struct {
	Session model.Session
}

// =============================================================================
// LOGIN MODEL
// =============================================================================

// Mode selects between the login and registration forms.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

const (
	fieldUsername = iota
	fieldPassword
	fieldConfirm
)

// Model is the Bubble Tea model for the login view.
type Model struct {
	manager *auth.Manager
	theme   *styles.Theme

	mode    Mode
	inputs  []textinput.Model
	focused int

	status     string
	statusKind styles.StatusKind

	width  int
	height int
}

// New creates the login view.
func New(manager *auth.Manager, theme *styles.Theme) Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = auth.MaxUsernameLength
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	confirm := textinput.New()
	confirm.Placeholder = "confirm password"
	confirm.EchoMode = textinput.EchoPassword
	confirm.EchoCharacter = '•'

	return Model{
		manager: manager,
		theme:   theme,
		mode:    ModeLogin,
		inputs:  []textinput.Model{username, password, confirm},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.cycleFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.cycleFocus(-1)
			return m, nil
		case "ctrl+t":
			m.toggleMode()
			return m, nil
		case "enter":
			return m.submit()
		}
	}

	cmd := m.updateInputs(msg)
	return m, cmd
}

func (m *Model) visibleFields() int {
	if m.mode == ModeRegister {
		return 3
	}
	return 2
}

func (m *Model) cycleFocus(delta int) {
	n := m.visibleFields()
	m.inputs[m.focused].Blur()
	m.focused = (m.focused + delta + n) % n
	m.inputs[m.focused].Focus()
}

func (m *Model) toggleMode() {
	if m.mode == ModeLogin {
		m.mode = ModeRegister
	} else {
		m.mode = ModeLogin
	}
	m.status = ""
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focused = fieldUsername
	m.inputs[fieldUsername].Focus()
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m Model) submit() (Model, tea.Cmd) {
	username := m.inputs[fieldUsername].Value()
	password := m.inputs[fieldPassword].Value()

	var outcome auth.Outcome
	if m.mode == ModeRegister {
		outcome = m.manager.Register(username, password, m.inputs[fieldConfirm].Value())
	} else {
		outcome = m.manager.Login(username, password)
	}

	if !outcome.OK() {
		m.status = outcome.Message
		m.statusKind = statusKindFor(outcome.Kind)
		m.inputs[fieldPassword].SetValue("")
		m.inputs[fieldConfirm].SetValue("")
		return m, nil
	}

	if m.mode == ModeRegister {
		// Registered; hand the user back to the login form.
		m.toggleMode()
		m.status = outcome.Message
		m.statusKind = styles.StatusSuccess
		return m, nil
	}

	session := m.manager.Session()
	if session == nil {
		m.status = "An internal error occurred. Please try again."
		m.statusKind = styles.StatusError
		return m, nil
	}
	return m, func() tea.Msg {
		return LoggedInMsg{Session: *session}
	}
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
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder

	title := "dayrun · sign in"
	hint := "enter submit · tab next field · ctrl+t create account · ctrl+c quit"
	if m.mode == ModeRegister {
		title = "dayrun · create account"
		hint = "enter submit · tab next field · ctrl+t back to sign in · ctrl+c quit"
	}
	sb.WriteString(m.theme.Title.Render(title))
	sb.WriteString("\n\n")

	labels := []string{"Username", "Password", "Confirm"}
	for i := 0; i < m.visibleFields(); i++ {
		label := m.theme.Label.Render(labels[i])
		if i == m.focused {
			label = m.theme.LabelFocused.Render(labels[i])
		}
		sb.WriteString(label + "\n")
		sb.WriteString(m.inputs[i].View() + "\n\n")
	}

	if m.status != "" {
		sb.WriteString(m.theme.RenderStatus(m.statusKind, m.status))
		sb.WriteString("\n\n")
	}
	sb.WriteString(m.theme.Hint.Render(hint))

	form := m.theme.FormBox.Render(sb.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
	}
	return form
}
