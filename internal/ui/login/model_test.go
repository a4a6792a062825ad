// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/dayrun-tui/internal/auth"
	"github.com/jeranaias/dayrun-tui/internal/model"
	"github.com/jeranaias/dayrun-tui/internal/ui/styles"
)

type memoryUserStore struct {
	users map[string]*model.User
	next  int64
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: make(map[string]*model.User), next: 1}
}

func (s *memoryUserStore) UserExists(username string) (bool, error) {
	_, ok := s.users[username]
	return ok, nil
}

func (s *memoryUserStore) GetUserByUsername(username string) (*model.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (s *memoryUserStore) CreateUser(username, hash, salt string) (bool, error) {
	if _, ok := s.users[username]; ok {
		return false, nil
	}
	s.users[username] = &model.User{ID: s.next, Username: username, PasswordHash: hash, Salt: salt}
	s.next++
	return true, nil
}

func (s *memoryUserStore) UpdateUserPassword(id int64, hash, salt string) error { return nil }
func (s *memoryUserStore) UpdateUsername(id int64, name string) (bool, error)   { return true, nil }
func (s *memoryUserStore) UpdateTheme(id int64, theme model.ThemePreference) error {
	return nil
}
func (s *memoryUserStore) DeleteUser(id int64) error { return nil }

func newTestModel(t *testing.T) (Model, *auth.Manager) {
	t.Helper()
	manager := auth.NewManager(newMemoryUserStore())
	return New(manager, styles.NewTheme(model.ThemeLight)), manager
}

func pressKey(m Model, key string) (Model, tea.Cmd) {
	var msg tea.Msg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+t":
		msg = tea.KeyMsg{Type: tea.KeyCtrlT}
	}
	return m.Update(msg)
}

func TestRegisterThenLoginFlow(t *testing.T) {
	m, manager := newTestModel(t)

	// Switch to registration and fill the form.
	m, _ = pressKey(m, "ctrl+t")
	if m.mode != ModeRegister {
		t.Fatal("ctrl+t did not switch to registration")
	}
	m.inputs[fieldUsername].SetValue("alice")
	m.inputs[fieldPassword].SetValue("Valid123!")
	m.inputs[fieldConfirm].SetValue("Valid123!")

	m, _ = pressKey(m, "enter")
	if m.mode != ModeLogin {
		t.Fatal("successful registration did not return to the login form")
	}
	if m.statusKind != styles.StatusSuccess {
		t.Errorf("status after registration = %q (%v)", m.status, m.statusKind)
	}

	// Now log in.
	m.inputs[fieldUsername].SetValue("alice")
	m.inputs[fieldPassword].SetValue("Valid123!")
	m, cmd := pressKey(m, "enter")
	if cmd == nil {
		t.Fatalf("successful login produced no command, status %q", m.status)
	}
	msg := cmd()
	loggedIn, ok := msg.(LoggedInMsg)
	if !ok {
		t.Fatalf("command produced %T, want LoggedInMsg", msg)
	}
	if loggedIn.Session.Username != "alice" {
		t.Errorf("session username = %q", loggedIn.Session.Username)
	}
	if !manager.IsLoggedIn() {
		t.Error("manager not logged in")
	}
}

func TestFailedLoginShowsMessageAndClearsPassword(t *testing.T) {
	m, _ := newTestModel(t)

	m.inputs[fieldUsername].SetValue("ghost")
	m.inputs[fieldPassword].SetValue("Wrong123!")

	m, cmd := pressKey(m, "enter")
	if cmd != nil {
		t.Fatal("failed login produced a command")
	}
	if m.status == "" || m.statusKind != styles.StatusError {
		t.Errorf("expected error status, got %q (%v)", m.status, m.statusKind)
	}
	if m.inputs[fieldPassword].Value() != "" {
		t.Error("password field not cleared after failure")
	}
}

func TestRegisterValidationMessage(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = pressKey(m, "ctrl+t")

	m.inputs[fieldUsername].SetValue("alice")
	m.inputs[fieldPassword].SetValue("Valid123!")
	m.inputs[fieldConfirm].SetValue("Other123!")

	m, _ = pressKey(m, "enter")
	if !strings.Contains(m.status, "do not match") {
		t.Errorf("status = %q, want mismatch message", m.status)
	}
}

func TestViewRendersMode(t *testing.T) {
	m, _ := newTestModel(t)
	if !strings.Contains(m.View(), "sign in") {
		t.Error("login view missing title")
	}

	m, _ = pressKey(m, "ctrl+t")
	if !strings.Contains(m.View(), "create account") {
		t.Error("register view missing title")
	}
}
