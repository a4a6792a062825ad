// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package journal

import (
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/dayrun-tui/internal/auth"
	"github.com/jeranaias/dayrun-tui/internal/export"
	"github.com/jeranaias/dayrun-tui/internal/model"
	"github.com/jeranaias/dayrun-tui/internal/ui/styles"
)

// =============================================================================
// FAKES
// =============================================================================

type memoryEntryStore struct {
	entries map[int64]*model.Entry
	nextID  int64
}

func newMemoryEntryStore() *memoryEntryStore {
	return &memoryEntryStore{entries: make(map[int64]*model.Entry), nextID: 1}
}

func (s *memoryEntryStore) CreateEntry(userID int64, title, content, date string) (int64, error) {
	createdAt, err := resolveDate(date)
	if err != nil {
		return 0, err
	}
	id := s.nextID
	s.nextID++
	s.entries[id] = &model.Entry{
		ID: id, UserID: userID, Title: title, Content: content,
		CreatedAt: createdAt, UpdatedAt: time.Now(),
	}
	return id, nil
}

// resolveDate mirrors the store's date-override rule: empty means now,
// otherwise the given day with the current time of day.
func resolveDate(date string) (time.Time, error) {
	now := time.Now()
	if date == "" {
		return now, nil
	}
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, errors.New("invalid date")
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		now.Hour(), now.Minute(), now.Second(), 0, time.Local), nil
}

func (s *memoryEntryStore) GetEntry(userID, entryID int64) (*model.Entry, error) {
	e, ok := s.entries[entryID]
	if !ok || e.UserID != userID {
		return nil, errors.New("not found")
	}
	copied := *e
	return &copied, nil
}

func (s *memoryEntryStore) ListEntries(userID int64, search string) ([]model.Entry, error) {
	var out []model.Entry
	for _, e := range s.entries {
		if e.UserID != userID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(e.Title+e.Content), strings.ToLower(search)) {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *memoryEntryStore) ListFavorites(userID int64) ([]model.Entry, error) {
	var out []model.Entry
	for _, e := range s.entries {
		if e.UserID == userID && e.Favorite {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *memoryEntryStore) UpdateEntry(userID, entryID int64, title, content, date string) error {
	e, ok := s.entries[entryID]
	if !ok || e.UserID != userID {
		return errors.New("not found")
	}
	e.Title, e.Content = title, content
	e.UpdatedAt = time.Now()
	if date != "" {
		moved, err := resolveDate(date)
		if err != nil {
			return err
		}
		e.CreatedAt = moved
	}
	return nil
}

func (s *memoryEntryStore) SetFavorite(userID, entryID int64, favorite bool) error {
	e, ok := s.entries[entryID]
	if !ok || e.UserID != userID {
		return errors.New("not found")
	}
	e.Favorite = favorite
	return nil
}

func (s *memoryEntryStore) DeleteEntry(userID, entryID int64) error {
	e, ok := s.entries[entryID]
	if !ok || e.UserID != userID {
		return errors.New("not found")
	}
	delete(s.entries, entryID)
	return nil
}

// singleUserStore holds one credential record, enough to log a manager in.
type singleUserStore struct {
	user model.User
}

func (s *singleUserStore) UserExists(username string) (bool, error) {
	return username == s.user.Username, nil
}

func (s *singleUserStore) GetUserByUsername(username string) (*model.User, error) {
	if username != s.user.Username {
		return nil, nil
	}
	copied := s.user
	return &copied, nil
}

func (s *singleUserStore) CreateUser(string, string, string) (bool, error) { return false, nil }
func (s *singleUserStore) UpdateUserPassword(int64, string, string) error  { return nil }
func (s *singleUserStore) UpdateUsername(int64, string) (bool, error)      { return true, nil }
func (s *singleUserStore) UpdateTheme(int64, model.ThemePreference) error  { return nil }
func (s *singleUserStore) DeleteUser(int64) error                          { return nil }

const testPassword = "Valid123!"

func newTestModel(t *testing.T) (Model, *memoryEntryStore) {
	t.Helper()

	hash, salt, err := auth.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	users := &singleUserStore{user: model.User{
		ID: 1, Username: "alice", PasswordHash: hash, Salt: salt, Theme: model.ThemeLight,
	}}
	manager := auth.NewManager(users)
	if outcome := manager.Login("alice", testPassword); !outcome.OK() {
		t.Fatalf("login failed: %s", outcome.Message)
	}

	store := newMemoryEntryStore()
	m := New(manager, store, *manager.Session(),
		styles.NewTheme(model.ThemeLight), export.Options{OpenAfterExport: false})
	return m, store
}

// drain runs a command and feeds its message back into the model, following
// any follow-up commands, the way the Bubble Tea runtime would.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return m
		}
		if _, quitting := msg.(tea.QuitMsg); quitting {
			return m
		}
		m, cmd = m.Update(msg)
	}
	return m
}

func press(m Model, key string) (Model, tea.Cmd) {
	var msg tea.Msg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+s":
		msg = tea.KeyMsg{Type: tea.KeyCtrlS}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	return m.Update(msg)
}

// =============================================================================
// TESTS
// =============================================================================

func TestInitLoadsEntries(t *testing.T) {
	m, store := newTestModel(t)
	store.CreateEntry(1, "hello", "world", "")

	m = drain(t, m, m.Init())
	if len(m.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(m.entries))
	}
	if m.entries[0].Title != "hello" {
		t.Errorf("title = %q", m.entries[0].Title)
	}
}

func TestCreateEntryThroughEditor(t *testing.T) {
	m, store := newTestModel(t)
	m = drain(t, m, m.Init())

	var cmd tea.Cmd
	m, _ = press(m, "n")
	if m.state != StateEditor {
		t.Fatal("n did not open the editor")
	}

	m.titleInput.SetValue("A day out")
	m.bodyInput.SetValue("We went to the lake.")
	m, cmd = press(m, "ctrl+s")
	m = drain(t, m, cmd)

	if m.state != StateList {
		t.Error("save did not return to the list")
	}
	if len(store.entries) != 1 {
		t.Fatalf("store has %d entries, want 1", len(store.entries))
	}
	if m.statusKind != styles.StatusSuccess {
		t.Errorf("status = %q", m.status)
	}
}

func TestEditorRejectsEmptyTitle(t *testing.T) {
	m, store := newTestModel(t)
	m = drain(t, m, m.Init())

	m, _ = press(m, "n")
	m.titleInput.SetValue("   ")
	m.bodyInput.SetValue("content")
	m, _ = press(m, "ctrl+s")

	if m.state != StateEditor {
		t.Error("editor closed despite validation failure")
	}
	if len(store.entries) != 0 {
		t.Error("empty-titled entry was saved")
	}
	if m.statusKind != styles.StatusError {
		t.Errorf("status = %q (%v)", m.status, m.statusKind)
	}
}

func TestEditorSetsEntryDate(t *testing.T) {
	m, store := newTestModel(t)
	m = drain(t, m, m.Init())

	var cmd tea.Cmd
	m, _ = press(m, "n")
	m.titleInput.SetValue("Backdated")
	m.dateInput.SetValue("2024-03-15")
	m.bodyInput.SetValue("written after the fact")
	m, cmd = press(m, "ctrl+s")
	m = drain(t, m, cmd)

	if len(store.entries) != 1 {
		t.Fatalf("store has %d entries, want 1", len(store.entries))
	}
	for _, e := range store.entries {
		if got := e.CreatedAt.Format("2006-01-02"); got != "2024-03-15" {
			t.Errorf("entry date = %s, want 2024-03-15", got)
		}
	}
}

func TestEditorRejectsMalformedDate(t *testing.T) {
	m, store := newTestModel(t)
	m = drain(t, m, m.Init())

	m, _ = press(m, "n")
	m.titleInput.SetValue("Bad date")
	m.dateInput.SetValue("15/03/2024")
	m.bodyInput.SetValue("content")
	m, _ = press(m, "ctrl+s")

	if m.state != StateEditor {
		t.Error("editor closed despite malformed date")
	}
	if len(store.entries) != 0 {
		t.Error("entry with malformed date was saved")
	}
	if m.statusKind != styles.StatusError {
		t.Errorf("status = %q (%v)", m.status, m.statusKind)
	}
}

func TestEditorPrefillsDateOnEdit(t *testing.T) {
	m, store := newTestModel(t)
	store.CreateEntry(1, "trip", "draft", "2025-05-20")
	m = drain(t, m, m.Init())

	var cmd tea.Cmd
	m, _ = press(m, "e")
	if m.state != StateEditor {
		t.Fatal("e did not open the editor")
	}
	if got := m.dateInput.Value(); got != "2025-05-20" {
		t.Fatalf("date field = %q, want 2025-05-20", got)
	}

	m.dateInput.SetValue("2025-06-01")
	m, cmd = press(m, "ctrl+s")
	m = drain(t, m, cmd)

	for _, e := range store.entries {
		if got := e.CreatedAt.Format("2006-01-02"); got != "2025-06-01" {
			t.Errorf("entry date = %s, want 2025-06-01", got)
		}
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m, store := newTestModel(t)
	store.CreateEntry(1, "doomed", "x", "")
	m = drain(t, m, m.Init())

	m, _ = press(m, "d")
	if m.state != StateConfirmDelete {
		t.Fatal("d did not ask for confirmation")
	}

	// Declining keeps the entry.
	m, _ = press(m, "n")
	if len(store.entries) != 1 {
		t.Fatal("entry deleted without confirmation")
	}

	var cmd tea.Cmd
	m, _ = press(m, "d")
	m, cmd = press(m, "y")
	m = drain(t, m, cmd)
	if len(store.entries) != 0 {
		t.Error("confirmed delete did not remove the entry")
	}
}

func TestFavoriteToggleAndFilter(t *testing.T) {
	m, store := newTestModel(t)
	store.CreateEntry(1, "starred", "x", "")
	store.CreateEntry(1, "plain", "y", "")
	m = drain(t, m, m.Init())

	// Cursor starts on the newest entry ("plain"); move to "starred".
	m, _ = press(m, "j")
	var cmd tea.Cmd
	m, cmd = press(m, "f")
	m = drain(t, m, cmd)

	m, cmd = press(m, "F")
	m = drain(t, m, cmd)
	if len(m.entries) != 1 || m.entries[0].Title != "starred" {
		t.Fatalf("favorites filter shows %+v", m.entries)
	}

	m, cmd = press(m, "F")
	m = drain(t, m, cmd)
	if len(m.entries) != 2 {
		t.Errorf("filter off shows %d entries", len(m.entries))
	}
}

func TestSearchFiltersList(t *testing.T) {
	m, store := newTestModel(t)
	store.CreateEntry(1, "Morning walk", "sunny", "")
	store.CreateEntry(1, "Grocery list", "milk and eggs", "")
	m = drain(t, m, m.Init())

	m, _ = press(m, "/")
	if !m.searching {
		t.Fatal("/ did not enter search mode")
	}
	m.searchInput.SetValue("grocery")
	var cmd tea.Cmd
	m, cmd = press(m, "enter")
	m = drain(t, m, cmd)

	if len(m.entries) != 1 || m.entries[0].Title != "Grocery list" {
		t.Fatalf("search shows %+v", m.entries)
	}

	// Escape clears the search.
	m, _ = press(m, "/")
	m, cmd = press(m, "esc")
	m = drain(t, m, cmd)
	if len(m.entries) != 2 {
		t.Errorf("cleared search shows %d entries", len(m.entries))
	}
}

func TestExportMenuOnEmptyJournal(t *testing.T) {
	m, _ := newTestModel(t)
	m = drain(t, m, m.Init())

	m, _ = press(m, "x")
	if m.state != StateList {
		t.Error("export menu opened with no entries")
	}
	if m.statusKind != styles.StatusWarning {
		t.Errorf("status = %q (%v)", m.status, m.statusKind)
	}
}

func TestLogoutEmitsMessage(t *testing.T) {
	m, _ := newTestModel(t)
	m = drain(t, m, m.Init())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if cmd == nil {
		t.Fatal("logout produced no command")
	}
	if _, ok := cmd().(LoggedOutMsg); !ok {
		t.Error("logout command did not emit LoggedOutMsg")
	}
}

func TestThemeSwitchEmitsMessage(t *testing.T) {
	m, _ := newTestModel(t)
	m = drain(t, m, m.Init())

	m, _ = press(m, "s")
	if m.state != StateSettings {
		t.Fatal("s did not open settings")
	}
	// Move to "Switch theme".
	m, _ = press(m, "j")
	m, _ = press(m, "j")
	m, cmd := press(m, "enter")
	if cmd == nil {
		t.Fatal("theme switch produced no command")
	}
	msg, ok := cmd().(ThemeChangedMsg)
	if !ok {
		t.Fatalf("got %T, want ThemeChangedMsg", cmd())
	}
	if msg.Theme != model.ThemeDark {
		t.Errorf("theme = %q, want dark", msg.Theme)
	}
}

func TestListLineClipsLongTitles(t *testing.T) {
	m, store := newTestModel(t)
	longTitle := strings.Repeat("a very long title ", 10)
	store.CreateEntry(1, longTitle, "body", "")
	m = drain(t, m, m.Init())
	m.width = 60

	line := m.renderListLine(&m.entries[0])
	if strings.Contains(line, longTitle) {
		t.Error("long title rendered unclipped")
	}
	if !strings.Contains(line, "...") {
		t.Errorf("clipped title has no ellipsis: %q", line)
	}
}

func TestListLinePreviewIsSingleLine(t *testing.T) {
	m, store := newTestModel(t)
	store.CreateEntry(1, "walk", "first line\nsecond line\n\tthird", "")
	m = drain(t, m, m.Init())
	m.width = 120

	line := m.renderListLine(&m.entries[0])
	if strings.ContainsAny(line, "\n\t") {
		t.Errorf("preview leaked line breaks: %q", line)
	}
	if !strings.Contains(line, "first line second line third") {
		t.Errorf("preview missing collapsed content: %q", line)
	}
}

func TestViewShowsEmptyState(t *testing.T) {
	m, _ := newTestModel(t)
	m = drain(t, m, m.Init())

	if !strings.Contains(m.View(), "No entries yet") {
		t.Error("empty list view missing hint")
	}
}
