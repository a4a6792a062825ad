// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package journal provides the main journal view for the TUI: the entry
// list plus the editor, reader, export and settings screens layered on it.
package journal

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/dayrun-tui/internal/auth"
	"github.com/jeranaias/dayrun-tui/internal/export"
	"github.com/jeranaias/dayrun-tui/internal/model"
	"github.com/jeranaias/dayrun-tui/internal/ui/styles"
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// EntryStore is the persistence surface the journal view needs.
type EntryStore interface {
	CreateEntry(userID int64, title, content, date string) (int64, error)
	GetEntry(userID, entryID int64) (*model.Entry, error)
	ListEntries(userID int64, search string) ([]model.Entry, error)
	ListFavorites(userID int64) ([]model.Entry, error)
	UpdateEntry(userID, entryID int64, title, content, date string) error
	SetFavorite(userID, entryID int64, favorite bool) error
	DeleteEntry(userID, entryID int64) error
}

// =============================================================================
// MESSAGES
// =============================================================================

// LoggedOutMsg is emitted to the parent model when the session ends.
type LoggedOutMsg struct{}

// ThemeChangedMsg is emitted to the parent model after the user switches
// theme, so the whole application restyles.
type ThemeChangedMsg struct {
	Theme model.ThemePreference
}

type entriesLoadedMsg struct {
	entries []model.Entry
	err     error
}

type entryMutatedMsg struct {
	status string
	err    error
}

type exportDoneMsg struct {
	path string
	err  error
}

// =============================================================================
// STATE
// =============================================================================

// State is the active screen within the journal view.
type State int

const (
	StateList State = iota
	StateReader
	StateEditor
	StateConfirmDelete
	StateExport
	StateSettings
	StatePasswordForm
	StateUsernameForm
	StateDeleteAccount
)

// editorField is the focused widget inside the editor.
type editorField int

const (
	editorTitle editorField = iota
	editorDate
	editorBody
)

// =============================================================================
// JOURNAL MODEL
// =============================================================================

// Model is the Bubble Tea model for the journal view.
type Model struct {
	// Collaborators
	manager *auth.Manager
	store   EntryStore
	session model.Session

	// Styling
	theme *styles.Theme

	// State
	state         State
	keys          KeyMap
	status        string
	statusKind    styles.StatusKind
	favoritesOnly bool

	// Entry list
	entries []model.Entry
	cursor  int

	// Search
	searching   bool
	searchInput textinput.Model

	// Reader
	reader viewport.Model

	// Editor
	editingID   int64 // 0 = new entry
	titleInput  textinput.Model
	dateInput   textinput.Model
	bodyInput   textarea.Model
	editorFocus editorField

	// Export
	exportCursor int
	exportOpts   export.Options

	// Settings
	settingsCursor int
	formInputs     []textinput.Model
	formFocus      int

	// Dimensions
	width  int
	height int
}

// New creates the journal view for an authenticated session.
func New(manager *auth.Manager, store EntryStore, session model.Session,
	theme *styles.Theme, exportOpts export.Options) Model {

	search := textinput.New()
	search.Placeholder = "search title and content"
	search.CharLimit = 200

	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 200

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD (today)"
	date.CharLimit = 10
	date.Width = 20

	body := textarea.New()
	body.Placeholder = "write your thoughts..."
	body.CharLimit = 0

	return Model{
		manager:     manager,
		store:       store,
		session:     session,
		theme:       theme,
		state:       StateList,
		keys:        DefaultKeyMap(),
		searchInput: search,
		titleInput:  title,
		dateInput:   date,
		bodyInput:   body,
		reader:      viewport.New(80, 20),
		exportOpts:  exportOpts,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.loadEntries()
}

// WithExportOptions returns a copy of the model using new export settings.
// Called when the configuration file is reloaded while the journal is open.
func (m Model) WithExportOptions(opts export.Options) Model {
	m.exportOpts = opts
	return m
}

// selectedEntry returns the entry under the cursor, or nil.
func (m *Model) selectedEntry() *model.Entry {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return nil
	}
	return &m.entries[m.cursor]
}

func (m *Model) setStatus(kind styles.StatusKind, message string) {
	m.statusKind = kind
	m.status = message
}
