// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the root Bubble Tea model that routes between the
// login and journal views.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/dayrun-tui/internal/auth"
	"github.com/jeranaias/dayrun-tui/internal/config"
	"github.com/jeranaias/dayrun-tui/internal/export"
	"github.com/jeranaias/dayrun-tui/internal/model"
	"github.com/jeranaias/dayrun-tui/internal/ui/journal"
	"github.com/jeranaias/dayrun-tui/internal/ui/login"
	"github.com/jeranaias/dayrun-tui/internal/ui/styles"
)

// ConfigReloadedMsg carries a freshly reloaded configuration into the
// running program. Sent by the config watcher goroutine.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// ExportOptionsFrom maps the [export] config section to export options.
func ExportOptionsFrom(cfg *config.Config) export.Options {
	opts := export.Options{
		OutputDir:         cfg.Export.OutputDir,
		OpenAfterExport:   cfg.Export.OpenAfterExport,
		IncludeTimestamps: cfg.Export.IncludeTimestamps,
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	return opts
}

// view identifies the active top-level view.
type view int

const (
	viewLogin view = iota
	viewJournal
)

// App is the root model. It owns the theme and swaps between the login form
// and the journal once a session exists.
type App struct {
	manager    *auth.Manager
	store      journal.EntryStore
	exportOpts export.Options

	theme   *styles.Theme
	active  view
	login   login.Model
	journal journal.Model

	width  int
	height int
}

// NewApp builds the application model. The initial theme comes from config;
// the user's stored preference replaces it at login.
func NewApp(manager *auth.Manager, store journal.EntryStore,
	initialTheme model.ThemePreference, exportOpts export.Options) App {

	theme := styles.NewTheme(initialTheme)
	return App{
		manager:    manager,
		store:      store,
		exportOpts: exportOpts,
		theme:      theme,
		active:     viewLogin,
		login:      login.New(manager, theme),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.login.Init()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case login.LoggedInMsg:
		a.theme = styles.NewTheme(msg.Session.Theme)
		a.journal = journal.New(a.manager, a.store, msg.Session, a.theme, a.exportOpts)
		a.active = viewJournal
		return a, tea.Batch(a.journal.Init(), a.resize())

	case journal.LoggedOutMsg:
		a.login = login.New(a.manager, a.theme)
		a.active = viewLogin
		return a, tea.Batch(a.login.Init(), a.resize())

	case ConfigReloadedMsg:
		a.manager.ConfigureLockout(msg.Config.Security.MaxLoginAttempts,
			auth.LockoutWindowFor(msg.Config.Security.LockoutWindowSecs))
		a.exportOpts = ExportOptionsFrom(msg.Config)
		a.journal = a.journal.WithExportOptions(a.exportOpts)
		return a, nil

	case journal.ThemeChangedMsg:
		a.theme = styles.NewTheme(msg.Theme)
		if session := a.manager.Session(); session != nil {
			a.journal = journal.New(a.manager, a.store, *session, a.theme, a.exportOpts)
			return a, tea.Batch(a.journal.Init(), a.resize())
		}
		return a, nil
	}

	var cmd tea.Cmd
	if a.active == viewJournal {
		a.journal, cmd = a.journal.Update(msg)
	} else {
		a.login, cmd = a.login.Update(msg)
	}
	return a, cmd
}

// resize replays the last window size to the newly activated view.
func (a App) resize() tea.Cmd {
	if a.width == 0 && a.height == 0 {
		return nil
	}
	width, height := a.width, a.height
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: width, Height: height}
	}
}

// View implements tea.Model.
func (a App) View() string {
	if a.active == viewJournal {
		return a.journal.View()
	}
	return a.login.View()
}
