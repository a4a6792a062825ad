// dayrun - a private journal for your terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/dayrun-tui/internal/auth"
	"github.com/jeranaias/dayrun-tui/internal/cli"
	"github.com/jeranaias/dayrun-tui/internal/config"
	"github.com/jeranaias/dayrun-tui/internal/model"
	"github.com/jeranaias/dayrun-tui/internal/storage"
	"github.com/jeranaias/dayrun-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch cmd {
	case cli.CmdTUI:
		runTUI(cfg)
	case cli.CmdExport:
		exitOnError(cli.HandleExport(cfg, args))
	case cli.CmdBackup:
		exitOnError(cli.HandleBackup(cfg, args))
	case cli.CmdRestore:
		exitOnError(cli.HandleRestore(cfg, args))
	case cli.CmdVersion:
		cli.HandleVersion()
	case cli.CmdHelp:
		cli.HandleHelp()
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging routes slog to a file under the data directory. The terminal
// belongs to the TUI; log lines on stderr would corrupt the display.
func setupLogging() (*os.File, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	logPath := filepath.Join(dir, "dayrun.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}

	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelInfo})
	slog.SetDefault(slog.New(handler))
	return file, nil
}

func runTUI(cfg *config.Config) {
	logFile, err := setupLogging()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	manager := auth.NewManager(store,
		auth.WithLockout(auth.NewLockoutTracker(
			auth.WithMaxAttempts(cfg.Security.MaxLoginAttempts),
			auth.WithLockoutWindow(auth.LockoutWindowFor(cfg.Security.LockoutWindowSecs)),
		)),
	)

	app := ui.NewApp(manager, store, model.ThemePreference(cfg.UI.Theme),
		ui.ExportOptionsFrom(cfg))

	program := tea.NewProgram(app, tea.WithAltScreen())

	// Config edits apply to the running session without a restart.
	if configPath, err := config.ConfigPath(); err == nil {
		watcher, err := config.NewWatcher(configPath, func(reloaded *config.Config) {
			program.Send(ui.ConfigReloadedMsg{Config: reloaded})
		}, slog.Default())
		if err != nil {
			slog.Warn("config watcher unavailable", "error", err)
		} else if err := watcher.Watch(); err != nil {
			slog.Warn("config watcher failed to start", "error", err)
		} else {
			defer watcher.Close()
		}
	}

	if _, err := program.Run(); err != nil {
		slog.Error("tui exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
