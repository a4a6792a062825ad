// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"

	"github.com/jeranaias/dayrun-tui/internal/auth"
	"github.com/jeranaias/dayrun-tui/internal/config"
	"github.com/jeranaias/dayrun-tui/internal/export"
	"github.com/jeranaias/dayrun-tui/internal/storage"
)

// HandleExport exports a user's journal from the command line. The user
// authenticates with their password; the same lockout policy as the TUI
// applies.
func HandleExport(cfg *config.Config, args *ArgParser) error {
	username := args.Flag("user")
	if username == "" {
		var err error
		username, err = promptLine("Username: ")
		if err != nil {
			return err
		}
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return err
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	manager := auth.NewManager(store,
		auth.WithLockout(auth.NewLockoutTracker(
			auth.WithMaxAttempts(cfg.Security.MaxLoginAttempts),
			auth.WithLockoutWindow(auth.LockoutWindowFor(cfg.Security.LockoutWindowSecs)),
		)),
	)
	if outcome := manager.Login(username, password); !outcome.OK() {
		return fmt.Errorf("login failed: %s", outcome.Message)
	}
	session := manager.Session()

	from, to, err := parseDateRange(args)
	if err != nil {
		return err
	}

	var entries, listErr = store.ListEntries(session.UserID, "")
	switch {
	case args.BoolFlag("favorites"):
		entries, listErr = store.ListFavorites(session.UserID)
	case from != "":
		entries, listErr = store.ListByDateRange(session.UserID, from, to)
	}
	if listErr != nil {
		return fmt.Errorf("load entries: %w", listErr)
	}

	opts := &export.Options{
		OutputDir:         args.FlagOr("output", cfg.Export.OutputDir),
		OpenAfterExport:   false,
		IncludeTimestamps: cfg.Export.IncludeTimestamps,
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}

	var exporter export.Exporter
	switch format := args.FlagOr("format", "txt"); format {
	case "txt", "text":
		exporter = export.NewTextExporter(opts)
	case "md", "markdown":
		exporter = export.NewMarkdownExporter(opts)
	case "pdf":
		exporter = export.NewPDFExporter(opts)
	default:
		return fmt.Errorf("unknown export format %q (want txt, md or pdf)", format)
	}

	journal := &export.Journal{Username: session.Username, Entries: entries}
	path, err := export.ExportToFile(journal, exporter, opts)
	if err != nil {
		return err
	}

	total, _, err := store.CountEntries(session.UserID)
	if err != nil {
		return fmt.Errorf("count entries: %w", err)
	}
	fmt.Printf("Exported %d of %d entries to %s\n", len(entries), total, path)
	return nil
}

// parseDateRange reads --from/--to. Both must be given together; validation
// of the values themselves happens in the store.
func parseDateRange(args *ArgParser) (from, to string, err error) {
	from, to = args.Flag("from"), args.Flag("to")
	if (from == "") != (to == "") {
		return "", "", errors.New("--from and --to must be used together")
	}
	if from != "" && args.BoolFlag("favorites") {
		return "", "", errors.New("--favorites cannot be combined with --from/--to")
	}
	return from, to, nil
}
