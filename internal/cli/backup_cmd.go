// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/jeranaias/dayrun-tui/internal/backup"
	"github.com/jeranaias/dayrun-tui/internal/config"
	"github.com/jeranaias/dayrun-tui/internal/storage"
)

// HandleBackup creates an encrypted snapshot of the journal database.
func HandleBackup(cfg *config.Config, args *ArgParser) error {
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("no database at %s", dbPath)
	}

	outputDir := args.Flag("output")
	if outputDir == "" {
		outputDir, err = cfg.BackupDir()
		if err != nil {
			return err
		}
	}

	passphrase, err := promptPassword("Snapshot passphrase: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm passphrase: ")
	if err != nil {
		return err
	}
	if passphrase != confirm {
		return errors.New("passphrases do not match")
	}

	// Compact the database first so the snapshot does not carry free pages.
	if store, err := storage.Open(dbPath); err == nil {
		if err := store.Vacuum(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: vacuum failed: %v\n", err)
		}
		store.Close()
	}

	path, err := backup.Snapshot(dbPath, outputDir, passphrase)
	if err != nil {
		return err
	}
	fmt.Printf("Snapshot written to %s\n", path)
	return nil
}

// HandleRestore restores the journal database from an encrypted snapshot.
func HandleRestore(cfg *config.Config, args *ArgParser) error {
	snapshotPath := args.Flag("snapshot")
	if snapshotPath == "" {
		return errors.New("--snapshot is required")
	}
	if _, err := os.Stat(snapshotPath); err != nil {
		return fmt.Errorf("no snapshot at %s", snapshotPath)
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(dbPath); err == nil {
		answer, err := promptLine(fmt.Sprintf("Overwrite existing database at %s? (y/n): ", dbPath))
		if err != nil {
			return err
		}
		if answer != "y" && answer != "Y" {
			return errors.New("restore cancelled")
		}
	}

	passphrase, err := promptPassword("Snapshot passphrase: ")
	if err != nil {
		return err
	}

	if err := backup.Restore(snapshotPath, dbPath, passphrase); err != nil {
		return err
	}
	fmt.Printf("Database restored to %s\n", dbPath)
	return nil
}
