// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backup

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSnapshotAndRestore(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "journal.db")
	original := []byte("pretend this is a sqlite database")
	if err := os.WriteFile(dbPath, original, 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	snapshotPath, err := Snapshot(dbPath, filepath.Join(dir, "backups"), "correct horse")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if !strings.HasSuffix(snapshotPath, snapshotExt) {
		t.Errorf("snapshot name %q lacks extension", snapshotPath)
	}

	sealed, err := os.ReadFile(snapshotPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if bytes.Contains(sealed, original) {
		t.Error("snapshot contains plaintext database")
	}

	restorePath := filepath.Join(dir, "restored.db")
	if err := Restore(snapshotPath, restorePath, "correct horse"); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	restored, _ := os.ReadFile(restorePath)
	if !bytes.Equal(restored, original) {
		t.Error("restored database differs from original")
	}
}

func TestRestoreWrongPassphrase(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "journal.db")
	os.WriteFile(dbPath, []byte("data"), 0600)

	snapshotPath, err := Snapshot(dbPath, dir, "right")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	err = Restore(snapshotPath, filepath.Join(dir, "out.db"), "wrong")
	if !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("Restore with wrong passphrase = %v, want ErrDecryptionFailed", err)
	}
}

func TestRestoreTamperedSnapshot(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "journal.db")
	os.WriteFile(dbPath, []byte("data"), 0600)

	snapshotPath, err := Snapshot(dbPath, dir, "pass")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	sealed, _ := os.ReadFile(snapshotPath)
	sealed[len(sealed)-1] ^= 0xFF
	os.WriteFile(snapshotPath, sealed, 0600)

	err = Restore(snapshotPath, filepath.Join(dir, "out.db"), "pass")
	if !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("Restore of tampered snapshot = %v, want ErrDecryptionFailed", err)
	}
}

func TestRestoreTruncatedSnapshot(t *testing.T) {
	dir := t.TempDir()
	short := filepath.Join(dir, "short"+snapshotExt)
	os.WriteFile(short, []byte("too small"), 0600)

	err := Restore(short, filepath.Join(dir, "out.db"), "pass")
	if !errors.Is(err, ErrInvalidSnapshot) {
		t.Errorf("Restore of truncated snapshot = %v, want ErrInvalidSnapshot", err)
	}
}

func TestEmptyPassphraseRejected(t *testing.T) {
	if _, err := Snapshot("x", "y", ""); !errors.Is(err, ErrEmptyPassphrase) {
		t.Errorf("Snapshot = %v, want ErrEmptyPassphrase", err)
	}
	if err := Restore("x", "y", ""); !errors.Is(err, ErrEmptyPassphrase) {
		t.Errorf("Restore = %v, want ErrEmptyPassphrase", err)
	}
}
