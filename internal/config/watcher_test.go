// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startTestWatcher(t *testing.T, path string) chan *Config {
	t.Helper()

	reloads := make(chan *Config, 4)
	watcher, err := NewWatcher(path, func(cfg *Config) { reloads <- cfg }, nil,
		WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := watcher.Watch(); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	t.Cleanup(func() { watcher.Close() })
	return reloads
}

func awaitReload(t *testing.T, reloads chan *Config) *Config {
	t.Helper()
	select {
	case cfg := <-reloads:
		return cfg
	case <-time.After(5 * time.Second):
		t.Fatal("no reload observed")
		return nil
	}
}

func TestWatcherReloadsOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	reloads := startTestWatcher(t, path)

	cfg.Security.MaxLoginAttempts = 5
	cfg.Export.OpenAfterExport = false
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	reloaded := awaitReload(t, reloads)
	if reloaded.Security.MaxLoginAttempts != 5 {
		t.Errorf("MaxLoginAttempts = %d, want 5", reloaded.Security.MaxLoginAttempts)
	}
	if reloaded.Export.OpenAfterExport {
		t.Error("OpenAfterExport still true after reload")
	}
}

func TestWatcherKeepsPreviousConfigOnBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveTOML(Default(), path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	reloads := startTestWatcher(t, path)

	if err := os.WriteFile(path, []byte("this is not toml [["), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case cfg := <-reloads:
		t.Errorf("invalid file produced a reload: %+v", cfg)
	case <-time.After(500 * time.Millisecond):
	}

	// A valid save afterwards still comes through.
	good := Default()
	good.UI.Theme = "dark"
	if err := SaveTOML(good, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}
	if reloaded := awaitReload(t, reloads); reloaded.UI.Theme != "dark" {
		t.Errorf("theme = %q, want dark", reloaded.UI.Theme)
	}
}
