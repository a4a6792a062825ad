// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete dayrun configuration.
type Config struct {
	// Storage settings
	Storage StorageConfig `toml:"storage"`

	// Security settings
	Security SecurityConfig `toml:"security"`

	// Export settings
	Export ExportConfig `toml:"export"`

	// UI settings
	UI UIConfig `toml:"ui"`
}

// StorageConfig contains database and backup locations.
type StorageConfig struct {
	// DatabasePath is the SQLite database location (empty = ~/.dayrun/journal.db)
	DatabasePath string `toml:"database_path"`
	// BackupDir is where encrypted snapshots are written (empty = ~/.dayrun/backups)
	BackupDir string `toml:"backup_dir"`
}

// SecurityConfig contains login throttling configuration.
type SecurityConfig struct {
	// MaxLoginAttempts is the number of consecutive failed logins before lockout.
	// Default: 3
	MaxLoginAttempts int `toml:"max_login_attempts"`
	// LockoutWindowSecs is how long a username stays locked out, in seconds.
	// Default: 300 (5 minutes)
	LockoutWindowSecs int `toml:"lockout_window_secs"`
}

// ExportConfig contains export behavior configuration.
type ExportConfig struct {
	// OutputDir is where exports land (empty = current working directory)
	OutputDir string `toml:"output_dir"`
	// OpenAfterExport opens exports in the default application
	OpenAfterExport bool `toml:"open_after_export"`
	// IncludeTimestamps includes created/updated timestamps per entry
	IncludeTimestamps bool `toml:"include_timestamps"`
}

// UIConfig contains terminal UI configuration.
type UIConfig struct {
	// Theme is the fallback theme before login: "light" or "dark".
	// After login the user's stored preference wins.
	Theme string `toml:"theme"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{},
		Security: SecurityConfig{
			MaxLoginAttempts:  3,
			LockoutWindowSecs: 300,
		},
		Export: ExportConfig{
			OpenAfterExport:   true,
			IncludeTimestamps: true,
		},
		UI: UIConfig{
			Theme: "light",
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the dayrun data directory (~/.dayrun).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".dayrun"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the data directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// DatabasePath resolves the effective database location.
func (c *Config) DatabasePath() (string, error) {
	if c.Storage.DatabasePath != "" {
		return c.Storage.DatabasePath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "journal.db"), nil
}

// BackupDir resolves the effective backup directory.
func (c *Config) BackupDir() (string, error) {
	if c.Storage.BackupDir != "" {
		return c.Storage.BackupDir, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "backups"), nil
}

// ensureSecurePermissions checks and fixes permissions on the config file.
// SECURITY: Config files should be 0600 (owner read/write only).
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load loads configuration from ~/.dayrun/config.toml, falling back to
// defaults when the file is absent. Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file into cfg.
// SECURITY: Checks and fixes file permissions on load.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadFromPath loads and validates configuration from an explicit path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to ~/.dayrun/config.toml.
// SECURITY: Creates the file with 0600 permissions (owner read/write only).
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to an explicit path.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# dayrun configuration file")
	fmt.Fprintln(file, "# Generated by dayrun - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies DAYRUN_* environment variables over the loaded
// configuration. Malformed numeric values are ignored.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("DAYRUN_DATABASE_PATH"); v != "" {
		c.Storage.DatabasePath = v
	}
	if v := os.Getenv("DAYRUN_BACKUP_DIR"); v != "" {
		c.Storage.BackupDir = v
	}
	if v := os.Getenv("DAYRUN_MAX_LOGIN_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Security.MaxLoginAttempts = n
		}
	}
	if v := os.Getenv("DAYRUN_LOCKOUT_WINDOW_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Security.LockoutWindowSecs = n
		}
	}
	if v := os.Getenv("DAYRUN_EXPORT_DIR"); v != "" {
		c.Export.OutputDir = v
	}
	if v := os.Getenv("DAYRUN_THEME"); v != "" {
		c.UI.Theme = strings.ToLower(v)
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a single invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration and returns all violations at once.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Security.MaxLoginAttempts < 1 || c.Security.MaxLoginAttempts > 20 {
		errs = append(errs, ValidationError{
			Field:   "security.max_login_attempts",
			Message: fmt.Sprintf("must be between 1 and 20, got %d", c.Security.MaxLoginAttempts),
		})
	}
	if c.Security.LockoutWindowSecs < 30 || c.Security.LockoutWindowSecs > 86400 {
		errs = append(errs, ValidationError{
			Field:   "security.lockout_window_secs",
			Message: fmt.Sprintf("must be between 30 and 86400, got %d", c.Security.LockoutWindowSecs),
		})
	}
	if c.UI.Theme != "light" && c.UI.Theme != "dark" {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("must be %q or %q, got %q", "light", "dark", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
