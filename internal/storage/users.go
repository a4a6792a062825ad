// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jeranaias/dayrun-tui/internal/model"
)

// =============================================================================
// USER QUERIES
// =============================================================================

// UserExists reports whether a username is taken.
func (s *Store) UserExists(username string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM users WHERE username = ?", username).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return true, nil
}

// GetUserByUsername returns the credential record for a username, or
// (nil, nil) when no such user exists.
func (s *Store) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	var theme string
	err := s.db.QueryRow(
		"SELECT id, username, password_hash, salt, theme FROM users WHERE username = ?",
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Salt, &theme)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	user.Theme = model.ThemePreference(theme).OrDefault()
	return &user, nil
}

// =============================================================================
// USER MUTATIONS
// =============================================================================

// CreateUser inserts a new credential record. Returns false when the
// username is already taken.
func (s *Store) CreateUser(username, passwordHash, salt string) (bool, error) {
	_, err := s.db.Exec(
		"INSERT INTO users (username, password_hash, salt, theme) VALUES (?, ?, ?, ?)",
		username, passwordHash, salt, string(model.ThemeLight),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return true, nil
}

// UpdateUserPassword replaces the stored hash and salt for a user.
func (s *Store) UpdateUserPassword(id int64, hash, salt string) error {
	result, err := s.db.Exec(
		"UPDATE users SET password_hash = ?, salt = ? WHERE id = ?",
		hash, salt, id,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return requireRow(result)
}

// UpdateUsername renames a user. Returns false on a uniqueness violation.
func (s *Store) UpdateUsername(id int64, newUsername string) (bool, error) {
	result, err := s.db.Exec(
		"UPDATE users SET username = ? WHERE id = ?",
		newUsername, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	if err := requireRow(result); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateTheme persists the user's theme preference.
func (s *Store) UpdateTheme(id int64, theme model.ThemePreference) error {
	result, err := s.db.Exec(
		"UPDATE users SET theme = ? WHERE id = ?",
		string(theme.OrDefault()), id,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return requireRow(result)
}

// DeleteUser removes a user and all of their entries, entries first, in one
// transaction.
func (s *Store) DeleteUser(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entries WHERE user_id = ?", id); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	result, err := tx.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	if err := requireRow(result); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
