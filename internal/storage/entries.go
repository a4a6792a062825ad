// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/dayrun-tui/internal/model"
)

// =============================================================================
// ENTRY CREATION
// =============================================================================

// CreateEntry inserts a journal entry for a user and returns its id. When
// date is non-empty it must be "2006-01-02" and overrides the creation
// timestamp (the current clock time is kept for the time of day).
func (s *Store) CreateEntry(userID int64, title, content, date string) (int64, error) {
	now := s.now()
	createdAt := now
	if date != "" {
		day, err := time.ParseInLocation(dateLayout, date, now.Location())
		if err != nil {
			return 0, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDate, date)
		}
		createdAt = time.Date(day.Year(), day.Month(), day.Day(),
			now.Hour(), now.Minute(), now.Second(), 0, now.Location())
	}

	result, err := s.db.Exec(
		`INSERT INTO entries (user_id, title, content, created_at, updated_at, favorite)
		 VALUES (?, ?, ?, ?, ?, 0)`,
		userID, title, content,
		createdAt.Format(timeLayout), now.Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return id, nil
}

// =============================================================================
// ENTRY QUERIES
// =============================================================================

const entryColumns = "id, user_id, title, content, created_at, updated_at, favorite"

// GetEntry returns a single entry owned by the user.
func (s *Store) GetEntry(userID, entryID int64) (*model.Entry, error) {
	row := s.db.QueryRow(
		"SELECT "+entryColumns+" FROM entries WHERE id = ? AND user_id = ?",
		entryID, userID,
	)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return entry, nil
}

// ListEntries returns the user's entries, newest first. A non-empty search
// term filters on title and content, case-insensitively.
func (s *Store) ListEntries(userID int64, search string) ([]model.Entry, error) {
	query := "SELECT " + entryColumns + " FROM entries WHERE user_id = ?"
	args := []any{userID}

	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		query += ` AND (title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\')`
		args = append(args, pattern, pattern)
	}
	query += " ORDER BY created_at DESC, id DESC"

	return s.queryEntries(query, args...)
}

// ListFavorites returns the user's favorite entries, newest first.
func (s *Store) ListFavorites(userID int64) ([]model.Entry, error) {
	return s.queryEntries(
		"SELECT "+entryColumns+" FROM entries WHERE user_id = ? AND favorite = 1 "+
			"ORDER BY created_at DESC, id DESC",
		userID,
	)
}

// ListByDateRange returns entries created within [from, to], both
// "2006-01-02", newest first.
func (s *Store) ListByDateRange(userID int64, from, to string) ([]model.Entry, error) {
	fromDay, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, from)
	}
	toDay, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, to)
	}
	if toDay.Before(fromDay) {
		return nil, fmt.Errorf("%w: range end %q precedes start %q", ErrInvalidDate, to, from)
	}

	return s.queryEntries(
		"SELECT "+entryColumns+" FROM entries "+
			"WHERE user_id = ? AND created_at >= ? AND created_at <= ? "+
			"ORDER BY created_at DESC, id DESC",
		userID, from+" 00:00:00", to+" 23:59:59",
	)
}

// CountEntries returns the user's total and favorite entry counts.
func (s *Store) CountEntries(userID int64) (total, favorites int, err error) {
	err = s.db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(favorite), 0) FROM entries WHERE user_id = ?",
		userID,
	).Scan(&total, &favorites)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return total, favorites, nil
}

// =============================================================================
// ENTRY MUTATIONS
// =============================================================================

// UpdateEntry replaces an entry's title and content and refreshes the
// updated timestamp. The entry must belong to the user. When date is
// non-empty it must be "2006-01-02" and moves the entry to that day; the
// original time of day is kept so same-day ordering stays stable.
func (s *Store) UpdateEntry(userID, entryID int64, title, content, date string) error {
	query := "UPDATE entries SET title = ?, content = ?, updated_at = ? WHERE id = ? AND user_id = ?"
	args := []any{title, content, s.now().Format(timeLayout), entryID, userID}

	if date != "" {
		if _, err := time.ParseInLocation(dateLayout, date, time.Local); err != nil {
			return fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDate, date)
		}
		// substr(created_at, 11) is the " HH:MM:SS" tail of the stored
		// timestamp.
		query = `UPDATE entries SET title = ?, content = ?, updated_at = ?,
			 created_at = ? || substr(created_at, 11)
			 WHERE id = ? AND user_id = ?`
		args = []any{title, content, s.now().Format(timeLayout), date, entryID, userID}
	}

	result, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return requireRow(result)
}

// SetFavorite sets or clears an entry's favorite flag.
func (s *Store) SetFavorite(userID, entryID int64, favorite bool) error {
	value := 0
	if favorite {
		value = 1
	}
	result, err := s.db.Exec(
		"UPDATE entries SET favorite = ? WHERE id = ? AND user_id = ?",
		value, entryID, userID,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return requireRow(result)
}

// DeleteEntry removes an entry owned by the user.
func (s *Store) DeleteEntry(userID, entryID int64) error {
	result, err := s.db.Exec(
		"DELETE FROM entries WHERE id = ? AND user_id = ?",
		entryID, userID,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return requireRow(result)
}

// =============================================================================
// ROW SCANNING
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*model.Entry, error) {
	var entry model.Entry
	var createdAt, updatedAt string
	var favorite int
	err := row.Scan(&entry.ID, &entry.UserID, &entry.Title, &entry.Content,
		&createdAt, &updatedAt, &favorite)
	if err != nil {
		return nil, err
	}

	entry.CreatedAt, err = time.ParseInLocation(timeLayout, createdAt, time.Local)
	if err != nil {
		return nil, fmt.Errorf("corrupt created_at %q: %v", createdAt, err)
	}
	entry.UpdatedAt, err = time.ParseInLocation(timeLayout, updatedAt, time.Local)
	if err != nil {
		return nil, fmt.Errorf("corrupt updated_at %q: %v", updatedAt, err)
	}
	entry.Favorite = favorite != 0
	return &entry, nil
}

func (s *Store) queryEntries(query string, args ...any) ([]model.Entry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return entries, nil
}
