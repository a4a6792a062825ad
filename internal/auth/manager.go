// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/dayrun-tui/internal/model"
)

// =============================================================================
// USER STORE CONTRACT
// =============================================================================

// UserStore is the persistence collaborator consumed by the session manager.
// It owns the credential records; the manager holds no copy beyond the
// active session.
type UserStore interface {
	// UserExists reports whether a username is taken.
	UserExists(username string) (bool, error)

	// GetUserByUsername returns the credential record for a username, or
	// (nil, nil) when no such user exists.
	GetUserByUsername(username string) (*model.User, error)

	// CreateUser persists a new credential record. Returns false on a
	// username uniqueness violation.
	CreateUser(username, passwordHash, salt string) (bool, error)

	// UpdateUserPassword replaces the stored hash and salt for a user.
	UpdateUserPassword(id int64, hash, salt string) error

	// UpdateUsername renames a user. Returns false on a uniqueness violation.
	UpdateUsername(id int64, newUsername string) (bool, error)

	// UpdateTheme persists the user's theme preference.
	UpdateTheme(id int64, theme model.ThemePreference) error

	// DeleteUser removes the credential record and all of the user's journal
	// entries, entries first.
	DeleteUser(id int64) error
}

// =============================================================================
// USER-FACING MESSAGES
// =============================================================================

const (
	msgInvalidCredentials = "Incorrect username or password"
	msgInternalError      = "An internal error occurred. Please try again."
	msgNotLoggedIn        = "No user is logged in"
	msgPasswordMismatch   = "Passwords do not match"
	msgUsernameTaken      = "Username already exists"
)

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager orchestrates login, registration, logout, credential changes and
// account deletion. It is a two-state machine: logged out (session == nil)
// and logged in (session != nil); exactly one session exists per process.
type Manager struct {
	store   UserStore
	lockout *LockoutTracker
	logger  *slog.Logger

	// onLoginSuccess is invoked after a successful login, with the new
	// session. Used by the presentation layer to switch views.
	onLoginSuccess func(model.Session)

	// onLogout is invoked when a session ends. A returned error never
	// prevents the logout; it is logged and the session is cleared anyway.
	onLogout func() error

	session *model.Session
	mu      sync.Mutex
}

// ManagerOption is a functional option for configuring a Manager.
type ManagerOption func(*Manager)

// WithLockout sets the lockout tracker. A default tracker is created when
// none is given.
func WithLockout(t *LockoutTracker) ManagerOption {
	return func(m *Manager) {
		if t != nil {
			m.lockout = t
		}
	}
}

// WithLogger sets the structured logger for auth events.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithLoginCallback sets the callback invoked on successful login.
func WithLoginCallback(fn func(model.Session)) ManagerOption {
	return func(m *Manager) {
		m.onLoginSuccess = fn
	}
}

// WithLogoutCallback sets the callback invoked when a session ends.
func WithLogoutCallback(fn func() error) ManagerOption {
	return func(m *Manager) {
		m.onLogout = fn
	}
}

// NewManager creates a session manager bound to a user store. The lockout
// tracker is owned by the manager and constructed here unless one is
// injected; there is no package-level state.
func NewManager(store UserStore, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.lockout == nil {
		m.lockout = NewLockoutTracker()
	}
	return m
}

// ConfigureLockout re-applies lockout policy settings at runtime, used when
// the configuration file is reloaded.
func (m *Manager) ConfigureLockout(maxAttempts int, window time.Duration) {
	m.lockout.Configure(maxAttempts, window)
}

// =============================================================================
// SESSION STATE
// =============================================================================

// Session returns a copy of the active session, or nil when logged out.
func (m *Manager) Session() *model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil
	}
	copySession := *m.session
	return &copySession
}

// IsLoggedIn reports whether a session is active.
func (m *Manager) IsLoggedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session != nil
}

// =============================================================================
// LOGIN
// =============================================================================

// Login authenticates a user. The username is trimmed before lookup. Unknown
// usernames and wrong passwords share the same generic message; only wrong
// passwords disclose the attempts-remaining count, and lockouts disclose the
// remaining wait time.
func (m *Manager) Login(username, password string) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return failure(KindValidation, "Username and password are required")
	}

	if m.lockout.IsLocked(username) {
		remaining := m.lockout.Remaining(username)
		minutes := int(remaining.Minutes())
		seconds := int(remaining.Seconds()) % 60
		m.logger.Warn("login blocked by lockout", "username", username, "remaining", remaining)
		return failure(KindLockedOut,
			fmt.Sprintf("Too many failed attempts. Try again in %dm %ds", minutes, seconds))
	}

	user, err := m.store.GetUserByUsername(username)
	if err != nil {
		m.logger.Error("user lookup failed during login", "username", username, "error", err)
		return failure(KindInternal, msgInternalError)
	}
	if user == nil {
		m.lockout.RecordAttempt(username, false)
		m.logger.Warn("login attempt for unknown username", "username", username)
		return failure(KindInvalidCredentials, msgInvalidCredentials)
	}

	if !VerifyPassword(password, user.PasswordHash, user.Salt) {
		m.lockout.RecordAttempt(username, false)
		attemptsLeft := m.lockout.MaxAttempts() - m.lockout.FailureCount(username)
		if attemptsLeft < 0 {
			attemptsLeft = 0
		}
		m.logger.Warn("failed login attempt", "username", username, "attempts_left", attemptsLeft)
		return failure(KindInvalidCredentials,
			fmt.Sprintf("%s\nAttempts remaining: %d", msgInvalidCredentials, attemptsLeft))
	}

	m.lockout.RecordAttempt(username, true)

	session := model.Session{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		Username: user.Username,
		Theme:    user.Theme.OrDefault(),
	}
	m.session = &session

	m.logger.Info("login successful", "username", user.Username, "session_id", session.ID)
	if m.onLoginSuccess != nil {
		m.onLoginSuccess(session)
	}
	return success("")
}

// =============================================================================
// REGISTRATION
// =============================================================================

// Register creates a new credential record. Validation runs in a fixed
// order (username, confirmation, strength, uniqueness) and stops at the
// first failure with that step's message.
func (m *Manager) Register(username, password, confirmPassword string) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	if result := ValidateUsername(username); !result.OK {
		return failure(KindValidation, result.Message)
	}
	if password != confirmPassword {
		return failure(KindValidation, msgPasswordMismatch)
	}
	if result := ValidatePassword(password); !result.OK {
		return failure(KindValidation, result.Message)
	}

	username = strings.TrimSpace(username)
	taken, err := m.store.UserExists(username)
	if err != nil {
		m.logger.Error("uniqueness check failed during registration", "username", username, "error", err)
		return failure(KindInternal, msgInternalError)
	}
	if taken {
		return failure(KindConflict, msgUsernameTaken)
	}

	hash, salt, err := HashPassword(password)
	if err != nil {
		m.logger.Error("password hashing failed during registration", "error", err)
		return failure(KindInternal, msgInternalError)
	}

	created, err := m.store.CreateUser(username, hash, salt)
	if err != nil {
		m.logger.Error("user creation failed", "username", username, "error", err)
		return failure(KindInternal, msgInternalError)
	}
	if !created {
		// Raced with another registration for the same name.
		return failure(KindConflict, msgUsernameTaken)
	}

	m.logger.Info("new user registered", "username", username)
	return success("Registration successful. You can now log in.")
}

// =============================================================================
// LOGOUT
// =============================================================================

// Logout ends the active session. It always succeeds: a failing logout
// callback is logged and the session is force-cleared regardless.
func (m *Manager) Logout() Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logoutLocked()
}

func (m *Manager) logoutLocked() Outcome {
	if m.session != nil {
		m.logger.Info("logout", "username", m.session.Username, "session_id", m.session.ID)
	}
	m.session = nil

	if m.onLogout != nil {
		if err := m.onLogout(); err != nil {
			m.logger.Error("logout callback failed, session cleared anyway", "error", err)
		}
	}
	return success("")
}

// =============================================================================
// CREDENTIAL CHANGES
// =============================================================================

// ChangePassword replaces the current user's password. The old password must
// verify against the stored hash before the new one is accepted.
func (m *Manager) ChangePassword(oldPassword, newPassword, confirmPassword string) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return failure(KindValidation, msgNotLoggedIn)
	}

	user, err := m.store.GetUserByUsername(m.session.Username)
	if err != nil || user == nil {
		m.logger.Error("user lookup failed during password change",
			"username", m.session.Username, "error", err)
		return failure(KindInternal, msgInternalError)
	}

	if !VerifyPassword(oldPassword, user.PasswordHash, user.Salt) {
		return failure(KindInvalidCredentials, "Current password is incorrect")
	}
	if newPassword != confirmPassword {
		return failure(KindValidation, msgPasswordMismatch)
	}
	if result := ValidatePassword(newPassword); !result.OK {
		return failure(KindValidation, result.Message)
	}

	hash, salt, err := HashPassword(newPassword)
	if err != nil {
		m.logger.Error("password hashing failed during password change", "error", err)
		return failure(KindInternal, msgInternalError)
	}
	if err := m.store.UpdateUserPassword(user.ID, hash, salt); err != nil {
		m.logger.Error("password update failed", "username", user.Username, "error", err)
		return failure(KindInternal, msgInternalError)
	}

	m.logger.Info("password changed", "username", user.Username)
	return success("Password changed successfully")
}

// ChangeUsername renames the current user and updates the in-memory session
// on success.
func (m *Manager) ChangeUsername(newUsername string) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return failure(KindValidation, msgNotLoggedIn)
	}

	if result := ValidateUsername(newUsername); !result.OK {
		return failure(KindValidation, result.Message)
	}

	newUsername = strings.TrimSpace(newUsername)
	taken, err := m.store.UserExists(newUsername)
	if err != nil {
		m.logger.Error("uniqueness check failed during rename", "error", err)
		return failure(KindInternal, msgInternalError)
	}
	if taken {
		return failure(KindConflict, "Username is already in use")
	}

	renamed, err := m.store.UpdateUsername(m.session.UserID, newUsername)
	if err != nil {
		m.logger.Error("username update failed", "error", err)
		return failure(KindInternal, msgInternalError)
	}
	if !renamed {
		return failure(KindConflict, "Username is already in use")
	}

	m.logger.Info("username changed", "old", m.session.Username, "new", newUsername)
	m.session.Username = newUsername
	return success("Username changed successfully")
}

// SaveTheme persists the current user's theme preference and applies it to
// the session.
func (m *Manager) SaveTheme(theme model.ThemePreference) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return failure(KindValidation, msgNotLoggedIn)
	}
	if !theme.Valid() {
		return failure(KindValidation, "Unknown theme")
	}

	if err := m.store.UpdateTheme(m.session.UserID, theme); err != nil {
		m.logger.Error("theme update failed", "username", m.session.Username, "error", err)
		return failure(KindInternal, msgInternalError)
	}
	m.session.Theme = theme
	return success("")
}

// =============================================================================
// ACCOUNT DELETION
// =============================================================================

// DeleteAccount removes the current user after re-verifying the password.
// The store deletes the user's journal entries before the credential record;
// the session ends afterwards.
func (m *Manager) DeleteAccount(password string) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return failure(KindValidation, msgNotLoggedIn)
	}

	user, err := m.store.GetUserByUsername(m.session.Username)
	if err != nil || user == nil {
		m.logger.Error("user lookup failed during account deletion",
			"username", m.session.Username, "error", err)
		return failure(KindInternal, msgInternalError)
	}

	if !VerifyPassword(password, user.PasswordHash, user.Salt) {
		return failure(KindInvalidCredentials, "Password is incorrect")
	}

	if err := m.store.DeleteUser(user.ID); err != nil {
		m.logger.Error("account deletion failed", "username", user.Username, "error", err)
		return failure(KindInternal, msgInternalError)
	}

	m.logger.Info("account deleted", "username", user.Username)
	m.logoutLocked()
	return success("Account deleted successfully")
}

// =============================================================================
// HELPERS
// =============================================================================

// LockoutWindowFor converts config seconds to the tracker's duration,
// falling back to the default when the value is not positive.
func LockoutWindowFor(seconds int) time.Duration {
	if seconds <= 0 {
		return DefaultLockoutWindow
	}
	return time.Duration(seconds) * time.Second
}
