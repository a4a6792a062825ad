// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"sync"
	"time"
)

// =============================================================================
// LOCKOUT CONSTANTS
// =============================================================================

const (
	// DefaultMaxAttempts is the number of consecutive failed logins before a
	// username is locked out.
	DefaultMaxAttempts = 3

	// DefaultLockoutWindow is how long a lockout lasts, measured from the
	// last failed attempt.
	DefaultLockoutWindow = 300 * time.Second
)

// =============================================================================
// ATTEMPT RECORD
// =============================================================================

// attemptRecord tracks failed logins for a single username.
type attemptRecord struct {
	// count is the number of consecutive failed attempts.
	count int

	// lastAttempt is the timestamp of the most recent failure.
	lastAttempt time.Time
}

// =============================================================================
// LOCKOUT TRACKER
// =============================================================================

// LockoutTracker counts failed login attempts per username and blocks
// further logins once the limit is reached, until the lockout window has
// elapsed since the last failure.
//
// State is purely in-memory and per-process: it does not survive restarts
// and is not shared with other processes. That is an accepted limitation of
// the single-user desktop deployment, not something the tracker papers over
// with persistence.
type LockoutTracker struct {
	// attempts maps usernames to their failure records.
	attempts map[string]*attemptRecord

	// maxAttempts is the failure count that triggers a lockout.
	maxAttempts int

	// window is how long the lockout lasts after the last failure.
	window time.Duration

	// now is the clock, replaceable in tests.
	now func() time.Time

	mu sync.Mutex
}

// LockoutOption is a functional option for configuring a LockoutTracker.
type LockoutOption func(*LockoutTracker)

// WithMaxAttempts sets the failure count that triggers a lockout.
func WithMaxAttempts(max int) LockoutOption {
	return func(t *LockoutTracker) {
		if max > 0 {
			t.maxAttempts = max
		}
	}
}

// WithLockoutWindow sets the lockout duration.
func WithLockoutWindow(d time.Duration) LockoutOption {
	return func(t *LockoutTracker) {
		if d > 0 {
			t.window = d
		}
	}
}

// WithClock replaces the tracker's clock. Used by tests to step time
// deterministically.
func WithClock(now func() time.Time) LockoutOption {
	return func(t *LockoutTracker) {
		if now != nil {
			t.now = now
		}
	}
}

// NewLockoutTracker creates a tracker with the given options.
func NewLockoutTracker(opts ...LockoutOption) *LockoutTracker {
	t := &LockoutTracker{
		attempts:    make(map[string]*attemptRecord),
		maxAttempts: DefaultMaxAttempts,
		window:      DefaultLockoutWindow,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// =============================================================================
// CORE OPERATIONS
// =============================================================================

// IsLocked reports whether the username is currently locked out. When the
// lockout window has elapsed since the last failure, the record is purged as
// a side effect and the username is reported unlocked, so counting restarts
// from zero.
func (t *LockoutTracker) IsLocked(username string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	record, exists := t.attempts[username]
	if !exists {
		return false
	}
	if record.count < t.maxAttempts {
		return false
	}
	if t.now().Sub(record.lastAttempt) >= t.window {
		delete(t.attempts, username)
		return false
	}
	return true
}

// RecordAttempt records the result of a login attempt. A success purges any
// existing record for the username; a failure creates the record if absent,
// increments the count and stamps the current time.
func (t *LockoutTracker) RecordAttempt(username string, success bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if success {
		delete(t.attempts, username)
		return
	}

	record, exists := t.attempts[username]
	if !exists {
		record = &attemptRecord{}
		t.attempts[username] = record
	}
	record.count++
	record.lastAttempt = t.now()
}

// FailureCount returns the current consecutive failure count for a username.
func (t *LockoutTracker) FailureCount(username string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	record, exists := t.attempts[username]
	if !exists {
		return 0
	}
	return record.count
}

// Remaining returns how long the username stays locked out. Zero when the
// username is not locked.
func (t *LockoutTracker) Remaining(username string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	record, exists := t.attempts[username]
	if !exists || record.count < t.maxAttempts {
		return 0
	}
	remaining := t.window - t.now().Sub(record.lastAttempt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// MaxAttempts returns the configured failure limit.
func (t *LockoutTracker) MaxAttempts() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.maxAttempts
}

// Configure replaces the failure limit and lockout window. Existing attempt
// records are kept and judged against the new policy. Non-positive values
// leave the corresponding setting unchanged.
func (t *LockoutTracker) Configure(maxAttempts int, window time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if maxAttempts > 0 {
		t.maxAttempts = maxAttempts
	}
	if window > 0 {
		t.window = window
	}
}
