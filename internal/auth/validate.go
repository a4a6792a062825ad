// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"fmt"
	"strings"
)

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// Result is the outcome of a syntactic validation check. Expected failures
// are values, not errors: the first violated rule's message is carried in
// Message.
type Result struct {
	OK      bool
	Message string
}

func valid() Result {
	return Result{OK: true}
}

func invalid(message string) Result {
	return Result{OK: false, Message: message}
}

// =============================================================================
// POLICY CONSTANTS
// =============================================================================

const (
	// MinUsernameLength and MaxUsernameLength bound the accepted username size.
	MinUsernameLength = 3
	MaxUsernameLength = 50

	// MinPasswordLength is the minimum accepted password size.
	MinPasswordLength = 8

	// SpecialCharacters is the fixed set accepted as password special
	// characters.
	SpecialCharacters = `!@#$%^&*(),.?":{}|<>`
)

// =============================================================================
// USERNAME VALIDATION
// =============================================================================

// ValidateUsername enforces the username policy: non-empty, 3-50 characters,
// charset [A-Za-z0-9._-]. Rules are checked in order and the first violation
// is returned.
func ValidateUsername(username string) Result {
	if strings.TrimSpace(username) == "" {
		return invalid("Username cannot be empty")
	}
	if len(username) < MinUsernameLength {
		return invalid(fmt.Sprintf("Username must be at least %d characters", MinUsernameLength))
	}
	if len(username) > MaxUsernameLength {
		return invalid(fmt.Sprintf("Username must be at most %d characters", MaxUsernameLength))
	}
	for _, r := range username {
		if !isUsernameRune(r) {
			return invalid("Username may only contain letters, numbers, dots, hyphens and underscores")
		}
	}
	return valid()
}

func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '.' || r == '_' || r == '-':
		return true
	}
	return false
}

// =============================================================================
// PASSWORD STRENGTH VALIDATION
// =============================================================================

// ValidatePassword enforces the password strength policy. Checks run in a
// fixed order (length, uppercase, lowercase, digit, special character) and
// the first failing rule is returned, not all violations at once.
func ValidatePassword(password string) Result {
	if len(password) < MinPasswordLength {
		return invalid(fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(SpecialCharacters, r):
			hasSpecial = true
		}
	}

	if !hasUpper {
		return invalid("Password must contain at least one uppercase letter")
	}
	if !hasLower {
		return invalid("Password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return invalid("Password must contain at least one number")
	}
	if !hasSpecial {
		return invalid(fmt.Sprintf("Password must contain at least one special character (%s)", SpecialCharacters))
	}
	return valid()
}
