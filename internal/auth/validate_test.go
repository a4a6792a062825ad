// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"strings"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
		contains string
	}{
		{"valid", "Valid123!", true, ""},
		{"too short", "short1!", false, "at least 8 characters"},
		{"no uppercase", "alllowercase1!", false, "uppercase"},
		{"no lowercase", "ALLUPPERCASE1!", false, "lowercase"},
		{"no digit", "NoDigitsHere!", false, "number"},
		{"no special", "NoSpecial123", false, "special character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidatePassword(tt.password)
			if result.OK != tt.ok {
				t.Fatalf("ValidatePassword(%q).OK = %v, want %v (message %q)",
					tt.password, result.OK, tt.ok, result.Message)
			}
			if !tt.ok && !strings.Contains(result.Message, tt.contains) {
				t.Errorf("message %q does not mention %q", result.Message, tt.contains)
			}
		})
	}
}

// Rules are checked in a fixed order; a password failing several rules
// reports only the first.
func TestValidatePasswordFirstFailureWins(t *testing.T) {
	result := ValidatePassword("zz")
	if result.OK {
		t.Fatal("expected failure")
	}
	if !strings.Contains(result.Message, "at least 8 characters") {
		t.Errorf("expected the length rule to fire first, got %q", result.Message)
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		ok       bool
	}{
		{"valid simple", "alice", true},
		{"valid punctuation", "valid_user.1", true},
		{"valid hyphen", "a-b-c", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"too short", "ab", false},
		{"too long", strings.Repeat("a", 51), false},
		{"bad characters", "bad user!", false},
		{"at max length", strings.Repeat("a", 50), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateUsername(tt.username)
			if result.OK != tt.ok {
				t.Errorf("ValidateUsername(%q).OK = %v, want %v (message %q)",
					tt.username, result.OK, tt.ok, result.Message)
			}
		})
	}
}
