// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log/slog"
)

// =============================================================================
// HASHING CONSTANTS
// =============================================================================

const (
	// HashIterations is the number of digest rounds applied to a password.
	// Kept high to make brute forcing a stolen database expensive.
	HashIterations = 100000

	// SaltBytes is the entropy of a freshly generated salt, before hex
	// encoding.
	SaltBytes = 32
)

// =============================================================================
// PASSWORD HASHING
// =============================================================================

// GenerateSalt returns a fresh random salt, hex encoded.
func GenerateSalt() (string, error) {
	buf := make([]byte, SaltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword derives a salted iterated hash for a password using a fresh
// random salt. Returns the hex digest and the hex salt.
func HashPassword(password string) (hash, salt string, err error) {
	salt, err = GenerateSalt()
	if err != nil {
		return "", "", err
	}
	return HashPasswordWithSalt(password, salt), salt, nil
}

// HashPasswordWithSalt derives the digest for a known (password, salt) pair.
// The password and salt are concatenated and the result is run through
// SHA-256 for HashIterations rounds, each round digesting the previous
// round's output. Deterministic for a given pair; stored databases depend on
// this exact chain, so it must not change.
func HashPasswordWithSalt(password, salt string) string {
	sum := []byte(password + salt)
	for i := 0; i < HashIterations; i++ {
		digest := sha256.Sum256(sum)
		sum = digest[:]
	}
	return hex.EncodeToString(sum)
}

// VerifyPassword reports whether password matches the stored hash+salt pair.
// The comparison is constant time. Malformed input never panics; internal
// failures are logged and reported as a non-match.
func VerifyPassword(password, storedHash, salt string) bool {
	if storedHash == "" || salt == "" {
		slog.Warn("password verification against empty credential record")
		return false
	}
	computed := HashPasswordWithSalt(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
