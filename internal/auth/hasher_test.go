// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, salt, err := HashPassword("Sup3r!secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if len(salt) != SaltBytes*2 {
		t.Errorf("salt hex length = %d, want %d", len(salt), SaltBytes*2)
	}
	if len(hash) != sha256.Size*2 {
		t.Errorf("hash hex length = %d, want %d", len(hash), sha256.Size*2)
	}

	if !VerifyPassword("Sup3r!secret", hash, salt) {
		t.Error("correct password did not verify")
	}
	if VerifyPassword("Sup3r!secrej", hash, salt) {
		t.Error("wrong password verified")
	}
}

func TestHashPasswordWithSaltDeterministic(t *testing.T) {
	salt := "00112233445566778899aabbccddeeff"
	a := HashPasswordWithSalt("password", salt)
	b := HashPasswordWithSalt("password", salt)
	if a != b {
		t.Error("same password and salt produced different hashes")
	}
	if a == HashPasswordWithSalt("Password", salt) {
		t.Error("different passwords produced the same hash")
	}
}

// TestHashChainConstruction pins the digest construction: the UTF-8 bytes of
// password+salt hashed through 100000 chained rounds of SHA-256. Stored
// hashes from older databases depend on this exact chain.
func TestHashChainConstruction(t *testing.T) {
	const password, salt = "abc", "def"

	sum := []byte(password + salt)
	for i := 0; i < HashIterations; i++ {
		digest := sha256.Sum256(sum)
		sum = digest[:]
	}
	want := hex.EncodeToString(sum)

	if got := HashPasswordWithSalt(password, salt); got != want {
		t.Errorf("HashPasswordWithSalt = %s, want %s", got, want)
	}
}

func TestGenerateSaltDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 16; i++ {
		salt, err := GenerateSalt()
		if err != nil {
			t.Fatalf("GenerateSalt: %v", err)
		}
		if seen[salt] {
			t.Fatalf("duplicate salt generated: %s", salt)
		}
		seen[salt] = true
	}
}

func TestVerifyPasswordMissingMaterial(t *testing.T) {
	if VerifyPassword("anything", "", "salt") {
		t.Error("empty stored hash verified")
	}
	if VerifyPassword("anything", "deadbeef", "") {
		t.Error("empty salt verified")
	}
}
