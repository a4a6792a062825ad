// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backup creates and restores encrypted snapshots of the journal
// database. Snapshots use AES-256-GCM with a key derived from a passphrase
// via PBKDF2-SHA-256; the file layout is salt | nonce | ciphertext.
package backup

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/pbkdf2"

	"github.com/jeranaias/dayrun-tui/internal/util"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// NonceSize is the size of the nonce/IV for AES-GCM (12 bytes / 96 bits)
const NonceSize = 12

// KeySize is the size of the AES-256 key (32 bytes / 256 bits)
const KeySize = 32

// SaltSize is the size of the salt for key derivation (32 bytes)
const SaltSize = 32

// PBKDF2Iterations is the number of iterations for PBKDF2 key derivation.
// OWASP recommends 600,000+ for PBKDF2-SHA-256.
const PBKDF2Iterations = 600000

// snapshotExt is the file extension for encrypted snapshots.
const snapshotExt = ".dayrun-backup"

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrInvalidSnapshot indicates the snapshot file is truncated or malformed
	ErrInvalidSnapshot = errors.New("invalid snapshot format")
	// ErrDecryptionFailed indicates decryption failed (wrong passphrase or tampered data)
	ErrDecryptionFailed = errors.New("decryption failed: wrong passphrase or corrupted snapshot")
	// ErrEmptyPassphrase indicates no passphrase was supplied
	ErrEmptyPassphrase = errors.New("passphrase cannot be empty")
)

// =============================================================================
// HELPERS
// =============================================================================

// ZeroBytes zeros sensitive byte slices.
// SECURITY: Zero key material to prevent memory disclosure via crash dumps.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func deriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, PBKDF2Iterations, KeySize, sha256.New)
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot encrypts the database file at dbPath into a new snapshot file
// under outputDir and returns the snapshot path. Snapshot names embed a
// timestamp and a random id so concurrent backups never collide.
func Snapshot(dbPath, outputDir, passphrase string) (string, error) {
	if passphrase == "" {
		return "", ErrEmptyPassphrase
	}

	plaintext, err := os.ReadFile(dbPath)
	if err != nil {
		return "", fmt.Errorf("read database: %w", err)
	}

	sealed, err := seal(plaintext, passphrase)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outputDir, 0700); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	name := fmt.Sprintf("dayrun_%s_%s%s",
		time.Now().Format("20060102_150405"),
		uuid.NewString()[:8],
		snapshotExt,
	)
	path := filepath.Join(outputDir, name)
	if err := util.AtomicWriteFile(path, sealed, 0600); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// Restore decrypts the snapshot at snapshotPath and writes the database to
// dbPath, replacing any existing file atomically.
func Restore(snapshotPath, dbPath, passphrase string) error {
	if passphrase == "" {
		return ErrEmptyPassphrase
	}

	sealed, err := os.ReadFile(snapshotPath)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	plaintext, err := open(sealed, passphrase)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}
	if err := util.AtomicWriteFile(dbPath, plaintext, 0600); err != nil {
		return fmt.Errorf("write database: %w", err)
	}
	return nil
}

// =============================================================================
// SEALING
// =============================================================================

func seal(plaintext []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	key := deriveKey(passphrase, salt)
	defer ZeroBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	// Layout: salt | nonce | ciphertext(with tag)
	out := make([]byte, 0, SaltSize+NonceSize+len(plaintext)+gcm.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, plaintext, nil)
	return out, nil
}

func open(sealed []byte, passphrase string) ([]byte, error) {
	if len(sealed) < SaltSize+NonceSize+1 {
		return nil, ErrInvalidSnapshot
	}

	salt := sealed[:SaltSize]
	nonce := sealed[SaltSize : SaltSize+NonceSize]
	ciphertext := sealed[SaltSize+NonceSize:]

	key := deriveKey(passphrase, salt)
	defer ZeroBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
