// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth implements the credential handling core of dayrun:
// salted iterative password hashing, username and password policy
// validation, a time-windowed login lockout tracker, and the session
// manager that orchestrates them against the user store.
//
// The package never talks to the UI. Every operation returns a structured
// Outcome (a kind plus a user-facing message); the presentation layer alone
// decides how to render it.
package auth
