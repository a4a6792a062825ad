// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists users and journal entries in a local SQLite
// database. It is the only package that talks to the database; callers go
// through Store's typed methods, never raw SQL.
package storage
