// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for dayrun.
//
// Configuration lives in ~/.dayrun/config.toml with sensible defaults,
// DAYRUN_* environment variable overrides, and validation. An optional
// watcher reloads the file on change.
package config
