// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders a user's journal entries to text, Markdown and PDF
// files. Exporters are stateless; file naming and output placement are
// handled by ExportToFile.
package export
