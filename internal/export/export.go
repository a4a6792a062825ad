// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/jeranaias/dayrun-tui/internal/model"
	"github.com/jeranaias/dayrun-tui/internal/util"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNoEntries indicates an export was requested for an empty journal.
	ErrNoEntries = errors.New("no entries to export")
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Journal is the unit handed to exporters: the owner's name plus the entries
// to render, already filtered and ordered by the caller.
type Journal struct {
	Username string
	Entries  []model.Entry
}

// Exporter defines the interface for journal exporters.
type Exporter interface {
	// Export renders the journal in the target format.
	Export(journal *Journal) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".txt", ".pdf").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where files will be saved.
	// Default: current working directory
	OutputDir string

	// OpenAfterExport opens the file in the default application.
	OpenAfterExport bool

	// IncludeTimestamps includes created/updated timestamps per entry.
	IncludeTimestamps bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:         ".",
		OpenAfterExport:   true,
		IncludeTimestamps: true,
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile renders the journal with the given exporter and writes it to
// a timestamped file under opts.OutputDir. Returns the output file path.
func ExportToFile(journal *Journal, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if journal == nil || len(journal.Entries) == 0 {
		return "", ErrNoEntries
	}

	content, err := exporter.Export(journal)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("journal_%s_%s%s",
		sanitizeFilename(journal.Username),
		timestamp,
		exporter.FileExtension(),
	)

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	outputPath := filepath.Join(opts.OutputDir, filename)
	if err := util.AtomicWriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	if opts.OpenAfterExport {
		if err := openFile(outputPath); err != nil {
			// Non-fatal, the file was still created. Stdout belongs to the
			// TUI, so the failure goes to the log only.
			slog.Warn("could not open exported file", "path", outputPath, "error", err)
		}
	}

	return outputPath, nil
}

// ExportText exports to plain text format.
func ExportText(journal *Journal, opts *Options) (string, error) {
	return ExportToFile(journal, NewTextExporter(opts), opts)
}

// ExportMarkdown exports to Markdown format.
func ExportMarkdown(journal *Journal, opts *Options) (string, error) {
	return ExportToFile(journal, NewMarkdownExporter(opts), opts)
}

// ExportPDF exports to PDF format.
func ExportPDF(journal *Journal, opts *Options) (string, error) {
	return ExportToFile(journal, NewPDFExporter(opts), opts)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename removes or replaces characters that are invalid in filenames.
func sanitizeFilename(s string) string {
	maxLen := 50
	runes := []rune(s)
	if len(runes) > maxLen {
		s = string(runes[:maxLen])
	}

	replacer := map[rune]rune{
		'/':  '-',
		'\\': '-',
		':':  '-',
		'*':  '-',
		'?':  '-',
		'"':  '-',
		'<':  '-',
		'>':  '-',
		'|':  '-',
		' ':  '_',
		'\t': '_',
		'\n': '_',
		'\r': '_',
	}

	result := []rune{}
	for _, r := range s {
		if replacement, found := replacer[r]; found {
			result = append(result, replacement)
		} else if r < 32 || r == 127 {
			result = append(result, '-')
		} else {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return "journal"
	}
	return string(result)
}

// openFile opens a file in the default application for the OS.
func openFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

// formatTimestamp renders a timestamp for export bodies.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}
