// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// =============================================================================
// PDF EXPORTER
// =============================================================================

// PDFExporter exports journals to PDF. Content is rendered with the core
// Helvetica font, so codepoints outside latin-1 are transliterated.
type PDFExporter struct {
	options *Options
}

// NewPDFExporter creates a new PDF exporter.
func NewPDFExporter(opts *Options) *PDFExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &PDFExporter{options: opts}
}

// Export renders the journal as an A4 portrait PDF, one section per entry.
func (e *PDFExporter) Export(journal *Journal) ([]byte, error) {
	if journal == nil || len(journal.Entries) == 0 {
		return nil, ErrNoEntries
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	// Document header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Journal of %s", journal.Username)),
		"", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Exported %s · %d entries",
		formatTimestamp(time.Now()), len(journal.Entries))),
		"", 1, "C", false, 0, "")
	pdf.Ln(6)

	for i, entry := range journal.Entries {
		if i > 0 {
			pdf.Ln(4)
			e.drawRule(pdf)
			pdf.Ln(4)
		}

		title := entry.Title
		if entry.Favorite {
			title += " *"
		}
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, tr(title), "", "L", false)

		if e.options.IncludeTimestamps {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.SetTextColor(110, 110, 110)
			line := fmt.Sprintf("Created %s", formatTimestamp(entry.CreatedAt))
			if !entry.UpdatedAt.Equal(entry.CreatedAt) {
				line += fmt.Sprintf(", updated %s", formatTimestamp(entry.UpdatedAt))
			}
			pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
		}

		pdf.Ln(2)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 5.5, tr(entry.Content), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) drawRule(pdf *fpdf.Fpdf) {
	pdf.SetDrawColor(200, 200, 200)
	left, _, right, _ := pdf.GetMargins()
	width, _ := pdf.GetPageSize()
	y := pdf.GetY()
	pdf.Line(left, y, width-right, y)
}

// FileExtension returns ".pdf".
func (e *PDFExporter) FileExtension() string {
	return ".pdf"
}

// MimeType returns the PDF MIME type.
func (e *PDFExporter) MimeType() string {
	return "application/pdf"
}
