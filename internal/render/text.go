// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render converts single artifacts — plain text and raster images —
// into Letter-sized PDF documents.
package render

import (
	"fmt"
	"strings"

	"codeberg.org/go-pdf/fpdf"
)

// Page geometry in points (1 inch = 72 pt), matching US Letter.
const (
	pageWidth  = 612.0
	pageHeight = 792.0

	// textMargin is the page margin for text documents.
	textMargin = 72.0

	// fontSize and lineHeight give 11 pt text with fixed leading.
	fontSize   = 11.0
	lineHeight = 14.0

	// paraGap is the trailing space after each paragraph.
	paraGap = 12.0

	// blankGap is the vertical gap substituted for a blank line
	// (0.2 inch), avoiding zero-content paragraph artifacts.
	blankGap = 0.2 * 72.0
)

// Text renders plain text into a PDF at outPath. Each non-blank line becomes
// one left-aligned paragraph; each blank line becomes a fixed vertical gap.
// Overflow flows onto successive pages automatically.
func Text(text, outPath string) error {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetMargins(textMargin, textMargin, textMargin)
	doc.SetAutoPageBreak(true, textMargin)
	doc.AddPage()
	doc.SetFont("Helvetica", "", fontSize)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			doc.Ln(blankGap)
			continue
		}
		doc.MultiCell(0, lineHeight, tr(line), "", "L", false)
		doc.Ln(paraGap)
	}

	if err := doc.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("writing text PDF: %w", err)
	}
	return nil
}
