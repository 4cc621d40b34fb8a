// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble combines a note's text and attachments into one merged
// PDF, quarantining attachments that cannot be merged.
package assemble

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pdiddy/enex-migrate/internal/filetype"
	"github.com/pdiddy/enex-migrate/internal/ident"
	"github.com/pdiddy/enex-migrate/internal/pdfmerge"
	"github.com/pdiddy/enex-migrate/internal/render"
)

// scratchDirName holds intermediate per-part PDFs while assembling.
const scratchDirName = ".temp_pdfs"

// Assemble renders the note text (when non-empty) and each mergeable
// attachment into PDF parts, merges the parts into outPath in original
// order (text first), and returns the attachments that could not be merged.
//
// created is false when no part was mergeable; that is not an error — the
// caller must not treat outPath as meaningful output. A render or merge
// failure is an error and is distinct from "this type isn't supported".
// Ownership of the unsupported files transfers to the caller. Every
// intermediate PDF is removed before return, on all paths.
func Assemble(text string, resourcePaths []string, outPath string, w io.Writer) (created bool, unsupported []string, err error) {
	scratch, err := NewScratch(filepath.Dir(outPath), scratchDirName, w)
	if err != nil {
		return false, nil, err
	}
	defer scratch.Release()

	var queue []string

	if strings.TrimSpace(text) != "" {
		p := scratch.Path("text_" + ident.New() + ".pdf")
		if err := render.Text(text, p); err != nil {
			return false, unsupported, fmt.Errorf("rendering note text: %w", err)
		}
		queue = append(queue, p)
	}

	for i, rp := range resourcePaths {
		switch filetype.Classify(rp) {
		case filetype.CategoryPDF:
			// Already page-bearing, merge as-is.
			queue = append(queue, rp)
		case filetype.CategoryImage:
			p := scratch.Path(fmt.Sprintf("img_%d_%s.pdf", i, ident.New()))
			if err := render.Image(rp, p); err != nil {
				return false, unsupported, fmt.Errorf("rendering image %s: %w", filepath.Base(rp), err)
			}
			queue = append(queue, p)
		default:
			fmt.Fprintf(w, "warning: file type not supported in PDF merge: %s\n", filepath.Base(rp))
			unsupported = append(unsupported, rp)
		}
	}

	if len(queue) == 0 {
		return false, unsupported, nil
	}
	if err := pdfmerge.Merge(queue, outPath, w); err != nil {
		return false, unsupported, err
	}
	return true, unsupported, nil
}
