// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfmerge concatenates page-bearing PDF files into one document.
package pdfmerge

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// conf returns a pdfcpu configuration with relaxed validation, so that the
// slightly out-of-spec PDFs common in note attachments still merge.
func conf() *model.Configuration {
	c := model.NewDefaultConfiguration()
	c.ValidationMode = model.ValidationRelaxed
	return c
}

// Merge appends every page of each input PDF, in list order, to a single
// output document at outPath. An input that fails validation is skipped with
// a diagnostic on w and processing continues — a partial merge is preferred
// over a total failure. Merge fails only when no input is usable or the
// final composition cannot be written.
func Merge(inPaths []string, outPath string, w io.Writer) error {
	c := conf()

	usable := make([]string, 0, len(inPaths))
	for _, p := range inPaths {
		if err := api.ValidateFile(p, c); err != nil {
			fmt.Fprintf(w, "warning: skipping unreadable PDF %s: %v\n", filepath.Base(p), err)
			continue
		}
		usable = append(usable, p)
	}
	if len(usable) == 0 {
		return fmt.Errorf("no readable PDF inputs")
	}

	if err := api.MergeCreateFile(usable, outPath, false, c); err != nil {
		return fmt.Errorf("merging PDFs: %w", err)
	}
	return nil
}

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	return api.PageCountFile(path)
}
