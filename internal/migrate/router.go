// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/enex-migrate/internal/assemble"
	"github.com/pdiddy/enex-migrate/internal/enex"
	"github.com/pdiddy/enex-migrate/internal/filetype"
	"github.com/pdiddy/enex-migrate/internal/ident"
	"github.com/pdiddy/enex-migrate/pkg/types"
)

// decodeScratchDir holds decoded attachment bytes while one note is
// processed. Files are renamed out of it or removed before the note's
// processing returns.
const decodeScratchDir = ".temp_resources"

// noteResult tallies one note's processing for the batch summary.
type noteResult struct {
	artifacts int
	failed    int
	skipped   bool
}

// processNote routes one parsed note to its handler.
//
// Routing, in order: no title → skip. More than one resource, or non-empty
// text with at least one resource → multi-item. Exactly one resource →
// single resource (only the first is used). Non-empty text → text-only.
// Otherwise the note is empty: no output and no log record.
func processNote(env handlerEnv, note types.Note) noteResult {
	if note.Title == "" {
		return noteResult{skipped: true}
	}

	id := ""
	if !env.preserve {
		id = ident.New()
	}
	title := SanitizeTitle(note.Title)
	text := strings.TrimSpace(note.Text)

	switch {
	case len(note.Resources) > 1, text != "" && len(note.Resources) >= 1:
		return handleMultiItem(env, id, title, text, note.Resources)
	case len(note.Resources) == 1:
		return handleSingleResource(env, id, title, note.Resources[0])
	case text != "":
		return handleTextOnly(env, id, title, text)
	default:
		return noteResult{skipped: true}
	}
}

// handleMultiItem materializes the note's attachments into a scratch
// directory, assembles the mergeable parts into one PDF, and relocates the
// unsupported parts as separate artifacts. The scratch directory is gone
// before this function returns, on every path.
func handleMultiItem(env handlerEnv, id, title, text string, resources []types.Resource) noteResult {
	var res noteResult

	scratch, err := assemble.NewScratch(env.noteDir, decodeScratchDir, env.w)
	if err != nil {
		env.log.Append(env.notebook, failureRecord(env, id, title, fmt.Sprintf("PDF creation failed: %v", err)))
		res.failed++
		return res
	}
	defer scratch.Release()

	// Decode each usable resource to a transient file. A resource missing
	// mime or data, or with an invalid payload, is skipped at this level
	// without escalating.
	var paths []string
	for idx, r := range resources {
		if !r.Usable() {
			continue
		}
		data, err := enex.DecodeResource(r)
		if err != nil {
			fmt.Fprintf(env.w, "warning: skipping resource %d of %q: %v\n", idx, title, err)
			continue
		}
		p := scratch.Path(fmt.Sprintf("resource_%d%s", idx, filetype.ExtensionForMime(r.MimeType)))
		if err := os.WriteFile(p, data, 0o644); err != nil {
			fmt.Fprintf(env.w, "warning: skipping resource %d of %q: %v\n", idx, title, err)
			continue
		}
		paths = append(paths, p)
	}

	outPath := UniquePath(filepath.Join(env.noteDir, multiItemName(id, title)), env.log, env.w)

	created, unsupported, err := assemble.Assemble(text, paths, outPath, env.w)
	if err != nil {
		env.log.Append(env.notebook, failureRecord(env, id, title, fmt.Sprintf("PDF creation failed: %v", err)))
		fmt.Fprintf(env.w, "error: creating multi-item PDF for %q: %v\n", title, err)
		res.failed++
		return res
	}

	if created {
		env.log.Append(env.notebook, successRecord(env, id, title, outPath, types.OutputMultiItemPDF, ""))
		fmt.Fprintf(env.w, "created multi-item PDF: %s\n", filepath.Base(outPath))
		res.artifacts++
	}

	if len(unsupported) > 0 {
		fmt.Fprintf(env.w, "note %q has %d unsupported file(s), saving separately\n", title, len(unsupported))
	}
	for _, u := range unsupported {
		sep := UniquePath(filepath.Join(env.noteDir, sideFileName(id, title, filepath.Base(u))), env.log, env.w)
		if err := os.Rename(u, sep); err != nil {
			env.log.Append(env.notebook, failureRecord(env, id, title, fmt.Sprintf("relocating unsupported file: %v", err)))
			res.failed++
			continue
		}
		env.log.Append(env.notebook, successRecord(env, id, title, sep, types.OutputUnsupportedFile,
			"File type not supported in PDF merge - saved separately"))
		fmt.Fprintf(env.w, "  saved separately: %s\n", filepath.Base(sep))
		res.artifacts++
	}

	// Nothing mergeable and nothing to relocate: record the outcome so the
	// note still leaves a trace in the log.
	if !created && len(unsupported) == 0 {
		env.log.Append(env.notebook, failureRecord(env, id, title, "no mergeable content in note"))
		res.failed++
	}
	return res
}

// handleSingleResource saves the note's only attachment in its original
// format, without PDF conversion.
func handleSingleResource(env handlerEnv, id, title string, r types.Resource) noteResult {
	if !r.Usable() {
		env.log.Append(env.notebook, failureRecord(env, id, title, "missing mime type or resource data"))
		return noteResult{failed: 1}
	}

	ext := filetype.ExtensionForMime(r.MimeType)
	outPath := UniquePath(filepath.Join(env.noteDir, singleResourceName(id, title, ext)), env.log, env.w)

	data, err := enex.DecodeResource(r)
	if err == nil {
		err = os.WriteFile(outPath, data, 0o644)
	}
	if err != nil {
		env.log.Append(env.notebook, failureRecord(env, id, title, fmt.Sprintf("base64 decoding or file write failed: %v", err)))
		return noteResult{failed: 1}
	}

	env.log.Append(env.notebook, successRecord(env, id, title, outPath, types.OutputSingleResource, ""))
	fmt.Fprintf(env.w, "saved single resource: %s\n", filepath.Base(outPath))
	return noteResult{artifacts: 1}
}

// handleTextOnly converts a text-only note into a PDF.
func handleTextOnly(env handlerEnv, id, title, text string) noteResult {
	outPath := UniquePath(filepath.Join(env.noteDir, textOnlyName(id, title)), env.log, env.w)

	if err := renderText(text, outPath); err != nil {
		env.log.Append(env.notebook, failureRecord(env, id, title, fmt.Sprintf("PDF creation failed: %v", err)))
		fmt.Fprintf(env.w, "error: creating text-only PDF for %q: %v\n", title, err)
		return noteResult{failed: 1}
	}

	env.log.Append(env.notebook, successRecord(env, id, title, outPath, types.OutputTextOnlyPDF, ""))
	fmt.Fprintf(env.w, "created text-only PDF: %s\n", filepath.Base(outPath))
	return noteResult{artifacts: 1}
}

func successRecord(env handlerEnv, id, title, path string, t types.OutputType, warning string) types.Record {
	return types.Record{
		File:     env.fileName,
		Note:     title,
		NoteID:   id,
		Success:  true,
		FilePath: path,
		Notebook: env.notebook,
		Type:     t,
		Warning:  warning,
	}
}

func failureRecord(env handlerEnv, id, title, msg string) types.Record {
	return types.Record{
		File:     env.fileName,
		Note:     title,
		NoteID:   id,
		Notebook: env.notebook,
		Error:    msg,
	}
}
