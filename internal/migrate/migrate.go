// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package migrate routes parsed notes to output handlers: merged multi-item
// PDFs, single passthrough files, or text-rendered PDFs. It owns output-path
// naming, collision avoidance, and structured result logging.
package migrate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/enex-migrate/internal/enex"
	"github.com/pdiddy/enex-migrate/internal/render"
	"github.com/pdiddy/enex-migrate/internal/runlog"
	"github.com/pdiddy/enex-migrate/pkg/types"
)

// renderText is the text-only renderer. Tests override it to force failures.
var renderText = render.Text

// handlerEnv carries the per-file context shared by every note handler.
type handlerEnv struct {
	fileName string // source export file base name
	notebook string
	noteDir  string
	preserve bool
	log      *runlog.Log
	w        io.Writer
}

// BatchResult holds the outcome of a migration run.
type BatchResult struct {
	Notebooks int
	Notes     int
	Artifacts int
	Failed    int
	Skipped   int
}

// HasFailures reports whether any operation failed during the run.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Run migrates every export file in cfg.InputDir into cfg.OutputDir,
// appending outcomes to log and printing per-item status to w. Files are
// processed sequentially; a failure inside one file never aborts the others.
// Only a missing input directory or an unusable output root is fatal.
func Run(cfg types.MigrationConfig, log *runlog.Log, w io.Writer) (BatchResult, error) {
	var result BatchResult

	files, err := listExportFiles(cfg.InputDir)
	if err != nil {
		return result, err
	}
	if len(files) == 0 {
		fmt.Fprintln(w, "No export files found.")
		return result, nil
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return result, fmt.Errorf("creating output directory: %w", err)
	}

	for _, f := range files {
		ProcessFile(f, cfg, log, w, &result)
	}

	fmt.Fprintf(w, "\nBatch summary: %d notebook(s), %d note(s), %d artifact(s) created, %d failed, %d skipped\n",
		result.Notebooks, result.Notes, result.Artifacts, result.Failed, result.Skipped)
	return result, nil
}

// ProcessFile migrates one export file. The notebook name is the file name
// with its extension stripped; output artifacts land flat in the notebook's
// directory. A parse failure abandons this file only, recorded as a
// file-level log entry.
func ProcessFile(path string, cfg types.MigrationConfig, log *runlog.Log, w io.Writer, result *BatchResult) {
	fileName := filepath.Base(path)
	notebook := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	log.StartNotebook(notebook)
	result.Notebooks++

	notes, err := enex.ParseFile(path)
	if err != nil {
		log.Append(notebook, types.Record{File: fileName, Notebook: notebook, Error: err.Error()})
		fmt.Fprintf(w, "error: parsing %s: %v\n", fileName, err)
		result.Failed++
		return
	}

	noteDir := filepath.Join(cfg.OutputDir, notebook)
	if err := os.MkdirAll(noteDir, 0o755); err != nil {
		log.Append(notebook, types.Record{File: fileName, Notebook: notebook, Error: err.Error()})
		fmt.Fprintf(w, "error: creating %s: %v\n", noteDir, err)
		result.Failed++
		return
	}

	env := handlerEnv{
		fileName: fileName,
		notebook: notebook,
		noteDir:  noteDir,
		preserve: cfg.PreserveFilenames,
		log:      log,
		w:        w,
	}

	for _, note := range notes {
		result.Notes++
		nr := processNote(env, note)
		result.Artifacts += nr.artifacts
		result.Failed += nr.failed
		if nr.skipped {
			result.Skipped++
		}
	}
}

// listExportFiles returns the .enex files in dir (case-insensitive match),
// sorted by name for a deterministic processing order.
func listExportFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("input directory %s does not exist", dir)
		}
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".enex") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
