// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runlog accumulates per-notebook outcome records and persists them
// as the durable JSON run log. The log is an explicit append-only sink
// passed by handle into every handler; it is loaded (or initialized empty)
// once at run start and rewritten exactly once at run end.
package runlog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pdiddy/enex-migrate/pkg/types"
)

// warningsKey is the reserved top-level key for collision warnings.
const warningsKey = "warnings"

// Log maps notebook names to ordered record sequences, plus the run's
// collision warnings. Appends preserve per-notebook order; the zero-value
// map state is established by New or Load.
type Log struct {
	notebooks map[string][]types.Record
	order     []string
	warnings  []types.Warning
}

// New returns an empty log.
func New() *Log {
	return &Log{notebooks: make(map[string][]types.Record)}
}

// Load reads a previously saved run log from path. An absent or unparsable
// file yields an empty log rather than an error; the log is best-effort
// continuity across runs, not required state.
func Load(path string) *Log {
	l := New()

	data, err := os.ReadFile(path)
	if err != nil {
		return l
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return l
	}

	for key, msg := range raw {
		if key == warningsKey {
			var warnings []types.Warning
			if json.Unmarshal(msg, &warnings) == nil {
				l.warnings = warnings
			}
			continue
		}
		var records []types.Record
		if json.Unmarshal(msg, &records) == nil {
			l.notebooks[key] = records
			l.order = append(l.order, key)
		}
	}
	return l
}

// StartNotebook ensures an entry exists for the notebook, resetting any
// records carried over from a previous run of the same notebook.
func (l *Log) StartNotebook(name string) {
	if _, ok := l.notebooks[name]; !ok {
		l.order = append(l.order, name)
	}
	l.notebooks[name] = []types.Record{}
}

// Append adds one outcome record to the notebook's sequence.
func (l *Log) Append(notebook string, rec types.Record) {
	if _, ok := l.notebooks[notebook]; !ok {
		l.order = append(l.order, notebook)
	}
	l.notebooks[notebook] = append(l.notebooks[notebook], rec)
}

// Warn records a filename-collision substitution.
func (l *Log) Warn(w types.Warning) {
	l.warnings = append(l.warnings, w)
}

// Records returns the notebook's record sequence in append order.
func (l *Log) Records(notebook string) []types.Record {
	return l.notebooks[notebook]
}

// Notebooks returns the notebook names in first-seen order.
func (l *Log) Notebooks() []string {
	return append([]string(nil), l.order...)
}

// Warnings returns the run's collision warnings in append order.
func (l *Log) Warnings() []types.Warning {
	return append([]types.Warning(nil), l.warnings...)
}

// Save rewrites the full run log at path as indented JSON.
func (l *Log) Save(path string) error {
	out := make(map[string]any, len(l.notebooks)+1)
	for name, records := range l.notebooks {
		out[name] = records
	}
	if len(l.warnings) > 0 {
		out[warningsKey] = l.warnings
	}

	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling run log: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run log: %w", err)
	}
	return nil
}
