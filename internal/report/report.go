// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report answers structured queries over a completed run log by
// loading it into an in-memory SQLite database.
package report

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/enex-migrate/internal/runlog"
	"github.com/pdiddy/enex-migrate/pkg/types"
)

const schema = `
CREATE TABLE records (
	notebook  TEXT NOT NULL,
	file      TEXT NOT NULL,
	note      TEXT,
	note_id   TEXT,
	success   INTEGER NOT NULL,
	file_path TEXT,
	type      TEXT,
	warning   TEXT,
	error     TEXT,
	seq       INTEGER NOT NULL
);
CREATE INDEX idx_records_notebook ON records(notebook);
CREATE INDEX idx_records_type ON records(type);
`

// Store holds the queryable form of one run log.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open creates an in-memory store and loads the run log at cfg.LogFile.
func Open(cfg types.ReportConfig) (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// The in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.load(runlog.Load(cfg.LogFile)); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// load inserts every record of the run log, preserving per-notebook order
// via a sequence column.
func (s *Store) load(l *runlog.Log) error {
	stmt, err := s.db.Prepare(`INSERT INTO records
		(notebook, file, note, note_id, success, file_path, type, warning, error, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	seq := 0
	for _, notebook := range l.Notebooks() {
		for _, r := range l.Records(notebook) {
			if _, err := stmt.Exec(r.Notebook, r.File, r.Note, r.NoteID,
				r.Success, r.FilePath, string(r.Type), r.Warning, r.Error, seq); err != nil {
				return fmt.Errorf("inserting record: %w", err)
			}
			seq++
		}
	}
	return nil
}

// Filter narrows a record query. Zero values match everything.
type Filter struct {
	Notebook   string
	Type       string
	FailedOnly bool
	Limit      int
}

// Query returns records matching the filter, in original log order, capped
// at Filter.Limit (or the store's default).
func (s *Store) Query(f Filter) ([]types.Record, error) {
	var (
		where []string
		args  []any
	)
	if f.Notebook != "" {
		where = append(where, "notebook = ?")
		args = append(args, f.Notebook)
	}
	if f.Type != "" {
		where = append(where, "type = ?")
		args = append(args, f.Type)
	}
	if f.FailedOnly {
		where = append(where, "success = 0")
	}

	q := "SELECT notebook, file, note, note_id, success, file_path, type, warning, error FROM records"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY seq LIMIT ?"

	limit := f.Limit
	if limit <= 0 {
		limit = s.maxResults
	}
	args = append(args, limit)

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		var (
			r types.Record
			t string
		)
		if err := rows.Scan(&r.Notebook, &r.File, &r.Note, &r.NoteID,
			&r.Success, &r.FilePath, &t, &r.Warning, &r.Error); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		r.Type = types.OutputType(t)
		records = append(records, r)
	}
	return records, rows.Err()
}

// Totals holds aggregate counts over the whole run log.
type Totals struct {
	Records   int
	Succeeded int
	Failed    int
	ByType    map[string]int
}

// Totals aggregates record counts overall and per output type.
func (s *Store) Totals() (Totals, error) {
	t := Totals{ByType: make(map[string]int)}

	row := s.db.QueryRow(`SELECT COUNT(*),
		COALESCE(SUM(success), 0),
		COALESCE(SUM(1 - success), 0) FROM records`)
	if err := row.Scan(&t.Records, &t.Succeeded, &t.Failed); err != nil {
		return t, fmt.Errorf("counting records: %w", err)
	}

	rows, err := s.db.Query(`SELECT type, COUNT(*) FROM records WHERE type != '' GROUP BY type`)
	if err != nil {
		return t, fmt.Errorf("counting by type: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			typ string
			n   int
		)
		if err := rows.Scan(&typ, &n); err != nil {
			return t, fmt.Errorf("scanning type count: %w", err)
		}
		t.ByType[typ] = n
	}
	return t, rows.Err()
}
