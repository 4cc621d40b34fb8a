// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Scratch is a transient directory scoped to one note's processing. Files
// placed in it through Path are removed by Release; the directory itself is
// removed only when it ends up empty, so files renamed out of it survive.
//
// Cleanup is best effort by documented policy: a failed removal produces a
// warning on the progress writer and never masks the primary operation's
// outcome.
type Scratch struct {
	dir     string
	created []string
	w       io.Writer
}

// NewScratch creates (or reuses) the scratch directory name under parent.
func NewScratch(parent, name string, w io.Writer) (*Scratch, error) {
	dir := filepath.Join(parent, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	return &Scratch{dir: dir, w: w}, nil
}

// Dir returns the scratch directory path.
func (s *Scratch) Dir() string {
	return s.dir
}

// Path reserves a file name inside the scratch directory and registers it
// for removal on Release.
func (s *Scratch) Path(name string) string {
	p := filepath.Join(s.dir, name)
	s.created = append(s.created, p)
	return p
}

// Release removes every registered file still present and then the
// directory if and only if it is empty. Safe to call on every exit path.
func (s *Scratch) Release() {
	for _, p := range s.created {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(s.w, "warning: could not remove scratch file %s: %v\n", p, err)
		}
	}
	s.created = nil

	entries, err := os.ReadDir(s.dir)
	if err != nil || len(entries) > 0 {
		return
	}
	if err := os.Remove(s.dir); err != nil {
		fmt.Fprintf(s.w, "warning: could not remove scratch directory %s: %v\n", s.dir, err)
	}
}
