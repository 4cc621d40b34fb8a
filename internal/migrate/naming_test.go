// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package migrate

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/enex-migrate/internal/runlog"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Meeting Notes", "Meeting Notes"},
		{"A/B", "A-B"},
		{"A--B", "A-B"},
		{"A///B", "A-B"},
		{"plans/2024/q3", "plans-2024-q3"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SanitizeTitle(tt.in); got != tt.want {
			t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUniquePathNoCollision(t *testing.T) {
	dir := t.TempDir()
	log := runlog.New()
	var buf bytes.Buffer

	target := filepath.Join(dir, "note.pdf")
	if got := UniquePath(target, log, &buf); got != target {
		t.Errorf("UniquePath = %q, want untouched target", got)
	}
	if len(log.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %+v", log.Warnings())
	}
}

func TestUniquePathSameTargetTwice(t *testing.T) {
	dir := t.TempDir()
	log := runlog.New()
	var buf bytes.Buffer
	target := filepath.Join(dir, "note.pdf")

	first := UniquePath(target, log, &buf)
	if err := os.WriteFile(first, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	second := UniquePath(target, log, &buf)
	if err := os.WriteFile(second, []byte("b"), 0o644); err != nil {
		t.Fatal(err)
	}

	if first == second {
		t.Fatalf("both requests resolved to %q", first)
	}
	if second != filepath.Join(dir, "note_1.pdf") {
		t.Errorf("second = %q, want note_1.pdf", second)
	}

	warnings := log.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want exactly 1", len(warnings))
	}
	w := warnings[0]
	if w.Type != "filename-collision" || w.Original != "note.pdf" || w.Deduped != "note_1.pdf" {
		t.Errorf("warning = %+v", w)
	}
	if !strings.Contains(buf.String(), "warning:") {
		t.Errorf("no progress warning emitted: %s", buf.String())
	}
}

func TestUniquePathSkipsTakenSuffixes(t *testing.T) {
	dir := t.TempDir()
	log := runlog.New()
	var buf bytes.Buffer
	for _, name := range []string{"note.pdf", "note_1.pdf", "note_2.pdf"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got := UniquePath(filepath.Join(dir, "note.pdf"), log, &buf)
	if got != filepath.Join(dir, "note_3.pdf") {
		t.Errorf("UniquePath = %q, want note_3.pdf", got)
	}
}

func TestArtifactNames(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"multi-item with id", multiItemName("AB12CD", "Trip"), "AB12CD - Trip-MultiItem.pdf"},
		{"multi-item preserved", multiItemName("", "Trip"), "Trip-MultiItem.pdf"},
		{"single resource with id", singleResourceName("AB12CD", "Scan", ".jpg"), "AB12CD - Scan.jpg"},
		{"single resource preserved", singleResourceName("", "Scan", ".jpg"), "Scan.jpg"},
		{"text only with id", textOnlyName("AB12CD", "Journal"), "AB12CD-Journal.pdf"},
		{"text only preserved", textOnlyName("", "Journal"), "Journal.pdf"},
		{"side file with id", sideFileName("AB12CD", "Trip", "clip.mp4"), "AB12CD - Trip-clip.mp4"},
		{"side file preserved", sideFileName("", "Trip", "clip.mp4"), "Trip-clip.mp4"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}
