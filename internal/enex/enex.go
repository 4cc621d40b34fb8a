// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enex parses Evernote export (ENEX) files into note records.
// An ENEX file is an XML document whose root holds zero or more <note>
// elements; each note has a <title>, an optional <content> child carrying
// escaped markup, and zero or more <resource> children with <mime> and
// base64 <data> text.
package enex

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/enex-migrate/pkg/types"
)

// ENEX document structure. Only the elements the migration consumes are
// mapped; everything else (created/updated timestamps, recognition data,
// resource attributes) is ignored.
type exportFile struct {
	Notes []xmlNote `xml:"note"`
}

type xmlNote struct {
	Title     string        `xml:"title"`
	Content   string        `xml:"content"`
	Resources []xmlResource `xml:"resource"`
}

type xmlResource struct {
	Mime string `xml:"mime"`
	Data string `xml:"data"`
}

// ParseFile reads an export file and returns its notes in document order.
// A malformed file yields an error; the caller abandons that file only.
func ParseFile(path string) ([]types.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export file: %w", err)
	}
	return Parse(data)
}

// Parse decodes raw ENEX bytes into notes. Note content markup is flattened
// to plain text; unparsable content leaves the note's text empty while the
// note's resources remain usable.
func Parse(data []byte) ([]types.Note, error) {
	var doc exportFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing export XML: %w", err)
	}

	notes := make([]types.Note, 0, len(doc.Notes))
	for _, n := range doc.Notes {
		note := types.Note{
			Title: strings.TrimSpace(n.Title),
			Text:  FlattenContent(n.Content),
		}
		for _, r := range n.Resources {
			note.Resources = append(note.Resources, types.Resource{
				MimeType: strings.TrimSpace(r.Mime),
				Data:     r.Data,
			})
		}
		notes = append(notes, note)
	}
	return notes, nil
}

// FlattenContent extracts the plain text of a note's content markup by
// collecting every text node and joining them with newlines. The markup is
// itself an escaped XML document (ENML). Unparsable or empty markup yields
// the empty string.
func FlattenContent(markup string) string {
	markup = strings.TrimSpace(markup)
	if markup == "" {
		return ""
	}

	dec := xml.NewDecoder(strings.NewReader(markup))
	// ENML declares a DOCTYPE; no entity resolution beyond the defaults.
	dec.Strict = false

	var parts []string
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		if cd, ok := tok.(xml.CharData); ok {
			if text := strings.TrimRight(string(cd), " \t"); strings.TrimSpace(text) != "" {
				parts = append(parts, strings.TrimSpace(text))
			}
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// DecodeResource decodes a resource's base64 payload. Export files wrap the
// payload across lines, so whitespace is stripped before decoding.
func DecodeResource(r types.Resource) ([]byte, error) {
	compact := strings.Map(func(c rune) rune {
		switch c {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return c
	}, r.Data)

	data, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return nil, fmt.Errorf("decoding resource data: %w", err)
	}
	return data, nil
}
