// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutputType tags a run-log record with the kind of artifact it describes.
type OutputType string

const (
	OutputMultiItemPDF    OutputType = "multi-item-pdf"
	OutputUnsupportedFile OutputType = "unsupported-separate-file"
	OutputSingleResource  OutputType = "single-resource"
	OutputTextOnlyPDF     OutputType = "text-only-pdf"
)

// Record is one run-log entry: the outcome of a single note-level operation.
// Every handler invocation appends exactly one Record per artifact it
// attempts, success or failure.
type Record struct {
	// File is the source export file name (base name, not full path).
	File string `json:"file"`

	// Note is the sanitized note title. Empty for file-level parse errors.
	Note string `json:"note,omitempty"`

	// NoteID is the identifier prefixed to the artifact filename.
	// Empty when filename preservation is active.
	NoteID string `json:"note_id"`

	// Success reports whether the operation produced its artifact.
	Success bool `json:"success"`

	// FilePath is the final artifact path. Set only on success.
	FilePath string `json:"file_path,omitempty"`

	// Notebook is the notebook this note belongs to.
	Notebook string `json:"notebook"`

	// Type tags the artifact kind. Empty for file-level parse errors.
	Type OutputType `json:"type,omitempty"`

	// Warning carries a non-fatal note attached to a successful record
	// (e.g. an attachment saved separately because it could not be merged).
	Warning string `json:"warning,omitempty"`

	// Error is the human-readable failure message. Set only on failure.
	Error string `json:"error,omitempty"`
}

// Warning records a filename-collision substitution made by the collision
// guard. Warnings live under the run log's reserved "warnings" key.
type Warning struct {
	// Type identifies the warning kind (currently "filename-collision").
	Type string `json:"type"`

	// Original is the base name the handler first asked for.
	Original string `json:"original"`

	// Deduped is the base name actually used.
	Deduped string `json:"deduped"`

	// Message is the human-readable description.
	Message string `json:"message"`
}
