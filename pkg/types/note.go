// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Note is one unit of migration parsed from an export file. It is built once
// per parsed record, consumed immediately by the router, and never mutated.
type Note struct {
	// Title is the note title. A note without a title is skipped outright.
	Title string

	// Text is the plain-text content extracted by flattening the note's
	// markup. Empty when the note has no content or the markup is unparsable.
	Text string

	// Resources lists the note's attachments in source order.
	Resources []Resource
}

// Resource is one embedded attachment carried inline in the export file.
type Resource struct {
	// MimeType declares the attachment type (e.g. "image/jpeg").
	// May be empty, in which case the resource is unusable.
	MimeType string

	// Data is the base64 text payload as it appears in the export.
	// May be empty, in which case the resource is unusable.
	Data string
}

// Usable reports whether the resource carries both a MIME type and a payload.
func (r Resource) Usable() bool {
	return r.MimeType != "" && r.Data != ""
}
