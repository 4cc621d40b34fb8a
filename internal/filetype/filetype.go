// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filetype categorizes attachment files by extension and resolves
// file extensions from MIME types. Classification is extension-only and
// case-insensitive; decoded bytes are never sniffed.
package filetype

import (
	"mime"
	"path/filepath"
	"sort"
	"strings"
)

// Category is the merge-eligibility class of a file.
type Category string

const (
	// CategoryImage marks raster formats that render to a PDF page.
	CategoryImage Category = "image"
	// CategoryPDF marks files merged directly without re-encoding.
	CategoryPDF Category = "pdf"
	// CategoryUnsupported marks known formats that cannot be merged.
	CategoryUnsupported Category = "unsupported"
	// CategoryUnknown marks extensions outside every known set. Treated
	// identically to CategoryUnsupported everywhere; kept distinct for
	// diagnostics only.
	CategoryUnknown Category = "unknown"
)

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tiff": true, ".webp": true,
}

var unsupportedExts = map[string]bool{
	// archives
	".zip": true, ".rar": true, ".7z": true, ".tar": true, ".gz": true, ".bz2": true,
	// video
	".mp4": true, ".avi": true, ".mov": true, ".mkv": true, ".webm": true, ".flv": true, ".wmv": true,
	// audio
	".mp3": true, ".wav": true, ".flac": true, ".ogg": true, ".m4a": true, ".aac": true,
	// html
	".html": true, ".htm": true, ".mhtml": true,
	// office documents
	".doc": true, ".docx": true, ".xls": true, ".xlsx": true, ".ppt": true, ".pptx": true,
}

// Classify maps a file path to its category based on extension alone.
func Classify(path string) Category {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case imageExts[ext]:
		return CategoryImage
	case ext == ".pdf":
		return CategoryPDF
	case unsupportedExts[ext]:
		return CategoryUnsupported
	default:
		return CategoryUnknown
	}
}

// Mergeable reports whether files of category c can join a merged PDF.
func (c Category) Mergeable() bool {
	return c == CategoryImage || c == CategoryPDF
}

// extByMime fixes the extension for MIME types the migration commonly sees,
// so that a given MIME type resolves identically on every run and platform.
var extByMime = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/bmp":       ".bmp",
	"image/tiff":      ".tiff",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
	"audio/mpeg":      ".mp3",
	"audio/wav":       ".wav",
	"video/mp4":       ".mp4",
	"video/quicktime": ".mov",
	"text/html":       ".html",
	"text/plain":      ".txt",
	"application/zip": ".zip",
}

// ExtensionForMime resolves a MIME string to a file extension including the
// leading dot, or "" when nothing is recognized. Types outside the fixed
// table fall back to the platform MIME database, picking the first extension
// in sorted order to stay deterministic.
func ExtensionForMime(mimeType string) string {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if ext, ok := extByMime[mt]; ok {
		return ext
	}

	exts, err := mime.ExtensionsByType(mt)
	if err != nil || len(exts) == 0 {
		return ""
	}
	sort.Strings(exts)
	return exts[0]
}
