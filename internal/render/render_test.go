// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/enex-migrate/internal/pdfmerge"
)

func TestText(t *testing.T) {
	out := filepath.Join(t.TempDir(), "note.pdf")
	if err := Text("First paragraph\n\nSecond paragraph", out); err != nil {
		t.Fatalf("Text: %v", err)
	}

	pages, err := pdfmerge.PageCount(out)
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if pages != 1 {
		t.Errorf("pages = %d, want 1", pages)
	}
}

func TestTextPaginates(t *testing.T) {
	out := filepath.Join(t.TempDir(), "long.pdf")
	long := strings.Repeat("line of body text\n", 200)
	if err := Text(long, out); err != nil {
		t.Fatalf("Text: %v", err)
	}

	pages, err := pdfmerge.PageCount(out)
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if pages < 2 {
		t.Errorf("pages = %d, want overflow onto a second page", pages)
	}
}

func TestTextUnwritablePath(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "note.pdf")
	if err := Text("body", out); err == nil {
		t.Fatal("expected error for unwritable output path")
	}
}

func TestImage(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")
	writeTestPNG(t, src, 300, 200)

	out := filepath.Join(dir, "photo.pdf")
	if err := Image(src, out); err != nil {
		t.Fatalf("Image: %v", err)
	}

	pages, err := pdfmerge.PageCount(out)
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if pages != 1 {
		t.Errorf("pages = %d, want exactly one page per image", pages)
	}
}

func TestImageWithAlpha(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "overlay.png")

	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 10, B: 10, A: uint8(x * 4)})
		}
	}
	f, err := os.Create(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	out := filepath.Join(dir, "overlay.pdf")
	if err := Image(src, out); err != nil {
		t.Fatalf("Image: %v", err)
	}
	if _, err := pdfmerge.PageCount(out); err != nil {
		t.Fatalf("output not a valid PDF: %v", err)
	}
}

func TestImageUndecodable(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(src, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Image(src, filepath.Join(dir, "broken.pdf")); err == nil {
		t.Fatal("expected error for undecodable image")
	}
}

func TestFitToPage(t *testing.T) {
	tests := []struct {
		name   string
		pxW    int
		pxH    int
		wantW  float64
		wantH  float64
	}{
		{"fits native", 300, 200, 300, 200},
		{"landscape oversize binds width", 1080, 540, 540, 270},
		{"portrait oversize binds height", 500, 1440, 250, 720},
		{"exactly at limit", 540, 720, 540, 720},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fitToPage(tt.pxW, tt.pxH)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("fitToPage(%d, %d) = (%v, %v), want (%v, %v)",
					tt.pxW, tt.pxH, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

// writeTestPNG writes a solid-color PNG of the given pixel size.
func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 90, B: 160, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}
