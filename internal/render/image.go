// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"os"

	// Raster decoders for every format the classifier accepts as an image.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"codeberg.org/go-pdf/fpdf"
)

// imageMargin is the fixed margin around an image page (0.5 inch per side).
const imageMargin = 0.5 * 72.0

// jpegQuality balances fidelity against merged-PDF size.
const jpegQuality = 92

// Image renders a raster image into a single-page PDF at outPath. The image
// is flattened onto an opaque white background (the output format has no
// transparency), then placed inside the page margins: downscaled uniformly
// when it exceeds the margin-adjusted page area, at native pixel dimensions
// otherwise. Exactly one image per output page.
func Image(path, outPath string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decoding image %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flatten(img), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("encoding image: %w", err)
	}

	w, h := fitToPage(img.Bounds().Dx(), img.Bounds().Dy())

	doc := fpdf.New("P", "pt", "Letter", "")
	doc.AddPage()
	opts := fpdf.ImageOptions{ImageType: "JPG"}
	doc.RegisterImageOptionsReader("attachment", opts, &buf)
	doc.ImageOptions("attachment", imageMargin, imageMargin, w, h, false, opts, 0, "")

	if err := doc.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("writing image PDF: %w", err)
	}
	return nil
}

// flatten composites img onto an opaque white canvas of identical size,
// using the alpha channel as the blend mask. Non-truecolor modes come out
// truecolor as a side effect of drawing into an RGBA canvas.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

// fitToPage returns display dimensions in points for an image of the given
// pixel size. Pixels map 1:1 to points when the image fits inside the
// margins; otherwise the image is scaled down with its aspect ratio
// preserved exactly, the binding dimension (width for landscape, height for
// portrait and square) touching its margin limit.
func fitToPage(pxW, pxH int) (w, h float64) {
	maxW := pageWidth - 2*imageMargin
	maxH := pageHeight - 2*imageMargin

	w, h = float64(pxW), float64(pxH)
	if w <= maxW && h <= maxH {
		return w, h
	}

	aspect := w / h
	if aspect > 1 {
		w = maxW
		h = w / aspect
	} else {
		h = maxH
		w = h * aspect
	}
	return w, h
}
