// Package raster turns PDF pages into page images suitable for OCR.
//
// Go has no PDF renderer, so pages are not rasterized from their vector
// content. Instead the package extracts the image XObjects embedded in
// the page. For scanned documents, where OCR matters most, the page is
// a single full-page scan and the two approaches coincide. Pages with
// only vector content yield ErrNoPageImage and stay un-enhanced.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	_ "image/jpeg"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// ErrNoPageImage reports that a page carries no usable image XObject.
var ErrNoPageImage = errors.New("raster: page has no image")

// scale is the upscaling factor applied before OCR. Small scans gain
// noticeably from 2x resampling; beyond that Tesseract sees no benefit.
const scale = 2

// Document provides page images of one PDF file.
type Document struct {
	ctx *model.Context
}

// Open reads and validates the PDF at path.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &Document{ctx: ctx}, nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// HasImage reports whether pageNr (1-based) carries any image XObject.
func (d *Document) HasImage(pageNr int) bool {
	if d.ctx.Optimize == nil {
		return false
	}
	return len(pdfcpu.ImageObjNrs(d.ctx, pageNr)) > 0
}

// PageImage returns the largest image on pageNr (1-based), upscaled and
// re-encoded as PNG. For a scanned page that is the page scan itself.
func (d *Document) PageImage(pageNr int) ([]byte, error) {
	images, err := pdfcpu.ExtractPageImages(d.ctx, pageNr, false)
	if err != nil {
		return nil, fmt.Errorf("extracting images from page %d: %w", pageNr, err)
	}
	if len(images) == 0 {
		return nil, ErrNoPageImage
	}

	var best image.Image
	for _, img := range images {
		data, err := io.ReadAll(img)
		if err != nil {
			continue
		}
		decoded, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			continue
		}
		if best == nil || pixelCount(decoded) > pixelCount(best) {
			best = decoded
		}
	}
	if best == nil {
		return nil, ErrNoPageImage
	}

	return encodeUpscaled(best)
}

func pixelCount(img image.Image) int {
	b := img.Bounds()
	return b.Dx() * b.Dy()
}

// encodeUpscaled resamples img by the package scale factor and encodes
// it as PNG.
func encodeUpscaled(img image.Image) ([]byte, error) {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encoding page image: %w", err)
	}
	return buf.Bytes(), nil
}
