package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestEncodeUpscaledDoublesDimensions(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 30, 20))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	src.SetGray(10, 10, color.Gray{})

	data, err := encodeUpscaled(src)
	if err != nil {
		t.Fatalf("encodeUpscaled failed: %v", err)
	}

	out, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	b := out.Bounds()
	if b.Dx() != 60 || b.Dy() != 40 {
		t.Errorf("output bounds = %dx%d, want 60x40", b.Dx(), b.Dy())
	}
}

func TestPixelCount(t *testing.T) {
	img := image.NewGray(image.Rect(5, 5, 15, 25))
	if got := pixelCount(img); got != 200 {
		t.Errorf("pixelCount = %d, want 200", got)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open("testdata/does-not-exist.pdf"); err == nil {
		t.Error("expected error for missing file")
	}
}
