package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	_ "image/jpeg"

	_ "golang.org/x/image/tiff"
)

// Binarize decodes an encoded image, converts it to grayscale, and
// thresholds it to black and white using Otsu's method. The result is
// re-encoded as PNG. Scanned policy pages often carry paper tint and
// JPEG noise that hurt recognition; a clean bilevel image does not.
func Binarize(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	gray := toGray(src)
	threshold := otsuThreshold(gray)

	bounds := gray.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := gray.PixOffset(x, y)
			if gray.Pix[i] > threshold {
				gray.Pix[i] = 255
			} else {
				gray.Pix[i] = 0
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}

func toGray(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok {
		out := image.NewGray(g.Bounds())
		copy(out.Pix, g.Pix)
		return out
	}
	bounds := src.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(src.At(x, y)))
		}
	}
	return gray
}

// otsuThreshold picks the threshold maximizing between-class variance
// of the grayscale histogram.
func otsuThreshold(gray *image.Gray) uint8 {
	var hist [256]int
	total := 0
	bounds := gray.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hist[gray.Pix[gray.PixOffset(x, y)]]++
			total++
		}
	}
	if total == 0 {
		return 128
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var (
		sumBack    float64
		weightBack int
		bestVar    float64
		best       uint8
	)
	for t := 0; t < 256; t++ {
		weightBack += hist[t]
		if weightBack == 0 {
			continue
		}
		weightFore := total - weightBack
		if weightFore == 0 {
			break
		}
		sumBack += float64(t) * float64(hist[t])

		meanBack := sumBack / float64(weightBack)
		meanFore := (sum - sumBack) / float64(weightFore)
		diff := meanBack - meanFore
		v := float64(weightBack) * float64(weightFore) * diff * diff
		if v > bestVar {
			bestVar = v
			best = uint8(t)
		}
	}
	return best
}
