//go:build ocr

package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Detect reports which engines this build provides.
func Detect() Capabilities {
	return Capabilities{Line: true, Classic: true}
}

// lineEngine reads the page through Tesseract's text-line iterator and
// filters lines by confidence.
type lineEngine struct {
	client *gosseract.Client
}

// NewLineEngine returns the line-oriented engine. The engine must be
// closed to release Tesseract resources.
func NewLineEngine(languages string) (Engine, error) {
	client, err := newClient(languages)
	if err != nil {
		return nil, err
	}
	return &lineEngine{client: client}, nil
}

func (e *lineEngine) Recognize(image []byte) (Result, error) {
	if err := e.client.SetImageFromBytes(image); err != nil {
		return Result{}, fmt.Errorf("setting image: %w", err)
	}

	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return Result{}, fmt.Errorf("reading text lines: %w", err)
	}

	var (
		lines []string
		sum   float64
		kept  int
	)
	for _, box := range boxes {
		if box.Confidence < lineConfidenceCutoff {
			continue
		}
		line := strings.TrimSpace(box.Word)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		sum += box.Confidence
		kept++
	}

	res := Result{Text: strings.Join(lines, "\n")}
	if kept > 0 {
		res.Confidence = sum / float64(kept)
	}
	return res, nil
}

func (e *lineEngine) Close() error {
	return e.client.Close()
}

// classicEngine binarizes the page and reads it as one uniform block.
type classicEngine struct {
	client *gosseract.Client
}

// NewClassicEngine returns the whole-page engine. The engine must be
// closed to release Tesseract resources.
func NewClassicEngine(languages string) (Engine, error) {
	client, err := newClient(languages)
	if err != nil {
		return nil, err
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		client.Close()
		return nil, fmt.Errorf("setting page segmentation mode: %w", err)
	}
	return &classicEngine{client: client}, nil
}

func (e *classicEngine) Recognize(image []byte) (Result, error) {
	prepared, err := Binarize(image)
	if err != nil {
		// Feed the original image when preprocessing cannot decode it;
		// Tesseract handles more formats than the image registry does.
		prepared = image
	}

	if err := e.client.SetImageFromBytes(prepared); err != nil {
		return Result{}, fmt.Errorf("setting image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("recognizing page: %w", err)
	}

	return Result{Text: strings.TrimSpace(text)}, nil
}

func (e *classicEngine) Close() error {
	return e.client.Close()
}

func newClient(languages string) (*gosseract.Client, error) {
	if languages == "" {
		languages = DefaultLanguages
	}
	client := gosseract.NewClient()
	if err := client.SetLanguage(strings.Split(languages, "+")...); err != nil {
		client.Close()
		return nil, fmt.Errorf("setting languages %q: %w", languages, err)
	}
	return client, nil
}
