// Package ocr recognizes text on page images of scanned insurance
// documents.
//
// Two engines are provided. The line engine walks Tesseract's text-line
// iterator and keeps per-line confidences, which lets callers drop
// low-quality lines individually. The classic engine binarizes the
// image first and reads it as a single block, which tends to do better
// on clean high-contrast scans.
//
// Both engines wrap Tesseract via gosseract and are only compiled in
// with the "ocr" build tag; without it the constructors return
// ErrNotEnabled. Tesseract and the Korean language pack must be
// installed on the system:
//
//	apt-get install tesseract-ocr tesseract-ocr-kor
package ocr

import "errors"

// ErrNotEnabled is returned by the engine constructors when OCR support
// was not compiled in. Rebuild with -tags ocr to enable it.
var ErrNotEnabled = errors.New("ocr support not enabled; rebuild with -tags ocr")

// DefaultLanguages is the Tesseract language string used when none is
// given. Korean product documents mix Hangul with Latin digits and
// abbreviations, so both packs are loaded.
const DefaultLanguages = "kor+eng"

// lineConfidenceCutoff drops text lines Tesseract is less than 50%
// sure about, the same bar the line engine's upstream models use.
const lineConfidenceCutoff = 50

// Result is the outcome of recognizing one page image.
type Result struct {
	// Text is the recognized text, lines joined with newlines,
	// surrounding whitespace trimmed.
	Text string

	// Confidence is the mean confidence of the kept lines in [0,100].
	// The classic engine reports Tesseract's whole-page estimate.
	Confidence float64
}

// Engine recognizes text on an encoded page image (PNG, JPEG, TIFF).
type Engine interface {
	Recognize(image []byte) (Result, error)
	Close() error
}

// Capabilities reports which engines the current build can construct.
// It is plumbed into the extractor so the OCR decision policy can skip
// pages it would not be able to enhance anyway.
type Capabilities struct {
	Line    bool
	Classic bool
}

// Enabled reports whether any engine is available.
func (c Capabilities) Enabled() bool {
	return c.Line || c.Classic
}
