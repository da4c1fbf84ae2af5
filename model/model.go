package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractionMethod identifies which backend produced a page's text.
type ExtractionMethod string

const (
	// MethodPrimary means the layout-aware backend produced the text.
	MethodPrimary ExtractionMethod = "primary"

	// MethodFallback means the linear whole-document backend produced
	// the text. Page boundaries are approximate on this path.
	MethodFallback ExtractionMethod = "fallback"

	// MethodOCREnhanced means OCR text fully replaced the extracted text.
	MethodOCREnhanced ExtractionMethod = "ocr_enhanced"

	// MethodHybrid means OCR text was appended to the extracted text.
	MethodHybrid ExtractionMethod = "hybrid"

	// MethodFailed means no backend produced text for this page.
	MethodFailed ExtractionMethod = "failed"
)

// BBox is an axis-aligned bounding box in PDF user-space coordinates.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 { return b.Y1 - b.Y0 }

// MarshalJSON encodes the box as a four-element array [x0,y0,x1,y1].
func (b BBox) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{b.X0, b.Y0, b.X1, b.Y1})
}

// UnmarshalJSON decodes a four-element array into the box.
func (b *BBox) UnmarshalJSON(data []byte) error {
	var arr [4]float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("bbox: %w", err)
	}
	b.X0, b.Y0, b.X1, b.Y1 = arr[0], arr[1], arr[2], arr[3]
	return nil
}

// StyleFlags carries the font style bits of a span.
type StyleFlags uint8

const (
	StyleBold StyleFlags = 1 << iota
	StyleItalic
)

// StyleFromFontName derives style flags from a PostScript font name,
// e.g. "NanumGothic-Bold" or "Times-BoldItalic".
func StyleFromFontName(name string) StyleFlags {
	var flags StyleFlags
	lower := strings.ToLower(name)
	if strings.Contains(lower, "bold") {
		flags |= StyleBold
	}
	if strings.Contains(lower, "italic") || strings.Contains(lower, "oblique") {
		flags |= StyleItalic
	}
	return flags
}

// Span is a positioned, styled run of text as emitted by the
// layout-aware backend. Immutable once extracted.
type Span struct {
	Text     string     `json:"text"`
	BBox     BBox       `json:"bbox"`
	FontName string     `json:"font"`
	FontSize float64    `json:"size"`
	Flags    StyleFlags `json:"flags"`
}

// TableCell is one span of a line the classifier deemed tabular, plus
// spans of non-tabular lines recorded at column zero so no text is
// silently dropped.
//
// Row is a running counter over tabular lines on the page, not a true
// grid index; TableID separates contiguous tabular runs so multiple
// tables on one page remain distinguishable.
type TableCell struct {
	Row        int     `json:"row"`
	Col        int     `json:"col"`
	TableID    int     `json:"table_id"`
	TextRaw    string  `json:"text_raw"`
	TextNorm   string  `json:"text_norm"`
	AmountRaw  string  `json:"amount_raw"`
	AmountNorm int64   `json:"amount_norm"`
	BBox       BBox    `json:"bbox"`
	Page       int     `json:"page"`
	FontName   string  `json:"font"`
	FontSize   float64 `json:"size"`
}

// PageRecord holds everything extracted from a single PDF page.
type PageRecord struct {
	PageNumber       int              `json:"page_number"`
	Text             string           `json:"text"`
	OriginalText     string           `json:"original_text,omitempty"`
	Spans            []Span           `json:"structured_spans,omitempty"`
	TableCells       []TableCell      `json:"table_cells"`
	ExtractionMethod ExtractionMethod `json:"extraction_method"`
	HasText          bool             `json:"has_text"`
	TextLength       int              `json:"text_length"`
	HasOCR           bool             `json:"has_ocr"`
	OCRConfidence    float64          `json:"ocr_confidence,omitempty"`

	// SpanDecodeFailures counts spans whose text could not be mapped
	// to Unicode by the primary backend. Zero with populated Spans
	// means the extraction is trustworthy and OCR must not overwrite it.
	SpanDecodeFailures int `json:"-"`
}

// NewPageRecord creates an empty record for a 1-based page number.
// TableCells starts as an empty slice so the record always serializes
// with a table_cells array, never null.
func NewPageRecord(pageNumber int) *PageRecord {
	return &PageRecord{
		PageNumber:       pageNumber,
		TableCells:       []TableCell{},
		ExtractionMethod: MethodFailed,
	}
}

// SetText replaces the page text and recomputes the derived fields.
func (p *PageRecord) SetText(text string, method ExtractionMethod) {
	p.Text = text
	p.ExtractionMethod = method
	p.refresh()
}

// AppendText appends more text, separated by sep, and recomputes the
// derived fields.
func (p *PageRecord) AppendText(text, sep string, method ExtractionMethod) {
	if p.Text == "" {
		p.Text = text
	} else {
		p.Text = p.Text + sep + text
	}
	p.ExtractionMethod = method
	p.refresh()
}

func (p *PageRecord) refresh() {
	p.TextLength = len(p.Text)
	p.HasText = strings.TrimSpace(p.Text) != ""
}

// AnyText reports whether at least one page carries non-whitespace
// text. This is the document-level success criterion.
func AnyText(pages []*PageRecord) bool {
	for _, p := range pages {
		if p.HasText {
			return true
		}
	}
	return false
}
