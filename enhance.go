package policyscan

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/policyscan/policyscan/internal/logging"
	"github.com/policyscan/policyscan/model"
	"github.com/policyscan/policyscan/ocr"
	"github.com/policyscan/policyscan/raster"
	"github.com/policyscan/policyscan/tables"
)

// ocrSeparator marks appended OCR content when the merge keeps the
// original text.
const ocrSeparator = "\n\n[OCR추가내용]\n"

// minReliableTextLength is the page text length in characters below
// which a page is suspected to be a scan with little or no embedded
// text.
const minReliableTextLength = 50

// enhancePages runs OCR over pages the decision policy flags and
// merges recognized text into their records. Per-page failures become
// warnings; the page keeps its pre-OCR text.
func (e *Extractor) enhancePages(pages []*model.PageRecord, cls *tables.Classifier) []Warning {
	log := logging.Component(e.options.logger, "ocr")

	var candidates []*model.PageRecord
	for _, page := range pages {
		if needsOCR(page, cls) {
			candidates = append(candidates, page)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	var warnings []Warning

	doc, err := raster.Open(e.filename)
	if err != nil {
		warnings = append(warnings, Warning{
			Type:    WarnOCRFailed,
			Message: fmt.Sprintf("page images unavailable: %v", err),
		})
		return warnings
	}

	engine, err := e.newEngine()
	if err != nil {
		warnings = append(warnings, Warning{
			Type:    WarnOCRFailed,
			Message: fmt.Sprintf("no OCR engine: %v", err),
		})
		return warnings
	}
	defer engine.Close()

	enhanced := 0
	for _, page := range candidates {
		if err := enhancePage(doc, engine, page); err != nil {
			if !errors.Is(err, raster.ErrNoPageImage) {
				warnings = append(warnings, Warning{
					Type:    WarnOCRFailed,
					Page:    page.PageNumber,
					Message: err.Error(),
				})
			}
			continue
		}
		enhanced++
		log.Debug().
			Int("page", page.PageNumber).
			Str("method", string(page.ExtractionMethod)).
			Float64("confidence", page.OCRConfidence).
			Msg("page enhanced")
	}

	log.Info().
		Int("candidates", len(candidates)).
		Int("enhanced", enhanced).
		Msg("ocr enhancement finished")
	return warnings
}

// newEngine constructs the preferred available OCR engine: the
// line-confidence engine when present, the classic full-page engine
// otherwise.
func (e *Extractor) newEngine() (ocr.Engine, error) {
	if e.options.capabilities.Line {
		if engine, err := e.options.newLine(e.options.languages); err == nil {
			return engine, nil
		}
	}
	if e.options.capabilities.Classic {
		return e.options.newClassic(e.options.languages)
	}
	return nil, ocr.ErrNotEnabled
}

// enhancePage rasterizes one page, recognizes it, and merges the text.
func enhancePage(doc *raster.Document, engine ocr.Engine, page *model.PageRecord) error {
	// Fallback records can outnumber real pages; their numbering is a
	// chunk index, not a page reference.
	if page.PageNumber > doc.PageCount() {
		return raster.ErrNoPageImage
	}
	img, err := doc.PageImage(page.PageNumber)
	if err != nil {
		return err
	}
	res, err := engine.Recognize(img)
	if err != nil {
		return fmt.Errorf("recognizing page %d: %w", page.PageNumber, err)
	}
	mergeOCRText(page, res)
	return nil
}

// needsOCR decides whether a page should be OCR-enhanced.
//
// A page with intact positioned spans is trusted outright. Otherwise
// OCR runs when the page looks like a policy table (embedded readers
// scramble those most), when it has almost no text, or when the text
// shows scan artifacts or encoding corruption.
func needsOCR(page *model.PageRecord, cls *tables.Classifier) bool {
	if len(page.Spans) > 0 && page.SpanDecodeFailures == 0 {
		return false
	}
	if cls.LooksTabular(page.Text) {
		return true
	}
	text := strings.TrimSpace(page.Text)
	if utf8.RuneCountInString(text) < minReliableTextLength {
		return true
	}
	return looksScanned(text) || looksCorrupted(text)
}

// looksScanned detects artifacts of text layers produced by scanner
// software: heavy runs of narrow look-alike glyphs and stretches of
// double spacing.
func looksScanned(text string) bool {
	runes := []rune(text)
	if len(runes) < 10 {
		return true
	}

	var artifacts, glyphs int
	for _, r := range runes {
		if r == ' ' || r == '\n' || r == '\t' {
			continue
		}
		glyphs++
		switch r {
		case 'l', '|', 'I', '1':
			artifacts++
		}
	}
	if glyphs > 0 && float64(artifacts)/float64(glyphs) > 0.3 {
		return true
	}

	doubleSpaces := strings.Count(text, "  ")
	spaces := strings.Count(text, " ")
	return spaces > 0 && float64(doubleSpaces*2)/float64(spaces) > 0.5
}

// looksCorrupted detects failed font decoding: replacement characters,
// mojibake, or text shattered into single-character words.
func looksCorrupted(text string) bool {
	if strings.ContainsRune(text, '�') ||
		strings.Contains(text, "???") ||
		strings.Contains(text, "ï¿½") {
		return true
	}

	words := strings.Fields(text)
	if len(words) < 5 {
		return false
	}
	single := 0
	for _, w := range words {
		if len([]rune(w)) == 1 {
			single++
		}
	}
	return float64(single)/float64(len(words)) > 0.4
}

// mergeOCRText merges recognized text into the page record. Strictly
// longer OCR output replaces the embedded text, which is preserved in
// OriginalText; otherwise the OCR output is appended under a marker so
// nothing already extracted is lost. Both sides are measured with
// surrounding whitespace stripped.
func mergeOCRText(page *model.PageRecord, res ocr.Result) {
	text := strings.TrimSpace(res.Text)
	if text == "" {
		return
	}

	if len(text) > len(strings.TrimSpace(page.Text)) {
		page.OriginalText = page.Text
		page.SetText(text, model.MethodOCREnhanced)
	} else {
		page.AppendText(text, ocrSeparator, model.MethodHybrid)
	}
	page.HasOCR = true
	page.OCRConfidence = res.Confidence
}
