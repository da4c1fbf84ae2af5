package policyscan

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/policyscan/policyscan/internal/logging"
	"github.com/policyscan/policyscan/model"
	"github.com/policyscan/policyscan/ocr"
	"github.com/policyscan/policyscan/pdftext"
	"github.com/policyscan/policyscan/surrender"
	"github.com/policyscan/policyscan/tables"
)

// Extractor provides a fluent interface for the extraction pipeline.
// Each configuration method returns a new Extractor instance, making
// it safe for concurrent use and allowing method chaining.
type Extractor struct {
	filename string
	tempFile bool // remove filename after the terminal operation

	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	warnings []Warning
}

// Result is the outcome of extracting one document.
type Result struct {
	// Success is true when at least one page carries non-empty text.
	Success bool

	// Pages holds one record per page, in order.
	Pages []*model.PageRecord

	// PageBoundariesApproximate is true when the fallback backend ran:
	// its text-to-page attribution is a guess, not real page breaks.
	PageBoundariesApproximate bool

	// SurrenderTables maps 1-based page numbers to parsed
	// surrender-value table rows, for pages that carry one.
	SurrenderTables map[int][]surrender.Entry
}

// Coverage summarizes how much of the document yielded text.
type Coverage struct {
	TotalPages        int
	PagesWithText     int
	CoverageRatio     float64
	TotalTextLength   int
	AverageTextLength float64
	OCREnhancedPages  int
}

// Coverage computes extraction statistics over the result's pages.
func (r *Result) Coverage() Coverage {
	c := Coverage{TotalPages: len(r.Pages)}
	for _, p := range r.Pages {
		if p.HasText {
			c.PagesWithText++
		}
		c.TotalTextLength += p.TextLength
		if p.HasOCR {
			c.OCREnhancedPages++
		}
	}
	if c.TotalPages > 0 {
		c.CoverageRatio = float64(c.PagesWithText) / float64(c.TotalPages)
		c.AverageTextLength = float64(c.TotalTextLength) / float64(c.TotalPages)
	}
	return c
}

// clone creates a copy of the Extractor so chain methods never mutate
// their receiver.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		tempFile: e.tempFile,
		options:  e.options.clone(),
		err:      e.err,
		warnings: append([]Warning(nil), e.warnings...),
	}
}

// WithOCR enables OCR enhancement with the given capabilities, usually
// from ocr.Detect(). Without any available engine the OCR stage is
// skipped silently.
//
// Example:
//
//	result, _, err := policyscan.Open("scanned.pdf").WithOCR(ocr.Detect()).Extract()
func (e *Extractor) WithOCR(caps ocr.Capabilities) *Extractor {
	newExt := e.clone()
	newExt.options.useOCR = true
	newExt.options.capabilities = caps
	return newExt
}

// WithLanguages sets the Tesseract language string for OCR, e.g.
// "kor+eng" (the default).
func (e *Extractor) WithLanguages(languages string) *Extractor {
	newExt := e.clone()
	newExt.options.languages = languages
	return newExt
}

// WithTableConfig replaces the table keyword and pattern configuration.
//
// Example:
//
//	cfg, _ := tables.LoadConfig("keywords.yaml")
//	result, _, err := policyscan.Open("doc.pdf").WithTableConfig(cfg).Extract()
func (e *Extractor) WithTableConfig(cfg tables.Config) *Extractor {
	newExt := e.clone()
	newExt.options.tableConfig = cfg
	return newExt
}

// WithLogger attaches a structured logger to the pipeline. The default
// discards all output.
func (e *Extractor) WithLogger(cfg logging.Config) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logging.New(cfg)
	return newExt
}

// Extract runs the pipeline: primary extraction, fallback, optional
// OCR enhancement, table-cell construction, and surrender-value table
// parsing. This is a terminal operation.
//
// Per-page failures never fail the whole document; they surface as
// warnings and failed page records. The returned error covers
// document-level problems only (unreadable file, bad configuration).
func (e *Extractor) Extract() (*Result, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if e.tempFile {
		defer os.Remove(e.filename)
	}

	log := logging.Component(e.options.logger, "pipeline")

	builder, err := tables.NewBuilder(e.options.tableConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("table config: %w", err)
	}

	warnings := append([]Warning(nil), e.warnings...)

	pages, approximate, warns := e.extractText(log)
	warnings = append(warnings, warns...)

	if e.options.useOCR && e.options.capabilities.Enabled() {
		warns = e.enhancePages(pages, builder.Classifier())
		warnings = append(warnings, warns...)
	}

	parser := surrender.NewParser(e.options.tableConfig)
	surrenderTables := make(map[int][]surrender.Entry)
	for _, page := range pages {
		page.TableCells = builder.Build(page.Spans, page.PageNumber)

		if !pageMentionsSurrender(page.Text, e.options.tableConfig) {
			continue
		}
		log.Debug().Int("page", page.PageNumber).Msg("surrender keyword page")

		entries, err := parser.Parse(page.Text)
		switch {
		case err == nil:
			surrenderTables[page.PageNumber] = entries
		case errors.Is(err, surrender.ErrMalformedTable):
			warnings = append(warnings, Warning{
				Type:    WarnMalformedTable,
				Page:    page.PageNumber,
				Message: err.Error(),
			})
		}
	}

	result := &Result{
		Success:                   model.AnyText(pages),
		Pages:                     pages,
		PageBoundariesApproximate: approximate,
		SurrenderTables:           surrenderTables,
	}

	cov := result.Coverage()
	log.Info().
		Int("pages", cov.TotalPages).
		Int("pages_with_text", cov.PagesWithText).
		Int("ocr_enhanced", cov.OCREnhancedPages).
		Int("surrender_tables", len(surrenderTables)).
		Bool("success", result.Success).
		Msg("extraction finished")

	return result, warnings, nil
}

// extractText runs the primary backend, then the fallback, then the
// empty path, returning the first set of pages that carries text.
func (e *Extractor) extractText(log zerolog.Logger) ([]*model.PageRecord, bool, []Warning) {
	var warnings []Warning

	pages, err := pdftext.Primary(e.filename)
	if err == nil && model.AnyText(pages) {
		log.Debug().Int("pages", len(pages)).Msg("primary extraction succeeded")
		return pages, false, nil
	}
	if err != nil {
		log.Warn().Err(err).Msg("primary extraction failed")
	}

	fbPages, fbErr := pdftext.Fallback(e.filename)
	if fbErr == nil && model.AnyText(fbPages) {
		warnings = append(warnings, Warning{
			Type:    WarnFallbackUsed,
			Message: "primary extraction produced no text; page boundaries are approximate",
		})
		log.Debug().Int("chunks", len(fbPages)).Msg("fallback extraction succeeded")
		return fbPages, true, warnings
	}

	// Keep the primary backend's per-page records when it at least
	// parsed the document; otherwise synthesize empty ones.
	if err == nil && len(pages) > 0 {
		warnings = append(warnings, Warning{
			Type:    WarnNoText,
			Message: "no extractable text in document",
		})
		return pages, false, warnings
	}

	warnings = append(warnings, Warning{
		Type:    WarnNoText,
		Message: "document unreadable by both backends",
	})
	return pdftext.Empty(e.filename), false, warnings
}

// pageMentionsSurrender gates the surrender parser on pages mentioning
// any of the section start markers.
func pageMentionsSurrender(text string, cfg tables.Config) bool {
	for _, marker := range cfg.SectionStartMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
