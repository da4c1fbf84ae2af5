package policyscan

import (
	"fmt"
	"strings"
)

// WarningType classifies non-fatal pipeline issues.
type WarningType string

const (
	// WarnFallbackUsed means the primary backend produced nothing and
	// the linear fallback ran; page boundaries are approximate.
	WarnFallbackUsed WarningType = "fallback_used"

	// WarnNoText means both backends failed and empty page records
	// were synthesized.
	WarnNoText WarningType = "no_text"

	// WarnOCRFailed means a page qualified for OCR but enhancement
	// failed; the page keeps its pre-OCR text.
	WarnOCRFailed WarningType = "ocr_failed"

	// WarnMalformedTable means a surrender-value section was found but
	// could not be parsed into rows.
	WarnMalformedTable WarningType = "malformed_table"
)

// Warning describes a non-fatal issue encountered during extraction.
// Extraction succeeded but the result may be imperfect.
type Warning struct {
	Type    WarningType
	Page    int // 1-based; 0 when not page-specific
	Message string
}

// FormatWarnings renders warnings as a single human-readable string.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, 0, len(warnings))
	for _, w := range warnings {
		if w.Page > 0 {
			parts = append(parts, fmt.Sprintf("[%s] page %d: %s", w.Type, w.Page, w.Message))
		} else {
			parts = append(parts, fmt.Sprintf("[%s] %s", w.Type, w.Message))
		}
	}
	return strings.Join(parts, "; ")
}
