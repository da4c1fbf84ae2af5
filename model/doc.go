// Package model defines the data structures produced by the extraction
// pipeline: per-page records, positioned text spans, and table cells.
//
// A PageRecord is created once per physical PDF page, populated by the
// extraction backends, possibly mutated once by OCR enhancement, and
// never mutated again. Spans and TableCells are immutable once built
// and are owned by their PageRecord.
package model
