package policyscan

import (
	"github.com/rs/zerolog"

	"github.com/policyscan/policyscan/internal/logging"
	"github.com/policyscan/policyscan/ocr"
	"github.com/policyscan/policyscan/tables"
)

// engineFactory builds an OCR engine for a language string. Swappable
// in tests.
type engineFactory func(languages string) (ocr.Engine, error)

// ExtractOptions holds configuration for the extraction pipeline.
type ExtractOptions struct {
	// OCR enhancement
	useOCR       bool
	capabilities ocr.Capabilities
	languages    string
	newLine      engineFactory
	newClassic   engineFactory

	// Table detection
	tableConfig tables.Config

	// Logging
	logger zerolog.Logger
}

// defaultOptions returns the default extraction options: no OCR,
// default Korean table keywords, discarded logs.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		useOCR:      false,
		languages:   ocr.DefaultLanguages,
		newLine:     ocr.NewLineEngine,
		newClassic:  ocr.NewClassicEngine,
		tableConfig: tables.DefaultConfig(),
		logger:      logging.Nop(),
	}
}

// clone creates a copy of ExtractOptions. Config slices are copied so
// chained extractors never share mutable state.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	newOpts.tableConfig.LineKeywords = append([]string(nil), o.tableConfig.LineKeywords...)
	newOpts.tableConfig.LinePatterns = append([]string(nil), o.tableConfig.LinePatterns...)
	newOpts.tableConfig.PolicyKeywords = append([]string(nil), o.tableConfig.PolicyKeywords...)
	newOpts.tableConfig.ForceKeywords = append([]string(nil), o.tableConfig.ForceKeywords...)
	newOpts.tableConfig.HeaderKeywords = append([]string(nil), o.tableConfig.HeaderKeywords...)
	newOpts.tableConfig.SectionStartMarkers = append([]string(nil), o.tableConfig.SectionStartMarkers...)
	return newOpts
}
