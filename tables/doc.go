// Package tables detects tabular lines in extracted page text and
// reconstructs flat cell records from positioned spans.
//
// Detection is deliberately syntactic: a line is tabular if it carries
// a surrender-value domain keyword, or if enough numeric patterns
// (currency, elapsed years, age, percentage) match. This trades false
// negatives on unfamiliar table styles for a low false-positive rate
// on narrative prose. Keyword and pattern sets are configurable so new
// table shapes can be added without touching the builder:
//
//	cfg, err := tables.LoadConfig("tables.yaml")
//	if err != nil {
//	    // handle error
//	}
//	builder, err := tables.NewBuilder(cfg)
//	if err != nil {
//	    // handle error
//	}
//	cells := builder.Build(spans, pageNumber)
package tables
