package tables

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the keyword and pattern sets driving table detection
// and the surrender-value parser. The zero value is not usable; start
// from DefaultConfig or LoadConfig.
type Config struct {
	// LineKeywords short-circuit a line to tabular when present.
	LineKeywords []string `yaml:"line_keywords"`

	// LinePatterns are numeric regexes counted against a line; the
	// line is tabular when at least MinPatternMatches of them match.
	LinePatterns []string `yaml:"line_patterns"`

	// MinPatternMatches is the tabular threshold for LinePatterns.
	MinPatternMatches int `yaml:"min_pattern_matches"`

	// PolicyKeywords is the broader keyword set the OCR decision
	// policy uses to judge whether a page looks tabular.
	PolicyKeywords []string `yaml:"policy_keywords"`

	// ForceKeywords mark a page as tabular on their own, without
	// numeric corroboration.
	ForceKeywords []string `yaml:"force_keywords"`

	// HeaderKeywords identify header lines of the surrender-value table.
	HeaderKeywords []string `yaml:"header_keywords"`

	// SectionStartMarkers begin capture of the surrender-value section.
	SectionStartMarkers []string `yaml:"section_start_markers"`

	// SectionEndPrefix and SectionEndGlyph together terminate capture:
	// a line starting with the prefix and containing the glyph is the
	// footnote conventionally following the table.
	SectionEndPrefix string `yaml:"section_end_prefix"`
	SectionEndGlyph  string `yaml:"section_end_glyph"`
}

// DefaultConfig returns the keyword and pattern sets for Korean
// insurance-product documents.
func DefaultConfig() Config {
	return Config{
		LineKeywords: []string{
			"해약환급금", "환급금", "경과기간", "납입보험료", "적립부분", "보장부분",
		},
		LinePatterns: []string{
			`[0-9,]+원`, // 85,804원
			`[0-9]+년`,  // 1년, 20년
			`[0-9]+세`,  // 37세
			`[0-9,.]+%`, // 29.8%
		},
		MinPatternMatches: 2,
		PolicyKeywords: []string{
			"해약환급금", "환급금", "경과기간", "납입보험료", "보험료",
			"특약", "담보", "면책", "납입면제", "갱신", "감액",
		},
		ForceKeywords: []string{"해약환급금", "환급금"},
		HeaderKeywords: []string{
			"경과기간", "납입보험료", "적립부분환급금", "보장부분환급금", "환급금(합계)", "환급률",
		},
		SectionStartMarkers: []string{"해약환급금 예시", "경과기간"},
		SectionEndPrefix:    "해약환급금",
		SectionEndGlyph:     "①",
	}
}

// LoadConfig reads a YAML file and overlays it on DefaultConfig, so a
// file only needs to list the sets it changes.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading table config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing table config: %w", err)
	}
	if cfg.MinPatternMatches <= 0 {
		cfg.MinPatternMatches = DefaultConfig().MinPatternMatches
	}
	return cfg, nil
}
