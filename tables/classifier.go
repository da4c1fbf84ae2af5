package tables

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Classifier decides whether a line of text belongs to a tabular
// region. It is a pure function of the line content; the same input
// always yields the same answer.
type Classifier struct {
	cfg      Config
	patterns []*regexp.Regexp
}

// NewClassifier compiles the configured numeric patterns.
func NewClassifier(cfg Config) (*Classifier, error) {
	patterns := make([]*regexp.Regexp, 0, len(cfg.LinePatterns))
	for _, p := range cfg.LinePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling line pattern %q: %w", p, err)
		}
		patterns = append(patterns, re)
	}
	return &Classifier{cfg: cfg, patterns: patterns}, nil
}

// IsTableLine reports whether the line is part of a tabular region.
// A domain keyword decides immediately; otherwise enough numeric
// pattern matches are required.
func (c *Classifier) IsTableLine(line string) bool {
	for _, kw := range c.cfg.LineKeywords {
		if strings.Contains(line, kw) {
			return true
		}
	}

	matches := 0
	for _, re := range c.patterns {
		if re.MatchString(line) {
			matches++
		}
	}
	return matches >= c.cfg.MinPatternMatches
}

// LooksTabular judges whole-page text for the OCR decision policy:
// does this page appear to contain a policy table worth visual
// re-confirmation? Force keywords decide on their own; other policy
// keywords need numeric or spacing corroboration.
func (c *Classifier) LooksTabular(text string) bool {
	if text == "" {
		return false
	}

	for _, kw := range c.cfg.ForceKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}

	hasKeyword := false
	for _, kw := range c.cfg.PolicyKeywords {
		if strings.Contains(text, kw) {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword {
		return false
	}

	return strings.ContainsFunc(text, unicode.IsDigit) ||
		strings.Contains(text, "|") ||
		strings.Contains(text, "\t") ||
		strings.Contains(text, "  ")
}
