// Package surrender parses the surrender-value example table
// (해약환급금 예시표) out of a page's plain text.
//
// The table is not reconstructed geometrically. Korean product summaries
// lay it out predictably enough that a line-oriented scan works: the
// section is bracketed by well-known markers, header lines carry a fixed
// keyword vocabulary, and data rows start with an elapsed-period cell
// such as 1년(37세) or 만기.
package surrender

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/policyscan/policyscan/tables"
)

var (
	// ErrNoTable reports that the text contains no surrender-value
	// section at all.
	ErrNoTable = errors.New("surrender: no table section found")

	// ErrMalformedTable reports that a section was located but no
	// usable header or data rows could be read out of it.
	ErrMalformedTable = errors.New("surrender: table section malformed")
)

// EntryType distinguishes the single header entry from data rows.
type EntryType string

const (
	TypeHeader EntryType = "header"
	TypeData   EntryType = "data"
)

// AmountKind tells whether a parsed value is a won amount or a
// refund-rate percentage.
type AmountKind string

const (
	KindCurrency   AmountKind = "currency"
	KindPercentage AmountKind = "percentage"
)

// Amount is one numeric value pulled from a data-row column.
type Amount struct {
	ColumnIndex int        `json:"column"`
	Text        string     `json:"text"`
	AmountRaw   string     `json:"amount_raw"`
	AmountNorm  float64    `json:"amount_norm"`
	Kind        AmountKind `json:"type"`
}

// Entry is one parsed row. The header entry collects every header line
// as one column each; data entries collect the period line and its
// continuation lines the same way.
type Entry struct {
	Type    EntryType `json:"type"`
	Row     int       `json:"row"`
	Columns []string  `json:"columns"`
	Amounts []Amount  `json:"amounts,omitempty"`
}

var (
	rowStartRe = regexp.MustCompile(`^\d+년|^만기`)
	rowContRe  = regexp.MustCompile(`^\d+,|^\d+\.\d+%`)

	// Ordered: a trailing 원 binds tightest, then percentages, then a
	// bare comma-grouped number. Percentages must come before the bare
	// pattern or 29.8% reads as the currency amount 29.
	wonAmountRe  = regexp.MustCompile(`([0-9,]+원)`)
	percentRe    = regexp.MustCompile(`([0-9.]+%)`)
	bareAmountRe = regexp.MustCompile(`([0-9,]+)`)
)

// Parser extracts surrender-value tables from page text.
type Parser struct {
	cfg tables.Config
}

// NewParser returns a parser using cfg's section markers and header
// keyword set.
func NewParser(cfg tables.Config) *Parser {
	return &Parser{cfg: cfg}
}

// Parse scans text for the surrender-value section and returns its rows:
// one header entry followed by the data rows in document order. It
// returns ErrNoTable when no section is present and ErrMalformedTable
// when a section exists but yields no rows.
func (p *Parser) Parse(text string) ([]Entry, error) {
	section := p.extractSection(text)
	if len(section) == 0 {
		return nil, ErrNoTable
	}
	entries := p.parseRows(section)
	if len(entries) == 0 {
		return nil, ErrMalformedTable
	}
	return entries, nil
}

// extractSection returns the lines between the first start marker and
// the footnote line that conventionally closes the table (a line
// starting with the end prefix and carrying the end glyph).
func (p *Parser) extractSection(text string) []string {
	var section []string
	capturing := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !capturing {
			for _, marker := range p.cfg.SectionStartMarkers {
				if strings.Contains(line, marker) {
					capturing = true
					break
				}
			}
		}
		if capturing && strings.HasPrefix(line, p.cfg.SectionEndPrefix) &&
			strings.Contains(line, p.cfg.SectionEndGlyph) {
			break
		}
		if capturing {
			section = append(section, line)
		}
	}
	return section
}

func (p *Parser) parseRows(section []string) []Entry {
	var headers []string
	for _, line := range section {
		if containsAny(line, p.cfg.HeaderKeywords) {
			headers = append(headers, line)
		}
	}
	if len(headers) == 0 {
		return nil
	}

	entries := []Entry{{Type: TypeHeader, Row: 0, Columns: headers}}

	var current []string
	rowCount := 0
	flush := func() {
		if len(current) == 0 {
			return
		}
		entries = append(entries, Entry{
			Type:    TypeData,
			Row:     rowCount,
			Columns: current,
			Amounts: extractAmounts(current),
		})
		rowCount++
		current = nil
	}

	dataStarted := false
	for _, line := range section {
		switch {
		case rowStartRe.MatchString(line):
			flush()
			current = []string{line}
			dataStarted = true
		case dataStarted && (rowContRe.MatchString(line) || line == "0"):
			current = append(current, line)
		case dataStarted:
			// A non-numeric line after data rows ends the table.
			flush()
			return entries
		}
	}
	flush()
	return entries
}

// extractAmounts pulls the first numeric value out of each column.
func extractAmounts(columns []string) []Amount {
	var amounts []Amount
	for i, col := range columns {
		a, ok := matchAmount(col)
		if !ok {
			continue
		}
		a.ColumnIndex = i
		a.Text = col
		amounts = append(amounts, a)
	}
	return amounts
}

func matchAmount(col string) (Amount, bool) {
	if m := wonAmountRe.FindStringSubmatch(col); m != nil {
		digits := strings.TrimSuffix(strings.ReplaceAll(m[1], ",", ""), "원")
		if v, err := strconv.ParseFloat(digits, 64); err == nil {
			return Amount{AmountRaw: m[1], AmountNorm: v, Kind: KindCurrency}, true
		}
	}
	if m := percentRe.FindStringSubmatch(col); m != nil {
		digits := strings.TrimSuffix(m[1], "%")
		if v, err := strconv.ParseFloat(digits, 64); err == nil {
			return Amount{AmountRaw: m[1], AmountNorm: v, Kind: KindPercentage}, true
		}
	}
	if m := bareAmountRe.FindStringSubmatch(col); m != nil {
		digits := strings.ReplaceAll(m[1], ",", "")
		if v, err := strconv.ParseFloat(digits, 64); err == nil {
			return Amount{AmountRaw: m[1], AmountNorm: v, Kind: KindCurrency}, true
		}
	}
	return Amount{}, false
}

func containsAny(line string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(line, k) {
			return true
		}
	}
	return false
}
