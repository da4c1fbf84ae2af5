package tables

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// Monetary unit multipliers: 천원 = thousands of won, 만원 = tens of
// thousands, 억원 = hundreds of millions.
const (
	multWon         = 1
	multThousand    = 1_000
	multTenThousand = 10_000
	multHundredMil  = 100_000_000
)

// amountPattern pairs a currency regex with its unit multiplier. The
// first group captures the numeric part.
type amountPattern struct {
	re   *regexp.Regexp
	mult int64
}

// Tried in order, first match wins: plain won amounts, then
// unit-suffixed forms.
var amountPatterns = []amountPattern{
	{regexp.MustCompile(`([0-9,]+)원`), multWon},
	{regexp.MustCompile(`([0-9,]+)천원`), multThousand},
	{regexp.MustCompile(`([0-9,]+)만원`), multTenThousand},
	{regexp.MustCompile(`([0-9.]+)억원`), multHundredMil},
}

var (
	thousandRe   = regexp.MustCompile(`([0-9,]+)\s*천원`)
	tenThouRe    = regexp.MustCompile(`([0-9,]+)\s*만원`)
	hundredMilRe = regexp.MustCompile(`([0-9.]+)\s*억원`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// ExtractAmount scans text for a monetary amount and returns the
// matched substring plus its value normalized to won. Both values are
// empty/zero when nothing matches, and a non-empty raw always carries
// a positive norm.
func ExtractAmount(text string) (raw string, norm int64) {
	for _, p := range amountPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		n := int64(value * float64(p.mult))
		if n <= 0 {
			continue
		}
		return m[0], n
	}
	return "", 0
}

// NormalizeText produces the comparison form of a span's text:
// full-width characters folded to their narrow equivalents (OCR output
// from Korean documents frequently uses 전각 digits), whitespace
// collapsed, and unit-suffixed amounts expanded to plain won.
func NormalizeText(text string) string {
	s := width.Narrow.String(strings.TrimSpace(text))
	s = whitespaceRe.ReplaceAllString(s, " ")

	s = thousandRe.ReplaceAllString(s, "$1,000원")
	s = tenThouRe.ReplaceAllString(s, "$1,0000원")
	s = hundredMilRe.ReplaceAllStringFunc(s, func(m string) string {
		g := hundredMilRe.FindStringSubmatch(m)
		value, err := strconv.ParseFloat(g[1], 64)
		if err != nil {
			return m
		}
		return groupDigits(int64(value*multHundredMil)) + "원"
	})

	return s
}

// groupDigits renders n with comma thousands separators.
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var sb strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		sb.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}
