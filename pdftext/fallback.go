package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/policyscan/policyscan/model"
)

// fallbackPageGuess is the page count assumed when splitting the
// linear blob; the content streams give no reliable text-to-page
// attribution once concatenated.
const fallbackPageGuess = 10

// ErrNoFallbackText reports that the content streams yielded nothing.
var ErrNoFallbackText = errors.New("pdftext: no text in content streams")

// Fallback extracts one linear text blob from the document's page
// content streams and splits it into fallbackPageGuess chunks. Page
// boundaries in the result are approximate; callers should surface
// that to consumers.
func Fallback(path string) ([]*model.PageRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, pdfmodel.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var blob strings.Builder
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil || r == nil {
			continue
		}
		data, err := io.ReadAll(r)
		if err != nil || len(data) == 0 {
			continue
		}
		if text := textFromContentStream(data); text != "" {
			blob.WriteString(text)
			blob.WriteByte('\n')
		}
	}

	text := strings.TrimSpace(blob.String())
	if text == "" {
		return nil, ErrNoFallbackText
	}

	chunks := splitIntoChunks(text, fallbackPageGuess)
	pages := make([]*model.PageRecord, len(chunks))
	for i, chunk := range chunks {
		rec := model.NewPageRecord(i + 1)
		if strings.TrimSpace(chunk) != "" {
			rec.SetText(chunk, model.MethodFallback)
		}
		pages[i] = rec
	}
	return pages, nil
}

// pdfStringRe matches PDF string literals: (text here)
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// textFromContentStream walks the text-showing operators of a page
// content stream. Positioning operators become line breaks so the
// downstream line-oriented parsers still see row structure.
func textFromContentStream(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		// (text) Tj and [(text) -100 (more)] TJ
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteString(decodePDFString(m[1]))
			}

		// (text) ' shows text on the next line
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteByte('\n')
				sb.WriteString(decodePDFString(m[1]))
			}

		// text positioning starts a fresh line
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")),
			bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		}
	}

	return cleanStreamText(sb.String())
}

// decodePDFString resolves backslash escapes, including octal ones,
// inside a PDF string literal.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}

// cleanStreamText trims each line, drops unprintable runes, and
// collapses runs of blank lines.
func cleanStreamText(text string) string {
	var (
		out       []string
		prevBlank bool
	)
	for _, line := range strings.Split(text, "\n") {
		var sb strings.Builder
		for _, r := range line {
			if unicode.IsPrint(r) || r == '\t' {
				sb.WriteRune(r)
			}
		}
		cleaned := strings.TrimSpace(sb.String())
		if cleaned == "" {
			if prevBlank || len(out) == 0 {
				continue
			}
			prevBlank = true
			out = append(out, "")
			continue
		}
		prevBlank = false
		out = append(out, cleaned)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// splitIntoChunks cuts text into at most n chunks of whole lines.
func splitIntoChunks(text string, n int) []string {
	lines := strings.Split(text, "\n")
	perChunk := len(lines) / n
	if perChunk < 1 {
		perChunk = 1
	}

	var chunks []string
	for start := 0; start < len(lines); start += perChunk {
		end := start + perChunk
		if end > len(lines) || len(chunks) == n-1 {
			end = len(lines)
		}
		chunks = append(chunks, strings.Join(lines[start:end], "\n"))
		if end == len(lines) {
			break
		}
	}
	return chunks
}
