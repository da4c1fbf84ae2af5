package pdftext

import (
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/policyscan/policyscan/model"
)

// wordBaselineTolerance is the Y offset within which consecutive
// characters are treated as sitting on the same baseline.
const wordBaselineTolerance = 2.0

// Primary extracts positioned spans and page text with the
// layout-aware reader. The reader panics on some malformed files, so
// the whole pass is recovered and surfaced as an error for the
// orchestrator to fall back on.
func Primary(path string) (pages []*model.PageRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("primary backend: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	total := r.NumPage()
	pages = make([]*model.PageRecord, 0, total)
	for i := 1; i <= total; i++ {
		pages = append(pages, extractPage(r, i))
	}
	return pages, nil
}

// extractPage reads one page. Failures stay on the page record; a
// panic leaves the record in its failed state.
func extractPage(r *pdf.Reader, pageNr int) (rec *model.PageRecord) {
	rec = model.NewPageRecord(pageNr)
	defer func() {
		recover()
	}()

	page := r.Page(pageNr)
	if page.V.IsNull() {
		return rec
	}

	spans, failures := mergeSpans(page.Content().Text)
	rec.Spans = spans
	rec.SpanDecodeFailures = failures

	text := model.PageText(model.GroupLines(spans))
	if strings.TrimSpace(text) == "" {
		if plain, err := page.GetPlainText(nil); err == nil {
			text = plain
		}
	}
	if strings.TrimSpace(text) != "" {
		rec.SetText(text, model.MethodPrimary)
	}
	return rec
}

// mergeSpans folds the reader's per-character items into word spans
// and counts spans whose decoding produced replacement characters.
func mergeSpans(texts []pdf.Text) ([]model.Span, int) {
	var (
		spans    []model.Span
		failures int
		cur      *model.Span
	)
	flush := func() {
		if cur == nil {
			return
		}
		if strings.ContainsRune(cur.Text, '�') {
			failures++
		}
		spans = append(spans, *cur)
		cur = nil
	}

	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			flush()
			continue
		}
		if cur != nil && continuesWord(cur, t) {
			cur.Text += t.S
			if x1 := t.X + t.W; x1 > cur.BBox.X1 {
				cur.BBox.X1 = x1
			}
			continue
		}
		flush()
		cur = &model.Span{
			Text:     t.S,
			BBox:     model.BBox{X0: t.X, Y0: t.Y, X1: t.X + t.W, Y1: t.Y + t.FontSize},
			FontName: t.Font,
			FontSize: t.FontSize,
			Flags:    model.StyleFromFontName(t.Font),
		}
	}
	flush()
	return spans, failures
}

// continuesWord reports whether t extends the current span: same
// baseline and a gap under 30% of the font size.
func continuesWord(cur *model.Span, t pdf.Text) bool {
	if math.Abs(t.Y-cur.BBox.Y0) > wordBaselineTolerance {
		return false
	}
	threshold := cur.FontSize * 0.3
	if threshold == 0 {
		threshold = 3.0
	}
	gap := t.X - cur.BBox.X1
	return gap >= -threshold && gap <= threshold
}
