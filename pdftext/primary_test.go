package pdftext

import (
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
)

func char(s string, x, y, w float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: w, Font: "NanumGothic", FontSize: 10}
}

func TestMergeSpansJoinsAdjacentChars(t *testing.T) {
	texts := []pdf.Text{
		char("해", 50, 700, 10),
		char("약", 60, 700, 10),
		char("환", 70.5, 700, 10), // within 30% of font size
		char("금", 200, 700, 10),  // far gap starts a new span
	}

	spans, failures := mergeSpans(texts)
	if failures != 0 {
		t.Errorf("failures = %d, want 0", failures)
	}
	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(spans))
	}
	if spans[0].Text != "해약환" {
		t.Errorf("first span = %q, want 해약환", spans[0].Text)
	}
	if spans[1].Text != "금" {
		t.Errorf("second span = %q, want 금", spans[1].Text)
	}
	if spans[0].BBox.X1 != 80.5 {
		t.Errorf("first span X1 = %v, want 80.5", spans[0].BBox.X1)
	}
}

func TestMergeSpansSplitsOnBaselineChange(t *testing.T) {
	texts := []pdf.Text{
		char("가", 50, 700, 10),
		char("나", 60, 680, 10),
	}

	spans, _ := mergeSpans(texts)
	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(spans))
	}
}

func TestMergeSpansCountsDecodeFailures(t *testing.T) {
	texts := []pdf.Text{
		char("정상", 50, 700, 20),
		char("��", 200, 700, 20),
		char("�", 50, 680, 10),
	}

	spans, failures := mergeSpans(texts)
	if len(spans) != 3 {
		t.Fatalf("spans = %d, want 3", len(spans))
	}
	// A span counts once no matter how many bad runes it carries.
	if failures != 2 {
		t.Errorf("failures = %d, want 2", failures)
	}
}

func TestMergeSpansSkipsWhitespace(t *testing.T) {
	texts := []pdf.Text{
		char("가", 50, 700, 10),
		char(" ", 60, 700, 5),
		char("나", 65, 700, 10),
	}

	spans, _ := mergeSpans(texts)
	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2 (space breaks the word)", len(spans))
	}
	for _, s := range spans {
		if strings.TrimSpace(s.Text) == "" {
			t.Errorf("whitespace span leaked through: %q", s.Text)
		}
	}
}

func TestPrimaryMissingFile(t *testing.T) {
	if _, err := Primary("testdata/does-not-exist.pdf"); err == nil {
		t.Error("expected error for missing file")
	}
}
