package policyscan

import (
	"strings"
	"testing"

	"github.com/policyscan/policyscan/model"
	"github.com/policyscan/policyscan/ocr"
	"github.com/policyscan/policyscan/tables"
)

func testClassifier(t *testing.T) *tables.Classifier {
	t.Helper()
	cls, err := tables.NewClassifier(tables.DefaultConfig())
	if err != nil {
		t.Fatalf("NewClassifier failed: %v", err)
	}
	return cls
}

const cleanProse = "이 상품은 계약자가 선택한 조건에 따라 사망을 보장하는 상품으로서 자세한 사항은 약관을 참고하시기 바랍니다."

func TestNeedsOCRTrustsIntactSpans(t *testing.T) {
	cls := testClassifier(t)

	page := model.NewPageRecord(1)
	page.Spans = []model.Span{{Text: "짧음"}}
	page.SetText("짧은 텍스트", model.MethodPrimary)

	// Short text would normally trigger OCR, but intact spans win.
	if needsOCR(page, cls) {
		t.Error("page with intact spans should not need OCR")
	}
}

func TestNeedsOCRDecodeFailuresVoidTrust(t *testing.T) {
	cls := testClassifier(t)

	page := model.NewPageRecord(1)
	page.Spans = []model.Span{{Text: "�약"}}
	page.SpanDecodeFailures = 1
	page.SetText("�약"+cleanProse, model.MethodPrimary)

	if !needsOCR(page, cls) {
		t.Error("decode failures should re-open the OCR decision")
	}
}

func TestNeedsOCRTabularPage(t *testing.T) {
	cls := testClassifier(t)

	page := model.NewPageRecord(1)
	page.SetText("해약환급금 예시는 아래 표와 같습니다. "+cleanProse, model.MethodFallback)

	if !needsOCR(page, cls) {
		t.Error("table-bearing page without spans should need OCR")
	}
}

func TestNeedsOCRShortText(t *testing.T) {
	cls := testClassifier(t)

	page := model.NewPageRecord(1)
	page.SetText("표지", model.MethodFallback)

	if !needsOCR(page, cls) {
		t.Error("near-empty page should need OCR")
	}
}

func TestNeedsOCRCountsCharacters(t *testing.T) {
	cls := testClassifier(t)

	// 31 characters but 79 bytes: the length threshold must count
	// characters, or Korean pages sail past it at a third the size.
	page := model.NewPageRecord(1)
	page.SetText("계약 전 알아두실 사항을 반드시 확인하여 주시기 바랍니다", model.MethodFallback)

	if !needsOCR(page, cls) {
		t.Error("sparse Korean page should need OCR")
	}
}

func TestNeedsOCRCleanPage(t *testing.T) {
	cls := testClassifier(t)

	page := model.NewPageRecord(1)
	page.SetText(cleanProse, model.MethodFallback)

	if needsOCR(page, cls) {
		t.Error("clean prose page should not need OCR")
	}
}

func TestLooksScanned(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"artifact glyphs", "l|1I l|1I l|1I 약관", true},
		{"double spacing", "가나  다라  마바  사아  자차", true},
		{"tiny", "표지", true},
		{"clean", cleanProse, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := looksScanned(tt.text); got != tt.want {
				t.Errorf("looksScanned(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestLooksCorrupted(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"replacement char", "보장�내용", true},
		{"question marks", "보장??? 내용", true},
		{"mojibake", "ï¿½ë³´ìž¥", true},
		{"shattered words", "가 나 다 라 마 바 사", true},
		{"clean", cleanProse, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := looksCorrupted(tt.text); got != tt.want {
				t.Errorf("looksCorrupted(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestMergeOCRTextReplacesWhenLonger(t *testing.T) {
	page := model.NewPageRecord(1)
	page.SetText("짧은 원본", model.MethodPrimary)

	mergeOCRText(page, ocr.Result{Text: "OCR로 읽은 훨씬 더 길고 자세한 페이지 내용입니다", Confidence: 87.5})

	if page.ExtractionMethod != model.MethodOCREnhanced {
		t.Errorf("method = %q, want %q", page.ExtractionMethod, model.MethodOCREnhanced)
	}
	if page.OriginalText != "짧은 원본" {
		t.Errorf("original text = %q, want preserved", page.OriginalText)
	}
	if !page.HasOCR || page.OCRConfidence != 87.5 {
		t.Errorf("HasOCR = %v, confidence = %v", page.HasOCR, page.OCRConfidence)
	}
}

func TestMergeOCRTextIgnoresTrailingWhitespace(t *testing.T) {
	page := model.NewPageRecord(1)
	page.SetText("짧은 원본"+strings.Repeat(" ", 60), model.MethodPrimary)

	// Longer than the trimmed page text but shorter than the padded
	// raw text: padding must not demote a replacement to an append.
	mergeOCRText(page, ocr.Result{Text: "스캔된 페이지의 전체 본문 내용"})

	if page.ExtractionMethod != model.MethodOCREnhanced {
		t.Errorf("method = %q, want %q", page.ExtractionMethod, model.MethodOCREnhanced)
	}
	if page.Text != "스캔된 페이지의 전체 본문 내용" {
		t.Errorf("text = %q, want the OCR output", page.Text)
	}
}

func TestMergeOCRTextAppendsWhenShorter(t *testing.T) {
	page := model.NewPageRecord(1)
	page.SetText(cleanProse, model.MethodPrimary)

	mergeOCRText(page, ocr.Result{Text: "추가분"})

	if page.ExtractionMethod != model.MethodHybrid {
		t.Errorf("method = %q, want %q", page.ExtractionMethod, model.MethodHybrid)
	}
	if !strings.HasPrefix(page.Text, cleanProse) {
		t.Error("merged text lost the original prefix")
	}
	if !strings.Contains(page.Text, ocrSeparator) || !strings.HasSuffix(page.Text, "추가분") {
		t.Errorf("merged text = %q", page.Text)
	}
}

func TestMergeOCRTextIgnoresEmpty(t *testing.T) {
	page := model.NewPageRecord(1)
	page.SetText("원본", model.MethodPrimary)

	mergeOCRText(page, ocr.Result{Text: "   "})

	if page.HasOCR || page.Text != "원본" {
		t.Errorf("empty OCR output changed the page: %+v", page)
	}
}
