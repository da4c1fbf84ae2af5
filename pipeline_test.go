package policyscan

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/policyscan/policyscan/model"
)

// writeSamplePDF builds a minimal n-page PDF with one Helvetica text
// run per page, mirroring the pdftext package fixture, so the whole
// pipeline can run against a readable document.
func writeSamplePDF(t *testing.T, pageTexts []string) string {
	t.Helper()

	n := len(pageTexts)
	fontObj := 3 + 2*n

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	var offsets []int
	addObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	addObj("<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, n)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}
	addObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), n))

	for i := 0; i < n; i++ {
		addObj(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontObj, 3+n+i))
	}

	for _, text := range pageTexts {
		content := fmt.Sprintf("BT\n/F1 12 Tf\n72 720 Td\n(%s) Tj\nET", text)
		addObj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream",
			len(content), content))
	}

	addObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xref)

	path := filepath.Join(t.TempDir(), "sample.pdf")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing sample pdf: %v", err)
	}
	return path
}

func TestExtractThreePageDocument(t *testing.T) {
	path := writeSamplePDF(t, []string{
		"First page body text",
		"Second page body text",
		"Third page body text",
	})

	result, warnings, err := Open(path).Extract()
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, warnings: %s", FormatWarnings(warnings))
	}
	if len(result.Pages) != 3 {
		t.Fatalf("pages = %d, want 3", len(result.Pages))
	}

	wantWords := []string{"First", "Second", "Third"}
	for i, page := range result.Pages {
		if page.PageNumber != i+1 {
			t.Errorf("page %d numbered %d", i, page.PageNumber)
		}
		if !page.HasText || !strings.Contains(page.Text, wantWords[i]) {
			t.Errorf("page %d text = %q, want it to contain %q",
				i+1, page.Text, wantWords[i])
		}
		if page.HasOCR {
			t.Errorf("page %d ran OCR without it being enabled", i+1)
		}
		if page.TableCells == nil {
			t.Errorf("page %d table cells are nil, want a slice", i+1)
		}
		switch page.ExtractionMethod {
		case model.MethodPrimary, model.MethodFallback:
		default:
			t.Errorf("page %d method = %q", i+1, page.ExtractionMethod)
		}
	}

	cov := result.Coverage()
	if cov.TotalPages != 3 || cov.PagesWithText != 3 || cov.CoverageRatio != 1 {
		t.Errorf("coverage = %+v", cov)
	}
}
