package tables

import (
	"strings"

	"github.com/policyscan/policyscan/model"
)

// Builder reconstructs flat table cells from a page's spans.
type Builder struct {
	classifier *Classifier
}

// NewBuilder creates a Builder for the given configuration.
func NewBuilder(cfg Config) (*Builder, error) {
	c, err := NewClassifier(cfg)
	if err != nil {
		return nil, err
	}
	return &Builder{classifier: c}, nil
}

// Classifier exposes the line classifier built from the same config,
// for callers that also need page-level tabular judgement.
func (b *Builder) Classifier() *Classifier { return b.classifier }

// Build groups spans into lines, classifies each line, and emits one
// cell per span. Tabular lines get real column indices and a shared
// table id per contiguous tabular run; non-tabular lines are kept at
// column zero so nothing is dropped. Row is a running counter over
// tabular lines on the page, not a grid coordinate. Amount extraction
// runs on every cell regardless of classification.
func (b *Builder) Build(spans []model.Span, pageNumber int) []model.TableCell {
	lines := model.GroupLines(spans)

	cells := []model.TableCell{}
	row := 0
	tableID := 0
	inTable := false

	for _, line := range lines {
		tabular := b.classifier.IsTableLine(line.Text)
		if tabular && !inTable {
			tableID++
		}
		inTable = tabular

		for i, s := range line.Spans {
			if strings.TrimSpace(s.Text) == "" {
				continue
			}

			cell := model.TableCell{
				Row:      row,
				Col:      0,
				TextRaw:  s.Text,
				TextNorm: NormalizeText(s.Text),
				BBox:     s.BBox,
				Page:     pageNumber,
				FontName: s.FontName,
				FontSize: s.FontSize,
			}
			if tabular {
				cell.Col = i
				cell.TableID = tableID
			}
			cell.AmountRaw, cell.AmountNorm = ExtractAmount(s.Text)

			cells = append(cells, cell)
		}

		if tabular {
			row++
		}
	}

	return cells
}
