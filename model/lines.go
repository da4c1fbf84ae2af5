package model

import (
	"sort"
	"strings"
)

// Line is a horizontal group of spans sharing a baseline, with the
// assembled line text.
type Line struct {
	Spans []Span
	Text  string
	Y     float64
}

// minLineTolerance is the floor for the Y-grouping tolerance, in
// points. Protects against zero-size fonts in malformed PDFs.
const minLineTolerance = 2.0

// GroupLines groups spans into text lines by Y position and orders
// each line's spans left to right. Tolerance adapts to the average
// font size so tightly leaded documents don't merge adjacent lines.
func GroupLines(spans []Span) []Line {
	if len(spans) == 0 {
		return nil
	}

	tol := lineTolerance(spans)

	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		yDiff := sorted[i].BBox.Y0 - sorted[j].BBox.Y0
		if yDiff > tol || yDiff < -tol {
			return yDiff > 0 // higher Y first (top of page)
		}
		return false // same line, preserve stream order
	})

	var groups [][]Span
	var current []Span
	for _, s := range sorted {
		if len(current) == 0 {
			current = append(current, s)
			continue
		}
		avgY := averageY(current)
		d := s.BBox.Y0 - avgY
		if d >= -tol && d <= tol {
			current = append(current, s)
		} else {
			groups = append(groups, current)
			current = []Span{s}
		}
	}
	groups = append(groups, current)

	lines := make([]Line, 0, len(groups))
	for _, g := range groups {
		sort.SliceStable(g, func(i, j int) bool {
			return g[i].BBox.X0 < g[j].BBox.X0
		})
		lines = append(lines, Line{
			Spans: g,
			Text:  assembleLineText(g),
			Y:     averageY(g),
		})
	}
	return lines
}

// lineTolerance derives the Y-grouping tolerance from average font size.
func lineTolerance(spans []Span) float64 {
	total := 0.0
	for _, s := range spans {
		total += s.FontSize
	}
	tol := total / float64(len(spans)) * 0.5
	if tol < minLineTolerance {
		tol = minLineTolerance
	}
	return tol
}

func averageY(spans []Span) float64 {
	total := 0.0
	for _, s := range spans {
		total += s.BBox.Y0
	}
	return total / float64(len(spans))
}

// assembleLineText joins span texts left to right, inserting a space
// where the horizontal gap between spans is significant.
func assembleLineText(spans []Span) string {
	var sb strings.Builder
	for i, s := range spans {
		if i > 0 {
			prev := spans[i-1]
			gap := s.BBox.X0 - prev.BBox.X1
			if gap > s.FontSize*0.2 {
				sb.WriteString(" ")
			}
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// PageText assembles the full page text from grouped lines, one line
// per newline, top to bottom.
func PageText(lines []Line) string {
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(line.Text)
	}
	return sb.String()
}
