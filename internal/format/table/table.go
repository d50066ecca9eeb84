package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column describes one column of a rendered table. Max caps the cell width;
// zero leaves it unbounded.
type Column struct {
	Header string
	Align  Alignment
	Max    int
}

// Render lays out rows under a header line. Cells wider than their column's
// Max are cut with an ellipsis.
func Render(columns []Column, rows [][]string) []string {
	if len(columns) == 0 {
		return nil
	}
	all := make([][]string, 0, len(rows)+1)
	alignments := make([]Alignment, len(columns))
	header := make([]string, len(columns))
	for c, col := range columns {
		header[c] = col.Header
		alignments[c] = col.Align
	}
	all = append(all, header)
	for _, row := range rows {
		cells := make([]string, len(columns))
		for c := range columns {
			if c >= len(row) {
				continue
			}
			cells[c] = clip(row[c], columns[c].Max)
		}
		all = append(all, cells)
	}
	lines := Format(all, alignments)
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return lines
}

// Format returns the rows padded according to the widest entry in each column.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := len(rows[0])
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			if c >= colCount {
				break
			}
			widths[c] = max(widths[c], ansi.StringWidth(cell))
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c >= colCount {
				break
			}
			if c > 0 {
				b.WriteString("  ")
			}
			pad := strings.Repeat(" ", max(widths[c]-ansi.StringWidth(cell), 0))
			if c < len(alignments) && alignments[c] == AlignRight {
				b.WriteString(pad)
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				b.WriteString(pad)
			}
		}
		out[i] = b.String()
	}
	return out
}

func clip(text string, limit int) string {
	if limit <= 0 || ansi.StringWidth(text) <= limit {
		return text
	}
	return truncate.StringWithTail(text, uint(limit), "…")
}
