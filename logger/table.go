package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Table renders a two-border box-drawing table for run summaries.
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
}

func NewTable(headers []string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	return &Table{headers: headers, widths: widths}
}

func (t *Table) AddRow(cells ...string) {
	if len(cells) > len(t.headers) {
		cells = cells[:len(t.headers)]
	} else if len(cells) < len(t.headers) {
		padded := make([]string, len(t.headers))
		copy(padded, cells)
		cells = padded
	}

	for i, cell := range cells {
		if len(cell) > t.widths[i] {
			t.widths[i] = len(cell)
		}
	}
	t.rows = append(t.rows, cells)
}

func (t *Table) Print() {
	t.Render(os.Stdout)
}

func (t *Table) Render(w io.Writer) {
	var sb strings.Builder

	writeRule(&sb, t.widths, "┌", "┬", "┐")
	t.writeRow(&sb, t.headers)
	writeRule(&sb, t.widths, "├", "┼", "┤")
	for _, row := range t.rows {
		t.writeRow(&sb, row)
	}
	writeRule(&sb, t.widths, "└", "┴", "┘")

	fmt.Fprint(w, sb.String())
}

func (t *Table) writeRow(sb *strings.Builder, cells []string) {
	sb.WriteString("│")
	for i, cell := range cells {
		fmt.Fprintf(sb, " %-*s │", t.widths[i], cell)
	}
	sb.WriteString("\n")
}

func writeRule(sb *strings.Builder, widths []int, left, mid, right string) {
	sb.WriteString(left)
	for i, w := range widths {
		sb.WriteString(strings.Repeat("─", w+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	sb.WriteString("\n")
}
