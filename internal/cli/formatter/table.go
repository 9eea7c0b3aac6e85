package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// Table collects rows and renders them in aligned columns under a header
// rule. Widths are measured on visible text, so styled cells line up.
type Table struct {
	headers []string
	right   []bool
	rows    [][]string
	empty   string
}

func NewTable(headers ...string) *Table {
	return &Table{headers: headers, right: make([]bool, len(headers))}
}

// AlignRight right-aligns the given column indexes, for numbers.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		if c >= 0 && c < len(t.right) {
			t.right[c] = true
		}
	}
	return t
}

// Empty sets the dimmed message shown instead of the table when it has no rows.
func (t *Table) Empty(msg string) *Table {
	t.empty = msg
	return t
}

// Row appends a row. Missing trailing cells render blank.
func (t *Table) Row(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *Table) String() string {
	if len(t.headers) == 0 {
		return ""
	}
	if len(t.rows) == 0 {
		if t.empty == "" {
			return ""
		}
		return Dim(t.empty) + "\n"
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	header := make([]string, len(t.headers))
	for i, h := range t.headers {
		header[i] = StyleHeader.Render(h)
	}
	t.writeLine(&b, header, widths)

	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = StyleDim.Render(strings.Repeat("─", w))
	}
	t.writeLine(&b, rule, widths)

	for _, row := range t.rows {
		t.writeLine(&b, row, widths)
	}
	return b.String()
}

func (t *Table) writeLine(b *strings.Builder, cells []string, widths []int) {
	var line strings.Builder
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := strings.Repeat(" ", max(w-lipgloss.Width(cell), 0))
		if i > 0 {
			line.WriteString(strings.Repeat(" ", colGap))
		}
		if t.right[i] {
			line.WriteString(pad + cell)
		} else {
			line.WriteString(cell + pad)
		}
	}
	b.WriteString(strings.TrimRight(line.String(), " ") + "\n")
}

// RenderTable renders left-aligned rows, or the dimmed empty message when
// there are none.
func RenderTable(headers []string, rows [][]string, empty string) string {
	t := NewTable(headers...).Empty(empty)
	for _, r := range rows {
		t.Row(r...)
	}
	return t.String()
}
