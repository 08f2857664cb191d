// Package table renders fixed-width, column-aligned text tables.
//
// Column widths are fixed when the table is built. Cells that do not fit
// their column are cut and suffixed with an ellipsis at render time; the
// stored rows are never modified by rendering.
package table

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "..."

// ErrColumnCountMismatch is matched by *ColumnCountMismatchError.
var ErrColumnCountMismatch = errors.New("column count mismatch")

// ColumnCountMismatchError is returned by AddRow when the number of cells
// differs from the number of columns.
type ColumnCountMismatchError struct {
	Got  int
	Want int
}

func (e *ColumnCountMismatchError) Error() string {
	return fmt.Sprintf("wrong number of columns in row, provided %d, expected %d", e.Got, e.Want)
}

func (e *ColumnCountMismatchError) Is(target error) bool {
	return target == ErrColumnCountMismatch
}

// Style holds the characters used when rendering.
type Style struct {
	Separator    string
	TitleFill    rune
	OverflowFill rune
}

// DefaultStyle returns the `|` separator, `-` title fill and `.` overflow fill.
func DefaultStyle() Style {
	return Style{Separator: "|", TitleFill: '-', OverflowFill: '.'}
}

func (s Style) normalized() Style {
	def := DefaultStyle()
	if s.Separator == "" {
		s.Separator = def.Separator
	}
	if !oneCell(s.TitleFill) {
		s.TitleFill = def.TitleFill
	}
	if !oneCell(s.OverflowFill) {
		s.OverflowFill = def.OverflowFill
	}
	return s
}

// oneCell reports whether r occupies exactly one terminal cell.
func oneCell(r rune) bool {
	return ansi.StringWidth(string(r)) == 1
}

type Table struct {
	title   string
	headers []string
	widths  []int
	rows    [][]string
	style   Style
}

// AddRow appends a row. Cells are trimmed of surrounding whitespace.
func (t *Table) AddRow(cells ...string) error {
	if len(cells) != len(t.headers) {
		return &ColumnCountMismatchError{Got: len(cells), Want: len(t.headers)}
	}
	row := make([]string, len(cells))
	for i, c := range cells {
		row[i] = strings.TrimSpace(c)
	}
	t.rows = append(t.rows, row)
	return nil
}

// Len returns the number of stored rows.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns the number of columns.
func (t *Table) Columns() int { return len(t.headers) }

// Width is the sum of the column widths, which is also the width of the
// title line.
func (t *Table) Width() int {
	total := 0
	for _, w := range t.widths {
		total += w
	}
	return total
}

func (t *Table) Render() string {
	var b strings.Builder
	b.WriteString(t.titleLine())
	b.WriteByte('\n')
	b.WriteString(t.headerLine())
	b.WriteByte('\n')
	for _, row := range t.rows {
		b.WriteString(t.rowLine(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func (t *Table) String() string { return t.Render() }

func (t *Table) titleLine() string {
	return center(t.title, t.Width(), t.style.TitleFill)
}

func (t *Table) headerLine() string {
	cells := make([]string, len(t.headers))
	for i, h := range t.headers {
		w := t.widths[i]
		if ansi.StringWidth(h) > w {
			cells[i] = formatCell(h, w, t.style.OverflowFill)
			continue
		}
		cells[i] = center(h, w, ' ')
	}
	return strings.Join(cells, t.style.Separator)
}

func (t *Table) rowLine(row []string) string {
	cells := make([]string, len(row))
	for i, c := range row {
		cells[i] = formatCell(c, t.widths[i], t.style.OverflowFill)
	}
	return strings.Join(cells, t.style.Separator)
}

// FormatCell fits text into exactly width cells using the default
// overflow fill.
func FormatCell(text string, width int) string {
	return formatCell(text, width, DefaultStyle().OverflowFill)
}

func formatCell(text string, width int, fill rune) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= width {
		return padRight(text, width)
	}
	if width <= len(ellipsis) {
		return strings.Repeat(string(fill), width)
	}
	return padRight(ansi.Truncate(text, width-len(ellipsis), "")+ellipsis, width)
}

func padRight(text string, width int) string {
	if pad := width - ansi.StringWidth(text); pad > 0 {
		return text + strings.Repeat(" ", pad)
	}
	return text
}

// center places text in the middle of width cells; odd padding goes right.
func center(text string, width int, fill rune) string {
	pad := width - ansi.StringWidth(text)
	if pad <= 0 {
		return text
	}
	left := pad / 2
	f := string(fill)
	return strings.Repeat(f, left) + text + strings.Repeat(f, pad-left)
}
