package table

// Builder accumulates a title, columns and a style. Build freezes the
// column layout; rows can only be added to the built Table.
type Builder struct {
	title   string
	headers []string
	widths  []int
	style   Style
}

func NewBuilder() *Builder {
	return &Builder{style: DefaultStyle()}
}

func (b *Builder) Title(title string) *Builder {
	b.title = title
	return b
}

// Column adds a column. Negative widths are treated as zero.
func (b *Builder) Column(header string, width int) *Builder {
	if width < 0 {
		width = 0
	}
	b.headers = append(b.headers, header)
	b.widths = append(b.widths, width)
	return b
}

// Style replaces the rendering characters. An empty separator, or a fill
// that is not exactly one cell wide, keeps the default.
func (b *Builder) Style(s Style) *Builder {
	b.style = s.normalized()
	return b
}

func (b *Builder) Build() *Table {
	headers := make([]string, len(b.headers))
	copy(headers, b.headers)
	widths := make([]int, len(b.widths))
	copy(widths, b.widths)
	return &Table{
		title:   b.title,
		headers: headers,
		widths:  widths,
		style:   b.style,
	}
}
