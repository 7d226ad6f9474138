// SPDX-License-Identifier: MPL-2.0

package report

import (
	"io"
	"strings"
)

type (
	// MarkdownWriter writes a GitHub-flavored Markdown document. Tables are
	// buffered until EndTable because the header row needs the column count.
	MarkdownWriter struct {
		w      io.Writer
		closer io.Closer
		b      strings.Builder
		title  string
		table  *mdTable
		row    []string
		err    error
	}

	mdTable struct {
		title   string
		columns []string
		rows    [][]string
		aligns  []Align
	}
)

var _ Sink = (*MarkdownWriter)(nil)

// NewMarkdown returns a writer producing Markdown on w. The document starts
// with a level-one heading carrying title when it is not empty.
func NewMarkdown(w io.Writer, title string) *MarkdownWriter {
	m := &MarkdownWriter{w: w, title: title}
	if c, ok := w.(io.Closer); ok {
		m.closer = c
	}
	if title != "" {
		m.b.WriteString("# " + title + "\n\n")
	}
	return m
}

func (m *MarkdownWriter) BeginSection(title string) {
	m.b.WriteString("## " + escapeMarkdown(title) + "\n\n")
}

func (m *MarkdownWriter) EndSection() {}

func (m *MarkdownWriter) BeginTable(title string, columns []string) {
	m.table = &mdTable{title: title, columns: columns}
}

func (m *MarkdownWriter) BeginRow() {
	m.row = m.row[:0]
}

func (m *MarkdownWriter) Cell(text string, align Align) {
	if m.table == nil {
		return
	}
	idx := len(m.row)
	for len(m.table.aligns) <= idx {
		m.table.aligns = append(m.table.aligns, AlignLeft)
	}
	if align != AlignLeft && len(m.table.rows) == 0 {
		m.table.aligns[idx] = align
	}
	m.row = append(m.row, escapeMarkdown(text))
}

func (m *MarkdownWriter) EndRow() {
	if m.table == nil {
		return
	}
	m.table.rows = append(m.table.rows, append([]string(nil), m.row...))
	m.row = m.row[:0]
}

func (m *MarkdownWriter) EndTable() {
	if m.table == nil {
		return
	}
	t := m.table
	m.table = nil

	m.b.WriteString("### " + escapeMarkdown(t.title) + "\n\n")
	width := len(t.columns)
	for _, r := range t.rows {
		width = max(width, len(r))
	}
	if width == 0 {
		return
	}

	header := make([]string, width)
	for i := range header {
		if i < len(t.columns) {
			header[i] = escapeMarkdown(t.columns[i])
		}
	}
	m.writeRow(header)

	rule := make([]string, width)
	for i := range rule {
		align := AlignLeft
		if i < len(t.aligns) {
			align = t.aligns[i]
		}
		switch align {
		case AlignRight:
			rule[i] = "---:"
		case AlignCenter:
			rule[i] = ":---:"
		default:
			rule[i] = "---"
		}
	}
	m.writeRow(rule)

	for _, r := range t.rows {
		padded := make([]string, width)
		copy(padded, r)
		m.writeRow(padded)
	}
	m.b.WriteString("\n")
}

func (m *MarkdownWriter) writeRow(cells []string) {
	m.b.WriteString("|")
	for _, c := range cells {
		if c == "" {
			c = " "
		}
		m.b.WriteString(" " + c + " |")
	}
	m.b.WriteString("\n")
}

func (m *MarkdownWriter) Text(line string) {
	m.b.WriteString(escapeMarkdown(line) + "\n\n")
}

// String returns the document produced so far.
func (m *MarkdownWriter) String() string { return m.b.String() }

// Close flushes the buffered document to the underlying writer.
func (m *MarkdownWriter) Close() error {
	if m.table != nil {
		m.EndTable()
	}
	if _, err := io.WriteString(m.w, m.b.String()); err != nil {
		m.err = err
	}
	if m.closer != nil {
		if err := m.closer.Close(); err != nil && m.err == nil {
			m.err = err
		}
	}
	return m.err
}

var markdownEscaper = strings.NewReplacer(
	`|`, `\|`,
	"\r\n", " ",
	"\n", " ",
	"`", "\\`",
	"<", "&lt;",
	">", "&gt;",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
