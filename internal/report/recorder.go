// SPDX-License-Identifier: MPL-2.0

package report

import "slices"

type (
	// Recorder is an in-memory Sink that keeps the structure of everything it
	// receives. It is used by tests to inspect report content.
	Recorder struct {
		Sections []*Section
		Closed   bool

		cur   *Section
		table *Table
		row   []Cell
	}

	// Section is one recorded report section.
	Section struct {
		Title  string
		Tables []*Table
		Texts  []string
	}

	// Table is one recorded table.
	Table struct {
		Title   string
		Columns []string
		Rows    [][]Cell
	}

	// Cell is one recorded table cell.
	Cell struct {
		Text  string
		Align Align
	}
)

var _ Sink = (*Recorder)(nil)

func (r *Recorder) BeginSection(title string) {
	r.cur = &Section{Title: title}
	r.Sections = append(r.Sections, r.cur)
}

func (r *Recorder) EndSection() { r.cur = nil }

func (r *Recorder) section() *Section {
	if r.cur == nil {
		r.BeginSection("")
	}
	return r.cur
}

func (r *Recorder) BeginTable(title string, columns []string) {
	r.table = &Table{Title: title, Columns: slices.Clone(columns)}
	s := r.section()
	s.Tables = append(s.Tables, r.table)
}

func (r *Recorder) BeginRow() { r.row = nil }

func (r *Recorder) Cell(text string, align Align) {
	r.row = append(r.row, Cell{Text: text, Align: align})
}

func (r *Recorder) EndRow() {
	if r.table != nil {
		r.table.Rows = append(r.table.Rows, r.row)
	}
	r.row = nil
}

func (r *Recorder) EndTable() { r.table = nil }

func (r *Recorder) Text(line string) {
	s := r.section()
	s.Texts = append(s.Texts, line)
}

func (r *Recorder) Close() error {
	r.Closed = true
	return nil
}

// Section returns the first section with the given title, or nil.
func (r *Recorder) Section(title string) *Section {
	for _, s := range r.Sections {
		if s.Title == title {
			return s
		}
	}
	return nil
}

// Table returns the first table with the given title in any section, or nil.
func (r *Recorder) Table(title string) *Table {
	for _, s := range r.Sections {
		if t := s.Table(title); t != nil {
			return t
		}
	}
	return nil
}

// Table returns the first table in the section with the given title, or nil.
func (s *Section) Table(title string) *Table {
	for _, t := range s.Tables {
		if t.Title == title {
			return t
		}
	}
	return nil
}

// HasText reports whether any section received the exact text line.
func (r *Recorder) HasText(line string) bool {
	for _, s := range r.Sections {
		if slices.Contains(s.Texts, line) {
			return true
		}
	}
	return false
}

// Texts returns the plain text of every row, one slice per row.
func (t *Table) Texts() [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		texts := make([]string, len(row))
		for i, c := range row {
			texts[i] = c.Text
		}
		out = append(out, texts)
	}
	return out
}

// FindRow returns the first row whose cells contain every given text, in any
// position, and whether one was found.
func (t *Table) FindRow(texts ...string) ([]string, bool) {
	for _, row := range t.Texts() {
		if containsAll(row, texts) {
			return row, true
		}
	}
	return nil, false
}

// Contains reports whether any cell in the table has exactly text.
func (t *Table) Contains(text string) bool {
	_, ok := t.FindRow(text)
	return ok
}

func containsAll(row, texts []string) bool {
	for _, want := range texts {
		if !slices.Contains(row, want) {
			return false
		}
	}
	return true
}
