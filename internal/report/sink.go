// SPDX-License-Identifier: MPL-2.0

package report

import (
	"errors"
	"fmt"
)

// ErrInvalidAlign is the sentinel error wrapped by InvalidAlignError.
var ErrInvalidAlign = errors.New("invalid cell alignment")

type (
	// Align positions a cell's text inside its column.
	Align int

	// InvalidAlignError is returned when an Align value is out of range.
	InvalidAlignError struct {
		Value Align
	}

	// Sink receives the report as it is produced. Calls arrive in document
	// order: a section contains tables and text, a table contains rows, a
	// row contains cells. Writers keep their own row striping state.
	Sink interface {
		BeginSection(title string)
		EndSection()
		BeginTable(title string, columns []string)
		BeginRow()
		Cell(text string, align Align)
		EndRow()
		EndTable()
		Text(line string)
		Close() error
	}
)

const (
	// AlignLeft is the default cell alignment.
	AlignLeft Align = iota
	// AlignRight is used for numeric columns and key names.
	AlignRight
	// AlignCenter centers the text.
	AlignCenter
)

// String returns the CSS keyword for the alignment.
func (a Align) String() string {
	switch a {
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "left"
	}
}

// IsValid returns whether the Align is one of the defined values.
func (a Align) IsValid() (bool, []error) {
	switch a {
	case AlignLeft, AlignRight, AlignCenter:
		return true, nil
	default:
		return false, []error{&InvalidAlignError{Value: a}}
	}
}

// Error implements the error interface.
func (e *InvalidAlignError) Error() string {
	return fmt.Sprintf("invalid cell alignment %d", int(e.Value))
}

// Unwrap returns ErrInvalidAlign for errors.Is() compatibility.
func (e *InvalidAlignError) Unwrap() error { return ErrInvalidAlign }

// Row writes one complete row of left-aligned cells.
func Row(s Sink, cells ...string) {
	s.BeginRow()
	for _, c := range cells {
		s.Cell(c, AlignLeft)
	}
	s.EndRow()
}

// KeyRow writes a row whose first cell is right-aligned, the layout used for
// key/value tables.
func KeyRow(s Sink, key string, values ...string) {
	s.BeginRow()
	s.Cell(key, AlignRight)
	for _, v := range values {
		s.Cell(v, AlignLeft)
	}
	s.EndRow()
}

// Multi fans every call out to several sinks. Close closes all of them and
// joins their errors.
type Multi []Sink

var _ Sink = Multi(nil)

func (m Multi) BeginSection(title string) {
	for _, s := range m {
		s.BeginSection(title)
	}
}

func (m Multi) EndSection() {
	for _, s := range m {
		s.EndSection()
	}
}

func (m Multi) BeginTable(title string, columns []string) {
	for _, s := range m {
		s.BeginTable(title, columns)
	}
}

func (m Multi) BeginRow() {
	for _, s := range m {
		s.BeginRow()
	}
}

func (m Multi) Cell(text string, align Align) {
	for _, s := range m {
		s.Cell(text, align)
	}
}

func (m Multi) EndRow() {
	for _, s := range m {
		s.EndRow()
	}
}

func (m Multi) EndTable() {
	for _, s := range m {
		s.EndTable()
	}
}

func (m Multi) Text(line string) {
	for _, s := range m {
		s.Text(line)
	}
}

func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
