// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
)

const (
	// KindUnreadable means the manifest file could not be read.
	KindUnreadable ErrorKind = iota + 1
	// KindMalformed means the file is not valid JSON.
	KindMalformed
	// KindMissingSection means the required ICD or layer block is absent.
	KindMissingSection
)

var (
	// ErrUnreadable is matched by errors.Is for KindUnreadable parse errors.
	ErrUnreadable = errors.New("manifest unreadable")
	// ErrMalformed is matched by errors.Is for KindMalformed parse errors.
	ErrMalformed = errors.New("manifest malformed")
	// ErrMissingSection is matched by errors.Is for KindMissingSection parse errors.
	ErrMissingSection = errors.New("manifest missing required section")
)

type (
	// ErrorKind classifies a per-manifest failure.
	ErrorKind int

	// ParseError is a failure confined to one manifest. Callers record it and
	// move on to the next source.
	ParseError struct {
		Kind ErrorKind
		// Path is the manifest file.
		Path string
		// Section names the required block for KindMissingSection.
		Section string
		// Detail is the decoder diagnostic for KindMalformed, verbatim.
		Detail string
		// Err is the underlying I/O or decode error, if any.
		Err error
	}
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindUnreadable:
		return "Unreadable"
	case KindMalformed:
		return "Malformed"
	case KindMissingSection:
		return "MissingSection"
	default:
		return "Unknown"
	}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch e.Kind {
	case KindUnreadable:
		return fmt.Sprintf("%s: cannot read manifest: %v", e.Path, e.Err)
	case KindMalformed:
		return fmt.Sprintf("%s: invalid JSON: %s", e.Path, e.Detail)
	case KindMissingSection:
		return fmt.Sprintf("%s: %q section missing", e.Path, e.Section)
	default:
		return e.Path + ": manifest error"
	}
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *ParseError) Unwrap() []error {
	errs := []error{e.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (e *ParseError) sentinel() error {
	switch e.Kind {
	case KindUnreadable:
		return ErrUnreadable
	case KindMalformed:
		return ErrMalformed
	default:
		return ErrMissingSection
	}
}

// Summary is the short text shown in a report row for this failure.
func (e *ParseError) Summary() string {
	switch e.Kind {
	case KindUnreadable:
		return "Error reading JSON file"
	case KindMalformed:
		return e.Detail
	case KindMissingSection:
		if e.Section == sectionICD {
			return "ICD Section MISSING!"
		}
		return "Layer Section MISSING!"
	default:
		return "Unknown manifest error"
	}
}
