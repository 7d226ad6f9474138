// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// timestampLength is the length of the YYYY-MM-DD-HH-MM form used by layer manifests.
const timestampLength = 16

// ErrInvalidTimestamp is the sentinel error wrapped by InvalidTimestampError.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

type (
	// Timestamp is a wall-clock instant at minute resolution.
	// Fields are compared individually, never as a chronological whole.
	Timestamp struct {
		Year   int
		Month  int
		Day    int
		Hour   int
		Minute int
	}

	// InvalidTimestampError is returned when a YYYY-MM-DD-HH-MM string does
	// not parse.
	InvalidTimestampError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *InvalidTimestampError) Error() string {
	return fmt.Sprintf("invalid timestamp %q (want YYYY-MM-DD-HH-MM)", e.Value)
}

// Unwrap returns ErrInvalidTimestamp for errors.Is.
func (e *InvalidTimestampError) Unwrap() error { return ErrInvalidTimestamp }

// TimestampOf truncates t to a Timestamp in t's location.
func TimestampOf(t time.Time) Timestamp {
	return Timestamp{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}
}

// ParseTimestamp parses the 16-character YYYY-MM-DD-HH-MM form. Fields are
// split on dashes and read with Atoi, so stray characters inside a field are
// ignored and absent trailing fields are zero.
func ParseTimestamp(s string) (Timestamp, error) {
	if len(s) != timestampLength || !strings.Contains(s, "-") {
		return Timestamp{}, &InvalidTimestampError{Value: s}
	}

	var fields [5]int
	for i, part := range strings.SplitN(s, "-", len(fields)+1) {
		if i == len(fields) || part == "" {
			break
		}
		fields[i] = Atoi(part)
	}

	return Timestamp{Year: fields[0], Month: fields[1], Day: fields[2], Hour: fields[3], Minute: fields[4]}, nil
}

// AnyFieldAfter reports whether at least one of t's fields is strictly
// greater than the same field of other.
func (t Timestamp) AnyFieldAfter(other Timestamp) bool {
	return t.Year > other.Year ||
		t.Month > other.Month ||
		t.Day > other.Day ||
		t.Hour > other.Hour ||
		t.Minute > other.Minute
}

// String renders the timestamp as "Y/M/D H:M" without zero padding.
func (t Timestamp) String() string {
	return fmt.Sprintf("%d/%d/%d %d:%d", t.Year, t.Month, t.Day, t.Hour, t.Minute)
}
