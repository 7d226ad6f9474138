// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"cuelang.org/go/cue"
	cuejson "cuelang.org/go/encoding/json"
)

// SyntaxError reports a JSON document that could not be decoded at all.
// Message is the decoder's diagnostic, unchanged.
type SyntaxError struct {
	FilePath string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return e.Message
}

// Unwrap returns the decoder error.
func (e *SyntaxError) Unwrap() error {
	return e.Cause
}

// CompileJSON decodes data as JSON into a cue.Value built on ctx.
// Field order of every object is preserved, so iterating the result with
// Fields() yields keys in declaration order.
func CompileJSON(ctx *cue.Context, filename string, data []byte) (cue.Value, error) {
	if err := CheckFileSize(data, DefaultMaxFileSize, filename); err != nil {
		return cue.Value{}, err
	}

	expr, err := cuejson.Extract(filename, data)
	if err != nil {
		return cue.Value{}, &SyntaxError{FilePath: filename, Message: err.Error(), Cause: err}
	}

	v := ctx.BuildExpr(expr, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return cue.Value{}, FormatError(err, filename)
	}
	return v, nil
}
