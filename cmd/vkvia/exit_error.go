// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/vkvia/vkvia/internal/result"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE
// handlers. An analysis failure carries its result code and no Err; the
// summary line has already been printed.
type ExitError struct {
	Code result.Code
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d (%s)", int(e.Code), e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}
