// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
)

const (
	// SeverityWarning indicates a recoverable discovery warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a non-fatal discovery error diagnostic.
	SeverityError Severity = "error"

	// CodeRegistryReadFailed reports a registry key that exists but could not be read.
	CodeRegistryReadFailed DiagnosticCode = "registry_read_failed"
	// CodeDirUnreadable reports a directory that exists but could not be listed.
	CodeDirUnreadable DiagnosticCode = "dir_unreadable"
	// CodeDeviceQueryFailed reports a failed per-adapter registry query.
	CodeDeviceQueryFailed DiagnosticCode = "device_query_failed"
	// CodeOverrideInvalid reports an empty override path from an implicit layer.
	CodeOverrideInvalid DiagnosticCode = "override_invalid"
)

var (
	// ErrInvalidSeverity is the sentinel error wrapped by InvalidSeverityError.
	ErrInvalidSeverity = errors.New("invalid diagnostic severity")
	// ErrInvalidDiagnosticCode is the sentinel error wrapped by InvalidDiagnosticCodeError.
	ErrInvalidDiagnosticCode = errors.New("invalid diagnostic code")
)

type (
	// Severity represents discovery diagnostic severity.
	Severity string

	// DiagnosticCode is a machine-readable diagnostic identifier.
	DiagnosticCode string

	// InvalidSeverityError is returned when a Severity value is not recognized.
	InvalidSeverityError struct {
		Value Severity
	}

	// InvalidDiagnosticCodeError is returned when a DiagnosticCode is not recognized.
	InvalidDiagnosticCodeError struct {
		Value DiagnosticCode
	}

	// Diagnostic is a problem met while enumerating that did not stop the
	// enumeration. Diagnostics are returned to callers rather than logged so
	// the report decides how to show them.
	Diagnostic struct {
		Severity Severity
		Code     DiagnosticCode
		Message  string
		// Path is the directory, key or file involved (optional).
		Path string
		// Cause is the underlying error (optional).
		Cause error
	}
)

// IsValid returns whether the Severity is one of the defined levels.
func (s Severity) IsValid() (bool, []error) {
	switch s {
	case SeverityWarning, SeverityError:
		return true, nil
	default:
		return false, []error{&InvalidSeverityError{Value: s}}
	}
}

// IsValid returns whether the DiagnosticCode is one of the defined codes.
func (c DiagnosticCode) IsValid() (bool, []error) {
	switch c {
	case CodeRegistryReadFailed, CodeDirUnreadable, CodeDeviceQueryFailed, CodeOverrideInvalid:
		return true, nil
	default:
		return false, []error{&InvalidDiagnosticCodeError{Value: c}}
	}
}

// Error implements the error interface.
func (e *InvalidSeverityError) Error() string {
	return fmt.Sprintf("invalid diagnostic severity %q (valid: warning, error)", e.Value)
}

// Unwrap returns ErrInvalidSeverity for errors.Is() compatibility.
func (e *InvalidSeverityError) Unwrap() error { return ErrInvalidSeverity }

// Error implements the error interface.
func (e *InvalidDiagnosticCodeError) Error() string {
	return fmt.Sprintf("invalid diagnostic code %q", e.Value)
}

// Unwrap returns ErrInvalidDiagnosticCode for errors.Is() compatibility.
func (e *InvalidDiagnosticCodeError) Unwrap() error { return ErrInvalidDiagnosticCode }

// String renders the diagnostic for logs and report rows.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Path != "" {
		msg += " (" + d.Path + ")"
	}
	if d.Cause != nil {
		msg += ": " + d.Cause.Error()
	}
	return msg
}
