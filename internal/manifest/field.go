// SPDX-License-Identifier: MPL-2.0

package manifest

import "strconv"

// Display markers for fields that are absent or of the wrong shape.
const (
	MarkerMissing     = "MISSING!"
	MarkerNotArray    = "NOT AN ARRAY!"
	MarkerNotString   = "NOT A STRING!"
	MarkerBothDefined = "BOTH DEFINED!"
)

const (
	// FieldMissing means the key was not present.
	FieldMissing FieldState = iota
	// FieldPresent means the key was present with a usable value.
	FieldPresent
	// FieldInvalid means the key was present but its value has the wrong shape.
	FieldInvalid
)

type (
	// FieldState records whether a manifest key was present and well-formed.
	FieldState int

	// Field is one scalar manifest value read permissively.
	Field struct {
		Value string
		State FieldState
	}

	// StringList is an ordered list of strings, e.g. component_layers or
	// override_paths.
	StringList struct {
		Items []string
		State FieldState
	}

	// Extension is one entry of a device_extensions or instance_extensions list.
	Extension struct {
		Name        Field
		SpecVersion Field
	}

	// ExtensionList preserves declaration order.
	ExtensionList struct {
		Items []Extension
		State FieldState
	}
)

// Present reports whether the field holds a usable value.
func (f Field) Present() bool { return f.State == FieldPresent }

// Display returns the value, or the marker explaining why there is none.
func (f Field) Display() string {
	switch f.State {
	case FieldPresent:
		return f.Value
	case FieldInvalid:
		return MarkerNotString
	default:
		return MarkerMissing
	}
}

// Display summarizes the list: its length, or a marker.
func (l StringList) Display() string {
	switch l.State {
	case FieldPresent:
		return strconv.Itoa(len(l.Items))
	case FieldInvalid:
		return MarkerNotArray
	default:
		return MarkerMissing
	}
}

// Display summarizes the list: its length, or a marker.
func (l ExtensionList) Display() string {
	switch l.State {
	case FieldPresent:
		return strconv.Itoa(len(l.Items))
	case FieldInvalid:
		return MarkerNotArray
	default:
		return MarkerMissing
	}
}

// Names returns the extension names in declaration order. Entries without a
// name appear as the missing marker.
func (l ExtensionList) Names() []string {
	names := make([]string, 0, len(l.Items))
	for _, ext := range l.Items {
		names = append(names, ext.Name.Display())
	}
	return names
}
