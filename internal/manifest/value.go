// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"strconv"

	"cuelang.org/go/cue"
)

func lookup(v cue.Value, name string) cue.Value {
	return v.LookupPath(cue.MakePath(cue.Str(name)))
}

// scalarText renders any JSON scalar as text. Objects and arrays are not scalars.
func scalarText(v cue.Value) (string, bool) {
	switch v.Kind() {
	case cue.StringKind:
		s, err := v.String()
		return s, err == nil
	case cue.IntKind:
		i, err := v.Int64()
		return strconv.FormatInt(i, 10), err == nil
	case cue.FloatKind:
		f, err := v.Float64()
		return strconv.FormatFloat(f, 'g', -1, 64), err == nil
	case cue.BoolKind:
		b, err := v.Bool()
		return strconv.FormatBool(b), err == nil
	case cue.NullKind:
		return "", true
	default:
		return "", false
	}
}

func readField(parent cue.Value, name string) Field {
	v := lookup(parent, name)
	if !v.Exists() {
		return Field{State: FieldMissing}
	}
	s, ok := scalarText(v)
	if !ok {
		return Field{State: FieldInvalid}
	}
	return Field{Value: s, State: FieldPresent}
}

func readStringList(parent cue.Value, name string) StringList {
	v := lookup(parent, name)
	if !v.Exists() {
		return StringList{State: FieldMissing}
	}
	if v.Kind() != cue.ListKind {
		return StringList{State: FieldInvalid}
	}

	list := StringList{State: FieldPresent, Items: []string{}}
	iter, err := v.List()
	if err != nil {
		return StringList{State: FieldInvalid}
	}
	for iter.Next() {
		s, _ := scalarText(iter.Value())
		list.Items = append(list.Items, s)
	}
	return list
}

func readExtensions(parent cue.Value, name string) ExtensionList {
	v := lookup(parent, name)
	if !v.Exists() {
		return ExtensionList{State: FieldMissing}
	}
	if v.Kind() != cue.ListKind {
		return ExtensionList{State: FieldInvalid}
	}

	list := ExtensionList{State: FieldPresent, Items: []Extension{}}
	iter, err := v.List()
	if err != nil {
		return ExtensionList{State: FieldInvalid}
	}
	for iter.Next() {
		item := iter.Value()
		// A bare string is accepted as the extension name.
		if s, ok := scalarText(item); ok && item.Kind() == cue.StringKind {
			list.Items = append(list.Items, Extension{Name: Field{Value: s, State: FieldPresent}, SpecVersion: Field{State: FieldMissing}})
			continue
		}
		list.Items = append(list.Items, Extension{
			Name:        readField(item, "name"),
			SpecVersion: readField(item, "spec_version"),
		})
	}
	return list
}

// readEnvGate returns the first key/value pair of an object-valued field.
func readEnvGate(parent cue.Value, name string) *EnvGate {
	v := lookup(parent, name)
	if !v.Exists() || v.Kind() != cue.StructKind {
		return nil
	}
	iter, err := v.Fields()
	if err != nil || !iter.Next() {
		return nil
	}
	value, _ := scalarText(iter.Value())
	return &EnvGate{Variable: iter.Selector().Unquoted(), Value: value}
}
