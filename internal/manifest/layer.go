// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"github.com/vkvia/vkvia/pkg/types"

	"cuelang.org/go/cue"
)

const (
	sectionLayer  = "layer"
	sectionLayers = "layers"
)

const (
	// BindingLibrary means the layer names a library_path only.
	BindingLibrary Binding = iota
	// BindingComponents means the layer is a meta-layer listing component_layers.
	BindingComponents
	// BindingBoth means both keys are present; a manifest error.
	BindingBoth
	// BindingNeither means neither key is present; a manifest error.
	BindingNeither
)

type (
	// Binding says how a layer is backed: by a library or by other layers.
	Binding int

	// EnvGate is the first variable/value pair of an enable_environment or
	// disable_environment object.
	EnvGate struct {
		Variable string
		Value    string
	}

	// Layer is one layer block from a layer manifest. Explicit and implicit
	// layers share the shape; the gate, expiration and override fields are
	// only meaningful for implicit layers.
	Layer struct {
		// Path is the manifest file the layer was read from.
		Path string
		// Index is the position within a "layers" array, 0 for a single "layer".
		Index int

		FileFormatVersion     Field
		Name                  Field
		Type                  Field
		Description           Field
		APIVersion            Field
		ImplementationVersion Field
		LibraryPath           Field
		ComponentLayers       StringList
		DeviceExtensions      ExtensionList
		InstanceExtensions    ExtensionList

		EnableEnvironment  *EnvGate
		DisableEnvironment *EnvGate
		// Expiration is set when the expiration field parses; ExpirationRaw
		// keeps the original text either way.
		Expiration    *types.Timestamp
		ExpirationRaw Field
		OverridePaths StringList
	}
)

// Binding classifies the library_path / component_layers combination.
func (l *Layer) Binding() Binding {
	hasLib := l.LibraryPath.State != FieldMissing
	hasComponents := l.ComponentLayers.State != FieldMissing
	switch {
	case hasLib && hasComponents:
		return BindingBoth
	case hasLib:
		return BindingLibrary
	case hasComponents:
		return BindingComponents
	default:
		return BindingNeither
	}
}

// LoadLayers reads and parses the layer manifest at path.
func LoadLayers(r Reader, path string) ([]*Layer, error) {
	data, err := r.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Kind: KindUnreadable, Path: path, Err: err}
	}
	return ParseLayers(path, data)
}

// ParseLayers parses a layer manifest holding either one "layer" object or a
// "layers" array. One of the two is required.
func ParseLayers(path string, data []byte) ([]*Layer, error) {
	root, err := compile(path, data)
	if err != nil {
		return nil, err
	}
	formatVersion := readField(root, "file_format_version")

	if single := lookup(root, sectionLayer); single.Exists() && single.Kind() == cue.StructKind {
		return []*Layer{parseLayer(path, 0, formatVersion, single)}, nil
	}

	multi := lookup(root, sectionLayers)
	if !multi.Exists() || multi.Kind() != cue.ListKind {
		return nil, &ParseError{Kind: KindMissingSection, Path: path, Section: sectionLayer}
	}

	iter, err := multi.List()
	if err != nil {
		return nil, &ParseError{Kind: KindMissingSection, Path: path, Section: sectionLayer, Err: err}
	}
	var layers []*Layer
	for i := 0; iter.Next(); i++ {
		if iter.Value().Kind() != cue.StructKind {
			continue
		}
		layers = append(layers, parseLayer(path, i, formatVersion, iter.Value()))
	}
	if len(layers) == 0 {
		return nil, &ParseError{Kind: KindMissingSection, Path: path, Section: sectionLayer}
	}
	return layers, nil
}

func parseLayer(path string, index int, formatVersion Field, v cue.Value) *Layer {
	layer := &Layer{
		Path:                  path,
		Index:                 index,
		FileFormatVersion:     formatVersion,
		Name:                  readField(v, "name"),
		Type:                  readField(v, "type"),
		Description:           readField(v, "description"),
		APIVersion:            readField(v, "api_version"),
		ImplementationVersion: readField(v, "implementation_version"),
		LibraryPath:           readField(v, "library_path"),
		ComponentLayers:       readStringList(v, "component_layers"),
		DeviceExtensions:      readExtensions(v, "device_extensions"),
		InstanceExtensions:    readExtensions(v, "instance_extensions"),
		EnableEnvironment:     readEnvGate(v, "enable_environment"),
		DisableEnvironment:    readEnvGate(v, "disable_environment"),
		ExpirationRaw:         readField(v, "expiration"),
		OverridePaths:         readStringList(v, "override_paths"),
	}

	if layer.ExpirationRaw.Present() {
		if ts, err := types.ParseTimestamp(layer.ExpirationRaw.Value); err == nil {
			layer.Expiration = &ts
		} else {
			layer.ExpirationRaw.State = FieldInvalid
		}
	}
	return layer
}
