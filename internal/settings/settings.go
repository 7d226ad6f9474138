// SPDX-License-Identifier: MPL-2.0

// Package settings reads vk_layer_settings.txt files. Each non-comment line
// has the form "<layer>.<setting> = <value>"; settings are grouped by the
// layer prefix for display.
package settings

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/ini.v1"
)

// NoLayer groups settings whose name carries no layer prefix.
const NoLayer = "--None--"

type (
	// Reader reads whole files. inventory.Provider satisfies it.
	Reader interface {
		ReadFile(path string) ([]byte, error)
	}

	// Setting is one name/value pair with the layer prefix removed.
	Setting struct {
		Name  string
		Value string
	}

	// Group holds the settings of one layer in file order.
	Group struct {
		Layer    string
		Settings []Setting
	}

	// File is a parsed settings file.
	File struct {
		Path   string
		Groups []Group
	}
)

var loadOptions = ini.LoadOptions{
	AllowShadows:               true,
	AllowDuplicateShadowValues: true,
	IgnoreInlineComment:        true,
	IgnoreContinuation:         true,
	PreserveSurroundedQuote:    true,
	SkipUnrecognizableLines:    true,
	KeyValueDelimiters:         "=",
}

// Load reads and parses the settings file at path.
func Load(r Reader, path string) (*File, error) {
	data, err := r.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file %s: %w", path, err)
	}
	groups, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse settings file %s: %w", path, err)
	}
	return &File{Path: path, Groups: groups}, nil
}

// Parse returns the settings in data grouped by layer. Groups are sorted by
// layer name; settings keep their order within a group, duplicates included.
func Parse(data []byte) ([]Group, error) {
	cfg, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, err
	}

	byLayer := make(map[string][]Setting)
	var layers []string
	for _, sec := range cfg.Sections() {
		for _, key := range sec.Keys() {
			layer, name := splitName(key.Name())
			if _, seen := byLayer[layer]; !seen {
				layers = append(layers, layer)
			}
			for _, v := range key.ValueWithShadows() {
				byLayer[layer] = append(byLayer[layer], Setting{Name: name, Value: strings.TrimSpace(v)})
			}
		}
	}

	slices.Sort(layers)
	groups := make([]Group, 0, len(layers))
	for _, l := range layers {
		groups = append(groups, Group{Layer: l, Settings: byLayer[l]})
	}
	return groups, nil
}

func splitName(key string) (layer, name string) {
	key = strings.TrimSpace(key)
	if l, n, ok := strings.Cut(key, "."); ok {
		return l, n
	}
	return NoLayer, key
}
