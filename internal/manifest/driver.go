// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"

	"github.com/vkvia/vkvia/pkg/cueutil"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

const sectionICD = "ICD"

type (
	// Reader reads manifest files. inventory.Provider satisfies it.
	Reader interface {
		ReadFile(path string) ([]byte, error)
	}

	// Driver is the content of an ICD manifest.
	Driver struct {
		// Path is the manifest file the driver was read from.
		Path               string
		FileFormatVersion  Field
		APIVersion         Field
		LibraryPath        Field
		LibraryArch        Field
		DeviceExtensions   ExtensionList
		InstanceExtensions ExtensionList
	}
)

// LoadDriver reads and parses the driver manifest at path.
func LoadDriver(r Reader, path string) (*Driver, error) {
	data, err := r.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Kind: KindUnreadable, Path: path, Err: err}
	}
	return ParseDriver(path, data)
}

// ParseDriver parses an ICD manifest. The ICD block is required; everything
// else is read permissively.
func ParseDriver(path string, data []byte) (*Driver, error) {
	root, err := compile(path, data)
	if err != nil {
		return nil, err
	}

	icd := lookup(root, sectionICD)
	if !icd.Exists() || icd.Kind() != cue.StructKind {
		return nil, &ParseError{Kind: KindMissingSection, Path: path, Section: sectionICD}
	}

	return &Driver{
		Path:               path,
		FileFormatVersion:  readField(root, "file_format_version"),
		APIVersion:         readField(icd, "api_version"),
		LibraryPath:        readField(icd, "library_path"),
		LibraryArch:        readField(icd, "library_arch"),
		DeviceExtensions:   readExtensions(icd, "device_extensions"),
		InstanceExtensions: readExtensions(icd, "instance_extensions"),
	}, nil
}

// compile turns raw bytes into a cue.Value, mapping decode failures to
// KindMalformed.
func compile(path string, data []byte) (cue.Value, error) {
	v, err := cueutil.CompileJSON(cuecontext.New(), path, data)
	if err != nil {
		detail := err.Error()
		var syntaxErr *cueutil.SyntaxError
		if errors.As(err, &syntaxErr) {
			detail = syntaxErr.Message
		}
		return cue.Value{}, &ParseError{Kind: KindMalformed, Path: path, Detail: detail, Err: err}
	}
	if v.Kind() != cue.StructKind {
		return cue.Value{}, &ParseError{Kind: KindMalformed, Path: path, Detail: "top-level value is not an object"}
	}
	return v, nil
}
