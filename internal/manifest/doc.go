// SPDX-License-Identifier: MPL-2.0

// Package manifest parses Vulkan driver (ICD) and layer manifests and resolves
// the library paths they declare.
//
// Parsing is deliberately permissive below the required top-level block: a
// missing optional field is recorded as FieldMissing and rendered "MISSING!",
// a list field of the wrong shape as FieldInvalid ("NOT AN ARRAY!"). Only an
// unreadable file, invalid JSON, or a missing ICD/layer block yields a
// *ParseError, and that error only concerns the one manifest.
package manifest
