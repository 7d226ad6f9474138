// SPDX-License-Identifier: MPL-2.0

// Package discovery enumerates the places a Vulkan installation keeps its
// manifests and libraries.
//
// For every category (drivers, explicit layers, implicit layers, runtimes,
// SDKs and layer settings) the Aggregator walks the sources the loader would
// consult, in precedence order:
//  1. Per-device registry values published by display adapter drivers
//  2. The Khronos registry keys (machine, then user)
//  3. Standard directories
//  4. Path-list environment variables (directories)
//  5. File-list environment variables (files or directories)
//
// Override paths taken from implicit layers are appended after the last step.
// Every probed place is also reported as a Location so a report can show
// where nothing was found.
//
// File organization:
//   - category.go: Category, Origin, ManifestSource, Location and Result
//   - layout.go: per-platform location tables
//   - aggregator.go: the enumeration itself
//   - diagnostic.go: non-fatal problems met while enumerating
package discovery
