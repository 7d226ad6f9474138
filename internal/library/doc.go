// SPDX-License-Identifier: MPL-2.0

// Package library checks that the shared library a manifest names exists on
// disk and can be loaded.
//
// A reference is first resolved against the manifest's directory. When that
// fails and the reference is a bare file name, the platform's system library
// directories, the library search path variable and finally the dynamic
// loader cache are consulted in turn. A located library is opened with the
// platform loader and released immediately.
package library
