// SPDX-License-Identifier: MPL-2.0

// Package inventory is the boundary between vkvia and the operating system.
//
// Everything the discovery engine learns about the host (directory listings,
// environment variables, registry values, whether a library can be loaded,
// which packages are installed, the current time) goes through the Provider
// interface. NewHost returns the implementation for the running platform;
// tests use inventorytest.Fake.
package inventory
