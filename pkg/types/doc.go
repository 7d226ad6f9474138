// SPDX-License-Identifier: MPL-2.0

// Package types holds small value types shared across vkvia packages:
// minute-resolution timestamps used by layer expiration and packed Vulkan
// API versions.
package types
