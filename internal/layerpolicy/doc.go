// SPDX-License-Identifier: MPL-2.0

// Package layerpolicy decides whether an implicit layer is in effect.
//
// Three gates apply in order: an enable variable that turns the layer off by
// default, a disable variable that always wins, and an expiration date. The
// expiration is compared field by field, and a layer whose expiration has
// been reached is reported as expired yet enabled; that polarity matches how
// the Vulkan loader's opt-in layers have historically been reported by this
// tool and is covered by tests.
package layerpolicy
