// SPDX-License-Identifier: MPL-2.0

// Package inventorytest provides an in-memory inventory.Provider for tests.
package inventorytest
