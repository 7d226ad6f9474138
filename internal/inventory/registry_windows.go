// SPDX-License-Identifier: MPL-2.0

//go:build windows

package inventory

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sys/windows/registry"
)

const uninstallKey = `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`

// adapterClassKeys hold one numbered subkey per display adapter or
// software component driver.
var adapterClassKeys = []string{
	`SYSTEM\CurrentControlSet\Control\Class\{4d36e968-e325-11ce-bfc1-08002be10318}`,
	`SYSTEM\CurrentControlSet\Control\Class\{5c4c3332-344d-483c-8739-259e934c9cc8}`,
}

func hive(scope Scope) registry.Key {
	if scope == ScopeUser {
		return registry.CURRENT_USER
	}
	return registry.LOCAL_MACHINE
}

func openKey(root registry.Key, path string, access uint32) (registry.Key, error) {
	k, err := registry.OpenKey(root, path, access)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return 0, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	return k, nil
}

// RegistryEntries lists the values under key. A DWORD of 0 marks the entry
// enabled; any other data or type leaves it disabled.
func (h *Host) RegistryEntries(scope Scope, key string) ([]RegistryEntry, error) {
	k, err := openKey(hive(scope), key, registry.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer func() { _ = k.Close() }()

	names, err := k.ReadValueNames(0)
	if err != nil {
		return nil, fmt.Errorf("read values of %s: %w", key, err)
	}
	entries := make([]RegistryEntry, 0, len(names))
	for _, name := range names {
		data, _, err := k.GetIntegerValue(name)
		entries = append(entries, RegistryEntry{
			Name:    name,
			Value:   name,
			Enabled: err == nil && data == 0,
		})
	}
	return entries, nil
}

// DeviceRegistryEntries collects valueName from every adapter subkey.
func (h *Host) DeviceRegistryEntries(valueName string) ([]DeviceEntry, error) {
	var entries []DeviceEntry
	for _, classKey := range adapterClassKeys {
		class, err := openKey(registry.LOCAL_MACHINE, classKey, registry.ENUMERATE_SUB_KEYS)
		if err != nil {
			continue
		}
		subkeys, err := class.ReadSubKeyNames(0)
		_ = class.Close()
		if err != nil {
			continue
		}
		for _, sub := range subkeys {
			if sub == "Properties" {
				continue
			}
			for _, path := range readAdapterValue(classKey+`\`+sub, valueName) {
				entries = append(entries, DeviceEntry{Device: sub, Path: path})
			}
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", valueName, ErrNotFound)
	}
	return entries, nil
}

// readAdapterValue accepts both REG_MULTI_SZ and REG_SZ values.
func readAdapterValue(path, valueName string) []string {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE)
	if err != nil {
		return nil
	}
	defer func() { _ = k.Close() }()

	values, _, err := k.GetStringsValue(valueName)
	if errors.Is(err, registry.ErrUnexpectedType) {
		var s string
		if s, _, err = k.GetStringValue(valueName); err == nil {
			values = []string{s}
		}
	}
	if err != nil {
		return nil
	}
	out := values[:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// uninstalledVersion searches the uninstall registry of both hives for a
// product whose key or display name contains name.
func uninstalledVersion(name string) (string, error) {
	needle := strings.ToLower(name)
	for _, root := range []registry.Key{registry.LOCAL_MACHINE, registry.CURRENT_USER} {
		parent, err := registry.OpenKey(root, uninstallKey, registry.ENUMERATE_SUB_KEYS)
		if err != nil {
			continue
		}
		subkeys, err := parent.ReadSubKeyNames(0)
		_ = parent.Close()
		if err != nil {
			continue
		}
		for _, sub := range subkeys {
			if version, ok := matchUninstallEntry(root, sub, needle); ok {
				return version, nil
			}
		}
	}
	return "", fmt.Errorf("package %s: %w", name, ErrNotFound)
}

func matchUninstallEntry(root registry.Key, sub, needle string) (string, bool) {
	k, err := registry.OpenKey(root, uninstallKey+`\`+sub, registry.QUERY_VALUE)
	if err != nil {
		return "", false
	}
	defer func() { _ = k.Close() }()

	display, _, _ := k.GetStringValue("DisplayName")
	if !strings.Contains(strings.ToLower(sub), needle) && !strings.Contains(strings.ToLower(display), needle) {
		return "", false
	}
	if version, _, err := k.GetStringValue("DisplayVersion"); err == nil && version != "" {
		return version, true
	}
	return sub, true
}
