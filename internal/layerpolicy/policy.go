// SPDX-License-Identifier: MPL-2.0

package layerpolicy

import (
	"slices"

	"github.com/vkvia/vkvia/internal/manifest"
	"github.com/vkvia/vkvia/pkg/types"
)

const (
	// NoVariable is displayed when a layer declares no gate variable.
	NoVariable = "--NONE--"
	// NotDefined is displayed when a gate variable is absent or zero.
	NotDefined = "Not Defined"
)

type (
	// Env looks up environment variables.
	Env interface {
		Getenv(name string) (string, bool)
	}

	// Gate is the evaluated state of one gate variable.
	Gate struct {
		// Name is the variable the manifest names, or "" when it names none.
		Name string
		// Value is the raw environment value when set.
		Value string
		// Set reports whether the variable exists in the environment.
		Set bool
		// Active reports whether the value parses as a nonzero integer.
		Active bool
	}

	// State is the effective policy for one layer.
	State struct {
		Enabled       bool
		Expired       bool
		Enable        Gate
		Disable       Gate
		Expiration    *types.Timestamp
		OverridePaths []string
	}
)

// Evaluate applies the enable, disable and expiration gates of layer.
func Evaluate(layer *manifest.Layer, env Env, now types.Timestamp) State {
	st := State{
		Enabled:       true,
		Enable:        readGate(layer.EnableEnvironment, env),
		Disable:       readGate(layer.DisableEnvironment, env),
		Expiration:    layer.Expiration,
		OverridePaths: slices.Clone(layer.OverridePaths.Items),
	}

	if st.Enable.Name != "" {
		st.Enabled = st.Enable.Active
	}
	if st.Disable.Active {
		st.Enabled = false
	}
	if st.Expiration != nil && st.Enabled {
		st.Expired = !st.Expiration.AnyFieldAfter(now)
		st.Enabled = st.Expired
	}
	return st
}

func readGate(g *manifest.EnvGate, env Env) Gate {
	if g == nil || g.Variable == "" {
		return Gate{}
	}
	gate := Gate{Name: g.Variable}
	gate.Value, gate.Set = env.Getenv(g.Variable)
	if gate.Set {
		gate.Active = types.Atoi(gate.Value) != 0
	}
	return gate
}

// Display returns EXPIRED, ENABLED or DISABLED.
func (s State) Display() string {
	switch {
	case s.Expired:
		return "EXPIRED"
	case s.Enabled:
		return "ENABLED"
	default:
		return "DISABLED"
	}
}

// DisplayName returns the variable name, or NoVariable.
func (g Gate) DisplayName() string {
	if g.Name == "" {
		return NoVariable
	}
	return g.Name
}

// DisplayValue returns the value of an active gate, or NotDefined.
func (g Gate) DisplayValue() string {
	if !g.Active {
		return NotDefined
	}
	return g.Value
}
