// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/vkvia/vkvia/internal/issue"
	"github.com/vkvia/vkvia/internal/result"
)

func TestExplainCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "magnitude", args: []string{"21"}, want: "MissingDriverJSON"},
		{name: "negative after dash", args: []string{"--", "-21"}, want: "MissingDriverJSON"},
		{name: "shell status", args: []string{"196"}, want: "TestFailed"},
		{name: "name", args: []string{"missingdriverlib"}, want: "MissingDriverLib"},
		{name: "zero", args: []string{"0"}, want: "Successful"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ta := newTestApp(healthyHost())
			if err := ta.run(t, append([]string{"explain"}, tt.args...)...); err != nil {
				t.Fatalf("explain %v error = %v", tt.args, err)
			}
			if !strings.Contains(ta.stdout.String(), tt.want) {
				t.Errorf("explain %v output lacks %q:\n%s", tt.args, tt.want, ta.stdout)
			}
		})
	}
}

func TestExplainUnknownCode(t *testing.T) {
	t.Parallel()

	ta := newTestApp(healthyHost())
	err := ta.run(t, "explain", "99")
	if !errors.Is(err, issue.ErrUnknownCode) {
		t.Fatalf("explain 99 error = %v, want ErrUnknownCode", err)
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || !ae.HasSuggestions() {
		t.Errorf("explain 99 error = %v, want suggestions", err)
	}
}

func TestExplainArgs(t *testing.T) {
	t.Parallel()

	ta := newTestApp(healthyHost())
	if err := ta.run(t, "explain"); err == nil {
		t.Error("explain without a code should fail")
	}
	if err := ta.run(t, "explain", "--list", "21"); err == nil {
		t.Error("explain --list with a code should fail")
	}
}

func TestExplainList(t *testing.T) {
	t.Parallel()

	ta := newTestApp(healthyHost())
	if err := ta.run(t, "explain", "--list"); err != nil {
		t.Fatalf("explain --list error = %v", err)
	}
	out := ta.stdout.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(result.Codes()) {
		t.Errorf("explain --list printed %d lines, want %d", len(lines), len(result.Codes()))
	}
	for _, c := range result.Codes() {
		if !strings.Contains(out, c.String()) {
			t.Errorf("explain --list lacks %s", c)
		}
	}
}

func TestRenderStyle(t *testing.T) {
	t.Parallel()

	if got := renderStyle(&bytes.Buffer{}); got != "notty" {
		t.Errorf("renderStyle(buffer) = %q, want notty", got)
	}
}
