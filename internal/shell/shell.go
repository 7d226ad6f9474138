// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ExitNotFound is the status the interpreter reports for an unknown command.
const ExitNotFound = 127

type (
	// Option configures a single Run.
	Option func(*options)

	options struct {
		dir    string
		env    []string
		args   []string
		stdout io.Writer
		stderr io.Writer
	}

	// Result is the outcome of a script that ran to completion.
	Result struct {
		ExitCode  int
		Output    string
		ErrOutput string
	}
)

// WithDir sets the working directory.
func WithDir(dir string) Option {
	return func(o *options) { o.dir = dir }
}

// WithEnv replaces the inherited environment.
func WithEnv(env []string) Option {
	return func(o *options) { o.env = env }
}

// WithArgs sets the positional parameters ($1, $2, ...).
func WithArgs(args ...string) Option {
	return func(o *options) { o.args = args }
}

// WithOutput tees stdout and stderr to w in addition to capturing them.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.stdout = w
		o.stderr = w
	}
}

// Success reports whether the script exited with status 0.
func (r *Result) Success() bool { return r.ExitCode == 0 }

// Run parses and runs script. A non-zero exit status is not an error; errors
// are reserved for scripts that cannot be parsed or interpreted and for
// context cancellation.
func Run(ctx context.Context, script string, opts ...Option) (*Result, error) {
	o := options{env: os.Environ()}
	for _, opt := range opts {
		opt(&o)
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(script), "script")
	if err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	var stdout, stderr bytes.Buffer
	var out, errOut io.Writer = &stdout, &stderr
	if o.stdout != nil {
		out = io.MultiWriter(&stdout, o.stdout)
		errOut = io.MultiWriter(&stderr, o.stderr)
	}

	runnerOpts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(o.env...)),
		interp.StdIO(nil, out, errOut),
	}
	if o.dir != "" {
		runnerOpts = append(runnerOpts, interp.Dir(o.dir))
	}
	// Prepend "--" so arguments such as "-v" are not taken as shell options.
	if len(o.args) > 0 {
		runnerOpts = append(runnerOpts, interp.Params(append([]string{"--"}, o.args...)...))
	}

	runner, err := interp.New(runnerOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create interpreter: %w", err)
	}

	result := &Result{}
	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if !errors.As(err, &exitStatus) {
			return nil, fmt.Errorf("failed to run script: %w", err)
		}
		result.ExitCode = int(exitStatus)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("script canceled: %w", ctxErr)
	}

	result.Output = stdout.String()
	result.ErrOutput = stderr.String()
	return result, nil
}

// Quote returns s quoted for safe interpolation into a script.
func Quote(s string) string {
	quoted, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		// Only strings holding NUL bytes fail; they cannot reach a command line anyway.
		return "''"
	}
	return quoted
}
