// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vkvia/vkvia/internal/issue"
)

// newExplainCommand creates `vkvia explain`, which prints the
// troubleshooting guide of a result code.
func newExplainCommand(app *App) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "explain [code]",
		Short: "Explain a result code",
		Long: `Explain a result code and suggest how to fix it.

The code is the exit status of a previous run or its name. A status of
21, 235 (as printed by a POSIX shell) and -- -21 all name
MissingDriverJSON.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			if list {
				listCodes(app.stdout)
				return nil
			}
			return explainCode(app.stdout, args[0])
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list every result code")

	return cmd
}

func listCodes(w io.Writer) {
	for _, i := range issue.Values() {
		fmt.Fprintf(w, "%4d  %s  %s\n", int(i.Code()), KeyStyle.Render(fmt.Sprintf("%-28s", i.Code().String())), i.Code().Message())
	}
}

func explainCode(w io.Writer, name string) error {
	i, err := issue.Lookup(name)
	if err != nil {
		return err
	}
	rendered, err := i.Render(renderStyle(w))
	if err != nil {
		rendered = i.Markdown()
	}
	fmt.Fprint(w, rendered)
	return nil
}

// renderStyle picks a glamour style for w: "auto" on a terminal and
// "notty" otherwise.
func renderStyle(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "auto"
	}
	return "notty"
}
