// SPDX-License-Identifier: MPL-2.0

package report

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 100

// RenderTerminal renders a Markdown document for display in a terminal. A
// width of zero disables word wrapping.
func RenderTerminal(markdown string, width int) (string, error) {
	var rendererOpts []glamour.TermRendererOption
	rendererOpts = append(rendererOpts, glamour.WithAutoStyle())
	if width > 0 {
		rendererOpts = append(rendererOpts, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// TerminalWidth returns the column count of f when it is a terminal and
// DefaultWidth otherwise.
func TerminalWidth(f *os.File) int {
	if f == nil {
		return DefaultWidth
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return DefaultWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}
