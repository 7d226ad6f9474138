// SPDX-License-Identifier: MPL-2.0

package report

import (
	"bufio"
	"fmt"
	"html"
	"html/template"
	"io"
)

var pageHead = template.Must(template.New("head").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <style>
        body {
            background-color: #0b1e48;
            color: #ffffff;
            font-family: sans-serif;
        }
        h1.title {
            font-size: 40px;
            text-align: center;
        }
        h1.version {
            font-size: 22px;
            text-align: center;
        }
        h1.section {
            font-size: 32px;
            text-align: center;
        }
        p.text {
            font-size: 18px;
            text-align: center;
        }
        table {
            min-width: 600px;
            width: 70%;
            margin: 0 auto 24px auto;
            border-collapse: collapse;
            border-color: grey;
        }
        th.header {
            padding: 14px;
            border: 1px solid #ccc;
            font-size: 18px;
            color: #fff;
            background-color: rgba(255,255,255,0.5);
        }
        th.column {
            padding: 8px;
            border: 1px solid #ccc;
            font-size: 15px;
            color: #fff;
            background-color: rgba(255,255,255,0.25);
        }
        td {
            padding: 10px;
            border: 1px solid #ccc;
            font-size: 16px;
        }
        tr.odd {
            background-color: rgba(0,0,0,0.6);
            color: rgb(255,255,255);
        }
        tr.even {
            background-color: rgba(0,0,0,0.7);
            color: rgb(220,220,220);
        }
    </style>
</head>
<body>
    <h1 class="title">{{.Title}}</h1>
{{- if .Version}}
    <h1 class="version">{{.Version}}</h1>
{{- end}}
`))

type (
	// HTMLWriter writes a standalone HTML page. Write errors are sticky: the
	// first one stops further output and is returned by Close.
	HTMLWriter struct {
		w       *bufio.Writer
		closer  io.Closer
		title   string
		version string
		started bool
		odd     bool
		err     error
	}

	// HTMLOption configures an HTMLWriter.
	HTMLOption func(*HTMLWriter)
)

var _ Sink = (*HTMLWriter)(nil)

// WithPageTitle sets the page title. Defaults to "vkvia".
func WithPageTitle(title string) HTMLOption {
	return func(h *HTMLWriter) { h.title = title }
}

// WithVersion prints the application version under the title.
func WithVersion(version string) HTMLOption {
	return func(h *HTMLWriter) { h.version = version }
}

// NewHTML returns a writer producing HTML on w. When w is also an io.Closer
// it is closed by Close.
func NewHTML(w io.Writer, opts ...HTMLOption) *HTMLWriter {
	h := &HTMLWriter{w: bufio.NewWriter(w), title: "vkvia"}
	if c, ok := w.(io.Closer); ok {
		h.closer = c
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *HTMLWriter) printf(format string, args ...any) {
	if h.err != nil {
		return
	}
	h.start()
	if h.err != nil {
		return
	}
	_, h.err = fmt.Fprintf(h.w, format, args...)
}

func (h *HTMLWriter) start() {
	if h.started {
		return
	}
	h.started = true
	h.err = pageHead.Execute(h.w, struct{ Title, Version string }{h.title, h.version})
}

func (h *HTMLWriter) BeginSection(title string) {
	h.printf("    <h1 class=\"section\">%s</h1>\n", html.EscapeString(title))
}

func (h *HTMLWriter) EndSection() {
	h.printf("    <br/>\n")
}

func (h *HTMLWriter) BeginTable(title string, columns []string) {
	span := max(len(columns), 1)
	h.printf("    <table>\n        <tr><th class=\"header\" colspan=\"%d\">%s</th></tr>\n", span, html.EscapeString(title))
	if len(columns) > 0 {
		h.printf("        <tr>")
		for _, c := range columns {
			h.printf("<th class=\"column\">%s</th>", html.EscapeString(c))
		}
		h.printf("</tr>\n")
	}
	h.odd = true
}

func (h *HTMLWriter) BeginRow() {
	class := "even"
	if h.odd {
		class = "odd"
	}
	h.printf("        <tr class=%q>\n", class)
}

func (h *HTMLWriter) Cell(text string, align Align) {
	if align == AlignLeft {
		h.printf("            <td>%s</td>\n", html.EscapeString(text))
		return
	}
	h.printf("            <td align=%q>%s</td>\n", align.String(), html.EscapeString(text))
}

func (h *HTMLWriter) EndRow() {
	h.printf("        </tr>\n")
	h.odd = !h.odd
}

func (h *HTMLWriter) EndTable() {
	h.printf("    </table>\n")
}

func (h *HTMLWriter) Text(line string) {
	h.printf("    <p class=\"text\">%s</p>\n", html.EscapeString(line))
}

// Close writes the page footer, flushes, and closes the underlying writer
// when it is closable.
func (h *HTMLWriter) Close() error {
	h.printf("</body>\n</html>\n")
	if h.err == nil {
		h.err = h.w.Flush()
	}
	if h.closer != nil {
		if err := h.closer.Close(); err != nil && h.err == nil {
			h.err = err
		}
	}
	return h.err
}
