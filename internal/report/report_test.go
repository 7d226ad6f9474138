// SPDX-License-Identifier: MPL-2.0

package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func writeSample(s Sink) {
	s.BeginSection("Drivers")
	s.BeginTable("Driver Manifests", []string{"Key", "Value"})
	KeyRow(s, "Path", "/etc/vulkan/icd.d/a.json")
	KeyRow(s, "Library", "<lib|a>.so")
	s.EndTable()
	s.Text("2 drivers found")
	s.EndSection()
}

func TestHTMLWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := NewHTML(&buf, WithVersion("1.2.3"))
	writeSample(h)
	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>vkvia</title>",
		`<h1 class="version">1.2.3</h1>`,
		`<h1 class="section">Drivers</h1>`,
		`<th class="header" colspan="2">Driver Manifests</th>`,
		`<td align="right">Path</td>`,
		"&lt;lib|a&gt;.so",
		`<p class="text">2 drivers found</p>`,
		"</html>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML output missing %q", want)
		}
	}
}

func TestHTMLWriterZebraRows(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := NewHTML(&buf)
	h.BeginTable("T", nil)
	Row(h, "a")
	Row(h, "b")
	Row(h, "c")
	h.EndTable()
	h.BeginTable("U", nil)
	Row(h, "d")
	h.EndTable()
	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	got := strings.Count(buf.String(), `<tr class="odd">`)
	if got != 3 {
		t.Errorf("odd rows = %d, want 3 (striping restarts per table)", got)
	}
	if got := strings.Count(buf.String(), `<tr class="even">`); got != 1 {
		t.Errorf("even rows = %d, want 1", got)
	}
}

type failWriter struct{}

var errWrite = errors.New("disk full")

func (failWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestHTMLWriterStickyError(t *testing.T) {
	t.Parallel()

	h := NewHTML(failWriter{})
	writeSample(h)
	if err := h.Close(); !errors.Is(err, errWrite) {
		t.Errorf("Close() error = %v, want %v", err, errWrite)
	}
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	m := NewMarkdown(&buf, "vkvia")
	writeSample(m)
	m.BeginTable("No Columns", nil)
	Row(m, "x", "y", "z")
	m.EndTable()
	m.BeginTable("Empty", nil)
	m.EndTable()
	if err := m.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	want := "# vkvia\n\n" +
		"## Drivers\n\n" +
		"### Driver Manifests\n\n" +
		"| Key | Value |\n" +
		"| ---: | --- |\n" +
		"| Path | /etc/vulkan/icd.d/a.json |\n" +
		"| Library | &lt;lib\\|a&gt;.so |\n\n" +
		"2 drivers found\n\n" +
		"### No Columns\n\n" +
		"|   |   |   |\n" +
		"| --- | --- | --- |\n" +
		"| x | y | z |\n\n" +
		"### Empty\n\n"
	if got := buf.String(); got != want {
		t.Errorf("markdown mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestAlignIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		align Align
		want  bool
	}{
		{AlignLeft, true},
		{AlignRight, true},
		{AlignCenter, true},
		{Align(7), false},
	}
	for _, tt := range tests {
		ok, errs := tt.align.IsValid()
		if ok != tt.want {
			t.Errorf("Align(%d).IsValid() = %v, want %v", tt.align, ok, tt.want)
		}
		if !ok && (len(errs) != 1 || !errors.Is(errs[0], ErrInvalidAlign)) {
			t.Errorf("Align(%d).IsValid() errs = %v", tt.align, errs)
		}
	}
}

func TestRecorderAndMulti(t *testing.T) {
	t.Parallel()

	var a, b Recorder
	m := Multi{&a, &b}
	writeSample(m)
	m.Text("outside")
	if err := m.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	for _, r := range []*Recorder{&a, &b} {
		if !r.Closed {
			t.Error("recorder not closed")
		}
		tbl := r.Table("Driver Manifests")
		if tbl == nil {
			t.Fatal("table not recorded")
		}
		row, ok := tbl.FindRow("Library")
		if !ok || row[1] != "<lib|a>.so" {
			t.Errorf("FindRow(Library) = %v, %v", row, ok)
		}
		if tbl.Rows[0][0].Align != AlignRight {
			t.Errorf("key cell align = %v, want right", tbl.Rows[0][0].Align)
		}
		if !r.HasText("2 drivers found") || !r.HasText("outside") {
			t.Errorf("texts = %+v", r.Sections)
		}
		if r.Section("Drivers") == nil {
			t.Error("section Drivers missing")
		}
	}
}

func TestRenderTerminal(t *testing.T) {
	t.Parallel()

	out, err := RenderTerminal("# Title\n\nsome text\n", 40)
	if err != nil {
		t.Fatalf("RenderTerminal() error = %v", err)
	}
	if !strings.Contains(out, "some text") {
		t.Errorf("rendered output missing body: %q", out)
	}
}
