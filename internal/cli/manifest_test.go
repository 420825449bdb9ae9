package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msimader/septex/pkg/errors"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, `
output = "`+filepath.ToSlash(filepath.Join(dir, "report"))+`"
title = "Quarterly Report"
author = "Finance"
wrap_length = 100

[[block]]
kind = "heading"
text = "Overview"

[[block]]
kind = "text"
text = "All numbers are preliminary."
centered = true

[[block]]
kind = "math"
environment = "align"
lines = ["x &= 1", "y &= 2"]
`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Title != "Quarterly Report" {
		t.Errorf("Title = %q", m.Title)
	}
	if len(m.Blocks) != 3 {
		t.Fatalf("parsed %d blocks, want 3", len(m.Blocks))
	}
	if m.Blocks[2].Environment != "align" {
		t.Errorf("math environment = %q", m.Blocks[2].Environment)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing output", `title = "x"`},
		{"unknown block kind", "output = \"o\"\n[[block]]\nkind = \"table\"\ntext = \"x\"\n"},
		{"heading without text", "output = \"o\"\n[[block]]\nkind = \"heading\"\n"},
		{"math without lines", "output = \"o\"\n[[block]]\nkind = \"math\"\n"},
		{"block without kind", "output = \"o\"\n[[block]]\ntext = \"x\"\n"},
		{"invalid toml", `output = `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.content)
			if _, err := LoadManifest(path); !errors.Is(err, errors.ErrCodeInvalidManifest) {
				t.Errorf("got %v, want INVALID_MANIFEST", err)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadManifest(filepath.Join(t.TempDir(), "nope.toml")); !errors.Is(err, errors.ErrCodeInvalidManifest) {
			t.Errorf("got %v, want INVALID_MANIFEST", err)
		}
	})
}

func TestManifestRender(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.tex")
	m := &Manifest{
		Output: out,
		Title:  "Report",
		Blocks: []Block{
			{Kind: blockHeading, Text: "Intro"},
			{Kind: blockText, Text: "Hello.", Centered: true},
			{Kind: blockMath, Lines: []string{"1 + 1 = 2"}},
		},
	}

	doc, err := m.Render()
	if err != nil {
		t.Fatal(err)
	}
	if !doc.Saved() {
		t.Fatal("document not saved")
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	got := string(raw)
	for _, want := range []string{
		"\\title{Report}",
		"\\section*{Intro}",
		"\\begin{center}",
		"Hello.",
		"\\begin{gather*}",
		"1 + 1 = 2",
		"\\end{gather*}",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered document missing %q:\n%s", want, got)
		}
	}
}

func TestBuildDemoDocument(t *testing.T) {
	out := filepath.Join(t.TempDir(), "demo.tex")

	doc, err := buildDemoDocument(out)
	if err != nil {
		t.Fatal(err)
	}
	if !doc.Saved() {
		t.Fatal("demo document not saved")
	}

	got := doc.String()
	for _, want := range []string{
		"\\usepackage{tikz}",
		"\\usepackage{xcolor}",
		"\\usetikzlibrary{arrows}",
		"\\usetikzlibrary{positioning}",
		"\\definecolor{WHITE}{RGB}{255, 255, 255}",
		"\\begin{tikzpicture}",
		"\\begin{scope}",
		"\\caption{Arrow tip styles}",
		"\\label{fig:pipeline}",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("demo document missing %q", want)
		}
	}
}
