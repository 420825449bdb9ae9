package tikz

import (
	"testing"

	"github.com/msimader/septex/pkg/errors"
)

func TestArrowTokens(t *testing.T) {
	tests := []struct {
		arrow Arrow
		want  string
	}{
		{ArrowLine, "-"},
		{ArrowIn, "<-"},
		{ArrowOut, "->"},
		{ArrowInOut, "<->"},
		{ArrowReverseInOut, ">-<"},
		{ArrowBarInOut, "|-|"},
		{ArrowLatexInOut, "latex-latex"},
		{ArrowLatexPrimeOut, "-latex'"},
		{ArrowCircleInOut, "o-o"},
		{Arrow(999), "-"},
	}
	for _, tt := range tests {
		if got := tt.arrow.Token(); got != tt.want {
			t.Errorf("Token(%d) = %q, want %q", tt.arrow, got, tt.want)
		}
	}
}

func TestPathTikZ(t *testing.T) {
	t.Run("open path", func(t *testing.T) {
		p := NewPath(P(0, 0), P(1, 0), P(1, 1))
		want := "\\draw ( 0.000,  0.000) -- ( 1.000,  0.000) -- ( 1.000,  1.000)"
		if got := p.TikZ(); got != want {
			t.Errorf("TikZ() = %q, want %q", got, want)
		}
	})

	t.Run("closed path", func(t *testing.T) {
		p := NewPath(P(0, 0), P(1, 0)).Closed()
		want := "\\draw ( 0.000,  0.000) -- ( 1.000,  0.000) -- cycle"
		if got := p.TikZ(); got != want {
			t.Errorf("TikZ() = %q, want %q", got, want)
		}
	})

	t.Run("styled path", func(t *testing.T) {
		p := NewPath(P(0, 0), P(1, 1)).WithStyle(Style{}.SetFlag("dashed"))
		want := "\\draw[dashed] ( 0.000,  0.000) -- ( 1.000,  1.000)"
		if got := p.TikZ(); got != want {
			t.Errorf("TikZ() = %q, want %q", got, want)
		}
	})

	t.Run("node references", func(t *testing.T) {
		a := NewNode("a", P(0, 0))
		b := NewNode("b", P(1, 0))
		p := NewPath(a, b)
		want := "\\draw (a) -- (b)"
		if got := p.TikZ(); got != want {
			t.Errorf("TikZ() = %q, want %q", got, want)
		}
		if len(p.RequiredNamed()) != 2 {
			t.Errorf("RequiredNamed() returned %d nodes, want 2", len(p.RequiredNamed()))
		}
	})
}

func TestPathAppendDoesNotAlias(t *testing.T) {
	base := NewPath(P(0, 0), P(1, 0))
	left := base.Append(P(2, 0))
	right := base.Append(P(3, 0))

	if left.TikZ() == right.TikZ() {
		t.Error("appended paths alias the same backing array")
	}
}

func TestDirectedPathTikZ(t *testing.T) {
	t.Run("arrow leads options", func(t *testing.T) {
		p := NewDirectedPath(ArrowOut, P(0, 0), P(1, 0))
		want := "\\draw[->] ( 0.000,  0.000) to ( 1.000,  0.000)"
		if got := p.TikZ(); got != want {
			t.Errorf("TikZ() = %q, want %q", got, want)
		}
	})

	t.Run("style after arrow", func(t *testing.T) {
		p := NewDirectedPath(ArrowLatexOut, P(0, 0), P(1, 0)).WithStyle(Style{}.SetFlag("dotted"))
		want := "\\draw[-latex, dotted] ( 0.000,  0.000) to ( 1.000,  0.000)"
		if got := p.TikZ(); got != want {
			t.Errorf("TikZ() = %q, want %q", got, want)
		}
	})

	t.Run("segment label", func(t *testing.T) {
		a := NewNode("a", P(0, 0))
		b := NewNode("b", P(1, 0))
		p := NewDirectedPath(ArrowOut, a, b).WithLabel(0, Label{Text: "w", Position: "midway"})
		want := "\\draw[->] (a) to node [midway] {w} (b)"
		if got := p.TikZ(); got != want {
			t.Errorf("TikZ() = %q, want %q", got, want)
		}
	})

	t.Run("requires arrows library", func(t *testing.T) {
		p := NewDirectedPath(ArrowOut)
		libs := p.RequiredLibraries()
		if len(libs) != 1 || libs[0] != "arrows" {
			t.Errorf("RequiredLibraries() = %v", libs)
		}
	})
}

func TestCircleTikZ(t *testing.T) {
	c := NewCircle(P(1, 1), 0.5).WithUnit("cm").WithStyle(Style{}.SetFlag("draw"))
	want := "\\draw[draw] ( 1.000,  1.000) circle (0.5cm)"
	if got := c.TikZ(); got != want {
		t.Errorf("TikZ() = %q, want %q", got, want)
	}
}

func TestNodeDefinition(t *testing.T) {
	n := NewNode("a", P(0, 0)).WithLabel("A").WithStyle(Style{}.SetFlag("draw").SetFlag("circle"))
	want := "\\node[draw, circle] (a) at ( 0.000,  0.000) {A}"
	if got := n.Definition(); got != want {
		t.Errorf("Definition() = %q, want %q", got, want)
	}
	if got := n.TikZ(); got != "(a)" {
		t.Errorf("TikZ() = %q, want name reference", got)
	}
}

func TestNodeRelativeTo(t *testing.T) {
	base := NewNode("base", P(1, 1))

	moved, err := NewNode("moved", P(0, 0)).RelativeTo(base, P(2, 0))
	if err != nil {
		t.Fatal(err)
	}
	at, ok := moved.Coordinate().(Point)
	if !ok {
		t.Fatal("relative placement should produce a point")
	}
	if at.X != 3 || at.Y != 1 {
		t.Errorf("placed at (%g, %g), want (3, 1)", at.X, at.Y)
	}

	t.Run("unit mismatch fails", func(t *testing.T) {
		cm := NewNode("cm", P(1, 1).WithUnit("cm"))
		_, err := NewNode("n", P(0, 0)).RelativeTo(cm, P(1, 0).WithUnit("pt"))
		if !errors.Is(err, errors.ErrCodeInvalidNode) {
			t.Errorf("got %v, want INVALID_NODE", err)
		}
	})

	t.Run("polar base fails", func(t *testing.T) {
		polar := NewNode("p", PolarPoint{Angle: 45, Radius: 1})
		_, err := NewNode("n", P(0, 0)).RelativeTo(polar, P(1, 0))
		if !errors.Is(err, errors.ErrCodeInvalidNode) {
			t.Errorf("got %v, want INVALID_NODE", err)
		}
	})
}

func TestLabelTikZ(t *testing.T) {
	tests := []struct {
		name  string
		label Label
		want  string
	}{
		{"bare", Label{Text: "x"}, "node {x}"},
		{"positioned", Label{Text: "x", Position: "above"}, "node [above] {x}"},
		{"styled", Label{Text: "x", Style: Style{}.SetColor(Red)}, "node [color={RED}] {x}"},
		{
			"positioned and styled",
			Label{Text: "x", Position: "midway", Style: Style{}.SetFlag("draw")},
			"node [midway, draw] {x}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.label.TikZ(); got != tt.want {
				t.Errorf("TikZ() = %q, want %q", got, tt.want)
			}
		})
	}
}
