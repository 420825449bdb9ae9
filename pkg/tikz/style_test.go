package tikz

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/msimader/septex/pkg/errors"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bend_left", "bend left"},
		{"bend-left", "bend left"},
		{"bend left", "bend left"},
		{"  draw  ", "draw"},
		{"line_width", "line width"},
	}
	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStyleString(t *testing.T) {
	s := Style{}.
		SetFlag("draw").
		Set("line width", "2pt").
		SetFlag("dashed").
		Set("fill", "RED")

	// Flags first in insertion order, then key={value} settings.
	want := "draw, dashed, line width={2pt}, fill={RED}"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestStyleSetReplacesInPlace(t *testing.T) {
	s := Style{}.Set("scale", "1").Set("fill", "RED").Set("scale", "2")

	if diff := cmp.Diff([]string{"scale", "fill"}, s.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if v, _ := s.Get("scale"); v != "2" {
		t.Errorf("Get(scale) = %q, want 2", v)
	}
}

func TestStyleDoesNotMutateReceiver(t *testing.T) {
	base := Style{}.Set("scale", "1")
	derived := base.Set("scale", "2").SetFlag("draw")

	if v, _ := base.Get("scale"); v != "1" {
		t.Errorf("base mutated: scale = %q", v)
	}
	if base.Has("draw") {
		t.Error("base mutated: draw flag leaked")
	}
	if v, _ := derived.Get("scale"); v != "2" {
		t.Errorf("derived scale = %q", v)
	}
}

func TestStyleMerge(t *testing.T) {
	left := Style{}.Set("scale", "1").SetFlag("draw")
	right := Style{}.Set("scale", "3").Set("fill", "RED")

	merged := left.Merge(right)

	// Union of keys, right wins on conflicts, left's order first.
	if diff := cmp.Diff([]string{"scale", "draw", "fill"}, merged.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if v, _ := merged.Get("scale"); v != "3" {
		t.Errorf("merged scale = %q, want right side's 3", v)
	}
	// Neither side mutated.
	if v, _ := left.Get("scale"); v != "1" {
		t.Errorf("left mutated: scale = %q", v)
	}
	if right.Has("draw") {
		t.Error("right mutated: draw flag leaked")
	}
}

func TestStyleValidate(t *testing.T) {
	good := Style{}.SetFlag("draw").Set("bend_left", "30")
	if err := good.Validate(); err != nil {
		t.Errorf("Validate() = %v for recognized keys", err)
	}

	bad := Style{}.Set("rounded corners", "2pt")
	if err := bad.Validate(); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("got %v, want INVALID_STYLE", err)
	}

	custom := Style{}.SetCustom("rounded corners", "2pt")
	if err := custom.Validate(); err != nil {
		t.Errorf("Validate() = %v, custom keys are exempt", err)
	}
}

func TestNewStyle(t *testing.T) {
	s, err := NewStyle("color", "RED", "scale", "2")
	if err != nil {
		t.Fatal(err)
	}
	if got := s.String(); got != "color={RED}, scale={2}" {
		t.Errorf("String() = %q", got)
	}

	if _, err := NewStyle("color"); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("odd pair count: got %v, want INVALID_STYLE", err)
	}
}

func TestStyleColorHelpers(t *testing.T) {
	faded, err := Red.WithAlpha(128)
	if err != nil {
		t.Fatal(err)
	}
	s := Style{}.SetColor(Black).SetFill(faded)

	if v, _ := s.Get("color"); v != "BLACK" {
		t.Errorf("color = %q", v)
	}
	if v, _ := s.Get("fill"); v != "RED_A_128!50" {
		t.Errorf("fill = %q", v)
	}
}

func TestStyleColors(t *testing.T) {
	s := Style{}.SetColor(Red).SetFill(Green).Set("scale", "2")

	got := s.Colors()
	if len(got) != 2 {
		t.Fatalf("Colors() returned %d colors, want 2", len(got))
	}
	if !got[0].Equal(Red) || !got[1].Equal(Green) {
		t.Errorf("Colors() = %v, %v", got[0].Name(), got[1].Name())
	}

	raw := Style{}.Set("color", "RED")
	if len(raw.Colors()) != 0 {
		t.Error("raw string color values carry no Color")
	}
}

func TestStyleEmpty(t *testing.T) {
	var s Style
	if !s.Empty() || s.Len() != 0 {
		t.Error("zero style should be empty")
	}
	if s.String() != "" {
		t.Errorf("empty style String() = %q", s.String())
	}
}
