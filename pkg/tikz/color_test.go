package tikz

import (
	"testing"

	"github.com/msimader/septex/pkg/errors"
)

func TestNewColorValidation(t *testing.T) {
	tests := []struct {
		name     string
		mode     ColorMode
		channels []float64
		wantErr  bool
	}{
		{"three channels RGB", ModeRGB255, []float64{255, 0, 0}, false},
		{"four channels RGB", ModeRGB255, []float64{255, 0, 0, 128}, false},
		{"three channels rgb", ModeRGB1, []float64{1, 0, 0.5}, false},
		{"too few channels", ModeRGB255, []float64{255, 0}, true},
		{"too many channels", ModeRGB255, []float64{1, 2, 3, 4, 5}, true},
		{"channel above range", ModeRGB255, []float64{256, 0, 0}, true},
		{"channel below range", ModeRGB1, []float64{-0.1, 0, 0}, true},
		{"fractional RGB channel", ModeRGB255, []float64{0.5, 0, 0}, true},
		{"rgb channel above one", ModeRGB1, []float64{1.5, 0, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewColor("c", tt.mode, tt.channels...)
			if tt.wantErr && !errors.Is(err, errors.ErrCodeInvalidColor) {
				t.Errorf("got %v, want INVALID_COLOR", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}

	t.Run("empty name", func(t *testing.T) {
		if _, err := NewColor("", ModeRGB255, 0, 0, 0); !errors.Is(err, errors.ErrCodeInvalidColor) {
			t.Errorf("got %v, want INVALID_COLOR", err)
		}
	})

	t.Run("unknown mode", func(t *testing.T) {
		if _, err := NewColor("c", ColorMode("hsv"), 0, 0, 0); !errors.Is(err, errors.ErrCodeInvalidColor) {
			t.Errorf("got %v, want INVALID_COLOR", err)
		}
	})
}

func TestColorDefinition(t *testing.T) {
	if got := Red.Definition(); got != "\\definecolor{RED}{RGB}{252, 68, 68}" {
		t.Errorf("Definition() = %q", got)
	}

	c, err := NewColor("half", ModeRGB1, 0.5, 0.25, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Definition(); got != "\\definecolor{half}{rgb}{0.5, 0.25, 0}" {
		t.Errorf("Definition() = %q", got)
	}
}

func TestColorString(t *testing.T) {
	if got := Red.String(); got != "RED" {
		t.Errorf("String() = %q", got)
	}

	t.Run("RGB alpha as percentage", func(t *testing.T) {
		c, err := Red.WithAlpha(128)
		if err != nil {
			t.Fatal(err)
		}
		if got := c.String(); got != "RED_A_128!50" {
			t.Errorf("String() = %q", got)
		}
	})

	t.Run("rgb alpha as percentage", func(t *testing.T) {
		base, err := NewColor("base", ModeRGB1, 1, 0, 0)
		if err != nil {
			t.Fatal(err)
		}
		c, err := base.WithAlpha(0.25)
		if err != nil {
			t.Fatal(err)
		}
		if got := c.String(); got != "base_A_0_25!25" {
			t.Errorf("String() = %q", got)
		}
	})
}

func TestColorAlphaRoundTrip(t *testing.T) {
	c, err := Green.WithAlpha(100)
	if err != nil {
		t.Fatal(err)
	}
	if !c.HasAlpha() {
		t.Fatal("WithAlpha should add an alpha channel")
	}
	stripped := c.WithoutAlpha()
	if stripped.HasAlpha() {
		t.Error("WithoutAlpha should drop the alpha channel")
	}
	if Green.WithoutAlpha().Name() != "GREEN" {
		t.Error("WithoutAlpha on an opaque color should be a no-op")
	}
}

func TestColorEqualByName(t *testing.T) {
	other, err := NewColor("RED", ModeRGB255, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !Red.Equal(other) {
		t.Error("colors with the same name should be equal")
	}
	if Red.Equal(Green) {
		t.Error("colors with different names should not be equal")
	}
}

func TestColorArithmetic(t *testing.T) {
	t.Run("add clamps to range", func(t *testing.T) {
		got, err := Red.Add(Green)
		if err != nil {
			t.Fatal(err)
		}
		want := []float64{255, 255, 180}
		for i, ch := range got.Channels() {
			if ch != want[i] {
				t.Errorf("channel %d = %g, want %g", i, ch, want[i])
			}
		}
		if got.Name() != "RED_ADD_GREEN" {
			t.Errorf("derived name = %q", got.Name())
		}
	})

	t.Run("sub clamps at zero", func(t *testing.T) {
		got, err := Black.Sub(Red)
		if err != nil {
			t.Fatal(err)
		}
		for i, ch := range got.Channels() {
			if ch != 0 {
				t.Errorf("channel %d = %g, want 0", i, ch)
			}
		}
	})

	t.Run("scale", func(t *testing.T) {
		got, err := White.Scale(0.5)
		if err != nil {
			t.Fatal(err)
		}
		for i, ch := range got.Channels() {
			if ch != 128 {
				t.Errorf("channel %d = %g, want 128", i, ch)
			}
		}
	})

	t.Run("mix averages", func(t *testing.T) {
		got, err := White.Mix(Black)
		if err != nil {
			t.Fatal(err)
		}
		for i, ch := range got.Channels() {
			if ch != 128 {
				t.Errorf("channel %d = %g, want 128", i, ch)
			}
		}
	})

	t.Run("mode mismatch fails", func(t *testing.T) {
		frac, err := NewColor("frac", ModeRGB1, 0.5, 0.5, 0.5)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Red.Add(frac); !errors.Is(err, errors.ErrCodeInvalidColor) {
			t.Errorf("got %v, want INVALID_COLOR", err)
		}
	})

	t.Run("derived names are deterministic", func(t *testing.T) {
		a, err := Red.Add(Green)
		if err != nil {
			t.Fatal(err)
		}
		b, err := Red.Add(Green)
		if err != nil {
			t.Fatal(err)
		}
		if a.Name() != b.Name() {
			t.Errorf("names differ: %q vs %q", a.Name(), b.Name())
		}
	})
}

func TestDefaultPalette(t *testing.T) {
	palette := DefaultPalette()
	if len(palette) != 16 {
		t.Fatalf("palette has %d colors, want 16", len(palette))
	}
	seen := make(map[string]bool)
	for _, c := range palette {
		if seen[c.Name()] {
			t.Errorf("duplicate palette name %q", c.Name())
		}
		seen[c.Name()] = true
	}
}
