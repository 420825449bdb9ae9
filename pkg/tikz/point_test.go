package tikz

import (
	"math"
	"testing"

	"github.com/msimader/septex/pkg/errors"
)

func TestPointTikZ(t *testing.T) {
	tests := []struct {
		name  string
		point Point
		want  string
	}{
		{"origin", P(0, 0), "( 0.000,  0.000)"},
		{"positive", P(1, 2.5), "( 1.000,  2.500)"},
		{"negative", P(-1, -0.5), "(-1.000, -0.500)"},
		{"with unit", P(1, 2).WithUnit("cm"), "( 1.000cm,  2.000cm)"},
		{"relative", P(1, 0).Rel(), "+( 1.000,  0.000)"},
		{"relative with unit", P(0, 1).WithUnit("pt").Rel(), "+( 0.000pt,  1.000pt)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.point.TikZ(); got != tt.want {
				t.Errorf("TikZ() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPointArithmetic(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		got, err := P(1, 2).Add(P(3, 4))
		if err != nil {
			t.Fatal(err)
		}
		if got.X != 4 || got.Y != 6 {
			t.Errorf("Add = (%g, %g), want (4, 6)", got.X, got.Y)
		}
	})

	t.Run("sub", func(t *testing.T) {
		got, err := P(1, 2).Sub(P(3, 4))
		if err != nil {
			t.Fatal(err)
		}
		if got.X != -2 || got.Y != -2 {
			t.Errorf("Sub = (%g, %g), want (-2, -2)", got.X, got.Y)
		}
	})

	t.Run("scale", func(t *testing.T) {
		got := P(1, -2).Scale(3)
		if got.X != 3 || got.Y != -6 {
			t.Errorf("Scale = (%g, %g), want (3, -6)", got.X, got.Y)
		}
	})

	t.Run("dot", func(t *testing.T) {
		got, err := P(1, 2).Dot(P(3, 4))
		if err != nil {
			t.Fatal(err)
		}
		if got != 11 {
			t.Errorf("Dot = %g, want 11", got)
		}
	})

	t.Run("neg", func(t *testing.T) {
		got := P(1, -2).Neg()
		if got.X != -1 || got.Y != 2 {
			t.Errorf("Neg = (%g, %g), want (-1, 2)", got.X, got.Y)
		}
	})

	t.Run("abs", func(t *testing.T) {
		got := P(-1, -2).WithUnit("cm").Abs()
		if got.X != 1 || got.Y != 2 || got.Unit != "cm" {
			t.Errorf("Abs = (%g, %g, %q), want (1, 2, cm)", got.X, got.Y, got.Unit)
		}
	})

	t.Run("length", func(t *testing.T) {
		if got := P(3, 4).Length(); got != 5 {
			t.Errorf("Length = %g, want 5", got)
		}
	})

	t.Run("unit mismatch fails", func(t *testing.T) {
		_, err := P(1, 0).WithUnit("cm").Add(P(0, 1).WithUnit("pt"))
		if !errors.Is(err, errors.ErrCodeInvalidPoint) {
			t.Errorf("got %v, want INVALID_POINT", err)
		}
		_, err = P(1, 0).WithUnit("cm").Dot(P(0, 1))
		if !errors.Is(err, errors.ErrCodeInvalidPoint) {
			t.Errorf("got %v, want INVALID_POINT", err)
		}
	})
}

func TestPolarPoint(t *testing.T) {
	p := PolarPoint{Angle: 45, Radius: 1, Unit: "cm"}
	if got := p.TikZ(); got != "( 45.000: 1.000cm)" {
		t.Errorf("TikZ() = %q", got)
	}

	rel := PolarPoint{Angle: 90, Radius: 2, Relative: true}
	if got := rel.TikZ(); got != "+( 90.000: 2.000)" {
		t.Errorf("TikZ() = %q", got)
	}

	wrapped := PolarPoint{Angle: 405, Radius: 1}
	if got := wrapped.TikZ(); got != "( 45.000: 1.000)" {
		t.Errorf("TikZ() = %q, angle should normalize into [0, 360)", got)
	}

	negative := PolarPoint{Angle: -90, Radius: 1}
	if got := negative.TikZ(); got != "( 270.000: 1.000)" {
		t.Errorf("TikZ() = %q, angle should normalize into [0, 360)", got)
	}
}

func TestPolarToPoint(t *testing.T) {
	p := PolarPoint{Angle: 90, Radius: 2, Unit: "cm"}.ToPoint()
	if math.Abs(p.X) > 1e-9 || math.Abs(p.Y-2) > 1e-9 {
		t.Errorf("ToPoint = (%g, %g), want (0, 2)", p.X, p.Y)
	}
	if p.Unit != "cm" {
		t.Errorf("unit lost: %q", p.Unit)
	}
}
