package tikz

import (
	"fmt"
	"math"

	"github.com/msimader/septex/pkg/errors"
)

// Point is a 2D TikZ coordinate with an optional unit suffix. A relative
// point serializes with a "+" prefix so TikZ interprets it relative to
// the previous coordinate.
type Point struct {
	X, Y     float64
	Unit     string
	Relative bool
}

// P is shorthand for a unitless absolute point.
func P(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Rel returns a copy of the point marked relative.
func (p Point) Rel() Point {
	p.Relative = true
	return p
}

// WithUnit returns a copy of the point carrying the given unit suffix,
// e.g. "cm" or "pt".
func (p Point) WithUnit(unit string) Point {
	p.Unit = unit
	return p
}

// TikZ serializes the coordinate, e.g. "( 1.000cm,  2.500cm)". Values
// are space-padded so columns of coordinates align in the output.
func (p Point) TikZ() string {
	prefix := ""
	if p.Relative {
		prefix = "+"
	}
	return fmt.Sprintf("%s(% .3f%s, % .3f%s)", prefix, p.X, p.Unit, p.Y, p.Unit)
}

// String implements fmt.Stringer.
func (p Point) String() string { return p.TikZ() }

// Add returns the component-wise sum. Units must match.
func (p Point) Add(other Point) (Point, error) {
	if err := p.checkUnit(other); err != nil {
		return Point{}, err
	}
	return Point{X: p.X + other.X, Y: p.Y + other.Y, Unit: p.Unit, Relative: p.Relative}, nil
}

// Sub returns the component-wise difference. Units must match.
func (p Point) Sub(other Point) (Point, error) {
	if err := p.checkUnit(other); err != nil {
		return Point{}, err
	}
	return Point{X: p.X - other.X, Y: p.Y - other.Y, Unit: p.Unit, Relative: p.Relative}, nil
}

// Scale multiplies both components by factor.
func (p Point) Scale(factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor, Unit: p.Unit, Relative: p.Relative}
}

// Neg returns the point mirrored through the origin.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y, Unit: p.Unit, Relative: p.Relative}
}

// Abs returns the point with both components made non-negative.
func (p Point) Abs() Point {
	return Point{X: math.Abs(p.X), Y: math.Abs(p.Y), Unit: p.Unit, Relative: p.Relative}
}

// Dot returns the dot product of two points. Units must match.
func (p Point) Dot(other Point) (float64, error) {
	if err := p.checkUnit(other); err != nil {
		return 0, err
	}
	return p.X*other.X + p.Y*other.Y, nil
}

// Length returns the Euclidean norm.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

func (p Point) checkUnit(other Point) error {
	if p.Unit != other.Unit {
		return errors.New(errors.ErrCodeInvalidPoint, "unit mismatch: %q vs %q", p.Unit, other.Unit)
	}
	return nil
}

// PolarPoint is a TikZ polar coordinate: an angle in degrees and a
// radius with an optional unit.
type PolarPoint struct {
	Angle    float64
	Radius   float64
	Unit     string
	Relative bool
}

// TikZ serializes the polar coordinate, e.g. "( 45.000: 1.000cm)". The
// angle is normalized into [0, 360).
func (p PolarPoint) TikZ() string {
	prefix := ""
	if p.Relative {
		prefix = "+"
	}
	angle := math.Mod(p.Angle, 360)
	if angle < 0 {
		angle += 360
	}
	return fmt.Sprintf("%s(% .3f:% .3f%s)", prefix, angle, p.Radius, p.Unit)
}

// String implements fmt.Stringer.
func (p PolarPoint) String() string { return p.TikZ() }

// ToPoint converts the polar coordinate to Cartesian form, preserving
// unit and relativity.
func (p PolarPoint) ToPoint() Point {
	rad := p.Angle * math.Pi / 180
	return Point{
		X:        p.Radius * math.Cos(rad),
		Y:        p.Radius * math.Sin(rad),
		Unit:     p.Unit,
		Relative: p.Relative,
	}
}

// Coordinate is any value that serializes to a TikZ coordinate.
type Coordinate interface {
	TikZ() string
}
