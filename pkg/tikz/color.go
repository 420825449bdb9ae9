// Package tikz models TikZ pictures as composable Go values that
// serialize to TikZ markup. Pictures nest inside tex documents and
// propagate their package and library requirements to the root document
// automatically.
package tikz

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/msimader/septex/pkg/errors"
)

// ColorMode selects how color channels are interpreted and serialized.
type ColorMode string

// Color modes. ModeRGB255 uses integer channels in [0, 255]; ModeRGB1
// uses fractional channels in [0, 1].
const (
	ModeRGB255 ColorMode = "RGB"
	ModeRGB1   ColorMode = "rgb"
)

// Color is a named xcolor definition with three or four channels. The
// optional fourth channel is alpha. Colors compare by name: two colors
// with the same name are the same color regardless of channels.
type Color struct {
	name     string
	mode     ColorMode
	channels []float64
}

// NewColor creates a color with the given name, mode and channels.
// Exactly three or four channels are required, each within the mode's
// range.
func NewColor(name string, mode ColorMode, channels ...float64) (Color, error) {
	if name == "" {
		return Color{}, errors.New(errors.ErrCodeInvalidColor, "color name must not be empty")
	}
	if len(channels) < 3 || len(channels) > 4 {
		return Color{}, errors.New(errors.ErrCodeInvalidColor, "color %q needs 3 or 4 channels, got %d", name, len(channels))
	}
	limit := 1.0
	if mode == ModeRGB255 {
		limit = 255.0
	} else if mode != ModeRGB1 {
		return Color{}, errors.New(errors.ErrCodeInvalidColor, "unknown color mode %q", string(mode))
	}
	for i, c := range channels {
		if c < 0 || c > limit {
			return Color{}, errors.New(errors.ErrCodeInvalidColor, "color %q channel %d out of range [0, %g]: %g", name, i, limit, c)
		}
		if mode == ModeRGB255 && c != math.Trunc(c) {
			return Color{}, errors.New(errors.ErrCodeInvalidColor, "color %q channel %d must be integral in RGB mode: %g", name, i, c)
		}
	}
	return Color{name: name, mode: mode, channels: append([]float64(nil), channels...)}, nil
}

// mustColor is for package-level palette definitions with known-good
// channels.
func mustColor(name string, mode ColorMode, channels ...float64) Color {
	c, err := NewColor(name, mode, channels...)
	if err != nil {
		panic(err)
	}
	return c
}

// Default palette.
var (
	White       = mustColor("WHITE", ModeRGB255, 255, 255, 255)
	AlmostWhite = mustColor("ALMOST_WHITE", ModeRGB255, 245, 245, 245)
	LightGray   = mustColor("LIGHT_GRAY", ModeRGB255, 180, 180, 180)
	DarkGray    = mustColor("DARK_GRAY", ModeRGB255, 45, 45, 45)
	AlmostBlack = mustColor("ALMOST_BLACK", ModeRGB255, 18, 18, 18)
	Black       = mustColor("BLACK", ModeRGB255, 0, 0, 0)
	Red         = mustColor("RED", ModeRGB255, 252, 68, 68)
	Orange      = mustColor("ORANGE", ModeRGB255, 255, 165, 0)
	Yellow      = mustColor("YELLOW", ModeRGB255, 255, 221, 51)
	Green       = mustColor("GREEN", ModeRGB255, 112, 214, 112)
	LightBlue   = mustColor("LIGHT_BLUE", ModeRGB255, 52, 152, 219)
	DarkBlue    = mustColor("DARK_BLUE", ModeRGB255, 41, 100, 180)
	Purple      = mustColor("PURPLE", ModeRGB255, 155, 89, 182)
	Magenta     = mustColor("MAGENTA", ModeRGB255, 255, 0, 255)
	Pink        = mustColor("PINK", ModeRGB255, 255, 105, 180)
	Rose        = mustColor("ROSE", ModeRGB255, 255, 182, 193)
)

// DefaultPalette returns the built-in colors in a stable order.
func DefaultPalette() []Color {
	return []Color{
		White, AlmostWhite, LightGray, DarkGray, AlmostBlack, Black,
		Red, Orange, Yellow, Green, LightBlue, DarkBlue,
		Purple, Magenta, Pink, Rose,
	}
}

// Name returns the color name used in \definecolor and style values.
func (c Color) Name() string { return c.name }

// Mode returns the color mode.
func (c Color) Mode() ColorMode { return c.mode }

// Channels returns a copy of the color channels.
func (c Color) Channels() []float64 { return append([]float64(nil), c.channels...) }

// HasAlpha reports whether the color carries an alpha channel.
func (c Color) HasAlpha() bool { return len(c.channels) == 4 }

// IsZero reports whether the color is the zero value.
func (c Color) IsZero() bool { return c.name == "" }

// Equal reports name identity: colors are the same color when they share
// a name.
func (c Color) Equal(other Color) bool { return c.name == other.name }

// WithAlpha returns a copy of the color carrying the given alpha channel.
// The derived color gets a channel-derived name so definitions stay
// unique.
func (c Color) WithAlpha(alpha float64) (Color, error) {
	return NewColor(c.derivedName("A", alpha), c.mode, append(c.channels[:3:3], alpha)...)
}

// WithoutAlpha returns a copy of the color with the alpha channel
// removed. A color without alpha is returned unchanged.
func (c Color) WithoutAlpha() Color {
	if !c.HasAlpha() {
		return c
	}
	out := c
	out.channels = c.channels[:3:3]
	out.name = c.derivedName("NA")
	return out
}

// Definition returns the preamble \definecolor directive. Only the three
// color channels are defined; alpha is expressed at use sites through
// the String serialization.
func (c Color) Definition() string {
	parts := make([]string, 3)
	for i, ch := range c.channels[:3] {
		parts[i] = formatChannel(ch, c.mode)
	}
	return fmt.Sprintf("\\definecolor{%s}{%s}{%s}", c.name, string(c.mode), strings.Join(parts, ", "))
}

// String serializes the color for use in style values. Colors with alpha
// render as "name!NN" where NN is the opacity percentage.
func (c Color) String() string {
	if !c.HasAlpha() {
		return c.name
	}
	alpha := c.channels[3]
	if c.mode == ModeRGB255 {
		alpha /= 255.0
	}
	return fmt.Sprintf("%s!%d", c.name, int(math.Round(alpha*100)))
}

// RequiredPackages returns the packages the color needs in the preamble.
func (c Color) RequiredPackages() []string { return []string{"xcolor"} }

// Add returns the channel-wise sum of two colors, clamped to the mode's
// range. Both colors must share a mode.
func (c Color) Add(other Color) (Color, error) {
	return c.combine(other, "ADD", func(a, b float64) float64 { return a + b })
}

// Sub returns the channel-wise difference of two colors, clamped to the
// mode's range. Both colors must share a mode.
func (c Color) Sub(other Color) (Color, error) {
	return c.combine(other, "SUB", func(a, b float64) float64 { return a - b })
}

// Scale multiplies the color channels by factor, clamping to the mode's
// range. Alpha is preserved unscaled.
func (c Color) Scale(factor float64) (Color, error) {
	out := make([]float64, len(c.channels))
	for i, ch := range c.channels {
		out[i] = ch * factor
		if i == 3 {
			out[i] = ch
		}
	}
	c.clamp(out)
	if c.mode == ModeRGB255 {
		roundChannels(out)
	}
	return NewColor(c.derivedName("S", factor), c.mode, out...)
}

// Mix returns the channel-wise average of two colors. Both colors must
// share a mode.
func (c Color) Mix(other Color) (Color, error) {
	return c.combine(other, "MIX", func(a, b float64) float64 { return (a + b) / 2 })
}

func (c Color) combine(other Color, tag string, op func(a, b float64) float64) (Color, error) {
	if c.mode != other.mode {
		return Color{}, errors.New(errors.ErrCodeInvalidColor, "cannot combine colors %q (%s) and %q (%s): mode mismatch",
			c.name, string(c.mode), other.name, string(other.mode))
	}
	n := max(len(c.channels), len(other.channels))
	out := make([]float64, n)
	for i := range out {
		a, b := c.channel(i), other.channel(i)
		out[i] = op(a, b)
	}
	c.clamp(out)
	if c.mode == ModeRGB255 {
		roundChannels(out)
	}
	name := fmt.Sprintf("%s_%s_%s", c.name, tag, other.name)
	return NewColor(name, c.mode, out...)
}

// channel returns channel i, defaulting a missing alpha to the mode's
// maximum (fully opaque).
func (c Color) channel(i int) float64 {
	if i < len(c.channels) {
		return c.channels[i]
	}
	if c.mode == ModeRGB255 {
		return 255
	}
	return 1
}

func (c Color) clamp(channels []float64) {
	limit := 1.0
	if c.mode == ModeRGB255 {
		limit = 255.0
	}
	for i, ch := range channels {
		channels[i] = math.Min(limit, math.Max(0, ch))
	}
}

// derivedName builds a deterministic name for a color derived from c.
func (c Color) derivedName(tag string, params ...float64) string {
	var b strings.Builder
	b.WriteString(c.name)
	b.WriteByte('_')
	b.WriteString(tag)
	for _, p := range params {
		fmt.Fprintf(&b, "_%s", strconv.FormatFloat(p, 'f', -1, 64))
	}
	return strings.ReplaceAll(b.String(), ".", "_")
}

func formatChannel(c float64, mode ColorMode) string {
	if mode == ModeRGB255 {
		return fmt.Sprintf("%d", int(c))
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", c), "0"), ".")
}

func roundChannels(channels []float64) {
	for i, c := range channels {
		channels[i] = math.Round(c)
	}
}
