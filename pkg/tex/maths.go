package tex

import (
	"fmt"
	"strconv"
	"strings"
)

// VSpace returns a vertical space directive for the given TeX length,
// e.g. VSpace("1em").
func VSpace(length string) string {
	return fmt.Sprintf("\\vspace*{%s}", length)
}

// Parentheses wraps v in auto-sized parentheses.
func Parentheses(v any) string {
	return fmt.Sprintf("\\left( %s \\right)", MathString(v))
}

// Brackets wraps v in auto-sized square brackets.
func Brackets(v any) string {
	return fmt.Sprintf("\\left[ %s \\right]", MathString(v))
}

// Braces wraps v in auto-sized curly braces.
func Braces(v any) string {
	return fmt.Sprintf("\\left\\{ %s \\right\\}", MathString(v))
}

// Frac is a fraction rendered with \frac. A negative numerator or
// denominator moves the sign in front of the fraction; two negatives
// cancel.
type Frac struct {
	Num any
	Den any
}

// String renders the fraction in math mode.
func (f Frac) String() string {
	num := MathString(f.Num)
	den := MathString(f.Den)
	sign := ""
	if strings.HasPrefix(num, "-") {
		num = num[1:]
		sign = "-"
	}
	if strings.HasPrefix(den, "-") {
		den = den[1:]
		if sign == "-" {
			sign = ""
		} else {
			sign = "-"
		}
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, num, den)
}

// Set renders as a brace-delimited set of its elements.
type Set []any

// String renders the set in math mode.
func (s Set) String() string {
	elems := make([]string, 0, len(s))
	for _, v := range s {
		elems = append(elems, MathString(v))
	}
	return fmt.Sprintf("\\left\\{ %s \\right\\}", strings.Join(elems, ", "))
}

// MathString formats v for use inside a math environment. Numbers render
// without exponent notation, strings are wrapped in \text, fmt.Stringer
// values render via String, and slices render as bracketed lists.
func MathString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return fmt.Sprintf("\\text{%s}", t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case fmt.Stringer:
		return t.String()
	case []any:
		elems := make([]string, 0, len(t))
		for _, e := range t {
			elems = append(elems, MathString(e))
		}
		return fmt.Sprintf("\\left[ %s \\right]", strings.Join(elems, ", "))
	default:
		return fmt.Sprint(t)
	}
}
