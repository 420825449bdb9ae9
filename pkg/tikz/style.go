package tikz

import (
	"fmt"
	"strings"

	"github.com/msimader/septex/pkg/errors"
)

// styleKeys is the domain of recognized style keys. Validate rejects
// anything outside it; SetCustom bypasses the check for callers that know
// their TikZ.
var styleKeys = map[string]bool{
	"width":        true,
	"height":       true,
	"x scale":      true,
	"y scale":      true,
	"scale":        true,
	"shift":        true,
	"bend left":    true,
	"bend right":   true,
	"draw":         true,
	"circle":       true,
	"rectangle":    true,
	"dashed":       true,
	"dotted":       true,
	"line width":   true,
	"color":        true,
	"fill":         true,
	"align":        true,
	"draw opacity": true,
	"fill opacity": true,
}

// NormalizeKey canonicalizes a style key: underscores and hyphens become
// spaces and surrounding whitespace is dropped, so "bend_left",
// "bend-left" and "bend left" are the same key.
func NormalizeKey(key string) string {
	key = strings.ReplaceAll(key, "_", " ")
	key = strings.ReplaceAll(key, "-", " ")
	return strings.TrimSpace(key)
}

// entry is one style setting. A nil-value entry is a flag (rendered as
// the bare key). Custom entries are exempt from key validation, and
// entries set through SetColor/SetFill carry the color value so the
// picture can emit its definition.
type entry struct {
	key    string
	value  string
	flag   bool
	custom bool
	color  Color
}

// Style is an ordered set of TikZ style settings. The zero value is an
// empty style. Mutating methods return a modified copy, so styles chain
// and compose without aliasing:
//
//	s := tikz.Style{}.SetFlag("draw").Set("line width", "2pt")
type Style struct {
	entries []entry
}

// NewStyle creates a style from alternating key/value pairs.
func NewStyle(pairs ...string) (Style, error) {
	if len(pairs)%2 != 0 {
		return Style{}, errors.New(errors.ErrCodeInvalidStyle, "style pairs must come in key/value couples, got %d items", len(pairs))
	}
	s := Style{}
	for i := 0; i < len(pairs); i += 2 {
		s = s.Set(pairs[i], pairs[i+1])
	}
	return s, nil
}

// clone copies the style's entries.
func (s Style) clone() Style {
	return Style{entries: append([]entry(nil), s.entries...)}
}

// Set returns a copy of the style with key set to value. An existing
// entry for the key is replaced in place, keeping its position.
func (s Style) Set(key, value string) Style {
	return s.put(entry{key: NormalizeKey(key), value: value})
}

// SetFlag returns a copy of the style with the bare flag key set, e.g.
// "draw" or "dashed".
func (s Style) SetFlag(key string) Style {
	return s.put(entry{key: NormalizeKey(key), flag: true})
}

// SetCustom is Set without the recognized-key restriction applied by
// Validate. The key is still normalized.
func (s Style) SetCustom(key, value string) Style {
	return s.put(entry{key: NormalizeKey(key), value: value, custom: true})
}

// SetColor returns a copy with the "color" key set to c.
func (s Style) SetColor(c Color) Style {
	return s.put(entry{key: "color", value: c.String(), color: c})
}

// SetFill returns a copy with the "fill" key set to c.
func (s Style) SetFill(c Color) Style {
	return s.put(entry{key: "fill", value: c.String(), color: c})
}

func (s Style) put(e entry) Style {
	out := s.clone()
	for i, existing := range out.entries {
		if existing.key == e.key {
			out.entries[i] = e
			return out
		}
	}
	out.entries = append(out.entries, e)
	return out
}

// Get returns the value stored for key and whether the key is present.
// Flags report present with an empty value.
func (s Style) Get(key string) (string, bool) {
	key = NormalizeKey(key)
	for _, e := range s.entries {
		if e.key == key {
			return e.value, true
		}
	}
	return "", false
}

// Has reports whether key is set, as a value or a flag.
func (s Style) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Len returns the number of settings.
func (s Style) Len() int { return len(s.entries) }

// Empty reports whether the style has no settings.
func (s Style) Empty() bool { return len(s.entries) == 0 }

// Keys returns the style keys in insertion order.
func (s Style) Keys() []string {
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.key)
	}
	return out
}

// Validate checks every key against the recognized key domain. Entries
// set through SetCustom are exempt.
func (s Style) Validate() error {
	for _, e := range s.entries {
		if !e.custom && !styleKeys[e.key] {
			return errors.New(errors.ErrCodeInvalidStyle, "unrecognized style key %q", e.key)
		}
	}
	return nil
}

// Merge returns the union of s and other. Settings from other win on key
// conflicts; insertion order is s's keys followed by other's new keys.
func (s Style) Merge(other Style) Style {
	out := s.clone()
	for _, e := range other.entries {
		out = out.put(e)
	}
	return out
}

// Colors returns the color values set through SetColor and SetFill, for
// emitting their \definecolor directives. Colors set as raw strings via
// Set are not recoverable and are the caller's responsibility.
func (s Style) Colors() []Color {
	var out []Color
	for _, e := range s.entries {
		if !e.color.IsZero() {
			out = append(out, e.color)
		}
	}
	return out
}

// String serializes the style as a TikZ option list: flags first in
// insertion order, then key={value} settings, joined by ", ".
func (s Style) String() string {
	parts := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		if e.flag {
			parts = append(parts, e.key)
		}
	}
	for _, e := range s.entries {
		if !e.flag {
			parts = append(parts, fmt.Sprintf("%s={%s}", e.key, e.value))
		}
	}
	return strings.Join(parts, ", ")
}

// ShiftValue formats a coordinate pair for the "shift" style key.
func ShiftValue(p Point) string {
	return p.TikZ()
}
