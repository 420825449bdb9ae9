package tikz

import (
	"fmt"
	"strings"
)

// Writeable is any object that serializes to one TikZ statement. The
// picture appends the trailing semicolon and registers the declared
// requirements with the root document.
type Writeable interface {
	TikZ() string
	RequiredPackages() []string
	RequiredLibraries() []string
}

// Named is a writeable object that is defined once under a name and
// referenced afterwards, such as a node.
type Named interface {
	Writeable
	Name() string
	Definition() string
}

// DefinesNamed is implemented by writeables that reference named objects.
// The picture defines the referenced objects before writing the
// referencing statement.
type DefinesNamed interface {
	RequiredNamed() []Named
}

// Path is a TikZ polyline drawn through a sequence of coordinates with
// straight segments. Node references are legal elements.
type Path struct {
	elements []Coordinate
	style    Style
	cycle    bool
}

// NewPath creates a path through the given coordinates.
func NewPath(elements ...Coordinate) Path {
	return Path{elements: elements}
}

// WithStyle returns a copy of the path with the given style.
func (p Path) WithStyle(s Style) Path {
	p.style = s
	return p
}

// Style returns the path style.
func (p Path) Style() Style { return p.style }

// Closed returns a copy of the path that ends with a cycle back to its
// first coordinate.
func (p Path) Closed() Path {
	p.cycle = true
	return p
}

// Append returns a copy of the path with more coordinates appended.
func (p Path) Append(elements ...Coordinate) Path {
	p.elements = append(p.elements[:len(p.elements):len(p.elements)], elements...)
	return p
}

// TikZ serializes the path as a draw statement with " -- " segment
// joiners.
func (p Path) TikZ() string {
	return drawStatement(p.style, joinElements(p.elements, " -- ", p.cycle))
}

// RequiredPackages returns the packages the path needs.
func (p Path) RequiredPackages() []string { return nil }

// RequiredLibraries returns the TikZ libraries the path needs.
func (p Path) RequiredLibraries() []string { return nil }

// RequiredNamed returns the node references contained in the path.
func (p Path) RequiredNamed() []Named { return namedElements(p.elements) }

// DirectedPath is a path drawn with " to " joiners and an arrow tip,
// typically between nodes.
type DirectedPath struct {
	elements []Coordinate
	style    Style
	arrow    Arrow
	labels   map[int]Label
}

// NewDirectedPath creates a directed path through the given coordinates
// with a plain arrow tip.
func NewDirectedPath(arrow Arrow, elements ...Coordinate) DirectedPath {
	return DirectedPath{arrow: arrow, elements: elements}
}

// WithStyle returns a copy of the path with the given style.
func (p DirectedPath) WithStyle(s Style) DirectedPath {
	p.style = s
	return p
}

// Style returns the path style.
func (p DirectedPath) Style() Style { return p.style }

// WithLabel returns a copy of the path carrying a label on segment i
// (the segment from element i to element i+1).
func (p DirectedPath) WithLabel(i int, l Label) DirectedPath {
	labels := make(map[int]Label, len(p.labels)+1)
	for k, v := range p.labels {
		labels[k] = v
	}
	labels[i] = l
	p.labels = labels
	return p
}

// TikZ serializes the path as a draw statement with the arrow token
// leading the options.
func (p DirectedPath) TikZ() string {
	var b strings.Builder
	for i, e := range p.elements {
		if i > 0 {
			b.WriteString(" to ")
			if l, ok := p.labels[i-1]; ok {
				b.WriteString(l.TikZ())
				b.WriteByte(' ')
			}
		}
		b.WriteString(e.TikZ())
	}
	opts := p.arrow.Token()
	if s := p.style.String(); s != "" {
		opts += ", " + s
	}
	return fmt.Sprintf("\\draw[%s] %s", opts, b.String())
}

// RequiredPackages returns the packages the path needs.
func (p DirectedPath) RequiredPackages() []string { return nil }

// RequiredLibraries returns the TikZ libraries the path needs. Arrow
// tips come from the arrows library.
func (p DirectedPath) RequiredLibraries() []string { return []string{"arrows"} }

// RequiredNamed returns the node references contained in the path.
func (p DirectedPath) RequiredNamed() []Named { return namedElements(p.elements) }

// Circle is a TikZ circle around a center coordinate.
type Circle struct {
	center Coordinate
	radius float64
	unit   string
	style  Style
}

// NewCircle creates a circle with the given center and radius.
func NewCircle(center Coordinate, radius float64) Circle {
	return Circle{center: center, radius: radius}
}

// WithStyle returns a copy of the circle with the given style.
func (c Circle) WithStyle(s Style) Circle {
	c.style = s
	return c
}

// Style returns the circle style.
func (c Circle) Style() Style { return c.style }

// WithUnit returns a copy of the circle with a unit suffix on the
// radius.
func (c Circle) WithUnit(unit string) Circle {
	c.unit = unit
	return c
}

// TikZ serializes the circle as a draw statement.
func (c Circle) TikZ() string {
	radius := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", c.radius), "0"), ".")
	return drawStatement(c.style, fmt.Sprintf("%s circle (%s%s)", c.center.TikZ(), radius, c.unit))
}

// RequiredPackages returns the packages the circle needs.
func (c Circle) RequiredPackages() []string { return nil }

// RequiredLibraries returns the TikZ libraries the circle needs.
func (c Circle) RequiredLibraries() []string { return nil }

// RequiredNamed returns the node references contained in the circle.
func (c Circle) RequiredNamed() []Named { return namedElements([]Coordinate{c.center}) }

func drawStatement(style Style, body string) string {
	opts := ""
	if s := style.String(); s != "" {
		opts = "[" + s + "]"
	}
	return fmt.Sprintf("\\draw%s %s", opts, body)
}

func joinElements(elements []Coordinate, joiner string, cycle bool) string {
	parts := make([]string, 0, len(elements)+1)
	for _, e := range elements {
		parts = append(parts, e.TikZ())
	}
	if cycle {
		parts = append(parts, "cycle")
	}
	return strings.Join(parts, joiner)
}

func namedElements(elements []Coordinate) []Named {
	var out []Named
	for _, e := range elements {
		if n, ok := e.(Node); ok {
			out = append(out, n)
		}
	}
	return out
}
