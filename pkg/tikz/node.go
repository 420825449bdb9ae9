package tikz

import (
	"fmt"

	"github.com/msimader/septex/pkg/errors"
)

// Node is a named TikZ node. Nodes are defined once in a picture and
// referenced by name afterwards; a Node used as a path element serializes
// to its name reference.
//
// Nodes are value types with chainable modifiers:
//
//	n := tikz.NewNode("a", tikz.P(0, 0)).WithLabel("A").WithStyle(style)
type Node struct {
	name  string
	at    Coordinate
	label string
	style Style
}

// NewNode creates a node with the given name placed at the given
// coordinate.
func NewNode(name string, at Coordinate) Node {
	return Node{name: name, at: at}
}

// Name returns the node name.
func (n Node) Name() string { return n.name }

// Style returns the node style.
func (n Node) Style() Style { return n.style }

// Coordinate returns the node placement.
func (n Node) Coordinate() Coordinate { return n.at }

// WithLabel returns a copy of the node with the given label text.
func (n Node) WithLabel(label string) Node {
	n.label = label
	return n
}

// WithStyle returns a copy of the node with the given style.
func (n Node) WithStyle(s Style) Node {
	n.style = s
	return n
}

// withName returns a copy under a different name. Used for deterministic
// renaming on registration conflicts.
func (n Node) withName(name string) Node {
	n.name = name
	return n
}

// RelativeTo returns a copy of the node placed at other's coordinate
// shifted by offset. Both coordinates must be Cartesian points with
// matching units.
func (n Node) RelativeTo(other Node, offset Point) (Node, error) {
	base, ok := other.at.(Point)
	if !ok {
		return Node{}, errors.New(errors.ErrCodeInvalidNode, "node %q is not placed at a cartesian point", other.name)
	}
	at, err := base.Add(offset)
	if err != nil {
		return Node{}, errors.Wrap(errors.ErrCodeInvalidNode, err, "placing node %q relative to %q", n.name, other.name)
	}
	n.at = at
	return n, nil
}

// Definition returns the node definition statement, without the trailing
// semicolon.
func (n Node) Definition() string {
	style := ""
	if !n.style.Empty() {
		style = "[" + n.style.String() + "]"
	}
	return fmt.Sprintf("\\node%s (%s) at %s {%s}", style, n.name, n.at.TikZ(), n.label)
}

// TikZ serializes the node as a reference to its name, for use in paths.
func (n Node) TikZ() string { return fmt.Sprintf("(%s)", n.name) }

// RequiredPackages returns the packages the node needs.
func (n Node) RequiredPackages() []string { return nil }

// RequiredLibraries returns the TikZ libraries the node needs.
func (n Node) RequiredLibraries() []string { return nil }

// Label is an inline path label, attached to the segment it follows.
type Label struct {
	Text     string
	Style    Style
	Position string // e.g. "midway", "above"; empty for TikZ's default
}

// TikZ serializes the label, e.g. `node [midway] {weight}`.
func (l Label) TikZ() string {
	opts := l.Style.String()
	if l.Position != "" {
		if opts != "" {
			opts = l.Position + ", " + opts
		} else {
			opts = l.Position
		}
	}
	if opts != "" {
		opts = " [" + opts + "]"
	}
	return fmt.Sprintf("node%s {%s}", opts, l.Text)
}
