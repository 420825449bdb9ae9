package tikz

import (
	"fmt"

	"github.com/msimader/septex/pkg/errors"
)

// Graph builds a node-and-edge diagram on top of Picture. Nodes and
// edges without an explicit style get the graph's defaults, so a whole
// diagram restyles in one place.
type Graph struct {
	nodeStyle Style
	edgeStyle Style
	arrow     Arrow

	nodes []Node
	edges []edge
}

type edge struct {
	from, to string
	label    *Label
	style    *Style
}

// GraphOption configures a Graph.
type GraphOption func(*Graph)

// WithNodeStyle sets the default style applied to nodes added without
// one.
func WithNodeStyle(s Style) GraphOption {
	return func(g *Graph) { g.nodeStyle = s }
}

// WithEdgeStyle sets the default style applied to edges added without
// one.
func WithEdgeStyle(s Style) GraphOption {
	return func(g *Graph) { g.edgeStyle = s }
}

// WithEdgeArrow sets the arrow tip used for every edge (default "->").
func WithEdgeArrow(a Arrow) GraphOption {
	return func(g *Graph) { g.arrow = a }
}

// NewGraph creates an empty graph. Without options, nodes are drawn as
// circles and edges as plain arrows.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		nodeStyle: Style{}.SetFlag("draw").SetFlag("circle"),
		arrow:     ArrowOut,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddNode adds a node to the graph. A node without a style gets the
// graph default.
func (g *Graph) AddNode(n Node) *Graph {
	if n.Style().Empty() {
		n = n.WithStyle(g.nodeStyle)
	}
	g.nodes = append(g.nodes, n)
	return g
}

// AddEdge adds a directed edge between two previously added nodes,
// identified by name.
func (g *Graph) AddEdge(from, to string) *Graph {
	g.edges = append(g.edges, edge{from: from, to: to})
	return g
}

// AddLabeledEdge adds a directed edge carrying a label on its segment.
func (g *Graph) AddLabeledEdge(from, to string, l Label) *Graph {
	g.edges = append(g.edges, edge{from: from, to: to, label: &l})
	return g
}

// AddStyledEdge adds a directed edge with an explicit style overriding
// the graph default.
func (g *Graph) AddStyledEdge(from, to string, s Style) *Graph {
	g.edges = append(g.edges, edge{from: from, to: to, style: &s})
	return g
}

// Nodes returns the added nodes.
func (g *Graph) Nodes() []Node { return append([]Node(nil), g.nodes...) }

// WriteTo defines the graph's nodes in p and writes one directed path
// per edge. The positioning library is registered with the root
// document.
func (g *Graph) WriteTo(p *Picture) error {
	if err := p.Doc().UseTikzLibrary("positioning"); err != nil {
		return err
	}

	byName := make(map[string]Node, len(g.nodes))
	for _, n := range g.nodes {
		defined, err := p.Define(n)
		if err != nil {
			return err
		}
		byName[n.Name()] = defined.(Node)
	}

	for _, e := range g.edges {
		from, ok := byName[e.from]
		if !ok {
			return errors.New(errors.ErrCodeInvalidNode, "edge references unknown node %q", e.from)
		}
		to, ok := byName[e.to]
		if !ok {
			return errors.New(errors.ErrCodeInvalidNode, "edge references unknown node %q", e.to)
		}

		style := g.edgeStyle
		if e.style != nil {
			style = *e.style
		}
		path := NewDirectedPath(g.arrow, from, to).WithStyle(style)
		if e.label != nil {
			path = path.WithLabel(0, *e.label)
		}
		if err := p.Write(path); err != nil {
			return err
		}
	}
	return nil
}

// String summarizes the graph for debugging.
func (g *Graph) String() string {
	return fmt.Sprintf("graph with %d node(s) and %d edge(s)", len(g.nodes), len(g.edges))
}
