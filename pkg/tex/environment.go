package tex

import (
	"fmt"
	"strings"

	"github.com/msimader/septex/pkg/errors"
)

// Environment is a nestable begin/end scope inside a Document. While open
// it buffers writes in its own handler; on Close the begin marker, buffered
// body and end marker are flushed into the parent's handler, with the body
// indented relative to the parent.
//
// An environment may only open while its parent is open, and must close
// before its parent does. Use Do for scoped open/close with a guaranteed
// close on error paths.
type Environment struct {
	lifecycle

	parent    Container
	doc       *Document
	name      string
	options   string
	arguments string
	handler   *Handler
	onClose   []func() error
}

// EnvironmentOption configures an Environment at construction time.
type EnvironmentOption func(*Environment)

// WithOptions sets the bracketed options emitted after the begin marker.
// Surrounding brackets are added when missing.
func WithOptions(options string) EnvironmentOption {
	return func(e *Environment) {
		if options != "" && !strings.HasPrefix(options, "[") {
			options = "[" + options + "]"
		}
		e.options = options
	}
}

// WithArguments sets mandatory brace-delimited arguments emitted after
// the options in the begin marker, e.g. the width of a minipage.
func WithArguments(args ...string) EnvironmentOption {
	return func(e *Environment) {
		var b strings.Builder
		for _, a := range args {
			b.WriteString("{")
			b.WriteString(a)
			b.WriteString("}")
		}
		e.arguments = b.String()
	}
}

// WithRequiredPackages registers packages with the root document when the
// environment is constructed.
func WithRequiredPackages(packages ...string) EnvironmentOption {
	return func(e *Environment) { _ = e.doc.UsePackage(packages...) }
}

// WithIndent sets how many indentation levels the environment body is
// shifted relative to its parent (default 1).
func WithIndent(n int) EnvironmentOption {
	return func(e *Environment) { e.handler.indentLevel = n }
}

// WithReusable allows the environment to be reopened after closing. Each
// open/close cycle emits a fresh begin/end block into the parent.
func WithReusable() EnvironmentOption {
	return func(e *Environment) { e.reusable = true }
}

// WithOnClose registers a hook that runs when the environment closes,
// before the buffered body is flushed into the parent. Hooks run in
// registration order; specialized environments use this to append trailing
// markup such as captions.
func WithOnClose(fn func() error) EnvironmentOption {
	return func(e *Environment) { e.onClose = append(e.onClose, fn) }
}

// NewEnvironment creates an environment named name under parent. The
// parent must be a Document or another Environment from the same document
// tree; required packages declared through options are registered with the
// root document immediately.
func NewEnvironment(parent Container, name string, opts ...EnvironmentOption) (*Environment, error) {
	if parent == nil {
		return nil, errors.New(errors.ErrCodeBadParent, "environment %q requires a parent scope", name)
	}
	doc := parent.Doc()
	if doc == nil {
		return nil, errors.New(errors.ErrCodeBadParent, "environment %q has no root document", name)
	}
	e := &Environment{
		parent:  parent,
		doc:     doc,
		name:    name,
		handler: NewHandler(WithIndentLevel(1)),
	}
	e.label = fmt.Sprintf("environment %q", name)
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Doc returns the root document of the environment's scope chain.
func (e *Environment) Doc() *Document { return e.doc }

// Parent returns the scope the environment nests inside.
func (e *Environment) Parent() Container { return e.parent }

// Name returns the environment name used in the begin/end markers.
func (e *Environment) Name() string { return e.name }

// Options returns the normalized option string, brackets included.
func (e *Environment) Options() string { return e.options }

// BeginText returns the begin marker written to the parent on open.
func (e *Environment) BeginText() string {
	return fmt.Sprintf("\\begin{%s}%s%s", e.name, e.options, e.arguments)
}

// EndText returns the end marker written to the parent on close.
func (e *Environment) EndText() string {
	return fmt.Sprintf("\\end{%s}", e.name)
}

// containerHandler returns the environment's own buffer: children flush
// into it.
func (e *Environment) containerHandler() *Handler { return e.handler }

// parentHandler returns the buffer of the parent scope.
func (e *Environment) parentHandler() *Handler { return e.parent.containerHandler() }

// Open transitions the environment into the open state and writes the
// begin marker into the parent. The parent must itself be open.
func (e *Environment) Open() error {
	if e.parent.State() != StateOpen {
		return errors.New(errors.ErrCodeBadParent, "%s cannot open: parent scope is %s", e.label, e.parent.State())
	}
	if err := e.open(); err != nil {
		return err
	}
	e.parent.childOpened()
	ph := e.parentHandler()
	ph.Write(e.BeginText())
	ph.Newline()
	return nil
}

// Close runs close hooks, flushes the buffered body and the end marker
// into the parent, and transitions the environment out of the open state.
// The parent must still be open.
func (e *Environment) Close() error {
	if e.parent.State() != StateOpen {
		return errors.New(errors.ErrCodeBadParent, "%s cannot close: parent scope is %s", e.label, e.parent.State())
	}
	for _, fn := range e.onClose {
		if err := fn(); err != nil {
			return err
		}
	}
	if err := e.close(); err != nil {
		return err
	}
	e.parent.childClosed()
	ph := e.parentHandler()
	ph.WriteHandler(e.handler)
	ph.Write(e.EndText())
	ph.Newline(2)
	if e.reusable {
		// The flushed body must not replay on the next cycle.
		e.handler = NewHandler(WithIndentLevel(e.handler.indentLevel))
	}
	return nil
}

// Do opens the environment, runs fn, and guarantees Close runs even when
// fn returns an error. The first error encountered is returned.
func (e *Environment) Do(fn func(*Environment) error) error {
	if err := e.Open(); err != nil {
		return err
	}
	fnErr := fn(e)
	closeErr := e.Close()
	if fnErr != nil {
		return fnErr
	}
	return closeErr
}

// Write appends text to the environment body. The environment must be
// open.
func (e *Environment) Write(s string) error {
	if err := e.requireOpen("writing"); err != nil {
		return err
	}
	e.handler.Write(s)
	return nil
}

// Newline terminates the current body line. The environment must be open.
func (e *Environment) Newline(n ...int) error {
	if err := e.requireOpen("writing"); err != nil {
		return err
	}
	e.handler.Newline(n...)
	return nil
}

// Center is the standard LaTeX center environment.
func Center(parent Container) (*Environment, error) {
	return NewEnvironment(parent, "center")
}

// Figure is the standard LaTeX figure environment with an optional caption
// and label.
type Figure struct {
	*Environment
	caption   string
	figLbl    string
	placement string
}

// FigureOption configures a Figure.
type FigureOption func(*Figure)

// WithCaption sets the figure caption, written just before the figure
// closes.
func WithCaption(caption string) FigureOption {
	return func(f *Figure) { f.caption = caption }
}

// WithLabel sets the figure label. The "fig:" prefix is added when absent,
// so references stay uniform.
func WithLabel(label string) FigureOption {
	return func(f *Figure) { f.figLbl = label }
}

// WithPlacement overrides the placement options (default "h!").
func WithPlacement(placement string) FigureOption {
	return func(f *Figure) { f.placement = placement }
}

// NewFigure creates a figure environment under parent.
func NewFigure(parent Container, opts ...FigureOption) (*Figure, error) {
	f := &Figure{placement: "h!"}
	for _, opt := range opts {
		opt(f)
	}
	env, err := NewEnvironment(parent, "figure",
		WithOptions(f.placement),
		WithOnClose(f.writeTrailer),
	)
	if err != nil {
		return nil, err
	}
	f.Environment = env
	return f, nil
}

// Caption returns the figure caption.
func (f *Figure) Caption() string { return f.caption }

// Label returns the figure label with the "fig:" prefix applied.
func (f *Figure) Label() string {
	if f.figLbl == "" || strings.HasPrefix(f.figLbl, "fig:") {
		return f.figLbl
	}
	return "fig:" + f.figLbl
}

// writeTrailer appends the caption and label markup at close time.
func (f *Figure) writeTrailer() error {
	if f.caption != "" {
		if err := f.Write(fmt.Sprintf("\\caption{%s}", f.caption)); err != nil {
			return err
		}
		f.handler.Newline()
	}
	if f.figLbl != "" {
		if err := f.Write(fmt.Sprintf("\\label{%s}", f.Label())); err != nil {
			return err
		}
		f.handler.Newline()
	}
	return nil
}

// WriteFigureTable writes a list-of-figures directive into the document
// body at the current position.
func (f *Figure) WriteFigureTable() error {
	return f.doc.Write("\\listoffigures")
}

// MathEnvironment is an amsmath display environment such as gather or
// align. Writes are formatted with MathString, and Newline emits a TeX
// line break instead of terminating the buffered line.
type MathEnvironment struct {
	*Environment
}

// NewMathEnvironment creates a math environment named name under parent.
// When starred is true, the environment name gets the "*" suffix and is
// unnumbered.
func NewMathEnvironment(parent Container, name string, starred bool) (*MathEnvironment, error) {
	if starred {
		name += "*"
	}
	env, err := NewEnvironment(parent, name, WithRequiredPackages("amsmath"))
	if err != nil {
		return nil, err
	}
	return &MathEnvironment{Environment: env}, nil
}

// WriteMath formats v for math mode and writes it on its own line.
func (m *MathEnvironment) WriteMath(v any) error {
	if err := m.Environment.Write(MathString(v)); err != nil {
		return err
	}
	m.handler.Newline()
	return nil
}

// LineBreak writes a TeX line break (double backslash).
func (m *MathEnvironment) LineBreak() error {
	if err := m.Environment.Write(`\\`); err != nil {
		return err
	}
	m.handler.Newline()
	return nil
}
