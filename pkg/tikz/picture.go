package tikz

import (
	"fmt"

	"github.com/msimader/septex/pkg/errors"
	"github.com/msimader/septex/pkg/tex"
)

// registry tracks the named objects and color definitions of a picture.
// Scopes share the registry of their root picture, so a name defined in
// the picture is visible in every scope and vice versa.
type registry struct {
	named      map[string]Named
	colors     map[string]bool
	autoRename bool
}

func (r *registry) renamed(name string) string {
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", name, i)
		if _, taken := r.named[candidate]; !taken {
			return candidate
		}
	}
}

// Picture is a tikzpicture environment. It extends the plain environment
// with a registry of named objects and automatic requirement propagation:
// writing an object registers its packages and TikZ libraries with the
// root document and defines any named objects it references.
type Picture struct {
	*tex.Environment

	doc *tex.Document
	reg *registry

	envStyle     Style
	strictStyles bool
}

// PictureOption configures a Picture.
type PictureOption func(*Picture)

// WithAutoRename makes duplicate name registrations rename the new
// object deterministically (name-2, name-3, ...) instead of failing.
func WithAutoRename() PictureOption {
	return func(p *Picture) { p.reg.autoRename = true }
}

// WithStrictStyles validates every written object's style against the
// recognized key domain.
func WithStrictStyles() PictureOption {
	return func(p *Picture) { p.strictStyles = true }
}

// WithPictureStyle sets the style options on the tikzpicture environment
// itself.
func WithPictureStyle(s Style) PictureOption {
	return func(p *Picture) { p.envStyle = s }
}

// NewPicture creates a tikzpicture environment under parent and registers
// the tikz package with the root document.
func NewPicture(parent tex.Container, opts ...PictureOption) (*Picture, error) {
	p := &Picture{
		reg: &registry{named: make(map[string]Named), colors: make(map[string]bool)},
	}
	for _, opt := range opts {
		opt(p)
	}

	envOpts := []tex.EnvironmentOption{tex.WithRequiredPackages("tikz")}
	if !p.envStyle.Empty() {
		envOpts = append(envOpts, tex.WithOptions(p.envStyle.String()))
	}
	env, err := tex.NewEnvironment(parent, "tikzpicture", envOpts...)
	if err != nil {
		return nil, err
	}
	p.Environment = env
	p.doc = env.Doc()
	return p, nil
}

// Do opens the picture, runs fn, and guarantees Close runs even when fn
// returns an error.
func (p *Picture) Do(fn func(*Picture) error) error {
	if err := p.Open(); err != nil {
		return err
	}
	fnErr := fn(p)
	closeErr := p.Close()
	if fnErr != nil {
		return fnErr
	}
	return closeErr
}

// Defined reports whether a named object is registered under name.
func (p *Picture) Defined(name string) bool {
	_, ok := p.reg.named[name]
	return ok
}

// Define registers a named object and writes its definition statement.
// Registering the same definition twice is a no-op. A name conflict with
// a different definition fails, or deterministically renames the new
// object when the picture was created with auto-renaming; the possibly
// renamed object is returned.
func (p *Picture) Define(n Named) (Named, error) {
	return define(p, p.reg, p.strictStyles, n)
}

// DefineColor ensures a \definecolor directive for c exists in the
// document preamble and registers the xcolor package. Colors are
// deduplicated by name.
func (p *Picture) DefineColor(c Color) error {
	return defineColor(p.doc, p.reg, c)
}

// Write serializes one object into the picture body: requirements are
// registered with the root document, colors referenced by the object's
// style get their \definecolor directives, referenced named objects are
// defined, and the statement is written with its trailing semicolon.
func (p *Picture) Write(w Writeable) error {
	return write(p, p.reg, p.strictStyles, w)
}

// WriteString writes a raw TikZ statement line into the picture body.
func (p *Picture) WriteString(s string) error {
	return writeStatement(p.Environment, s)
}

// Scope is a TikZ scope environment nested inside a picture. It shares
// the name registry of its root picture: names defined in the picture
// resolve inside the scope and names defined in the scope remain visible
// after it closes.
type Scope struct {
	*tex.Environment

	doc *tex.Document
	reg *registry

	strictStyles bool
}

// NewScope creates a scope under parent, which must be a Picture or
// another Scope.
func NewScope(parent tex.Container, style Style) (*Scope, error) {
	var (
		reg    *registry
		strict bool
	)
	switch t := parent.(type) {
	case *Picture:
		reg, strict = t.reg, t.strictStyles
	case *Scope:
		reg, strict = t.reg, t.strictStyles
	default:
		return nil, errors.New(errors.ErrCodeBadParent, "a scope must nest inside a tikzpicture")
	}

	var envOpts []tex.EnvironmentOption
	if !style.Empty() {
		envOpts = append(envOpts, tex.WithOptions(style.String()))
	}
	env, err := tex.NewEnvironment(parent, "scope", envOpts...)
	if err != nil {
		return nil, err
	}
	return &Scope{Environment: env, doc: env.Doc(), reg: reg, strictStyles: strict}, nil
}

// Do opens the scope, runs fn, and guarantees Close runs even when fn
// returns an error.
func (s *Scope) Do(fn func(*Scope) error) error {
	if err := s.Open(); err != nil {
		return err
	}
	fnErr := fn(s)
	closeErr := s.Close()
	if fnErr != nil {
		return fnErr
	}
	return closeErr
}

// Defined reports whether a named object is registered under name.
func (s *Scope) Defined(name string) bool {
	_, ok := s.reg.named[name]
	return ok
}

// Define registers a named object in the shared picture registry and
// writes its definition into the scope body.
func (s *Scope) Define(n Named) (Named, error) {
	return define(s, s.reg, s.strictStyles, n)
}

// DefineColor ensures a \definecolor directive for c exists in the
// document preamble.
func (s *Scope) DefineColor(c Color) error {
	return defineColor(s.doc, s.reg, c)
}

// Write serializes one object into the scope body, with the same
// requirement propagation as Picture.Write.
func (s *Scope) Write(w Writeable) error {
	return write(s, s.reg, s.strictStyles, w)
}

// WriteString writes a raw TikZ statement line into the scope body.
func (s *Scope) WriteString(str string) error {
	return writeStatement(s.Environment, str)
}

// canvas is the shared surface of Picture and Scope. Raw statement
// writes go through the underlying environment because Picture and Scope
// shadow Write with the object-level version.
type canvas interface {
	Doc() *tex.Document
	env() *tex.Environment
}

func (p *Picture) env() *tex.Environment { return p.Environment }
func (s *Scope) env() *tex.Environment   { return s.Environment }

func writeStatement(env *tex.Environment, s string) error {
	if err := env.Write(s + ";"); err != nil {
		return err
	}
	return env.Newline()
}

// styled is satisfied by writeables that carry a style.
type styled interface {
	Style() Style
}

// checkStyle validates the object's style in strict mode and defines the
// colors it references in the document preamble.
func checkStyle(c canvas, reg *registry, strict bool, w Writeable) error {
	s, ok := w.(styled)
	if !ok {
		return nil
	}
	if strict {
		if err := s.Style().Validate(); err != nil {
			return err
		}
	}
	for _, col := range s.Style().Colors() {
		if err := defineColor(c.Doc(), reg, col); err != nil {
			return err
		}
	}
	return nil
}

func define(c canvas, reg *registry, strict bool, n Named) (Named, error) {
	if err := checkStyle(c, reg, strict, n); err != nil {
		return nil, err
	}
	name := n.Name()
	if existing, ok := reg.named[name]; ok {
		if existing.Definition() == n.Definition() {
			return existing, nil
		}
		if !reg.autoRename {
			return nil, errors.New(errors.ErrCodeDuplicateName, "name %q is already defined in this picture", name)
		}
		renamed := reg.renamed(name)
		node, ok := n.(Node)
		if !ok {
			return nil, errors.New(errors.ErrCodeDuplicateName, "name %q is already defined and cannot be renamed", name)
		}
		n = node.withName(renamed)
		name = renamed
	}

	if err := registerRequirements(c.Doc(), n); err != nil {
		return nil, err
	}
	if err := writeStatement(c.env(), n.Definition()); err != nil {
		return nil, err
	}
	reg.named[name] = n
	return n, nil
}

func defineColor(doc *tex.Document, reg *registry, c Color) error {
	if c.IsZero() {
		return errors.New(errors.ErrCodeInvalidColor, "cannot define the zero color")
	}
	if reg.colors[c.Name()] {
		return nil
	}
	if err := doc.UsePackage(c.RequiredPackages()...); err != nil {
		return err
	}
	preamble, err := doc.Preamble()
	if err != nil {
		return err
	}
	preamble.Write(c.Definition())
	preamble.Newline()
	reg.colors[c.Name()] = true
	return nil
}

func write(c canvas, reg *registry, strict bool, w Writeable) error {
	if err := checkStyle(c, reg, strict, w); err != nil {
		return err
	}
	if err := registerRequirements(c.Doc(), w); err != nil {
		return err
	}
	if dn, ok := w.(DefinesNamed); ok {
		for _, n := range dn.RequiredNamed() {
			if existing, defined := reg.named[n.Name()]; defined {
				if existing.Definition() != n.Definition() {
					return errors.New(errors.ErrCodeDuplicateName, "name %q is already defined in this picture", n.Name())
				}
				continue
			}
			if _, err := define(c, reg, strict, n); err != nil {
				return err
			}
		}
	}
	return writeStatement(c.env(), w.TikZ())
}

func registerRequirements(doc *tex.Document, w Writeable) error {
	if pkgs := w.RequiredPackages(); len(pkgs) > 0 {
		if err := doc.UsePackage(pkgs...); err != nil {
			return err
		}
	}
	if libs := w.RequiredLibraries(); len(libs) > 0 {
		if err := doc.UseTikzLibrary(libs...); err != nil {
			return err
		}
	}
	return nil
}
