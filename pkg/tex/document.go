package tex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/msimader/septex/pkg/errors"
)

// Default document construction values.
const (
	DefaultClass        = "article"
	DefaultClassOptions = "a4paper, 12pt"
)

// defaultPackages are included in every document unless overridden.
var defaultPackages = []string{"amsmath"}

// Container is a scope that environments can nest inside: a Document or
// another Environment.
type Container interface {
	// Doc returns the root document of the scope chain.
	Doc() *Document
	// State returns the container's lifecycle state.
	State() State

	containerHandler() *Handler
	childOpened()
	childClosed()
}

// requirement is one preamble inclusion directive, e.g. usepackage/amsmath.
type requirement struct {
	directive string
	name      string
}

// Document is the root resource of a TeX document. It owns the preamble and
// body buffers and the registry of required packages and TikZ libraries.
//
// A document is created virgin, accepts writes between Open and Close, and
// persists the rendered .tex file when Close succeeds. Close writes the
// file atomically so a failed write never leaves a truncated document
// behind.
type Document struct {
	lifecycle

	path         string
	class        string
	classOptions string
	title        string
	subtitle     string
	author       string
	showDate     bool
	showPageNums bool
	wrapLength   int
	noClobber    bool

	initialPackages []string

	definitions *Handler
	preamble    *Handler
	body        *Handler

	requirements []requirement
	saved        bool
	compiled     bool
}

// DocumentOption configures a Document at construction time.
type DocumentOption func(*Document)

// WithClass sets the document class (default "article").
func WithClass(class string) DocumentOption {
	return func(d *Document) { d.class = class }
}

// WithClassOptions sets the options passed to the document class
// (default "a4paper, 12pt").
func WithClassOptions(opts string) DocumentOption {
	return func(d *Document) { d.classOptions = opts }
}

// WithPackages replaces the default package set included at construction.
func WithPackages(packages ...string) DocumentOption {
	return func(d *Document) { d.initialPackages = packages }
}

// WithTitle sets the document title. A title causes \maketitle to be
// emitted at the start of the body.
func WithTitle(title string) DocumentOption {
	return func(d *Document) { d.title = title }
}

// WithSubtitle sets the subtitle shown beneath the title. Ignored unless a
// title is set.
func WithSubtitle(subtitle string) DocumentOption {
	return func(d *Document) { d.subtitle = subtitle }
}

// WithAuthor sets the document author.
func WithAuthor(author string) DocumentOption {
	return func(d *Document) { d.author = author }
}

// WithDateShown includes the date in the title block. Off by default.
func WithDateShown() DocumentOption {
	return func(d *Document) { d.showDate = true }
}

// WithPageNumbers shows page numbers. Off by default.
func WithPageNumbers() DocumentOption {
	return func(d *Document) { d.showPageNums = true }
}

// WithLineWrap enables soft line wrapping of preamble and body text at
// the given character count.
func WithLineWrap(n int) DocumentOption {
	return func(d *Document) { d.wrapLength = n }
}

// WithNoClobber makes Close fail instead of overwriting an existing file
// at the output path.
func WithNoClobber() DocumentOption {
	return func(d *Document) { d.noClobber = true }
}

// NewDocument creates a virgin document that will be written to path on
// Close. A ".tex" suffix is appended to the path when missing.
func NewDocument(path string, opts ...DocumentOption) *Document {
	if !strings.HasSuffix(path, ".tex") {
		path += ".tex"
	}
	d := &Document{
		path:         path,
		class:        DefaultClass,
		classOptions: DefaultClassOptions,
		definitions:  NewHandler(),
	}
	d.label = fmt.Sprintf("document %q", filepath.Base(path))
	d.initialPackages = defaultPackages
	for _, opt := range opts {
		opt(d)
	}
	d.usePackages(d.initialPackages)
	d.preamble = NewHandler(WithWrapLength(d.wrapLength))
	d.body = NewHandler(WithIndentLevel(1), WithWrapLength(d.wrapLength))
	return d
}

// Doc returns the document itself, satisfying Container.
func (d *Document) Doc() *Document { return d }

// containerHandler returns the body buffer: environments nested directly in
// the document flush into the body.
func (d *Document) containerHandler() *Handler { return d.body }

// Path returns the absolute path of the .tex file to be written.
func (d *Document) Path() string {
	abs, err := filepath.Abs(d.path)
	if err != nil {
		return d.path
	}
	return abs
}

// Class returns the document class.
func (d *Document) Class() string { return d.class }

// ClassOptions returns the document class options.
func (d *Document) ClassOptions() string { return d.classOptions }

// Title returns the document title, if any.
func (d *Document) Title() string { return d.title }

// Author returns the document author, if any.
func (d *Document) Author() string { return d.author }

// WrapLength returns the configured body wrap length, or 0.
func (d *Document) WrapLength() int { return d.wrapLength }

// Saved reports whether the document has been successfully written to its
// .tex path.
func (d *Document) Saved() bool {
	if !d.saved {
		return false
	}
	_, err := os.Stat(d.Path())
	return err == nil
}

// CompiledSuccessfully reports whether an external compile run on this
// document has succeeded. It is independent of Saved: markup generation
// may succeed while compilation fails.
func (d *Document) CompiledSuccessfully() bool { return d.compiled }

// Requirements returns the registered preamble directives as
// "\<directive>{<name>}" strings, in first-seen order.
func (d *Document) Requirements() []string {
	out := make([]string, 0, len(d.requirements))
	for _, r := range d.requirements {
		out = append(out, fmt.Sprintf("\\%s{%s}", r.directive, r.name))
	}
	return out
}

// declare records a preamble directive, skipping exact duplicates.
// Insertion order is preserved so the preamble is deterministic.
func (d *Document) declare(directive string, names []string) error {
	if d.state == StateClosed {
		return errors.New(errors.ErrCodeNotOpen, "%s is closed; cannot declare requirements", d.label)
	}
	for _, name := range names {
		dup := false
		for _, r := range d.requirements {
			if r.directive == directive && r.name == name {
				dup = true
				break
			}
		}
		if !dup {
			d.requirements = append(d.requirements, requirement{directive: directive, name: name})
			d.definitions.Write(fmt.Sprintf("\\%s{%s}", directive, name))
			d.definitions.Newline()
		}
	}
	return nil
}

func (d *Document) usePackages(packages []string) {
	_ = d.declare("usepackage", packages)
}

// UsePackage registers one or more \usepackage directives. Duplicates are
// skipped; first-seen order is preserved. Requirements may be declared at
// any point before the document closes, including by deeply nested objects.
func (d *Document) UsePackage(packages ...string) error {
	return d.declare("usepackage", packages)
}

// UseTikzLibrary registers one or more \usetikzlibrary directives, with the
// same deduplication rules as UsePackage.
func (d *Document) UseTikzLibrary(libraries ...string) error {
	return d.declare("usetikzlibrary", libraries)
}

// Body returns the body buffer. The document must be open.
func (d *Document) Body() (*Handler, error) {
	if err := d.requireOpen("accessing the body"); err != nil {
		return nil, err
	}
	return d.body, nil
}

// Preamble returns the preamble buffer. The document must be open.
func (d *Document) Preamble() (*Handler, error) {
	if err := d.requireOpen("accessing the preamble"); err != nil {
		return nil, err
	}
	return d.preamble, nil
}

// Write appends text to the document body. The document must be open.
func (d *Document) Write(s string) error {
	if err := d.requireOpen("writing"); err != nil {
		return err
	}
	d.body.Write(s)
	return nil
}

// Newline terminates the current body line. The document must be open.
func (d *Document) Newline(n ...int) error {
	if err := d.requireOpen("writing"); err != nil {
		return err
	}
	d.body.Newline(n...)
	return nil
}

// PageBreak inserts a page break into the body.
func (d *Document) PageBreak() error {
	if err := d.Write("\\newpage"); err != nil {
		return err
	}
	d.body.Newline(2)
	return nil
}

// Open transitions the document into the open state and emits the title
// block and page numbering configuration.
func (d *Document) Open() error {
	if err := d.open(); err != nil {
		return err
	}
	d.initDocument()
	return nil
}

// initDocument writes the title and page numbering setup. Runs once per
// open.
func (d *Document) initDocument() {
	if d.title != "" || d.author != "" {
		d.body.Write("\\maketitle")
		d.body.Newline(2)
		if d.title != "" {
			d.usePackages([]string{"relsize"})
			if d.subtitle != "" {
				d.preamble.Write(fmt.Sprintf("\\title{%s\\\\[0.4em]\\smaller{%s}}", d.title, d.subtitle))
			} else {
				d.preamble.Write(fmt.Sprintf("\\title{%s}", d.title))
			}
			d.preamble.Newline()
		}
		if d.author != "" {
			d.preamble.Write(fmt.Sprintf("\\author{%s}", d.author))
			d.preamble.Newline()
		}
		if !d.showDate {
			d.preamble.Write("\\date{}")
			d.preamble.Newline()
		}
	}
	if !d.showPageNums {
		d.preamble.Write("\\pagenumbering{gobble}")
		d.preamble.Newline()
	}
}

// Close finalizes the document: it renders preamble and body into the .tex
// template and writes the result to the output path atomically. All child
// scopes must already be closed.
func (d *Document) Close() error {
	if d.noClobber && d.state == StateOpen {
		if _, err := os.Stat(d.Path()); err == nil {
			return errors.New(errors.ErrCodeFileExists, "output file %s already exists", d.Path())
		}
	}
	if err := d.close(); err != nil {
		return err
	}
	if err := atomic.WriteFile(d.Path(), strings.NewReader(d.String())); err != nil {
		return errors.Wrap(errors.ErrCodeFileWrite, err, "writing %s", d.Path())
	}
	d.saved = true
	return nil
}

// Do opens the document, runs fn, and guarantees Close runs even when fn
// returns an error. The first error encountered is returned.
func (d *Document) Do(fn func(*Document) error) error {
	if err := d.Open(); err != nil {
		return err
	}
	fnErr := fn(d)
	closeErr := d.Close()
	if fnErr != nil {
		return fnErr
	}
	return closeErr
}

// documentTemplate lays out the rendered .tex file. Placeholders:
// class options, class, package directives, preamble, body.
const documentTemplate = `\documentclass[%s]{%s}

%% ~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~
%% ~~~~~~~~~~~~~~~ PACKAGES ~~~~~~~~~~~~~~~
%% ~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~

%s

%% ~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~
%% ~~~~~~~~~~~~~~~ PREAMBLE ~~~~~~~~~~~~~~~
%% ~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~

%s

%% ~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~
%% ~~~~~~~~~~~~~~~ BODY ~~~~~~~~~~~~~~~
%% ~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~

\begin{document}
%s
\end{document}
`

// String renders the complete document text.
func (d *Document) String() string {
	return fmt.Sprintf(documentTemplate,
		d.classOptions,
		d.class,
		d.definitions.String(),
		d.preamble.String(),
		d.body.String(),
	)
}
