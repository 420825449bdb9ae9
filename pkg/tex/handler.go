package tex

import (
	"strings"

	"github.com/msimader/septex/pkg/errors"
)

// DefaultTabWidth is the width, in characters, assumed for one indentation
// level when computing line wrapping.
const DefaultTabWidth = 4

// line is one physical line of output: an indentation level plus text.
type line struct {
	indent int
	text   string
}

// Handler accumulates lines of text for a document or environment. It
// applies a fixed level of indentation to every line it holds and can
// soft-wrap lines that exceed a configured length.
//
// Write appends to the current logical line so that repeated writes
// concatenate; Newline terminates the logical line. Text containing
// embedded newline characters is treated as explicit hard breaks.
//
// Wrapping happens lazily: WrapLines (called implicitly by String) re-flows
// any not-yet-wrapped lines at word boundaries, falling back to a hard
// character break when a line contains no space to break at. Wrapped
// continuations receive one extra level of hanging indentation.
type Handler struct {
	lines       []line
	indentLevel int
	wrapLength  int // 0 disables wrapping
	wrapped     int // number of leading lines already wrapped
	lineOpen    bool
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithIndentLevel sets the number of indentation units prefixed to every
// line written to the handler.
func WithIndentLevel(n int) HandlerOption {
	return func(h *Handler) { h.indentLevel = n }
}

// WithWrapLength enables soft line wrapping at the given character count.
// Values <= 0 disable wrapping.
func WithWrapLength(n int) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.wrapLength = n
		}
	}
}

// NewHandler creates an empty line buffer.
func NewHandler(opts ...HandlerOption) *Handler {
	h := &Handler{}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// IndentLevel returns the handler's base indentation level.
func (h *Handler) IndentLevel() int { return h.indentLevel }

// WrapLength returns the configured wrap length, or 0 if wrapping is
// disabled.
func (h *Handler) WrapLength() int { return h.wrapLength }

// Len returns the number of lines currently buffered.
func (h *Handler) Len() int { return len(h.lines) }

// Write appends s to the current logical line. Embedded newline characters
// act as hard line breaks; a trailing newline terminates the logical line.
func (h *Handler) Write(s string) {
	segments := strings.Split(s, "\n")
	trailingBreak := strings.HasSuffix(s, "\n")
	if trailingBreak {
		segments = segments[:len(segments)-1]
	}

	for i, seg := range segments {
		if i > 0 || !h.lineOpen {
			h.lines = append(h.lines, line{indent: h.indentLevel})
			h.lineOpen = true
		}
		h.lines[len(h.lines)-1].text += seg
	}
	if trailingBreak {
		h.lineOpen = false
	}
}

// Newline emits n line terminators (default 1). The first terminator closes
// the current logical line, if one is open; each further terminator
// produces an empty line.
func (h *Handler) Newline(n ...int) {
	count := 1
	if len(n) > 0 {
		count = n[0]
	}
	for ; count > 0; count-- {
		if h.lineOpen {
			h.lineOpen = false
			continue
		}
		h.lines = append(h.lines, line{indent: h.indentLevel})
	}
}

// WriteHandler merges the lines buffered in other into h, adding h's
// indentation level on top of each merged line's own indentation. The
// current logical line is terminated first. other is not modified.
func (h *Handler) WriteHandler(other *Handler) {
	h.lineOpen = false
	for _, l := range other.lines {
		h.lines = append(h.lines, line{indent: l.indent + h.indentLevel, text: l.text})
	}
}

// ReadLines returns size lines of text starting at offset. If fewer than
// size lines remain past the offset, the remaining lines are returned.
func (h *Handler) ReadLines(offset, size int) ([]string, error) {
	if offset < 0 || size < 0 {
		return nil, errors.New(errors.ErrCodeInternal, "offset and size must be non-negative, got %d and %d", offset, size)
	}
	if offset > len(h.lines) {
		return nil, errors.New(errors.ErrCodeInternal, "offset %d exceeds line count %d", offset, len(h.lines))
	}
	end := min(offset+size, len(h.lines))
	out := make([]string, 0, end-offset)
	for _, l := range h.lines[offset:end] {
		out = append(out, l.text)
	}
	return out, nil
}

// Lines returns the buffered text lines without indentation prefixes.
func (h *Handler) Lines() []string {
	out, _ := h.ReadLines(0, len(h.lines))
	return out
}

// WrapLines re-flows all not-yet-wrapped lines according to the configured
// wrap length. tabWidth is the assumed character width of one indentation
// unit. When hangingIndent is true, the first continuation of a wrapped
// line is indented one extra level; further continuations of the same line
// stay at that level.
//
// A line is broken after the first space at or beyond its effective wrap
// length (wrap length minus the width of its indentation). If the line
// contains no such space, it is broken mid-word at the effective length so
// the bound still holds. Continuations of a line that contained a TeX
// comment before the break point are prefixed with "% " to keep the
// remainder commented.
func (h *Handler) WrapLines(tabWidth int, hangingIndent bool) {
	if h.wrapLength <= 0 {
		return
	}

	lastWrapped := false
	i := h.wrapped
	for i < len(h.lines) {
		l := h.lines[i]
		effective := h.wrapLength - l.indent*tabWidth
		if effective <= 0 || len(l.text) <= effective {
			lastWrapped = false
			i++
			continue
		}

		breakPos := strings.Index(l.text[effective:], " ")
		var left, rest string
		if breakPos >= 0 {
			// Break after the space.
			cut := effective + breakPos + 1
			left = strings.TrimRight(l.text[:cut], " ")
			rest = strings.TrimLeft(l.text[cut:], " ")
		} else {
			left = l.text[:effective]
			rest = l.text[effective:]
		}
		if rest == "" {
			lastWrapped = false
			i++
			continue
		}
		if strings.Contains(left, "%") {
			rest = "% " + rest
		}

		hang := 0
		if hangingIndent && !lastWrapped {
			hang = 1
		}
		h.lines[i] = line{indent: l.indent, text: left}
		h.lines = append(h.lines[:i+1], append([]line{{indent: l.indent + hang, text: rest}}, h.lines[i+1:]...)...)
		lastWrapped = true
		i++
	}
	h.wrapped = len(h.lines)
}

// String wraps any pending lines and renders the buffer with tab
// indentation.
func (h *Handler) String() string {
	h.WrapLines(DefaultTabWidth, true)
	var b strings.Builder
	for i, l := range h.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if l.text != "" {
			b.WriteString(strings.Repeat("\t", l.indent))
			b.WriteString(l.text)
		}
	}
	return b.String()
}
