// Package tex builds LaTeX documents programmatically.
//
// The package is organized around three pieces:
//
//   - A resource lifecycle (virgin -> open -> used/closed) shared by every
//     document and environment. Writes are only legal while a resource is
//     open; closing flushes buffered text into the parent scope.
//   - Handler, an indentation-aware line buffer with optional soft
//     line wrapping.
//   - Document and Environment, which compose the two into nestable
//     begin/end scopes that serialize to a .tex file on close.
//
// # Example
//
//	doc := tex.NewDocument("out.tex", tex.WithTitle("Hello"))
//	err := doc.Do(func(d *tex.Document) error {
//	    center, err := tex.NewEnvironment(d, "center")
//	    if err != nil {
//	        return err
//	    }
//	    return center.Do(func(e *tex.Environment) error {
//	        e.Write("hello")
//	        return nil
//	    })
//	})
package tex

import (
	"github.com/msimader/septex/pkg/errors"
)

// State is the lifecycle state of a resource.
type State int

// Lifecycle states. A resource starts virgin, accepts writes while open,
// and is used or closed afterwards. Used resources may be reopened if the
// resource was created reusable; closed resources never reopen.
const (
	StateVirgin State = iota
	StateOpen
	StateUsed
	StateClosed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateVirgin:
		return "virgin"
	case StateOpen:
		return "open"
	case StateUsed:
		return "used"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// lifecycle is the open/close state machine embedded by Document,
// Environment and related resources. The zero value is a virgin,
// non-reusable resource; set label for error messages.
type lifecycle struct {
	state    State
	opens    int
	reusable bool
	label    string

	// openChildren counts nested scopes that have opened under this
	// resource and not yet closed. A resource cannot close while any
	// child scope is still open.
	openChildren int
}

// State returns the current lifecycle state.
func (l *lifecycle) State() State { return l.state }

// IsOpen reports whether the resource currently accepts writes.
func (l *lifecycle) IsOpen() bool { return l.state == StateOpen }

// open transitions the resource into the open state.
func (l *lifecycle) open() error {
	switch l.state {
	case StateOpen:
		return errors.New(errors.ErrCodeReopened, "%s is already open", l.label)
	case StateClosed:
		return errors.New(errors.ErrCodeReopened, "%s is closed and cannot be reopened", l.label)
	case StateUsed:
		if !l.reusable {
			return errors.New(errors.ErrCodeReopened, "%s has already been used; mark it reusable to reopen", l.label)
		}
	}
	l.state = StateOpen
	l.opens++
	return nil
}

// close transitions the resource out of the open state. Reusable resources
// become used (and may reopen); everything else becomes closed.
func (l *lifecycle) close() error {
	if l.state != StateOpen {
		return errors.New(errors.ErrCodeNotOpen, "%s must be open to close it (state: %s)", l.label, l.state)
	}
	if l.openChildren > 0 {
		return errors.New(errors.ErrCodeOpenChild, "%s still has %d open child scope(s)", l.label, l.openChildren)
	}
	if l.reusable {
		l.state = StateUsed
	} else {
		l.state = StateClosed
	}
	return nil
}

// requireOpen guards mutating operations.
func (l *lifecycle) requireOpen(op string) error {
	if l.state != StateOpen {
		return errors.New(errors.ErrCodeNotOpen, "%s must be open before %s (state: %s)", l.label, op, l.state)
	}
	return nil
}

// requireVirgin guards operations that are only valid before the first open.
func (l *lifecycle) requireVirgin(op string) error {
	if l.opens > 0 {
		return errors.New(errors.ErrCodeNotVirgin, "%s must not have been opened before %s", l.label, op)
	}
	return nil
}

// requireUsed guards reads of finalized output: the resource must have been
// opened and closed at least once.
func (l *lifecycle) requireUsed(op string) error {
	if l.opens == 0 || l.state == StateOpen {
		return errors.New(errors.ErrCodeNotUsed, "%s must have been opened and closed before %s (state: %s)", l.label, op, l.state)
	}
	return nil
}

func (l *lifecycle) childOpened()  { l.openChildren++ }
func (l *lifecycle) childClosed()  { l.openChildren-- }
