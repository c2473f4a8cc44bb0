package solver

import (
	"errors"
	"fmt"

	"github.com/wricardo/mcp-training/shoepuzzle/game/engine"
)

// ErrOptionViolation is returned when an invalid Option is supplied.
var ErrOptionViolation = errors.New("solver: invalid option supplied")

// Option configures the search via functional arguments.
// Invalid options are recorded and surfaced as ErrOptionViolation when the
// search runs.
type Option func(*Options)

// Options holds parameters and callbacks of a search.
type Options struct {
	// MaxDepth, if > 0, stops generating children deeper than this many moves.
	// 0 means no limit.
	MaxDepth int

	// OnEnqueue is called for every newly seen node, root included.
	OnEnqueue func(n *Node)

	// OnVisit is called for every dequeued node before the goal test.
	// Returning an error aborts the search.
	OnVisit func(n *Node) error

	// Goal decides which boards end the search.
	Goal func(s engine.PuzzleState) bool

	err error
}

// DefaultOptions returns options with no depth limit, no-op hooks and the
// red-on-blue goal test.
func DefaultOptions() Options {
	return Options{
		MaxDepth:  0,
		OnEnqueue: func(*Node) {},
		OnVisit:   func(*Node) error { return nil },
		Goal:      engine.PuzzleState.IsGoal,
	}
}

// WithMaxDepth limits the search to boards at most d moves away.
//
//	d > 0: limit to depth d
//	d == 0: no limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithOnEnqueue registers a callback to run on enqueue.
func WithOnEnqueue(fn func(n *Node)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the search.
func WithOnVisit(fn func(n *Node) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithGoal replaces the goal test.
func WithGoal(fn func(s engine.PuzzleState) bool) Option {
	return func(o *Options) {
		if fn == nil {
			o.err = fmt.Errorf("%w: goal test cannot be nil", ErrOptionViolation)
			return
		}
		o.Goal = fn
	}
}
