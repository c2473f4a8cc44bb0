package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/wricardo/mcp-training/shoepuzzle/game/engine"
)

// Engine runs breadth-first searches with a fixed set of options.
// An Engine holds no per-search state and may be shared.
type Engine struct {
	opts Options
}

// New builds an Engine from the given options.
func New(opts ...Option) *Engine {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{opts: o}
}

// Result is the outcome of one search.
type Result struct {
	// Goal is the first goal node dequeued, nil when Found is false.
	Goal  *Node
	Found bool

	// Expanded counts dequeued nodes, Discovered counts distinct boards seen.
	Expanded    int
	Discovered  int
	MaxFrontier int
	Elapsed     time.Duration
}

// Node returns the goal node, if any.
func (r *Result) Node() (*Node, bool) {
	if r == nil || !r.Found {
		return nil, false
	}
	return r.Goal, true
}

// walker encapsulates mutable search state.
type walker struct {
	opts  Options
	ctx   context.Context
	queue []*Node
	seen  map[engine.PuzzleState]struct{}
	res   *Result
}

// Search explores boards reachable from initial in order of move count and
// returns the first goal found, which is a shortest solution.
// It returns ErrOptionViolation for bad options, the context's error on
// cancellation, or the error of an OnVisit hook.
func (e *Engine) Search(ctx context.Context, initial engine.PuzzleState) (*Result, error) {
	if e.opts.err != nil {
		return nil, e.opts.err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	w := &walker{
		opts:  e.opts,
		ctx:   ctx,
		queue: make([]*Node, 0, 64),
		seen:  make(map[engine.PuzzleState]struct{}, 64),
		res:   &Result{},
	}

	w.enqueue(NewNode(initial))
	err := w.loop()
	w.res.Elapsed = time.Since(start)
	if err != nil {
		return nil, err
	}
	return w.res, nil
}

// enqueue marks the node's board seen, calls OnEnqueue and appends it.
func (w *walker) enqueue(n *Node) {
	w.seen[n.state] = struct{}{}
	w.res.Discovered++
	w.opts.OnEnqueue(n)
	w.queue = append(w.queue, n)
	if len(w.queue) > w.res.MaxFrontier {
		w.res.MaxFrontier = len(w.queue)
	}
}

// loop processes the queue until a goal, exhaustion, error or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		n := w.dequeue()
		if err := w.opts.OnVisit(n); err != nil {
			return fmt.Errorf("solver: OnVisit error at %s: %w", n.state, err)
		}
		if w.opts.Goal(n.state) {
			w.res.Goal = n
			w.res.Found = true
			return nil
		}
		w.expand(n)
	}
	return nil
}

func (w *walker) dequeue() *Node {
	n := w.queue[0]
	w.queue[0] = nil
	w.queue = w.queue[1:]
	w.res.Expanded++
	return n
}

// expand enqueues every unseen child of n within the depth limit.
func (w *walker) expand(n *Node) {
	if w.opts.MaxDepth > 0 && n.depth >= w.opts.MaxDepth {
		return
	}
	for n.HasNextChild() {
		child, _ := n.NextChild()
		if _, ok := w.seen[child.state]; ok {
			continue
		}
		w.enqueue(child)
	}
}
