// Package solver finds shortest solutions of the shoe block puzzle with an
// uninformed breadth-first search over the implicit graph of boards.
//
// Boards are vertices and legal block moves are edges. Children are produced
// lazily by Node, so a board's successors are only computed when the search
// dequeues it. States are marked as seen when they are enqueued, which keeps
// every board in the frontier at most once.
//
// Basic usage:
//
//	res, err := solver.New().Search(ctx, engine.DefaultPuzzleState())
//	if err != nil {
//		return err
//	}
//	if goal, ok := res.Node(); ok {
//		fmt.Println(solver.ReconstructPath(goal))
//	}
//
// Search never reports a missing solution as an error: Result.Found is false
// instead. Errors are reserved for invalid options, cancellation through the
// context and failures returned by an OnVisit hook.
//
// Explore walks the whole reachable graph and summarises it, which is what
// the analyze command prints for every configuration.
package solver
