package butterfly

import "context"

// StateFeedback turns an executor run's newly observed state
// transitions into "is this input interesting" feedback, the novelty
// signal that a coverage-guided fuzzer's corpus scheduler consumes.
// When a run is interesting it also pushes the observer's current
// node/edge counts (and, if EmitDOT is set, a DOT rendering) through an
// EventFirer for live monitoring.
type StateFeedback[PS comparable] struct {
	observer *StateObserver[PS]
	// EmitDOT, when true, also fires the full DOT rendering of the
	// state graph on every interesting run. This is comparatively
	// expensive for large graphs; monitors that only need node/edge
	// counts should leave it false.
	EmitDOT bool
}

// NewStateFeedback returns a StateFeedback bound to the given observer.
func NewStateFeedback[PS comparable](observer *StateObserver[PS]) *StateFeedback[PS] {
	return &StateFeedback[PS]{observer: observer}
}

// IsInteresting reports whether the run the observer just tracked
// introduced a new state transition, firing StatNodes/StatEdges (and
// optionally StatStateGraph) through firer when it did.
func (f *StateFeedback[PS]) IsInteresting(ctx context.Context, firer EventFirer) (bool, error) {
	if !f.observer.HadNewTransitions() {
		return false, nil
	}

	nodes, edges := f.observer.Info()

	if err := firer.FireUserStat(ctx, StatNodes, NumberUserStat(uint64(nodes))); err != nil {
		return true, err
	}
	if err := firer.FireUserStat(ctx, StatEdges, NumberUserStat(uint64(edges))); err != nil {
		return true, err
	}

	if f.EmitDOT {
		if err := firer.FireUserStat(ctx, StatStateGraph, StringUserStat(f.observer.DOT())); err != nil {
			return true, err
		}
	}

	return true, nil
}
