package butterfly

// MutationScheduler draws one mutator at random from its list on each
// call and applies it, retrying with a freshly drawn mutator whenever
// the draw comes back Skipped. Exactly one mutator in the list runs to
// a non-Skipped conclusion per call: a mutator that stacks several
// sub-mutations internally, such as HavocSequenceMutator, does its own
// scheduling and still counts as one draw here.
type MutationScheduler struct {
	mutators []Mutator
}

// NewMutationScheduler returns a MutationScheduler over the given
// mutators. The list must be non-empty.
func NewMutationScheduler(mutators ...Mutator) *MutationScheduler {
	return &MutationScheduler{mutators: mutators}
}

// Mutate repeatedly draws a random mutator and applies it to seq until
// one returns Mutated or Errored.
func (s *MutationScheduler) Mutate(rng *Rand, seq Sequence, stageIdx int) (Outcome, error) {
	for {
		idx := rng.BelowInt(len(s.mutators))
		mutator := s.mutators[idx]

		outcome, err := mutator.Mutate(rng, seq, stageIdx)
		if outcome != Skipped {
			return outcome, err
		}
	}
}
