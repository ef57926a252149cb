package butterfly

// DeleteMutator removes a random packet from the sequence, refusing to
// shrink the sequence at or below minPackets.
type DeleteMutator struct {
	minPackets int
}

// NewDeleteMutator returns a DeleteMutator. minPackets is floored to 1:
// a sequence is never emptied by deletion.
func NewDeleteMutator(minPackets int) *DeleteMutator {
	if minPackets < 1 {
		minPackets = 1
	}
	return &DeleteMutator{minPackets: minPackets}
}

// Name implements Mutator.
func (m *DeleteMutator) Name() string { return "DeleteMutator" }

// Mutate implements Mutator.
func (m *DeleteMutator) Mutate(rng *Rand, seq Sequence, stageIdx int) (Outcome, error) {
	n := seq.Len()
	if n <= m.minPackets {
		return Skipped, nil
	}

	idx := rng.BelowInt(n)
	seq.RemoveAt(idx)

	return Mutated, nil
}
