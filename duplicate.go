package butterfly

// DuplicateMutator clones a random packet and reinserts the clone at a
// random position, refusing to grow the sequence at or beyond
// maxPackets.
type DuplicateMutator struct {
	maxPackets int
}

// NewDuplicateMutator returns a DuplicateMutator bounding the sequence
// length to maxPackets.
func NewDuplicateMutator(maxPackets int) *DuplicateMutator {
	return &DuplicateMutator{maxPackets: maxPackets}
}

// Name implements Mutator.
func (m *DuplicateMutator) Name() string { return "DuplicateMutator" }

// Mutate implements Mutator.
func (m *DuplicateMutator) Mutate(rng *Rand, seq Sequence, stageIdx int) (Outcome, error) {
	n := seq.Len()
	if n == 0 || n >= m.maxPackets {
		return Skipped, nil
	}

	from := rng.BelowInt(n)
	to := rng.BelowInt(n + 1)
	if from == to {
		return Skipped, nil
	}

	clone := seq.At(from).Clone()
	seq.InsertAt(to, clone)

	return Mutated, nil
}
