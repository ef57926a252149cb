package butterfly

// SpliceMutator removes a random packet from the sequence and splices
// its bytes into the preceding packet via the Splicable capability,
// refusing to shrink the sequence at or below minPackets. If the
// preceding packet does not implement Splicable, the removed packet is
// reinserted in place and the mutation is Skipped: a failed attempt
// never drops a packet from the sequence.
type SpliceMutator struct {
	minPackets int
	maxSize    int
}

// NewSpliceMutator returns a SpliceMutator. minPackets is floored to 1.
// maxSize bounds the grown packet's byte length; 0 means unbounded.
func NewSpliceMutator(minPackets, maxSize int) *SpliceMutator {
	if minPackets < 1 {
		minPackets = 1
	}
	return &SpliceMutator{minPackets: minPackets, maxSize: maxSize}
}

// Name implements Mutator.
func (m *SpliceMutator) Name() string { return "SpliceMutator" }

// Mutate implements Mutator.
func (m *SpliceMutator) Mutate(rng *Rand, seq Sequence, stageIdx int) (Outcome, error) {
	n := seq.Len()
	if n <= m.minPackets {
		return Skipped, nil
	}

	idx := rng.BelowInt(n - 1)
	other := seq.RemoveAt(idx + 1)

	target, ok := seq.At(idx).(Splicable)
	if !ok {
		seq.InsertAt(idx+1, other)
		return Skipped, nil
	}

	outcome, err := target.Splice(rng, other, m.maxSize)
	if outcome != Mutated {
		seq.InsertAt(idx+1, other)
	}

	return outcome, err
}
