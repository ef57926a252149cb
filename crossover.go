package butterfly

// CrossoverInsertMutator picks two distinct packets in the sequence and
// asks the first to absorb a random slice of the second's bytes via the
// CrossoverInsertable capability, growing the first packet. Requires at
// least two packets.
type CrossoverInsertMutator struct {
	maxSize int
}

// NewCrossoverInsertMutator returns a CrossoverInsertMutator. maxSize
// bounds the grown packet's byte length; 0 means unbounded.
func NewCrossoverInsertMutator(maxSize int) *CrossoverInsertMutator {
	return &CrossoverInsertMutator{maxSize: maxSize}
}

// Name implements Mutator.
func (m *CrossoverInsertMutator) Name() string { return "CrossoverInsertMutator" }

// Mutate implements Mutator.
func (m *CrossoverInsertMutator) Mutate(rng *Rand, seq Sequence, stageIdx int) (Outcome, error) {
	n := seq.Len()
	if n <= 1 {
		return Skipped, nil
	}

	p := rng.BelowInt(n)
	o := rng.BelowInt(n)
	if p == o {
		return Skipped, nil
	}

	target, ok := seq.At(p).(CrossoverInsertable)
	if !ok {
		return Skipped, nil
	}

	return target.CrossoverInsert(rng, seq.At(o), m.maxSize)
}

// CrossoverReplaceMutator picks two distinct packets in the sequence
// and overwrites a random slice of the first's bytes with a random
// slice of the second's, via the CrossoverReplaceable capability.
// Requires at least two packets.
type CrossoverReplaceMutator struct {
	maxSize int
}

// NewCrossoverReplaceMutator returns a CrossoverReplaceMutator. maxSize
// bounds the packet's byte length; 0 means unbounded (CrossoverReplace
// never grows its target regardless).
func NewCrossoverReplaceMutator(maxSize int) *CrossoverReplaceMutator {
	return &CrossoverReplaceMutator{maxSize: maxSize}
}

// Name implements Mutator.
func (m *CrossoverReplaceMutator) Name() string { return "CrossoverReplaceMutator" }

// Mutate implements Mutator.
func (m *CrossoverReplaceMutator) Mutate(rng *Rand, seq Sequence, stageIdx int) (Outcome, error) {
	n := seq.Len()
	if n <= 1 {
		return Skipped, nil
	}

	p := rng.BelowInt(n)
	o := rng.BelowInt(n)
	if p == o {
		return Skipped, nil
	}

	target, ok := seq.At(p).(CrossoverReplaceable)
	if !ok {
		return Skipped, nil
	}

	return target.CrossoverReplace(rng, seq.At(o), m.maxSize)
}
