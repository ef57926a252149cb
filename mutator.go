package butterfly

// Mutator is a structural mutation applied to a whole Sequence rather
// than to an individual packet's bytes. stageIdx is the stage index the
// caller supplies (MutationScheduler passes its own stageIdx through
// unchanged) and is opaque to the mutator itself; it exists so a Mutator
// can vary behavior across repeated stages of the same campaign run if
// it chooses to.
type Mutator interface {
	// Name identifies the mutator, e.g. for logging and stats.
	Name() string
	// Mutate attempts to apply the mutation to seq, using rng for any
	// randomness. Skipped means the sequence was left untouched because
	// its precondition did not hold (too short, no capable packet, ...).
	Mutate(rng *Rand, seq Sequence, stageIdx int) (Outcome, error)
}

// MaxSize bounds the growth a packet-level capability (CrossoverInsert,
// Splice) may apply to a single packet's byte payload. Zero means
// unbounded.
type MaxSize int
