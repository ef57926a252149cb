package butterfly

import "encoding/gob"

func init() {
	gob.Register(&BytesPacket{})
	gob.Register(&TaggedPacket{})
}

// clipGrowth returns the largest length not exceeding maxSize-base that
// can still be added, or 0 if base already meets or exceeds maxSize.
// Used by CrossoverInsert and Splice to respect the ambient max_size
// bound from spec.md §4.2.
func clipGrowth(base, want, maxSize int) int {
	if maxSize <= 0 {
		return want
	}

	if base >= maxSize {
		return 0
	}

	if base+want > maxSize {
		return maxSize - base
	}

	return want
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}
