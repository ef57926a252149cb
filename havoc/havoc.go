// Package havoc provides a default tuple of byte-level mutators usable
// as the opaque HavocMutators argument to a butterfly.Havocable packet
// or a butterfly.HavocSequenceMutator. Each mutator here gets exactly
// one buffer as input, the subset of the upstream havoc mutator family
// that makes sense applied to a single packet's bytes in isolation —
// the two-input crossover-style mutators are butterfly's own
// CrossoverInsert/CrossoverReplace/Splice capabilities instead.
package havoc

import "github.com/whitaker-io/butterfly"

var interestingBytes = []byte{
	0x00, 0x01, 0x7f, 0x80, 0xff,
}

// Default returns the standard havoc mutator tuple.
func Default() butterfly.HavocMutators {
	return butterfly.HavocMutators{
		BitFlip,
		ByteFlip,
		ByteInc,
		ByteDec,
		ByteNeg,
		ByteRand,
		ByteInteresting,
		BytesDelete,
		BytesExpand,
		BytesInsert,
		BytesSet,
		BytesSwap,
	}
}

func clone(buf []byte) []byte {
	out := make([]byte, len(buf))
	copy(out, buf)
	return out
}

// BitFlip flips a single random bit.
func BitFlip(rng *butterfly.Rand, buf []byte) ([]byte, butterfly.Outcome) {
	if len(buf) == 0 {
		return buf, butterfly.Skipped
	}

	out := clone(buf)
	idx := rng.BelowInt(len(out))
	bit := uint(rng.BelowInt(8))
	out[idx] ^= 1 << bit

	return out, butterfly.Mutated
}

// ByteFlip inverts every bit of a random byte.
func ByteFlip(rng *butterfly.Rand, buf []byte) ([]byte, butterfly.Outcome) {
	if len(buf) == 0 {
		return buf, butterfly.Skipped
	}

	out := clone(buf)
	idx := rng.BelowInt(len(out))
	out[idx] = ^out[idx]

	return out, butterfly.Mutated
}

// ByteInc increments a random byte by one, wrapping.
func ByteInc(rng *butterfly.Rand, buf []byte) ([]byte, butterfly.Outcome) {
	if len(buf) == 0 {
		return buf, butterfly.Skipped
	}

	out := clone(buf)
	idx := rng.BelowInt(len(out))
	out[idx]++

	return out, butterfly.Mutated
}

// ByteDec decrements a random byte by one, wrapping.
func ByteDec(rng *butterfly.Rand, buf []byte) ([]byte, butterfly.Outcome) {
	if len(buf) == 0 {
		return buf, butterfly.Skipped
	}

	out := clone(buf)
	idx := rng.BelowInt(len(out))
	out[idx]--

	return out, butterfly.Mutated
}

// ByteNeg arithmetically negates a random byte (two's complement).
func ByteNeg(rng *butterfly.Rand, buf []byte) ([]byte, butterfly.Outcome) {
	if len(buf) == 0 {
		return buf, butterfly.Skipped
	}

	out := clone(buf)
	idx := rng.BelowInt(len(out))
	out[idx] = byte(-int8(out[idx]))

	return out, butterfly.Mutated
}

// ByteRand overwrites a random byte with a freshly drawn random value.
func ByteRand(rng *butterfly.Rand, buf []byte) ([]byte, butterfly.Outcome) {
	if len(buf) == 0 {
		return buf, butterfly.Skipped
	}

	out := clone(buf)
	idx := rng.BelowInt(len(out))
	out[idx] = byte(rng.BelowInt(256))

	return out, butterfly.Mutated
}

// ByteInteresting overwrites a random byte with one of a set of values
// known to trigger boundary conditions (0, 1, 0x7f, 0x80, 0xff).
func ByteInteresting(rng *butterfly.Rand, buf []byte) ([]byte, butterfly.Outcome) {
	if len(buf) == 0 {
		return buf, butterfly.Skipped
	}

	out := clone(buf)
	idx := rng.BelowInt(len(out))
	out[idx] = interestingBytes[rng.BelowInt(len(interestingBytes))]

	return out, butterfly.Mutated
}

// BytesDelete removes a random contiguous run of bytes.
func BytesDelete(rng *butterfly.Rand, buf []byte) ([]byte, butterfly.Outcome) {
	if len(buf) <= 1 {
		return buf, butterfly.Skipped
	}

	at := rng.BelowInt(len(buf))
	length := 1 + rng.BelowInt(len(buf)-at)

	out := make([]byte, 0, len(buf)-length)
	out = append(out, buf[:at]...)
	out = append(out, buf[at+length:]...)

	return out, butterfly.Mutated
}

// BytesExpand inserts a random number of zero bytes at a random
// position.
func BytesExpand(rng *butterfly.Rand, buf []byte) ([]byte, butterfly.Outcome) {
	if len(buf) == 0 {
		return buf, butterfly.Skipped
	}

	at := rng.BelowInt(len(buf) + 1)
	length := 1 + rng.BelowInt(16)

	out := make([]byte, 0, len(buf)+length)
	out = append(out, buf[:at]...)
	out = append(out, make([]byte, length)...)
	out = append(out, buf[at:]...)

	return out, butterfly.Mutated
}

// BytesInsert inserts a random number of random bytes at a random
// position.
func BytesInsert(rng *butterfly.Rand, buf []byte) ([]byte, butterfly.Outcome) {
	if len(buf) == 0 {
		return buf, butterfly.Skipped
	}

	at := rng.BelowInt(len(buf) + 1)
	length := 1 + rng.BelowInt(16)

	ins := make([]byte, length)
	for i := range ins {
		ins[i] = byte(rng.BelowInt(256))
	}

	out := make([]byte, 0, len(buf)+length)
	out = append(out, buf[:at]...)
	out = append(out, ins...)
	out = append(out, buf[at:]...)

	return out, butterfly.Mutated
}

// BytesSet overwrites a random contiguous run of bytes with a single
// repeated random value.
func BytesSet(rng *butterfly.Rand, buf []byte) ([]byte, butterfly.Outcome) {
	if len(buf) == 0 {
		return buf, butterfly.Skipped
	}

	out := clone(buf)
	at := rng.BelowInt(len(out))
	length := 1 + rng.BelowInt(len(out)-at)
	value := byte(rng.BelowInt(256))

	for i := at; i < at+length; i++ {
		out[i] = value
	}

	return out, butterfly.Mutated
}

// BytesSwap exchanges two randomly chosen bytes. It is Skipped when both
// draws pick the same index.
func BytesSwap(rng *butterfly.Rand, buf []byte) ([]byte, butterfly.Outcome) {
	if len(buf) < 2 {
		return buf, butterfly.Skipped
	}

	out := clone(buf)
	i := rng.BelowInt(len(out))
	j := rng.BelowInt(len(out))
	if i == j {
		return buf, butterfly.Skipped
	}

	out[i], out[j] = out[j], out[i]

	return out, butterfly.Mutated
}
