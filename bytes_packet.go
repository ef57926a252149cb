package butterfly

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// BytesPacket is the canonical packet implementation: a packet whose
// entire payload is an opaque byte buffer. It implements every
// capability in spec.md §4.1 and is the type against which the "canonical
// bytes implementation" contracts for CrossoverInsert, CrossoverReplace,
// and Splice are specified.
type BytesPacket struct {
	Payload []byte
}

// NewBytesPacket returns a BytesPacket wrapping a copy of b.
func NewBytesPacket(b []byte) *BytesPacket {
	p := &BytesPacket{Payload: make([]byte, len(b))}
	copy(p.Payload, b)
	return p
}

// Clone implements Packet.
func (p *BytesPacket) Clone() Packet {
	return NewBytesPacket(p.Payload)
}

// String implements Packet.
func (p *BytesPacket) String() string {
	return fmt.Sprintf("BytesPacket(%d bytes)", len(p.Payload))
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p *BytesPacket) MarshalBinary() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := gob.NewEncoder(buf).Encode(p.Payload); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (p *BytesPacket) UnmarshalBinary(data []byte) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(&p.Payload)
}

// Bytes implements ByteCapable.
func (p *BytesPacket) Bytes() []byte {
	return p.Payload
}

// SetBytes implements ByteCapable.
func (p *BytesPacket) SetBytes(b []byte) {
	p.Payload = b
}

// CrossoverInsert implements CrossoverInsertable per spec.md §4.1: copy a
// random contiguous slice of other's bytes into self at a random
// position, growing self.
func (p *BytesPacket) CrossoverInsert(rng *Rand, other Packet, maxSize int) (Outcome, error) {
	otherBytes, ok := bytesOf(other)
	if !ok {
		return Skipped, nil
	}

	n, m := len(p.Payload), len(otherBytes)
	if n == 0 || m == 0 {
		return Skipped, nil
	}

	from := rng.BelowInt(m)
	to := rng.BelowInt(n)
	length := 1 + rng.BelowInt(m-from)

	length = clipGrowth(n, length, maxSize)
	if length <= 0 {
		return Skipped, nil
	}

	grown := make([]byte, n+length)
	copy(grown, p.Payload[:to])
	copy(grown[to:to+length], otherBytes[from:from+length])
	copy(grown[to+length:], p.Payload[to:])

	p.Payload = grown

	return Mutated, nil
}

// CrossoverReplace implements CrossoverReplaceable per spec.md §4.1:
// overwrite a slice of self's bytes with a slice of other's, without
// growing self.
func (p *BytesPacket) CrossoverReplace(rng *Rand, other Packet, maxSize int) (Outcome, error) {
	otherBytes, ok := bytesOf(other)
	if !ok {
		return Skipped, nil
	}

	n, m := len(p.Payload), len(otherBytes)
	if n == 0 || m == 0 {
		return Skipped, nil
	}

	from := rng.BelowInt(m)
	to := rng.BelowInt(n)

	maxLen := minInt(m-from, n-to)
	if maxLen <= 0 {
		return Skipped, nil
	}
	length := 1 + rng.BelowInt(maxLen)

	copy(p.Payload[to:to+length], otherBytes[from:from+length])

	return Mutated, nil
}

// Splice implements Splicable per spec.md §4.1: replace self's suffix
// starting at a random `to` with other's suffix starting at a random
// `from`.
func (p *BytesPacket) Splice(rng *Rand, other Packet, maxSize int) (Outcome, error) {
	otherBytes, ok := bytesOf(other)
	if !ok {
		return Skipped, nil
	}

	n, m := len(p.Payload), len(otherBytes)
	if n == 0 || m == 0 {
		return Skipped, nil
	}

	to := rng.BelowInt(n)
	from := rng.BelowInt(m)

	suffixLen := clipGrowth(to, m-from, maxSize)
	if suffixLen <= 0 && m-from > 0 {
		// maxSize already exhausted at `to`; nothing left to splice in.
		return Skipped, nil
	}

	spliced := make([]byte, to+suffixLen)
	copy(spliced, p.Payload[:to])
	copy(spliced[to:], otherBytes[from:from+suffixLen])

	p.Payload = spliced

	return Mutated, nil
}

// Havoc implements Havocable: dispatch mutators[k] against self's byte
// payload.
func (p *BytesPacket) Havoc(rng *Rand, mutators HavocMutators, k int) (Outcome, error) {
	if len(p.Payload) == 0 || len(mutators) == 0 {
		return Skipped, nil
	}

	out, outcome := mutators[k](rng, p.Payload)
	if outcome == Mutated {
		p.Payload = out
	}

	return outcome, nil
}

// bytesOf extracts the byte payload of a Packet that implements
// ByteCapable, reporting false when it doesn't.
func bytesOf(pk Packet) ([]byte, bool) {
	bc, ok := pk.(ByteCapable)
	if !ok {
		return nil, false
	}
	return bc.Bytes(), true
}
