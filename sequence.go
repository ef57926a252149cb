package butterfly

import (
	"bytes"
	"encoding/gob"
)

// Sequence is an ordered, mutable sequence of packets: the
// PacketSequence contract from spec.md §3. Packet order is semantically
// significant — it is the protocol trace — so every mutating method
// preserves the relative order of packets it does not touch.
type Sequence interface {
	// Len returns the number of packets in the sequence.
	Len() int
	// At returns the packet at index i.
	At(i int) Packet
	// Set replaces the packet at index i.
	Set(i int, p Packet)
	// Append adds p to the end of the sequence.
	Append(p Packet)
	// InsertAt inserts p at index i, shifting subsequent packets right.
	InsertAt(i int, p Packet)
	// RemoveAt removes and returns the packet at index i.
	RemoveAt(i int) Packet
	// Swap exchanges the packets at indices i and j.
	Swap(i, j int)
	// Clone returns a deep copy of the sequence.
	Clone() Sequence
}

// PacketSlice is the concrete slice-backed Sequence implementation.
// Two PacketSlice values with identical packets in identical order are
// equivalent, per spec.md §3's PacketSequence invariant.
type PacketSlice []Packet

// NewPacketSlice returns a Sequence wrapping the given packets.
func NewPacketSlice(packets ...Packet) *PacketSlice {
	s := PacketSlice(append([]Packet{}, packets...))
	return &s
}

// Len implements Sequence.
func (s *PacketSlice) Len() int { return len(*s) }

// At implements Sequence.
func (s *PacketSlice) At(i int) Packet { return (*s)[i] }

// Set implements Sequence.
func (s *PacketSlice) Set(i int, p Packet) { (*s)[i] = p }

// Append implements Sequence.
func (s *PacketSlice) Append(p Packet) { *s = append(*s, p) }

// InsertAt implements Sequence.
func (s *PacketSlice) InsertAt(i int, p Packet) {
	*s = append(*s, nil)
	copy((*s)[i+1:], (*s)[i:])
	(*s)[i] = p
}

// RemoveAt implements Sequence.
func (s *PacketSlice) RemoveAt(i int) Packet {
	p := (*s)[i]
	*s = append((*s)[:i], (*s)[i+1:]...)
	return p
}

// Swap implements Sequence.
func (s *PacketSlice) Swap(i, j int) { (*s)[i], (*s)[j] = (*s)[j], (*s)[i] }

// Clone implements Sequence. Packets are deep-copied via Packet.Clone.
func (s *PacketSlice) Clone() Sequence {
	out := make(PacketSlice, len(*s))
	for i, p := range *s {
		out[i] = p.Clone()
	}
	return &out
}

// MarshalBinary implements encoding.BinaryMarshaler for round-trip
// persistence of a whole sequence (spec.md §8 invariant 7). gob encodes
// each element of the []Packet interface slice by its registered
// concrete type name, falling back to Packet's own MarshalBinary per
// element (gob prefers GobEncoder, then encoding.BinaryMarshaler, which
// is all BytesPacket/TaggedPacket implement). Any third-party Packet
// implementation round-trips the same way as long as it is registered
// with gob.Register; BytesPacket and TaggedPacket are registered by
// this package's init() in util.go.
func (s *PacketSlice) MarshalBinary() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := gob.NewEncoder(buf).Encode([]Packet(*s)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *PacketSlice) UnmarshalBinary(data []byte) error {
	var out []Packet
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&out); err != nil {
		return err
	}

	*s = PacketSlice(out)

	return nil
}
