package butterfly

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// TaggedPacket is a composite packet type: a tagged variant (e.g. an
// FTP command enum — USER, PASS, ...) whose arms carry a byte payload.
// Per spec.md §4.1, mutation across variants must preserve variant
// identity: a USER command never becomes a PASS command by mutation.
// TaggedPacket enforces this by delegating to BytesPacket only when
// self and other share the same Kind, and returning Skipped otherwise.
type TaggedPacket struct {
	Kind    string
	Payload *BytesPacket
}

// NewTaggedPacket returns a TaggedPacket with the given variant tag and
// byte payload.
func NewTaggedPacket(kind string, b []byte) *TaggedPacket {
	return &TaggedPacket{Kind: kind, Payload: NewBytesPacket(b)}
}

// Clone implements Packet.
func (t *TaggedPacket) Clone() Packet {
	return &TaggedPacket{Kind: t.Kind, Payload: t.Payload.Clone().(*BytesPacket)}
}

// String implements Packet.
func (t *TaggedPacket) String() string {
	return fmt.Sprintf("%s(%d bytes)", t.Kind, len(t.Payload.Payload))
}

type taggedPacketWire struct {
	Kind    string
	Payload []byte
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (t *TaggedPacket) MarshalBinary() ([]byte, error) {
	buf := &bytes.Buffer{}
	w := taggedPacketWire{Kind: t.Kind, Payload: t.Payload.Payload}
	if err := gob.NewEncoder(buf).Encode(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (t *TaggedPacket) UnmarshalBinary(data []byte) error {
	var w taggedPacketWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	t.Kind = w.Kind
	t.Payload = NewBytesPacket(w.Payload)
	return nil
}

// Bytes implements ByteCapable.
func (t *TaggedPacket) Bytes() []byte { return t.Payload.Bytes() }

// SetBytes implements ByteCapable.
func (t *TaggedPacket) SetBytes(b []byte) { t.Payload.SetBytes(b) }

func sameKind(t *TaggedPacket, other Packet) (*TaggedPacket, bool) {
	o, ok := other.(*TaggedPacket)
	if !ok || o.Kind != t.Kind {
		return nil, false
	}
	return o, true
}

// CrossoverInsert implements CrossoverInsertable, delegating to the
// payload when both packets are the same variant.
func (t *TaggedPacket) CrossoverInsert(rng *Rand, other Packet, maxSize int) (Outcome, error) {
	o, ok := sameKind(t, other)
	if !ok {
		return Skipped, nil
	}
	return t.Payload.CrossoverInsert(rng, o.Payload, maxSize)
}

// CrossoverReplace implements CrossoverReplaceable, delegating to the
// payload when both packets are the same variant.
func (t *TaggedPacket) CrossoverReplace(rng *Rand, other Packet, maxSize int) (Outcome, error) {
	o, ok := sameKind(t, other)
	if !ok {
		return Skipped, nil
	}
	return t.Payload.CrossoverReplace(rng, o.Payload, maxSize)
}

// Splice implements Splicable, delegating to the payload when both
// packets are the same variant.
func (t *TaggedPacket) Splice(rng *Rand, other Packet, maxSize int) (Outcome, error) {
	o, ok := sameKind(t, other)
	if !ok {
		return Skipped, nil
	}
	return t.Payload.Splice(rng, o.Payload, maxSize)
}

// Havoc implements Havocable, delegating to the payload.
func (t *TaggedPacket) Havoc(rng *Rand, mutators HavocMutators, k int) (Outcome, error) {
	return t.Payload.Havoc(rng, mutators, k)
}
