package butterfly

import "testing"

func TestTaggedPacketPreservesVariantOnCrossover(t *testing.T) {
	rng := NewRand(5)

	user := NewTaggedPacket("USER", []byte("alice"))
	pass := NewTaggedPacket("PASS", []byte("hunter2"))

	outcome, err := user.CrossoverInsert(rng, pass, 0)
	if err != nil {
		t.Fatalf("CrossoverInsert: %v", err)
	}
	if outcome != Skipped {
		t.Fatalf("expected Skipped across differing variants, got %v", outcome)
	}
	if user.Kind != "USER" {
		t.Fatalf("variant changed by mutation: got %q", user.Kind)
	}
	if string(user.Payload.Payload) != "alice" {
		t.Fatalf("Skipped mutation changed payload: got %q", user.Payload.Payload)
	}
}

func TestTaggedPacketCrossoverSameVariant(t *testing.T) {
	rng := NewRand(5)

	user1 := NewTaggedPacket("USER", []byte("a"))
	user2 := NewTaggedPacket("USER", []byte("b"))

	outcome, err := user1.CrossoverReplace(rng, user2, 0)
	if err != nil {
		t.Fatalf("CrossoverReplace: %v", err)
	}
	if outcome != Mutated {
		t.Fatalf("expected Mutated for same-variant crossover, got %v", outcome)
	}
}

func TestTaggedPacketRoundTrip(t *testing.T) {
	p := NewTaggedPacket("PASS", []byte("secret"))

	raw, err := p.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	var out TaggedPacket
	if err := out.UnmarshalBinary(raw); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}

	if out.Kind != p.Kind || string(out.Payload.Payload) != string(p.Payload.Payload) {
		t.Fatalf("round trip mismatch: got %+v want %+v", out, p)
	}
}

func TestTaggedPacketClone(t *testing.T) {
	p := NewTaggedPacket("USER", []byte("alice"))
	c := p.Clone().(*TaggedPacket)

	c.Payload.Payload[0] = 'X'

	if p.Payload.Payload[0] != 'a' {
		t.Fatal("clone shares underlying payload with original")
	}
}
