package butterfly

import "testing"

func TestRandBelowDeterministic(t *testing.T) {
	a := NewRand(42)
	b := NewRand(42)

	for i := 0; i < 100; i++ {
		x := a.Below(1000)
		y := b.Below(1000)
		if x != y {
			t.Fatalf("same seed produced divergent draws at iteration %d: %d != %d", i, x, y)
		}
	}
}

func TestRandBelowRange(t *testing.T) {
	r := NewRand(1)
	for i := 0; i < 1000; i++ {
		v := r.Below(7)
		if v >= 7 {
			t.Fatalf("Below(7) returned out-of-range value %d", v)
		}
	}
}

func TestRandBelowPanicsOnZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling Below(0)")
		}
	}()

	NewRand(1).Below(0)
}
