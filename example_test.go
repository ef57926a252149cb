package butterfly_test

import (
	"context"
	"fmt"

	"github.com/whitaker-io/butterfly"
	"github.com/whitaker-io/butterfly/havoc"
)

// fakeProtocol is a tiny in-memory stand-in for a real target under
// test: it walks a fixed little state machine (0 -> 1 -> 2, with a
// shortcut 0 -> 2) driven by the bytes of each packet in a sequence.
type fakeProtocol struct {
	state int
}

func (p *fakeProtocol) step(packet []byte) int {
	if len(packet) == 0 {
		return p.state
	}

	switch {
	case p.state == 0 && packet[0]%2 == 0:
		p.state = 1
	case p.state == 1:
		p.state = 2
	case p.state == 0:
		p.state = 2
	}

	return p.state
}

// runOnce executes seq against a fresh fakeProtocol, recording the
// state after every packet into observer.
func runOnce(observer *butterfly.StateObserver[int], seq butterfly.Sequence) {
	observer.PreExec()
	defer observer.PostExec(context.Background())

	target := &fakeProtocol{}

	for i := 0; i < seq.Len(); i++ {
		bc, ok := seq.At(i).(butterfly.ByteCapable)
		if !ok {
			continue
		}
		observer.Record(target.step(bc.Bytes()))
	}
}

// Example demonstrates the full stack wired together: a
// MutationScheduler drawing from butterfly's structural mutators plus
// a default havoc tuple, a StateObserver tracking a fake protocol's
// states, and a StateFeedback reporting novelty to an EventFirer.
func Example() {
	rng := butterfly.NewRand(1)

	seq := butterfly.NewPacketSlice(
		butterfly.NewBytesPacket([]byte{0x02}),
		butterfly.NewBytesPacket([]byte{0x01}),
	)

	observer := butterfly.NewStateObserver[int]("fake-protocol")
	feedback := butterfly.NewStateFeedback(observer)

	scheduler := butterfly.NewMutationScheduler(
		butterfly.NewReorderMutator(),
		butterfly.NewDeleteMutator(1),
		butterfly.NewDuplicateMutator(8),
		butterfly.NewSpliceMutator(1, 64),
		butterfly.NewCrossoverInsertMutator(64),
		butterfly.NewCrossoverReplaceMutator(64),
		butterfly.NewHavocSequenceMutator(havoc.Default()),
	)

	firer := &countingFirer{}

	newStates := 0
	for i := 0; i < 200; i++ {
		seq = seq.Clone()

		if _, err := scheduler.Mutate(rng, seq, i); err != nil {
			panic(err)
		}

		runOnce(observer, seq)

		interesting, err := feedback.IsInteresting(context.Background(), firer)
		if err != nil {
			panic(err)
		}
		if interesting {
			newStates++
		}
	}

	fmt.Println("found at least one novel transition:", newStates > 0)
	// Output: found at least one novel transition: true
}

type countingFirer struct{}

func (countingFirer) FireUserStat(ctx context.Context, name string, stat butterfly.UserStat) error {
	return nil
}
