package butterfly

import (
	"strings"
	"testing"
)

func TestStateObserverRecordAndInfo(t *testing.T) {
	o := NewStateObserver[int]("test")

	o.PreExec()
	o.Record(1)
	o.Record(2)
	o.Record(3)

	nodes, edges := o.Info()
	if nodes != 3 {
		t.Fatalf("Info() nodes = %d, want 3", nodes)
	}
	if edges != 2 {
		t.Fatalf("Info() edges = %d, want 2", edges)
	}
}

func TestStateObserverHadNewTransitions(t *testing.T) {
	o := NewStateObserver[int]("test")

	o.PreExec()
	o.Record(1)
	o.Record(2)

	if !o.HadNewTransitions() {
		t.Fatal("expected new transitions on first pass")
	}

	o.PreExec()
	o.Record(1)
	o.Record(2)

	if o.HadNewTransitions() {
		t.Fatal("re-recording an already-seen transition should not be reported as new")
	}
}

func TestStateObserverDistinctStatesAcrossExecutions(t *testing.T) {
	o := NewStateObserver[int]("test")

	o.PreExec()
	o.Record(1)
	o.Record(2)

	o.PreExec()
	o.Record(2)
	o.Record(3)

	nodes, edges := o.Info()
	if nodes != 3 {
		t.Fatalf("Info() nodes across executions = %d, want 3", nodes)
	}
	if edges != 2 {
		t.Fatalf("Info() edges across executions = %d, want 2", edges)
	}
}

func TestStateObserverDOT(t *testing.T) {
	o := NewStateObserver[int]("test")

	o.PreExec()
	o.Record(1)
	o.Record(2)

	dot := o.DOT()

	if !strings.HasPrefix(dot, "digraph IMPLEMENTED_STATE_MACHINE {") {
		t.Fatalf("DOT() missing expected header: %q", dot)
	}
	if !strings.Contains(dot, `"0" -> "1";`) {
		t.Fatalf("DOT() missing expected edge line: %q", dot)
	}
}
