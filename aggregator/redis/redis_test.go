package redis

import "testing"

func TestCollectorAverageWithNoWorkers(t *testing.T) {
	c := &Collector{latest: make(map[string]WorkerStats)}

	nodes, edges := c.Average()
	if nodes != 0 || edges != 0 {
		t.Fatalf("Average() with no workers = (%v, %v), want (0, 0)", nodes, edges)
	}
}

func TestCollectorAverageAcrossWorkers(t *testing.T) {
	c := &Collector{latest: map[string]WorkerStats{
		"worker-a": {WorkerID: "worker-a", Nodes: 4, Edges: 2},
		"worker-b": {WorkerID: "worker-b", Nodes: 8, Edges: 6},
	}}

	nodes, edges := c.Average()
	if nodes != 6 {
		t.Fatalf("Average() nodes = %v, want 6", nodes)
	}
	if edges != 4 {
		t.Fatalf("Average() edges = %v, want 4", edges)
	}
}

func TestCollectorAverageIgnoresStaleOverwrite(t *testing.T) {
	c := &Collector{latest: make(map[string]WorkerStats)}

	// A worker publishing twice keeps only its latest snapshot, not a
	// running sum across both publishes.
	c.latest["worker-a"] = WorkerStats{WorkerID: "worker-a", Nodes: 2, Edges: 1}
	c.latest["worker-a"] = WorkerStats{WorkerID: "worker-a", Nodes: 10, Edges: 9}

	nodes, edges := c.Average()
	if nodes != 10 || edges != 9 {
		t.Fatalf("Average() = (%v, %v), want (10, 9)", nodes, edges)
	}
}
