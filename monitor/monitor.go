// Package monitor provides an in-process monitor for a single fuzzing
// worker: a running average of state-graph coverage across the
// worker's own runs, and an optional persisted stats file compatible
// with spec.md's CSV format so external tooling can plot a campaign's
// progress over time.
package monitor

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/whitaker-io/butterfly"
)

// Snapshot is one interval's worth of campaign statistics.
type Snapshot struct {
	Time        time.Time
	Cores       int
	CorpusCount uint64
	Crashes     uint64
	TotalExecs  uint64
	ExecsPerSec float64
	Nodes       uint64
	Edges       uint64
}

// StateMonitor accumulates a running average of state-graph node/edge
// counts reported across a worker's executions. It implements
// butterfly.EventFirer so a StateFeedback can push updates to it
// directly.
type StateMonitor struct {
	logger *logrus.Logger

	count      uint64
	nodeTotal  uint64
	edgeTotal  uint64
	lastNodes  uint64
	lastEdges  uint64
}

// NewStateMonitor returns a StateMonitor logging to logger. A nil
// logger disables logging.
func NewStateMonitor(logger *logrus.Logger) *StateMonitor {
	return &StateMonitor{logger: logger}
}

// FireUserStat implements butterfly.EventFirer, recognizing the
// well-known statemachine_nodes/statemachine_edges keys and folding
// them into the running average. Any other key, or StatStateGraph's
// DOT payload, is logged at debug level and otherwise ignored.
func (m *StateMonitor) FireUserStat(ctx context.Context, name string, stat butterfly.UserStat) error {
	switch name {
	case butterfly.StatNodes:
		m.lastNodes = stat.Number
	case butterfly.StatEdges:
		m.lastEdges = stat.Number
		m.Observe(m.lastNodes, m.lastEdges)
	default:
		if m.logger != nil {
			m.logger.WithField("stat", name).Debug("monitor: ignoring unrecognized user stat")
		}
	}

	return nil
}

// Observe records one worker execution's current node/edge totals.
func (m *StateMonitor) Observe(nodes, edges uint64) {
	m.count++
	m.nodeTotal += nodes
	m.edgeTotal += edges
	m.lastNodes = nodes
	m.lastEdges = edges

	if m.logger != nil {
		m.logger.WithFields(logrus.Fields{
			"nodes": nodes,
			"edges": edges,
		}).Debug("monitor: state coverage updated")
	}
}

// Average returns the mean node/edge counts observed so far.
func (m *StateMonitor) Average() (nodes, edges float64) {
	if m.count == 0 {
		return 0, 0
	}
	return float64(m.nodeTotal) / float64(m.count), float64(m.edgeTotal) / float64(m.count)
}

// Latest returns the most recently observed node/edge counts.
func (m *StateMonitor) Latest() (nodes, edges uint64) {
	return m.lastNodes, m.lastEdges
}

// statsHeader is the exact column header line of the persisted stats
// file, including the preceding banner comment line.
const (
	statsBanner = "### butterfly output ###"
	statsHeader = "# time, cores, corpus count, crashes, total execs, exec/s, nodes, edges"
)

// FuzzerStatsWrapper appends Snapshot rows to a CSV stats file,
// writing the banner and header only the first time the file is
// created.
type FuzzerStatsWrapper struct {
	path string
}

// NewFuzzerStatsWrapper returns a wrapper appending to path.
func NewFuzzerStatsWrapper(path string) *FuzzerStatsWrapper {
	return &FuzzerStatsWrapper{path: path}
}

// Append writes one Snapshot row, creating the file (with banner and
// header) if it does not already exist.
func (w *FuzzerStatsWrapper) Append(s Snapshot) error {
	_, statErr := os.Stat(w.path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, statsBanner); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(f, statsHeader); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(f, "%d, %d, %d, %d, %d, %f, %d, %d\n",
		s.Time.Unix(), s.Cores, s.CorpusCount, s.Crashes, s.TotalExecs, s.ExecsPerSec, s.Nodes, s.Edges)

	return err
}
