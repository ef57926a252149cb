package butterfly

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Telemetry is optional OpenTelemetry instrumentation a StateObserver
// can be given: a histogram recording each execution's wall-clock time
// from PreExec to PostExec, and a span started and ended in PostExec for
// each execution. A nil *Telemetry
// disables instrumentation entirely — the nil-object pattern, so
// callers that don't care about tracing never have to construct one.
type Telemetry struct {
	latency metric.Float64Histogram
	tracer  trace.Tracer
}

// NewTelemetry builds a Telemetry from a meter/tracer pair, creating
// the "butterfly.state.latency_ms" histogram.
func NewTelemetry(meter metric.Meter, tracer trace.Tracer) (*Telemetry, error) {
	hist, err := meter.Float64Histogram("butterfly.state.latency_ms")
	if err != nil {
		return nil, err
	}

	return &Telemetry{latency: hist, tracer: tracer}, nil
}

var defaultLogger = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: new(logrus.TextFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.WarnLevel,
}

// StateObserver builds a state-graph across an executor's reported
// protocol states. PS is the observed state's representation — callers
// most commonly use a packed integer or a fixed-size byte array,
// whatever a target's instrumentation can cheaply extract.
//
// The executor that drives the target under test is responsible for
// calling Record with states inferred from the target as the run
// progresses, and for calling PreExec/PostExec around each execution so
// the observer can reset its transient per-execution tracking.
type StateObserver[PS comparable] struct {
	name   string
	graph  *stateGraph[PS]
	logger *logrus.Logger
	tel    *Telemetry

	execStart time.Time
}

// NewStateObserver returns a StateObserver with the given name, logging
// to the package default logger.
func NewStateObserver[PS comparable](name string) *StateObserver[PS] {
	return &StateObserver[PS]{
		name:   name,
		graph:  newStateGraph[PS](),
		logger: defaultLogger,
	}
}

// SetLogger overrides the observer's logger.
func (o *StateObserver[PS]) SetLogger(logger *logrus.Logger) {
	if logger != nil {
		o.logger = logger
	}
}

// SetTelemetry attaches OpenTelemetry instrumentation. A nil tel
// disables it again.
func (o *StateObserver[PS]) SetTelemetry(tel *Telemetry) {
	o.tel = tel
}

// Name returns the observer's name.
func (o *StateObserver[PS]) Name() string { return o.name }

// PreExec resets the observer's transient per-execution state ahead of
// a fresh run of the target.
func (o *StateObserver[PS]) PreExec() {
	o.graph.reset()
	o.execStart = time.Now()
}

// PostExec records the execution's wall-clock latency through the
// observer's Telemetry, if one is attached.
func (o *StateObserver[PS]) PostExec(ctx context.Context) {
	if o.tel == nil || o.execStart.IsZero() {
		return
	}

	var span trace.Span
	if o.tel.tracer != nil {
		_, span = o.tel.tracer.Start(ctx, "butterfly.state_observer.exec")
		defer span.End()
	}

	o.tel.latency.Record(ctx, float64(time.Since(o.execStart).Milliseconds()))
}

// Record tells the observer that the target has entered state.
func (o *StateObserver[PS]) Record(state PS) {
	id := o.graph.addNode(state)
	o.graph.addEdge(id)

	o.logger.WithFields(logrus.Fields{
		"observer": o.name,
		"node":     id,
	}).Debug("state recorded")
}

// HadNewTransitions reports whether the most recent execution (since
// the last PreExec) introduced at least one transition not previously
// seen in the graph.
func (o *StateObserver[PS]) HadNewTransitions() bool {
	return o.graph.newTransitions
}

// Info returns the number of distinct states and transitions observed
// so far, across the whole campaign.
func (o *StateObserver[PS]) Info() (nodes, edges int) {
	return len(o.graph.nodes), len(o.graph.edges)
}

// WriteDOT renders the accumulated state graph as a Graphviz DOT
// document.
func (o *StateObserver[PS]) WriteDOT(w io.Writer) error {
	return o.graph.writeDOT(w)
}

// DOT returns the accumulated state graph rendered as a Graphviz DOT
// document. It never returns an error: an in-memory strings.Builder
// write cannot fail.
func (o *StateObserver[PS]) DOT() string {
	buf := &strings.Builder{}
	_ = o.graph.writeDOT(buf)
	return buf.String()
}
