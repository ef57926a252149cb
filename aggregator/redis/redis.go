// Package redis aggregates per-worker state-graph statistics across a
// fuzzing campaign's independent worker processes. Each worker's
// StateFeedback never merges its graph with another worker's — spec.md
// §5 keeps that strictly per-worker — but an out-of-process monitor can
// still report a campaign-wide picture by averaging the (nodes, edges)
// snapshot each worker last reported. Publisher and Collector are that
// wire.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	ps "github.com/gomodule/redigo/redis"
	"github.com/sirupsen/logrus"
)

// WorkerStats is the snapshot one worker publishes whenever its
// StateFeedback observes new transitions.
type WorkerStats struct {
	WorkerID string `json:"worker_id"`
	Nodes    uint64 `json:"nodes"`
	Edges    uint64 `json:"edges"`
}

// Publisher pushes WorkerStats snapshots to a Redis channel. A worker
// goroutine owns one Publisher; it is not safe for concurrent use by
// more than one goroutine at a time, matching the single-threaded
// cooperative worker model the snapshots are drawn from.
type Publisher struct {
	pool    *ps.Pool
	channel string
}

// NewPublisher returns a Publisher that publishes to channel using
// connections drawn from pool.
func NewPublisher(pool *ps.Pool, channel string) *Publisher {
	return &Publisher{pool: pool, channel: channel}
}

// Publish sends one WorkerStats snapshot.
func (p *Publisher) Publish(ctx context.Context, stats WorkerStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	conn, err := p.pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.Do("PUBLISH", p.channel, payload)

	return err
}

// Collector subscribes to a channel of WorkerStats snapshots and keeps
// a running average across the workers it has heard from, the network
// analogue of a single process's averaging over its own worker pool.
type Collector struct {
	client  *ps.PubSubConn
	channel string
	logger  *logrus.Logger

	latest map[string]WorkerStats
}

// NewCollector returns a Collector subscribed to channel on a
// connection drawn from pool. Call Run in its own goroutine to start
// consuming.
func NewCollector(pool *ps.Pool, channel string, logger *logrus.Logger) *Collector {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Collector{
		client:  &ps.PubSubConn{Conn: pool.Get()},
		channel: channel,
		logger:  logger,
		latest:  make(map[string]WorkerStats),
	}
}

// Run consumes published snapshots until the connection is closed,
// updating the latest-seen snapshot per worker. Intended to run in its
// own goroutine; callers stop it by calling Close.
func (c *Collector) Run(ctx context.Context) error {
	if err := c.client.Subscribe(c.channel); err != nil {
		return err
	}

	for {
		switch v := c.client.Receive().(type) {
		case ps.Message:
			var stats WorkerStats
			if err := json.Unmarshal(v.Data, &stats); err != nil {
				c.logger.WithError(err).Warn("aggregator/redis: dropping malformed worker stats payload")
				continue
			}
			c.latest[stats.WorkerID] = stats
		case ps.Subscription:
			if v.Count == 0 {
				return nil
			}
		case error:
			return fmt.Errorf("aggregator/redis: subscription error: %w", v)
		}
	}
}

// Average returns the mean node and edge count across every worker the
// collector has heard from at least once.
func (c *Collector) Average() (nodes, edges float64) {
	if len(c.latest) == 0 {
		return 0, 0
	}

	var totalNodes, totalEdges uint64
	for _, stats := range c.latest {
		totalNodes += stats.Nodes
		totalEdges += stats.Edges
	}

	n := float64(len(c.latest))

	return float64(totalNodes) / n, float64(totalEdges) / n
}

// Close releases the collector's underlying connection.
func (c *Collector) Close() error {
	return c.client.Close()
}
