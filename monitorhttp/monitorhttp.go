// Package monitorhttp serves a read-only campaign dashboard over HTTP:
// the live DOT rendering of a StateObserver's state graph, a JSON stats
// snapshot, and a websocket stream of node/edge counters. It is a
// ready-made default, never imported by the core butterfly package.
package monitorhttp

import (
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	websocket "github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var defaultLogger = &logrus.Logger{
	Level: logrus.WarnLevel,
}

// GraphSource is whatever can currently render a DOT document and
// report its node/edge counts; *butterfly.StateObserver[PS] satisfies
// this for any PS without the package needing to import butterfly's
// generic type parameter directly.
type GraphSource interface {
	DOT() string
	Info() (nodes, edges int)
}

// Dashboard is a small read-only fiber app exposing a GraphSource.
type Dashboard struct {
	app    *fiber.App
	source GraphSource
	logger *logrus.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewDashboard builds a Dashboard over source. If logger is nil, a
// quiet default is used.
func NewDashboard(source GraphSource, logger *logrus.Logger, config ...fiber.Config) *Dashboard {
	if logger == nil {
		logger = defaultLogger
	}

	d := &Dashboard{
		app:     fiber.New(config...),
		source:  source,
		logger:  logger,
		clients: make(map[*websocket.Conn]struct{}),
	}

	d.app.Use(recover.New())

	d.app.Get("/graph.dot", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "text/vnd.graphviz")
		return c.Status(http.StatusOK).SendString(d.source.DOT())
	})

	d.app.Get("/stats.json", func(c *fiber.Ctx) error {
		nodes, edges := d.source.Info()
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"nodes": nodes,
			"edges": edges,
		})
	})

	d.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	d.app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		id := uuid.New().String()

		d.mu.Lock()
		d.clients[conn] = struct{}{}
		d.mu.Unlock()

		d.logger.WithField("client", id).Debug("monitorhttp: client connected")

		defer func() {
			d.mu.Lock()
			delete(d.clients, conn)
			d.mu.Unlock()
			conn.Close()
			d.logger.WithField("client", id).Debug("monitorhttp: client disconnected")
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}))

	return d
}

// Broadcast pushes the current node/edge counts to every connected
// websocket client. Call it periodically, e.g. through RunBroadcastLoop.
func (d *Dashboard) Broadcast() {
	nodes, edges := d.source.Info()

	d.mu.Lock()
	defer d.mu.Unlock()

	for conn := range d.clients {
		if err := conn.WriteJSON(fiber.Map{"nodes": nodes, "edges": edges}); err != nil {
			d.logger.WithError(err).Debug("monitorhttp: websocket write to client failed")
		}
	}
}

// Listen starts serving on addr. It blocks until the app is shut down.
func (d *Dashboard) Listen(addr string) error {
	return d.app.Listen(addr)
}

// Shutdown gracefully stops the dashboard.
func (d *Dashboard) Shutdown() error {
	return d.app.Shutdown()
}

// RunBroadcastLoop calls Broadcast on the given interval until stop is
// closed.
func (d *Dashboard) RunBroadcastLoop(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.Broadcast()
		case <-stop:
			return
		}
	}
}
