// Package hub tracks live client connections and fans change notifications
// out to all of them.
package hub

import (
	"context"
	"sync"
	"time"

	"github.com/LouisLiuNova/SyncHub/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Change topics pushed to clients. They carry no payload: clients re-fetch
// through the read endpoints.
const (
	TopicClipboard = "update:clipboard"
	TopicFiles     = "update:files"
	TopicTags      = "update:tags"
)

const (
	DefaultSendTimeout      = 5 * time.Second
	DefaultMaxParallelSends = 32
)

// Conn is a live client transport.
type Conn interface {
	Send(ctx context.Context, msg string) error
	Close() error
}

// Hub is the connection registry. Sends never happen while the registry lock
// is held.
type Hub struct {
	mu     sync.Mutex
	conns  map[Conn]struct{}
	closed bool

	sendTimeout time.Duration
	maxParallel int
	logger      logging.Logger

	inflight sync.WaitGroup
}

type Option func(*Hub)

func WithSendTimeout(d time.Duration) Option {
	return func(h *Hub) {
		if d > 0 {
			h.sendTimeout = d
		}
	}
}

func WithMaxParallelSends(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.maxParallel = n
		}
	}
}

func New(logger logging.Logger, opts ...Option) *Hub {
	h := &Hub{
		conns:       make(map[Conn]struct{}),
		sendTimeout: DefaultSendTimeout,
		maxParallel: DefaultMaxParallelSends,
		logger:      logger.With("module", "hub"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register adds c. After Close, c is closed instead.
func (h *Hub) Register(c Conn) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = c.Close()
		return
	}
	h.conns[c] = struct{}{}
	n := len(h.conns)
	h.mu.Unlock()

	h.logger.Debug(context.Background(), "connection registered", "connections", n)
}

// Unregister removes c. It reports whether c was registered; removing an
// unknown connection is a no-op.
func (h *Hub) Unregister(c Conn) bool {
	h.mu.Lock()
	_, ok := h.conns[c]
	delete(h.conns, c)
	h.mu.Unlock()
	return ok
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Hub) snapshot() []Conn {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Conn, 0, len(h.conns))
	for c := range h.conns {
		out = append(out, c)
	}
	return out
}

// Broadcast delivers topic to every registered connection in the background
// and returns immediately. Delivery failures are never reported to the caller.
// After Close it does nothing.
func (h *Hub) Broadcast(topic string) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.inflight.Add(1)
	h.mu.Unlock()

	go func() {
		defer h.inflight.Done()
		h.Deliver(context.Background(), topic)
	}()
}

// Deliver sends topic to a snapshot of the registered connections and waits
// for all sends. A connection whose send fails or times out is unregistered
// and closed. Deliver returns the number of successful sends.
func (h *Hub) Deliver(ctx context.Context, topic string) int {
	conns := h.snapshot()
	if len(conns) == 0 {
		return 0
	}

	var (
		mu        sync.Mutex
		delivered int
	)

	g := new(errgroup.Group)
	g.SetLimit(h.maxParallel)

	for _, c := range conns {
		g.Go(func() error {
			sendCtx, cancel := context.WithTimeout(ctx, h.sendTimeout)
			err := c.Send(sendCtx, topic)
			cancel()

			if err != nil {
				h.drop(c, topic, err)
				return nil
			}

			mu.Lock()
			delivered++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return delivered
}

func (h *Hub) drop(c Conn, topic string, cause error) {
	if !h.Unregister(c) {
		return
	}
	if err := c.Close(); err != nil {
		h.logger.Debug(context.Background(), "close after failed send", "error", err)
	}
	h.logger.Info(context.Background(), "dropped connection", "topic", topic, "error", cause)
}

// Wait blocks until every Broadcast started so far has finished. Call it
// after Close so that no new broadcast can start while waiting.
func (h *Hub) Wait() {
	h.inflight.Wait()
}

// Close closes and removes every registered connection and stops accepting
// new connections and broadcasts.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	conns := make([]Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.conns = make(map[Conn]struct{})
	h.mu.Unlock()

	for _, c := range conns {
		_ = c.Close()
	}
}
