// Package realtime delivers messages to every connected WebSocket client
// with best-effort semantics: no acknowledgment, no retry, no buffering
// beyond a bounded per-client queue.
package realtime

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"placenet/internal/observability"
)

// sendBuffer bounds each client's outbound queue. A full queue drops the
// frame for that client only.
const sendBuffer = 64

type envelope struct {
	data    []byte
	exclude *client
}

// Announcement is the inbound trigger frame a client sends to request a
// broadcast.
type Announcement struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Priority  string `json:"priority"`
	Timestamp string `json:"timestamp"`
}

type systemAnnouncement struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Priority  string `json:"priority"`
	Timestamp string `json:"timestamp"`
}

type adminActivity struct {
	Type string            `json:"type"`
	Data adminActivityData `json:"data"`
}

type adminActivityData struct {
	Timestamp         string `json:"timestamp"`
	ActiveConnections int    `json:"activeConnections"`
	SystemStatus      string `json:"systemStatus"`
}

// Hub fans frames out to every connected client. A single dispatch
// goroutine serializes all broadcasts, so frames published in order are
// enqueued to every client in that order.
type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan envelope
	clients    map[*client]struct{}
	active     atomic.Int64
	heartbeat  time.Duration
	logger     *observability.Logger
	// done is closed when Run returns so Attach never blocks handing a
	// client to a dispatch loop that has already stopped.
	done chan struct{}
}

func NewHub(logger *observability.Logger, heartbeat time.Duration) *Hub {
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan envelope, 256),
		clients:    make(map[*client]struct{}),
		heartbeat:  heartbeat,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Run owns the client set. It returns when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				c.stop()
				delete(h.clients, c)
			}
			h.active.Store(0)
			close(h.done)
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.active.Store(int64(len(h.clients)))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				c.stop()
				delete(h.clients, c)
				h.active.Store(int64(len(h.clients)))
			}
		case env := <-h.broadcast:
			for c := range h.clients {
				if c == env.exclude {
					continue
				}
				c.enqueue(env.data)
			}
		case <-ticker.C:
			data, err := json.Marshal(adminActivity{
				Type: "admin_activity",
				Data: adminActivityData{
					Timestamp:         time.Now().UTC().Format(time.RFC3339),
					ActiveConnections: h.ActiveConnections(),
					SystemStatus:      "healthy",
				},
			})
			if err != nil {
				continue
			}
			for c := range h.clients {
				c.enqueue(data)
			}
		}
	}
}

// Publish serializes v once and enqueues it to every connected client.
// Fire-and-forget: slow or gone clients are skipped silently.
func (h *Hub) Publish(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.broadcast <- envelope{data: data}
	return nil
}

func (h *Hub) ActiveConnections() int {
	return int(h.active.Load())
}

func (h *Hub) relay(data []byte, sender *client) {
	h.broadcast <- envelope{data: data, exclude: sender}
}

// handleInbound routes one frame read from a client. An announcement frame
// becomes a system_announcement broadcast to every client, the sender
// included; anything else is relayed verbatim to everyone but the sender.
func (h *Hub) handleInbound(data []byte, sender *client) {
	var frame Announcement
	if err := json.Unmarshal(data, &frame); err == nil && frame.Type == "announcement" {
		timestamp := frame.Timestamp
		if timestamp == "" {
			timestamp = time.Now().UTC().Format(time.RFC3339)
		}
		_ = h.Publish(systemAnnouncement{
			Type:      "system_announcement",
			Title:     frame.Title,
			Message:   frame.Message,
			Priority:  frame.Priority,
			Timestamp: timestamp,
		})
		return
	}
	h.relay(data, sender)
}
