// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/influence-roster/internal/logger"
	"github.com/MKhiriev/influence-roster/models"
)

const (
	// ViewQueryParam selects the projection of a websocket subscription.
	ViewQueryParam = "view"

	defaultQueueSize = 8

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxInboundMessage = 512
)

var ErrInvalidView = errors.New("view must be gm or player")

// client is one websocket subscriber.
type client struct {
	conn *websocket.Conn
	view models.View
	send chan []byte
}

// Hub keeps the websocket subscribers and pushes every roster event to them.
// Each subscriber gets the projection of its view only, so player sockets
// never see hidden item texts.
//
// Every subscriber has a small buffered queue. When the queue is full the
// oldest pending push is dropped; since every push is a full snapshot the
// newest one is all a subscriber needs.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	latest  map[models.View][]byte
	stopped bool

	queueSize int
	upgrader  websocket.Upgrader

	done     chan struct{}
	stopOnce sync.Once

	logger *logger.Logger
}

func NewHub(logger *logger.Logger) *Hub {
	return &Hub{
		clients:   make(map[*client]struct{}),
		latest:    make(map[models.View][]byte, 2),
		queueSize: defaultQueueSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// viewers are served from any origin on the local network
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Notify implements [Notifier]. Messages for both views are rendered once
// and queued to every subscriber; the call never waits on a connection.
func (h *Hub) Notify(ctx context.Context, event models.RosterEvent) {
	master, err := json.Marshal(event.MessageFor(models.MasterView))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*Hub.Notify").Msg("failed to encode master snapshot")
		return
	}
	player, err := json.Marshal(event.MessageFor(models.PlayerView))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*Hub.Notify").Msg("failed to encode player snapshot")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest[models.MasterView] = master
	h.latest[models.PlayerView] = player

	for c := range h.clients {
		c.push(h.latest[c.view])
	}

	h.logger.Debug().
		Str("func", "*Hub.Notify").
		Uint64("revision", event.Revision).
		Int("subscribers", len(h.clients)).
		Msg("roster snapshot queued")
}

// Subscribers returns the number of connected subscribers.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeWS upgrades the request to a websocket subscription. The view comes
// from the "view" query parameter and defaults to player. The current
// snapshot is queued before any later push.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	view := models.View(r.URL.Query().Get(ViewQueryParam))
	if view == "" {
		view = models.PlayerView
	}
	if !view.Valid() {
		http.Error(w, ErrInvalidView.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		log.Err(err).Str("func", "*Hub.ServeWS").Msg("websocket upgrade failed")
		return
	}

	c := &client{
		conn: conn,
		view: view,
		send: make(chan []byte, h.queueSize),
	}
	if !h.register(c) {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}

	log.Info().Str("func", "*Hub.ServeWS").Str("view", string(view)).Msg("viewer subscribed")

	go c.writer()
	go h.reader(c)
}

// Run blocks until Stop is called.
func (h *Hub) Run() {
	<-h.done
}

// Stop disconnects every subscriber and rejects new ones.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		h.mu.Lock()
		h.stopped = true
		for c := range h.clients {
			delete(h.clients, c)
			close(c.send)
		}
		h.mu.Unlock()

		close(h.done)
		h.logger.Info().Str("func", "*Hub.Stop").Msg("broadcast hub stopped")
	})
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		return false
	}
	h.clients[c] = struct{}{}
	if snapshot, ok := h.latest[c.view]; ok {
		c.push(snapshot)
	}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// reader drains inbound frames so pongs and close frames are processed.
// Viewers never send anything meaningful.
func (h *Hub) reader(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxInboundMessage)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug().Err(err).Str("func", "*Hub.reader").Msg("viewer connection lost")
			}
			return
		}
	}
}

// push queues msg, dropping the oldest queued message when the queue is
// full. Callers hold the hub lock, so c.send is open.
func (c *client) push(msg []byte) {
	select {
	case c.send <- msg:
		return
	default:
	}

	select {
	case <-c.send:
	default:
	}

	select {
	case c.send <- msg:
	default:
	}
}

func (c *client) writer() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
