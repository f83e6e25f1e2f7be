package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/influence-roster/models"
)

// Subscription is a live player-view websocket. Messages is closed when the
// connection ends; Err then reports why.
type Subscription struct {
	Messages <-chan models.PlayerRosterMessage

	conn   *websocket.Conn
	closed atomic.Bool

	mu  sync.Mutex
	err error
}

// Subscribe dials <serverURL>/ws?view=player and decodes every push. The
// first message is the current snapshot. Cancelling ctx closes the
// connection.
func Subscribe(ctx context.Context, serverURL string) (*Subscription, error) {
	wsURL, err := websocketURL(serverURL)
	if err != nil {
		return nil, err
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", wsURL, err)
	}

	out := make(chan models.PlayerRosterMessage, 1)
	s := &Subscription{Messages: out, conn: conn}

	stop := context.AfterFunc(ctx, func() { conn.Close() })

	go func() {
		defer close(out)
		defer stop()
		defer conn.Close()

		for {
			_, data, readErr := conn.ReadMessage()
			if readErr != nil {
				if ctx.Err() == nil && !s.closed.Load() && !websocket.IsCloseError(readErr, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					s.setErr(readErr)
				}
				return
			}

			var msg models.PlayerRosterMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				s.setErr(fmt.Errorf("decode roster push: %w", err))
				return
			}

			select {
			case out <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	return s, nil
}

// Err returns the error that ended the subscription, or nil for a clean
// close.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close ends the subscription.
func (s *Subscription) Close() error {
	s.closed.Store(true)
	err := s.conn.Close()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func (s *Subscription) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func websocketURL(serverURL string) (string, error) {
	base, err := normalizeBaseURL(serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server url: %w", err)
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	switch strings.ToLower(u.Scheme) {
	case "https", "wss":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	u.RawQuery = url.Values{"view": {string(models.PlayerView)}}.Encode()
	return u.String(), nil
}
