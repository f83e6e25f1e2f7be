package broadcast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/influence-roster/internal/logger"
	"github.com/MKhiriev/influence-roster/models"
)

func testEvent(rev uint64) models.RosterEvent {
	master := models.NewProfile("p1")
	master.Name = "Countess Vell"
	master.Biases = []models.Item{{Text: "Flattery", Revealed: true}, {Text: "Secret debt"}}

	player := models.PlayerProfile{
		ID:              "p1",
		Name:            "Countess Vell",
		SuccessesNeeded: 1,
		Biases:          []string{"Flattery"},
		Strengths:       []string{},
		Weaknesses:      []string{},
		InfluenceSkills: []string{},
	}

	return models.RosterEvent{
		Name:     models.EventProfilesUpdated,
		Revision: rev,
		Master:   []models.MasterProfile{master},
		Player:   []models.PlayerProfile{player},
	}
}

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(logger.Nop())
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(func() {
		hub.Stop()
		srv.Close()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, view string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	if view != "" {
		url += "?view=" + view
	}
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	return data
}

func waitSubscribers(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Subscribers() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_SnapshotOnConnect(t *testing.T) {
	hub, srv := startHub(t)
	hub.Notify(context.Background(), testEvent(3))

	conn := dial(t, srv, "gm")

	var msg models.RosterMessage
	require.NoError(t, json.Unmarshal(readMessage(t, conn), &msg))
	assert.Equal(t, models.EventProfilesUpdated, msg.Event)
	assert.Equal(t, uint64(3), msg.Revision)
	assert.Equal(t, models.MasterView, msg.View)
}

func TestHub_PlayerSocketNeverSeesHiddenItems(t *testing.T) {
	hub, srv := startHub(t)
	player := dial(t, srv, "player")
	gm := dial(t, srv, "gm")
	waitSubscribers(t, hub, 2)

	hub.Notify(context.Background(), testEvent(1))

	playerRaw := readMessage(t, player)
	assert.NotContains(t, string(playerRaw), "Secret debt")
	assert.NotContains(t, string(playerRaw), `"revealed"`)

	var pm models.PlayerRosterMessage
	require.NoError(t, json.Unmarshal(playerRaw, &pm))
	assert.Equal(t, models.PlayerView, pm.View)
	require.Len(t, pm.Profiles, 1)
	assert.Equal(t, []string{"Flattery"}, pm.Profiles[0].Biases)

	gmRaw := readMessage(t, gm)
	assert.Contains(t, string(gmRaw), "Secret debt")
}

func TestHub_DefaultViewIsPlayer(t *testing.T) {
	hub, srv := startHub(t)
	hub.Notify(context.Background(), testEvent(1))

	conn := dial(t, srv, "")
	raw := readMessage(t, conn)
	assert.NotContains(t, string(raw), "Secret debt")
}

func TestHub_RejectsUnknownView(t *testing.T) {
	_, srv := startHub(t)

	resp, err := http.Get(srv.URL + "?view=admin")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHub_PushesInRevisionOrder(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv, "gm")
	waitSubscribers(t, hub, 1)

	for rev := uint64(1); rev <= 3; rev++ {
		hub.Notify(context.Background(), testEvent(rev))
	}

	var last uint64
	for i := 0; i < 3; i++ {
		var msg models.RosterMessage
		require.NoError(t, json.Unmarshal(readMessage(t, conn), &msg))
		assert.Greater(t, msg.Revision, last)
		last = msg.Revision
	}
	assert.Equal(t, uint64(3), last)
}

func TestHub_UnsubscribesOnClose(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv, "player")
	waitSubscribers(t, hub, 1)

	require.NoError(t, conn.Close())
	waitSubscribers(t, hub, 0)
}

func TestHub_StopDisconnectsAndRejects(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv, "gm")
	waitSubscribers(t, hub, 1)

	stopped := make(chan struct{})
	go func() {
		hub.Run()
		close(stopped)
	}()
	hub.Stop()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Zero(t, hub.Subscribers())

	// notifying a stopped hub is harmless
	hub.Notify(context.Background(), testEvent(9))
}

func TestClient_PushDropsOldest(t *testing.T) {
	c := &client{send: make(chan []byte, 2)}

	c.push([]byte("1"))
	c.push([]byte("2"))
	c.push([]byte("3"))

	assert.Equal(t, []byte("2"), <-c.send)
	assert.Equal(t, []byte("3"), <-c.send)
}
