package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/rosterbot/go/internal/events"
	"github.com/mcdev12/rosterbot/go/internal/models"
)

func newFeedServer(t *testing.T) (*ConnectionManager, *httptest.Server) {
	t.Helper()

	cm := NewConnectionManager(DefaultConnectionConfig())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go cm.Start(ctx)

	mux := http.NewServeMux()
	NewWebSocketHandler(cm).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return cm, srv
}

func dialFeed(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/trades" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForConnections(t *testing.T, cm *ConnectionManager, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if total, _ := cm.GetConnectionStats(); total == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	total, _ := cm.GetConnectionStats()
	t.Fatalf("expected %d connections, have %d", want, total)
}

func TestTradeFeedBroadcast(t *testing.T) {
	cm, srv := newFeedServer(t)

	conn := dialFeed(t, srv, "")
	waitForConnections(t, cm, 1)

	event := events.TradeExecutedEvent{
		TradeID:   "t-1",
		Timestamp: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Team1:     "Alpha",
		Team2:     "Beta",
		Players1:  []models.Player{{ID: "p1", Name: "One"}},
		Players2:  []models.Player{{ID: "q1", Name: "Que"}},
	}
	require.NoError(t, cm.PublishTradeExecuted(context.Background(), event))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var received events.TradeExecutedEvent
	require.NoError(t, json.Unmarshal(message, &received))
	require.Equal(t, event.TradeID, received.TradeID)
	require.Equal(t, event.Players1, received.Players1)
}

func TestTradeFeedTeamFilter(t *testing.T) {
	cm, srv := newFeedServer(t)

	filtered := dialFeed(t, srv, "?team=Gamma")
	waitForConnections(t, cm, 1)

	// The event involves neither side of the filter, so nothing arrives.
	require.NoError(t, cm.PublishTradeExecuted(context.Background(), events.TradeExecutedEvent{
		TradeID: "t-2",
		Team1:   "Alpha",
		Team2:   "Beta",
	}))

	filtered.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := filtered.ReadMessage()
	require.Error(t, err)

	total, withFilter := cm.GetConnectionStats()
	require.Equal(t, 1, total)
	require.Equal(t, 1, withFilter)
}

func TestConnectionStatsEndpoint(t *testing.T) {
	_, srv := newFeedServer(t)

	resp, err := http.Get(srv.URL + "/ws/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats struct {
		Total    int `json:"total_connections"`
		Filtered int `json:"filtered_connections"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	require.Equal(t, 0, stats.Total)
}
