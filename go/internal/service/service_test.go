package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/rosterbot/go/internal/events"
	"github.com/mcdev12/rosterbot/go/internal/store"
	"github.com/mcdev12/rosterbot/go/internal/team"
	"github.com/mcdev12/rosterbot/go/internal/trade"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st := store.New(t.TempDir())
	mu := &sync.Mutex{}
	teamApp := team.NewApp(st, mu)
	tradeApp := trade.NewApp(st, events.NopPublisher{}, clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)), mu)

	mux := http.NewServeMux()
	NewService(teamApp, tradeApp).RegisterRoutes(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func TestTeamLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/teams", map[string]interface{}{
		"name": "Alpha", "owner_id": "1001", "max_size": 10,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	// Duplicate name conflicts.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/teams", map[string]interface{}{
		"name": "Alpha", "owner_id": "9999", "max_size": 10,
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// Numeric player ids are coerced to strings.
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/teams/Alpha/players", map[string]interface{}{
		"player_name": "Jackie", "player_id": 42,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var teamBody struct {
		Players []struct {
			ID string `json:"id"`
		} `json:"players"`
		Size int `json:"size"`
	}
	require.NoError(t, json.Unmarshal(body, &teamBody))
	require.Equal(t, 1, teamBody.Size)
	require.Equal(t, "42", teamBody.Players[0].ID)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/teams/Alpha", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/owners/1001/team", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/teams/Ghost", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/teams/Alpha/players/42", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/teams/Alpha/players/42", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExecuteTradeOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	for _, seed := range []struct {
		team    string
		owner   string
		players []int
	}{
		{team: "Alpha", owner: "1001", players: []int{1, 2}},
		{team: "Beta", owner: "2002", players: []int{11}},
	} {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/teams", map[string]interface{}{
			"name": seed.team, "owner_id": seed.owner, "max_size": 10,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
		for _, id := range seed.players {
			resp, body := doJSON(t, http.MethodPost, srv.URL+"/teams/"+seed.team+"/players", map[string]interface{}{
				"player_name": fmt.Sprintf("Player %d", id), "player_id": id,
			})
			require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
		}
	}

	// Ids arrive as a mix of numbers and strings; both sides coerce.
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/trades", map[string]interface{}{
		"team1":         "Alpha",
		"team2":         "Beta",
		"offered_ids":   []interface{}{1},
		"requested_ids": []interface{}{"11"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var result struct {
		TradeID   string `json:"trade_id"`
		Team1Size int    `json:"team1_size"`
		Team2Size int    `json:"team2_size"`
	}
	require.NoError(t, json.Unmarshal(body, &result))
	require.NotEmpty(t, result.TradeID)
	require.Equal(t, 2, result.Team1Size)
	require.Equal(t, 2, result.Team2Size)

	// Replaying the trade fails resolution: the players already moved.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/trades", map[string]interface{}{
		"team1":         "Alpha",
		"team2":         "Beta",
		"offered_ids":   []interface{}{1},
		"requested_ids": []interface{}{"11"},
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/trades?team=Alpha&limit=5", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var history struct {
		Trades []struct {
			Team1 string `json:"team1"`
			Team2 string `json:"team2"`
		} `json:"trades"`
	}
	require.NoError(t, json.Unmarshal(body, &history))
	require.Len(t, history.Trades, 1)
	require.Equal(t, "Alpha", history.Trades[0].Team1)
}

func TestTradeValidationStatusesOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	for _, name := range []string{"Alpha", "Beta"} {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/teams", map[string]interface{}{
			"name": name, "owner_id": "owner-" + name, "max_size": 10,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/teams/Alpha/players", map[string]interface{}{
		"player_name": "One", "player_id": "p1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Empty side.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/trades", map[string]interface{}{
		"team1": "Alpha", "team2": "Beta", "offered_ids": []interface{}{}, "requested_ids": []interface{}{"q1"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Overlapping ids.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/trades", map[string]interface{}{
		"team1": "Alpha", "team2": "Beta", "offered_ids": []interface{}{"p1"}, "requested_ids": []interface{}{"p1"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Unknown team.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/trades", map[string]interface{}{
		"team1": "Ghost", "team2": "Beta", "offered_ids": []interface{}{"p1"}, "requested_ids": []interface{}{"q1"},
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Malformed id type.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/trades", map[string]interface{}{
		"team1": "Alpha", "team2": "Beta", "offered_ids": []interface{}{true}, "requested_ids": []interface{}{"q1"},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
