package gateway

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

// WebSocketHandler handles WebSocket upgrade requests for the trade feed
type WebSocketHandler struct {
	connectionManager *ConnectionManager
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(cm *ConnectionManager) *WebSocketHandler {
	return &WebSocketHandler{
		connectionManager: cm,
	}
}

// HandleTradeFeed subscribes the caller to executed-trade events. An optional
// team query parameter narrows the feed to trades involving that team.
func (h *WebSocketHandler) HandleTradeFeed(w http.ResponseWriter, r *http.Request) {
	teamFilter := r.URL.Query().Get("team")

	if err := h.connectionManager.UpgradeConnection(w, r, teamFilter); err != nil {
		log.Error().
			Err(err).
			Str("team_filter", teamFilter).
			Msg("failed to upgrade WebSocket connection")
		http.Error(w, "failed to upgrade connection", http.StatusInternalServerError)
		return
	}

	// Connection is now handled by the connection manager
}

// HandleConnectionStats returns statistics about active connections
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	total, filtered := h.connectionManager.GetConnectionStats()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"total_connections":%d,"filtered_connections":%d}`, total, filtered)
}

// RegisterRoutes registers WebSocket routes with an HTTP mux
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/trades", h.HandleTradeFeed)
	mux.HandleFunc("/ws/stats", h.HandleConnectionStats)
}
