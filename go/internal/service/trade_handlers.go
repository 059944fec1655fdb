package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/mcdev12/rosterbot/go/internal/models"
	"github.com/mcdev12/rosterbot/go/internal/trade"
)

type executeTradeRequest struct {
	Team1        string        `json:"team1"`
	Team2        string        `json:"team2"`
	OfferedIDs   []interface{} `json:"offered_ids"`
	RequestedIDs []interface{} `json:"requested_ids"`
}

type tradeResponse struct {
	TradeID   string          `json:"trade_id"`
	Timestamp string          `json:"timestamp"`
	Team1     string          `json:"team1"`
	Team2     string          `json:"team2"`
	Players1  []models.Player `json:"players1"`
	Players2  []models.Player `json:"players2"`
	Team1Size int             `json:"team1_size"`
	Team1Max  int             `json:"team1_max"`
	Team2Size int             `json:"team2_size"`
	Team2Max  int             `json:"team2_max"`
}

func (s *Service) handleExecuteTrade(w http.ResponseWriter, r *http.Request) {
	var req executeTradeRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	offered, err := coerceIDs(req.OfferedIDs)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	requested, err := coerceIDs(req.RequestedIDs)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := s.trades.ExecuteTrade(r.Context(), trade.ExecuteTradeRequest{
		Team1:        req.Team1,
		Team2:        req.Team2,
		OfferedIDs:   offered,
		RequestedIDs: requested,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tradeResponse{
		TradeID:   result.Record.TradeID,
		Timestamp: result.Record.Timestamp.Format(time.RFC3339),
		Team1:     result.Record.Team1,
		Team2:     result.Record.Team2,
		Players1:  result.Record.Players1,
		Players2:  result.Record.Players2,
		Team1Size: result.Team1Size,
		Team1Max:  result.Team1Max,
		Team2Size: result.Team2Size,
		Team2Max:  result.Team2Max,
	})
}

func (s *Service) handleTradeHistory(w http.ResponseWriter, r *http.Request) {
	teamFilter := r.URL.Query().Get("team")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be an integer"})
			return
		}
		limit = parsed
	}

	trades, err := s.trades.GetTradeHistory(r.Context(), teamFilter, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"trades": trades})
}
