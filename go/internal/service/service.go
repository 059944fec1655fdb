package service

import (
	"context"
	"net/http"

	"github.com/mcdev12/rosterbot/go/internal/models"
	"github.com/mcdev12/rosterbot/go/internal/team"
	"github.com/mcdev12/rosterbot/go/internal/trade"
)

// TeamApp defines what the service layer needs from the team application
type TeamApp interface {
	CreateTeam(ctx context.Context, req team.CreateTeamRequest) (*models.Team, error)
	GetTeamByName(ctx context.Context, name string) (*models.Team, error)
	GetTeamByOwner(ctx context.Context, ownerID string) (*models.Team, error)
	ListTeams(ctx context.Context) ([]*models.Team, error)
	AddPlayer(ctx context.Context, req team.AddPlayerRequest) (*models.Team, error)
	RemovePlayer(ctx context.Context, teamName, playerID string) (*models.Player, error)
}

// TradeApp defines what the service layer needs from the trade application
type TradeApp interface {
	ExecuteTrade(ctx context.Context, req trade.ExecuteTradeRequest) (*trade.TradeResult, error)
	GetTradeHistory(ctx context.Context, teamFilter string, limit int) ([]models.TradeRecord, error)
}

// Service renders the team and trade applications as a JSON HTTP API. This is
// the contract the chat-platform command layer consumes.
type Service struct {
	teams  TeamApp
	trades TradeApp
}

// NewService creates the HTTP service over both applications.
func NewService(teams TeamApp, trades TradeApp) *Service {
	return &Service{
		teams:  teams,
		trades: trades,
	}
}

// RegisterRoutes registers all API routes with an HTTP mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /teams", s.handleCreateTeam)
	mux.HandleFunc("GET /teams", s.handleListTeams)
	mux.HandleFunc("GET /teams/{name}", s.handleGetTeam)
	mux.HandleFunc("GET /owners/{owner_id}/team", s.handleGetTeamByOwner)
	mux.HandleFunc("POST /teams/{name}/players", s.handleAddPlayer)
	mux.HandleFunc("DELETE /teams/{name}/players/{id}", s.handleRemovePlayer)
	mux.HandleFunc("POST /trades", s.handleExecuteTrade)
	mux.HandleFunc("GET /trades", s.handleTradeHistory)
}
