package service

import (
	"net/http"

	"github.com/mcdev12/rosterbot/go/internal/models"
	"github.com/mcdev12/rosterbot/go/internal/team"
)

type createTeamRequest struct {
	Name    string `json:"name"`
	OwnerID string `json:"owner_id"`
	MaxSize int    `json:"max_size"`
}

type addPlayerRequest struct {
	PlayerName string      `json:"player_name"`
	PlayerID   interface{} `json:"player_id"`
}

type teamResponse struct {
	Name    string          `json:"name"`
	OwnerID string          `json:"owner_id"`
	Players []models.Player `json:"players"`
	Size    int             `json:"size"`
	MaxSize int             `json:"max_size"`
}

func toTeamResponse(t *models.Team) teamResponse {
	return teamResponse{
		Name:    t.Name,
		OwnerID: t.OwnerID,
		Players: t.Players,
		Size:    len(t.Players),
		MaxSize: t.MaxSize,
	}
}

func (s *Service) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	created, err := s.teams.CreateTeam(r.Context(), team.CreateTeamRequest{
		Name:    req.Name,
		OwnerID: req.OwnerID,
		MaxSize: req.MaxSize,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toTeamResponse(created))
}

func (s *Service) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.teams.ListTeams(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	resp := make([]teamResponse, 0, len(teams))
	for _, t := range teams {
		resp = append(resp, toTeamResponse(t))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Service) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	t, err := s.teams.GetTeamByName(r.Context(), r.PathValue("name"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toTeamResponse(t))
}

func (s *Service) handleGetTeamByOwner(w http.ResponseWriter, r *http.Request) {
	t, err := s.teams.GetTeamByOwner(r.Context(), r.PathValue("owner_id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toTeamResponse(t))
}

func (s *Service) handleAddPlayer(w http.ResponseWriter, r *http.Request) {
	var req addPlayerRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	playerID, err := coerceID(req.PlayerID)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	t, err := s.teams.AddPlayer(r.Context(), team.AddPlayerRequest{
		TeamName:   r.PathValue("name"),
		PlayerID:   playerID,
		PlayerName: req.PlayerName,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toTeamResponse(t))
}

func (s *Service) handleRemovePlayer(w http.ResponseWriter, r *http.Request) {
	removed, err := s.teams.RemovePlayer(r.Context(), r.PathValue("name"), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, removed)
}
