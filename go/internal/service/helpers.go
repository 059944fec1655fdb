package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/rosterbot/go/internal/store"
	"github.com/mcdev12/rosterbot/go/internal/team"
	"github.com/mcdev12/rosterbot/go/internal/trade"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn().Err(err).Msg("failed to encode JSON response")
	}
}

func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, statusForError(err), errorResponse{Error: err.Error()})
}

// statusForError maps the typed error taxonomy onto HTTP statuses. Store
// failures are the only hard 500s; everything else is a caller problem.
func statusForError(err error) int {
	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		return http.StatusInternalServerError
	}

	var teamNotFound *trade.TeamNotFoundError
	var playerNotFound *trade.PlayerNotFoundError
	switch {
	case errors.Is(err, team.ErrTeamNotFound),
		errors.Is(err, team.ErrPlayerNotFound),
		errors.As(err, &teamNotFound),
		errors.As(err, &playerNotFound):
		return http.StatusNotFound
	case errors.Is(err, team.ErrDuplicateTeamName),
		errors.Is(err, team.ErrDuplicatePlayerID):
		return http.StatusConflict
	}

	var tooMany *trade.TooManyPlayersError
	var overflow *trade.RosterOverflowError
	switch {
	case errors.Is(err, team.ErrRosterFull),
		errors.Is(err, trade.ErrEmptyOffer),
		errors.Is(err, trade.ErrOverlappingPlayers),
		errors.As(err, &tooMany),
		errors.As(err, &overflow):
		return http.StatusUnprocessableEntity
	}

	return http.StatusBadRequest
}

// decodeBody decodes a JSON request body with numbers kept as json.Number so
// numeric-looking player ids survive coercion to strings.
func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// coerceID normalizes a caller-supplied player id, which may arrive as a JSON
// string or number, to its canonical string form.
func coerceID(v interface{}) (string, error) {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id), nil
	case json.Number:
		return id.String(), nil
	default:
		return "", fmt.Errorf("player id must be a string or number, got %T", v)
	}
}

func coerceIDs(vs []interface{}) ([]string, error) {
	ids := make([]string, 0, len(vs))
	for _, v := range vs {
		id, err := coerceID(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
