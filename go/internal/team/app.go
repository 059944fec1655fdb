package team

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mcdev12/rosterbot/go/internal/models"
)

const (
	minNameLength = 2
	maxNameLength = 32
	minRosterCap  = 10
	maxRosterCap  = 50

	// DefaultMaxSize is applied when a create request leaves the cap unset.
	DefaultMaxSize = 23
)

// TeamRepository defines what the app layer needs from the store
type TeamRepository interface {
	LoadTeams(ctx context.Context) (map[string]*models.Team, error)
	SaveTeams(ctx context.Context, teams map[string]*models.Team) error
}

// CreateTeamRequest carries the fields needed to register a new team. A zero
// MaxSize falls back to DefaultMaxSize.
type CreateTeamRequest struct {
	Name    string `json:"name"`
	OwnerID string `json:"owner_id"`
	MaxSize int    `json:"max_size"`
}

// AddPlayerRequest carries the fields needed to add a player to a roster. The
// player id is normalized to trimmed string form before it is stored.
type AddPlayerRequest struct {
	TeamName   string `json:"team_name"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// App handles team and roster business logic. All mutations run as a single
// load-validate-mutate-save sequence behind the shared store lock.
type App struct {
	repo TeamRepository
	mu   sync.Locker
}

// NewApp creates a new team App. The locker serializes every whole-document
// mutation in this process and must be shared with the trade App.
func NewApp(repo TeamRepository, mu sync.Locker) *App {
	return &App{
		repo: repo,
		mu:   mu,
	}
}

// CreateTeam registers a new team with an empty roster
func (a *App) CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.Team, error) {
	if req.MaxSize == 0 {
		req.MaxSize = DefaultMaxSize
	}
	if err := a.validateCreateTeamRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	teams, err := a.repo.LoadTeams(ctx)
	if err != nil {
		return nil, err
	}

	if _, taken := teams[req.Name]; taken {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateTeamName, req.Name)
	}

	team := &models.Team{
		Name:    req.Name,
		OwnerID: req.OwnerID,
		Players: []models.Player{},
		MaxSize: req.MaxSize,
	}
	teams[req.Name] = team

	if err := a.repo.SaveTeams(ctx, teams); err != nil {
		return nil, err
	}

	log.Printf("Created team: %s for owner %s (max size %d)", team.Name, team.OwnerID, team.MaxSize)
	return team, nil
}

// GetTeamByName retrieves a team by its name
func (a *App) GetTeamByName(ctx context.Context, name string) (*models.Team, error) {
	teams, err := a.repo.LoadTeams(ctx)
	if err != nil {
		return nil, err
	}
	team, ok := teams[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, name)
	}
	return team, nil
}

// GetTeamByOwner retrieves the first team owned by the given user. The store
// does not enforce one team per owner; with multiple teams the match is
// arbitrary, which mirrors the original registry's behavior.
func (a *App) GetTeamByOwner(ctx context.Context, ownerID string) (*models.Team, error) {
	teams, err := a.repo.LoadTeams(ctx)
	if err != nil {
		return nil, err
	}
	for _, team := range teams {
		if team.OwnerID == ownerID {
			return team, nil
		}
	}
	return nil, fmt.Errorf("%w: owner %s", ErrTeamNotFound, ownerID)
}

// ListTeams returns all registered teams sorted by name.
func (a *App) ListTeams(ctx context.Context) ([]*models.Team, error) {
	teams, err := a.repo.LoadTeams(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]*models.Team, 0, len(teams))
	for _, team := range teams {
		list = append(list, team)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// AddPlayer appends a player to a team's roster with capacity and uniqueness
// validation. The underlying store append itself stays permissive; the checks
// live here, in front of it.
func (a *App) AddPlayer(ctx context.Context, req AddPlayerRequest) (*models.Team, error) {
	playerID := NormalizeID(req.PlayerID)
	if playerID == "" {
		return nil, fmt.Errorf("validation failed: player id is required")
	}
	if req.PlayerName == "" {
		return nil, fmt.Errorf("validation failed: player name is required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	teams, err := a.repo.LoadTeams(ctx)
	if err != nil {
		return nil, err
	}
	team, ok := teams[req.TeamName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, req.TeamName)
	}

	if len(team.Players) >= team.MaxSize {
		return nil, fmt.Errorf("%w (%d players)", ErrRosterFull, team.MaxSize)
	}
	if _, exists := team.PlayerByID(playerID); exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayerID, playerID)
	}

	team.Players = append(team.Players, models.Player{ID: playerID, Name: req.PlayerName})

	if err := a.repo.SaveTeams(ctx, teams); err != nil {
		return nil, err
	}

	log.Printf("Added player %s (id %s) to team %s (%d/%d)", req.PlayerName, playerID, team.Name, len(team.Players), team.MaxSize)
	return team, nil
}

// RemovePlayer removes a player from a team's roster by normalized id,
// preserving the order of the remaining players.
func (a *App) RemovePlayer(ctx context.Context, teamName, playerID string) (*models.Player, error) {
	playerID = NormalizeID(playerID)

	a.mu.Lock()
	defer a.mu.Unlock()

	teams, err := a.repo.LoadTeams(ctx)
	if err != nil {
		return nil, err
	}
	team, ok := teams[teamName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, teamName)
	}

	idx := -1
	for i, p := range team.Players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrPlayerNotFound, playerID, teamName)
	}

	removed := team.Players[idx]
	team.Players = append(team.Players[:idx], team.Players[idx+1:]...)

	if err := a.repo.SaveTeams(ctx, teams); err != nil {
		return nil, err
	}

	log.Printf("Removed player %s (id %s) from team %s (%d/%d)", removed.Name, removed.ID, team.Name, len(team.Players), team.MaxSize)
	return &removed, nil
}

// validateCreateTeamRequest validates create team request
func (a *App) validateCreateTeamRequest(req CreateTeamRequest) error {
	nameLen := utf8.RuneCountInString(req.Name)
	if nameLen < minNameLength || nameLen > maxNameLength {
		return fmt.Errorf("team name must be %d-%d characters", minNameLength, maxNameLength)
	}
	if req.OwnerID == "" {
		return fmt.Errorf("owner_id is required")
	}
	if req.MaxSize < minRosterCap || req.MaxSize > maxRosterCap {
		return fmt.Errorf("team size must be between %d and %d players", minRosterCap, maxRosterCap)
	}
	return nil
}

// NormalizeID coerces a caller-supplied player id to its canonical string form.
func NormalizeID(id string) string {
	return strings.TrimSpace(id)
}
