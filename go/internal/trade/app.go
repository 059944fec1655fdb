package trade

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/rosterbot/go/internal/events"
	"github.com/mcdev12/rosterbot/go/internal/models"
	"github.com/mcdev12/rosterbot/go/internal/team"
)

// MaxPlayersPerSide limits how many players one team may send in a single trade.
const MaxPlayersPerSide = 5

const defaultHistoryLimit = 10

// TradeRepository defines what the app layer needs from the store
type TradeRepository interface {
	LoadTeams(ctx context.Context) (map[string]*models.Team, error)
	SaveTeams(ctx context.Context, teams map[string]*models.Team) error
	LoadHistory(ctx context.Context) (models.TradeHistory, error)
	SaveHistory(ctx context.Context, history models.TradeHistory) error
}

// EventPublisher defines what the app layer needs to announce executed trades
type EventPublisher interface {
	PublishTradeExecuted(ctx context.Context, event events.TradeExecutedEvent) error
}

// ExecuteTradeRequest names the two teams and the player ids each side gives
// up. Ids may be numeric-looking; they are compared as normalized strings.
type ExecuteTradeRequest struct {
	Team1        string   `json:"team1"`
	Team2        string   `json:"team2"`
	OfferedIDs   []string `json:"offered_ids"`
	RequestedIDs []string `json:"requested_ids"`
}

// TradeResult reports a completed trade back to the rendering layer.
type TradeResult struct {
	Record    models.TradeRecord `json:"record"`
	Team1Size int                `json:"team1_size"`
	Team1Max  int                `json:"team1_max"`
	Team2Size int                `json:"team2_size"`
	Team2Max  int                `json:"team2_max"`
}

// App validates and executes bilateral player trades. Validation fully
// precedes mutation: a failed precondition leaves the store untouched, so no
// rollback machinery exists or is needed.
type App struct {
	repo      TradeRepository
	publisher EventPublisher
	clock     clockwork.Clock
	mu        sync.Locker
}

// NewApp creates a new trade App. The locker must be the same one the team App
// uses so trades and roster edits serialize against each other.
func NewApp(repo TradeRepository, publisher EventPublisher, clock clockwork.Clock, mu sync.Locker) *App {
	return &App{
		repo:      repo,
		publisher: publisher,
		clock:     clock,
		mu:        mu,
	}
}

// ExecuteTrade atomically validates and executes a multi-player swap between
// two teams, then appends an immutable history record. The operation is not
// idempotent: retrying a successful trade trades back nothing, it simply fails
// player resolution because the players have moved.
func (a *App) ExecuteTrade(ctx context.Context, req ExecuteTradeRequest) (*TradeResult, error) {
	offeredIDs := normalizeIDs(req.OfferedIDs)
	requestedIDs := normalizeIDs(req.RequestedIDs)

	a.mu.Lock()
	defer a.mu.Unlock()

	teams, err := a.repo.LoadTeams(ctx)
	if err != nil {
		return nil, err
	}

	team1, ok := teams[req.Team1]
	if !ok {
		return nil, &TeamNotFoundError{Team: req.Team1}
	}
	team2, ok := teams[req.Team2]
	if !ok {
		return nil, &TeamNotFoundError{Team: req.Team2}
	}

	if len(offeredIDs) == 0 || len(requestedIDs) == 0 {
		return nil, ErrEmptyOffer
	}
	if len(offeredIDs) > MaxPlayersPerSide {
		return nil, &TooManyPlayersError{Count: len(offeredIDs), Limit: MaxPlayersPerSide}
	}
	if len(requestedIDs) > MaxPlayersPerSide {
		return nil, &TooManyPlayersError{Count: len(requestedIDs), Limit: MaxPlayersPerSide}
	}
	if overlaps(offeredIDs, requestedIDs) {
		return nil, ErrOverlappingPlayers
	}

	offered, err := resolvePlayers(team1, offeredIDs)
	if err != nil {
		return nil, err
	}
	requested, err := resolvePlayers(team2, requestedIDs)
	if err != nil {
		return nil, err
	}

	team1Size := len(team1.Players) - len(offered) + len(requested)
	team2Size := len(team2.Players) - len(requested) + len(offered)
	if team1Size > team1.MaxSize {
		return nil, &RosterOverflowError{Team: team1.Name, WouldBeSize: team1Size, MaxSize: team1.MaxSize}
	}
	if team2Size > team2.MaxSize {
		return nil, &RosterOverflowError{Team: team2.Name, WouldBeSize: team2Size, MaxSize: team2.MaxSize}
	}

	// All preconditions hold; mutate in memory, then persist once per document.
	team1.Players = removePlayers(team1.Players, offeredIDs)
	team2.Players = removePlayers(team2.Players, requestedIDs)
	team1.Players = append(team1.Players, requested...)
	team2.Players = append(team2.Players, offered...)

	if err := a.repo.SaveTeams(ctx, teams); err != nil {
		return nil, err
	}

	record := models.TradeRecord{
		TradeID:   uuid.New().String(),
		Timestamp: a.clock.Now().UTC(),
		Team1:     team1.Name,
		Team2:     team2.Name,
		Players1:  offered,
		Players2:  requested,
	}

	history, err := a.repo.LoadHistory(ctx)
	if err != nil {
		return nil, err
	}
	history.Trades = append(history.Trades, record)
	if err := a.repo.SaveHistory(ctx, history); err != nil {
		return nil, err
	}

	log.Printf("Trade executed: %s sent %d player(s) to %s, received %d", team1.Name, len(offered), team2.Name, len(requested))

	a.publish(ctx, record)

	return &TradeResult{
		Record:    record,
		Team1Size: team1Size,
		Team1Max:  team1.MaxSize,
		Team2Size: team2Size,
		Team2Max:  team2.MaxSize,
	}, nil
}

// GetTradeHistory returns the most recent limit records in chronological
// order, optionally filtered to trades mentioning the given team on either
// side. A non-positive limit falls back to the default of 10.
func (a *App) GetTradeHistory(ctx context.Context, teamFilter string, limit int) ([]models.TradeRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	history, err := a.repo.LoadHistory(ctx)
	if err != nil {
		return nil, err
	}

	trades := history.Trades
	if teamFilter != "" {
		filtered := make([]models.TradeRecord, 0, len(trades))
		for _, tr := range trades {
			if tr.Mentions(teamFilter) {
				filtered = append(filtered, tr)
			}
		}
		trades = filtered
	}

	if len(trades) > limit {
		trades = trades[len(trades)-limit:]
	}
	return trades, nil
}

// publish announces the executed trade. Publishing is best-effort: the trade
// is already durable, so a publish failure is logged and swallowed.
func (a *App) publish(ctx context.Context, record models.TradeRecord) {
	event := events.TradeExecutedEvent{
		TradeID:   record.TradeID,
		Timestamp: record.Timestamp,
		Team1:     record.Team1,
		Team2:     record.Team2,
		Players1:  record.Players1,
		Players2:  record.Players2,
	}
	if err := a.publisher.PublishTradeExecuted(ctx, event); err != nil {
		log.Printf("Failed to publish trade event %s: %v", record.TradeID, err)
	}
}

// normalizeIDs coerces ids to trimmed string form, drops empties, and
// de-duplicates preserving first-seen order. Matched order therefore follows
// the caller's order with repeats collapsed.
func normalizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = team.NormalizeID(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func overlaps(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}

// resolvePlayers maps every id to its roster entry, failing on the first id
// with no match.
func resolvePlayers(t *models.Team, ids []string) ([]models.Player, error) {
	players := make([]models.Player, 0, len(ids))
	for _, id := range ids {
		p, ok := t.PlayerByID(id)
		if !ok {
			return nil, &PlayerNotFoundError{PlayerID: id, Team: t.Name}
		}
		players = append(players, p)
	}
	return players, nil
}

// removePlayers drops the listed ids from the roster, keeping the relative
// order of everyone else.
func removePlayers(players []models.Player, ids []string) []models.Player {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := make([]models.Player, 0, len(players))
	for _, p := range players {
		if _, gone := drop[p.ID]; gone {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
