package trade

import (
	"errors"
	"fmt"
)

// ErrEmptyOffer is returned when a side of the trade names no players
var ErrEmptyOffer = errors.New("both teams must offer at least one player")

// ErrOverlappingPlayers is returned when the same player id appears on both sides
var ErrOverlappingPlayers = errors.New("cannot trade the same player id between teams")

// TeamNotFoundError is returned when a trade names a team that does not exist.
type TeamNotFoundError struct {
	Team string
}

func (e *TeamNotFoundError) Error() string {
	return fmt.Sprintf("team not found: %s", e.Team)
}

// TooManyPlayersError is returned when one side of the trade exceeds the
// per-side player limit after de-duplication.
type TooManyPlayersError struct {
	Count int
	Limit int
}

func (e *TooManyPlayersError) Error() string {
	return fmt.Sprintf("maximum %d players allowed per team in a trade (got %d)", e.Limit, e.Count)
}

// PlayerNotFoundError is returned when an offered or requested id does not
// resolve to a player on the corresponding roster.
type PlayerNotFoundError struct {
	PlayerID string
	Team     string
}

func (e *PlayerNotFoundError) Error() string {
	return fmt.Sprintf("player with id %s not found in %s", e.PlayerID, e.Team)
}

// RosterOverflowError is returned when the trade would leave a roster over its
// max size.
type RosterOverflowError struct {
	Team        string
	WouldBeSize int
	MaxSize     int
}

func (e *RosterOverflowError) Error() string {
	return fmt.Sprintf("%s would exceed maximum roster size (would have %d/%d players)", e.Team, e.WouldBeSize, e.MaxSize)
}
