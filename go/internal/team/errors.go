package team

import "errors"

// ErrTeamNotFound is returned when no team with the requested name or owner exists
var ErrTeamNotFound = errors.New("team not found")

// ErrDuplicateTeamName is returned when a team with the requested name already exists
var ErrDuplicateTeamName = errors.New("team already exists")

// ErrRosterFull is returned when adding a player would exceed the team's max size
var ErrRosterFull = errors.New("maximum roster size reached")

// ErrDuplicatePlayerID is returned when a player with the same id is already on the roster
var ErrDuplicatePlayerID = errors.New("a player with this id already exists")

// ErrPlayerNotFound is returned when no player with the requested id is on the roster
var ErrPlayerNotFound = errors.New("player not found")
