package models

// Player represents a player on a team's roster. IDs are stored as strings
// regardless of how the caller supplied them.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Team represents a fantasy team and its roster. The name is the primary key
// across the store; roster order is meaningful and preserved by every mutation.
type Team struct {
	Name    string   `json:"name"`
	OwnerID string   `json:"owner_id"`
	Players []Player `json:"players"`
	MaxSize int      `json:"max_size"`
}

// PlayerByID returns the roster entry with the given normalized id.
func (t *Team) PlayerByID(id string) (Player, bool) {
	for _, p := range t.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}
