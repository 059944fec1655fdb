package models

import "time"

// TradeRecord is the immutable history entry written once per executed trade.
// Players1 lists the players that moved away from Team1, Players2 the players
// that moved away from Team2. TradeID is additive over the original document
// layout; history files written before ids existed still parse.
type TradeRecord struct {
	TradeID   string    `json:"trade_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Team1     string    `json:"team1"`
	Team2     string    `json:"team2"`
	Players1  []Player  `json:"players1"`
	Players2  []Player  `json:"players2"`
}

// TradeHistory wraps the persisted {"trades": [...]} document. Records are
// append-only; insertion order is chronological order.
type TradeHistory struct {
	Trades []TradeRecord `json:"trades"`
}

// Mentions reports whether the record involves the given team on either side.
func (r *TradeRecord) Mentions(team string) bool {
	return r.Team1 == team || r.Team2 == team
}
