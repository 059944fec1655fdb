package events

import (
	"context"
	"errors"
	"time"

	"github.com/mcdev12/rosterbot/go/internal/models"
)

// TradeExecutedEvent is emitted once per successful trade. Players1 moved away
// from Team1, Players2 away from Team2, matching the history record.
type TradeExecutedEvent struct {
	TradeID   string          `json:"trade_id"`
	Timestamp time.Time       `json:"timestamp"`
	Team1     string          `json:"team1"`
	Team2     string          `json:"team2"`
	Players1  []models.Player `json:"players1"`
	Players2  []models.Player `json:"players2"`
}

// Publisher delivers trade events to interested consumers. Publishing is
// best-effort from the trade engine's point of view: a failed publish never
// fails the trade that produced it.
type Publisher interface {
	PublishTradeExecuted(ctx context.Context, event TradeExecutedEvent) error
	Close() error
}

// NopPublisher discards all events. Used when no event sink is configured.
type NopPublisher struct{}

func (NopPublisher) PublishTradeExecuted(ctx context.Context, event TradeExecutedEvent) error {
	return nil
}

func (NopPublisher) Close() error { return nil }

// FanoutPublisher delivers each event to every wrapped publisher. Delivery
// continues past individual failures; the joined error is returned at the end.
type FanoutPublisher struct {
	publishers []Publisher
}

// NewFanoutPublisher creates a publisher that fans out to all given publishers.
func NewFanoutPublisher(publishers ...Publisher) *FanoutPublisher {
	return &FanoutPublisher{publishers: publishers}
}

func (f *FanoutPublisher) PublishTradeExecuted(ctx context.Context, event TradeExecutedEvent) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.PublishTradeExecuted(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *FanoutPublisher) Close() error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
