package main

import (
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/rosterbot/go/internal/events"
	"github.com/mcdev12/rosterbot/go/internal/gateway"
	"github.com/mcdev12/rosterbot/go/internal/service"
	"github.com/mcdev12/rosterbot/go/internal/store"
	"github.com/mcdev12/rosterbot/go/internal/team"
	"github.com/mcdev12/rosterbot/go/internal/trade"
)

type Services struct {
	Store     *store.Store
	Teams     *team.App
	Trades    *trade.App
	Gateway   *gateway.ConnectionManager
	Publisher events.Publisher
	API       *service.Service
}

func setupServices(cfg *Config) (*Services, error) {
	// Wire up dependency injection chain
	// Store layer → App layer → Service layer

	st := store.New(cfg.DataDir)
	if err := st.Bootstrap(); err != nil {
		return nil, err
	}

	// One lock serializes every load-mutate-save across both apps; the store
	// itself has no concurrency control.
	storeLock := &sync.Mutex{}

	gw := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())

	publishers := []events.Publisher{gw}
	if cfg.NATS.Enabled {
		jsCfg := events.DefaultJetStreamConfig()
		jsCfg.URL = cfg.NATS.URL
		if cfg.NATS.StreamName != "" {
			jsCfg.StreamName = cfg.NATS.StreamName
		}
		if cfg.NATS.SubjectPrefix != "" {
			jsCfg.SubjectPrefix = cfg.NATS.SubjectPrefix
		}
		jsPub, err := events.NewJetStreamPublisher(jsCfg)
		if err != nil {
			return nil, err
		}
		publishers = append(publishers, jsPub)
	}
	publisher := events.NewFanoutPublisher(publishers...)

	teamApp := team.NewApp(st, storeLock)
	tradeApp := trade.NewApp(st, publisher, clockwork.NewRealClock(), storeLock)
	api := service.NewService(teamApp, tradeApp)

	return &Services{
		Store:     st,
		Teams:     teamApp,
		Trades:    tradeApp,
		Gateway:   gw,
		Publisher: publisher,
		API:       api,
	}, nil
}
