package ballotservice

import (
	"log/slog"

	httpadapter "sufragio/contexts/electoral-core/ballot-service/adapters/http"
	"sufragio/contexts/electoral-core/ballot-service/adapters/memory"
	"sufragio/contexts/electoral-core/ballot-service/application/commands"
	"sufragio/contexts/electoral-core/ballot-service/application/queries"
	"sufragio/contexts/electoral-core/ballot-service/application/workers"
	"sufragio/contexts/electoral-core/ballot-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Relay   workers.OutboxRelay
	Store   *memory.Store
}

type Dependencies struct {
	Voters    ports.VoterReader
	Juntas    ports.JuntaReader
	Elections ports.ElectionReader
	Ballots   ports.BallotRepository
	Tokens    ports.TokenRepository
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Commands: commands.UseCase{
				Voters:    deps.Voters,
				Juntas:    deps.Juntas,
				Elections: deps.Elections,
				Ballots:   deps.Ballots,
				Tokens:    deps.Tokens,
				Clock:     deps.Clock,
				IDGen:     deps.IDGen,
				Logger:    deps.Logger,
			},
			Queries: queries.UseCase{
				Voters:  deps.Voters,
				Juntas:  deps.Juntas,
				Ballots: deps.Ballots,
				Logger:  deps.Logger,
			},
			Logger: deps.Logger,
		},
		Relay: workers.OutboxRelay{
			Outbox:    deps.Outbox,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		},
	}
}

func NewInMemoryModule(publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Voters:    store,
		Juntas:    store,
		Elections: store,
		Ballots:   store,
		Tokens:    store,
		Outbox:    store,
		Publisher: publisher,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
