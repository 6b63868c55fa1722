package electionservice

import (
	"log/slog"

	httpadapter "sufragio/contexts/electoral-core/election-service/adapters/http"
	"sufragio/contexts/electoral-core/election-service/adapters/memory"
	"sufragio/contexts/electoral-core/election-service/application"
	"sufragio/contexts/electoral-core/election-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Elections  ports.ElectionRepository
	Lists      ports.ListRepository
	Candidates ports.CandidateRepository
	Voters     ports.VoterReader
	Clock      ports.Clock
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Elections:  deps.Elections,
		Lists:      deps.Lists,
		Candidates: deps.Candidates,
		Voters:     deps.Voters,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Elections:  store,
		Lists:      store,
		Candidates: store,
		Voters:     store,
		Clock:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
