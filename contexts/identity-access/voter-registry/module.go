package voterregistry

import (
	"log/slog"

	httpadapter "sufragio/contexts/identity-access/voter-registry/adapters/http"
	"sufragio/contexts/identity-access/voter-registry/adapters/memory"
	"sufragio/contexts/identity-access/voter-registry/application"
	"sufragio/contexts/identity-access/voter-registry/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Voters     ports.VoterRepository
	Juntas     ports.JuntaChecker
	Candidates ports.CandidateChecker
	Clock      ports.Clock
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Voters:     deps.Voters,
		Juntas:     deps.Juntas,
		Candidates: deps.Candidates,
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
		Voters:     store,
		Juntas:     store,
		Candidates: store,
		Clock:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
