package juntaservice

import (
	"log/slog"

	httpadapter "sufragio/contexts/electoral-core/junta-service/adapters/http"
	"sufragio/contexts/electoral-core/junta-service/adapters/memory"
	"sufragio/contexts/electoral-core/junta-service/application/commands"
	"sufragio/contexts/electoral-core/junta-service/application/queries"
	"sufragio/contexts/electoral-core/junta-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Juntas     ports.JuntaRepository
	Precincts  ports.PrecinctRepository
	Voters     ports.VoterDirectory
	Candidates ports.CandidateChecker
	Elections  ports.ElectionReader
	Clock      ports.Clock
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Commands: commands.UseCase{
				Juntas:     deps.Juntas,
				Precincts:  deps.Precincts,
				Voters:     deps.Voters,
				Candidates: deps.Candidates,
				Elections:  deps.Elections,
				Clock:      deps.Clock,
				Logger:     deps.Logger,
			},
			Queries: queries.UseCase{
				Juntas:    deps.Juntas,
				Precincts: deps.Precincts,
				Voters:    deps.Voters,
				Logger:    deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Juntas:     store,
		Precincts:  store,
		Voters:     store,
		Candidates: store,
		Elections:  store,
		Clock:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
