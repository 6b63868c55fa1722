package tallyservice

import (
	"log/slog"
	"time"

	httpadapter "sufragio/contexts/electoral-core/tally-service/adapters/http"
	"sufragio/contexts/electoral-core/tally-service/adapters/memory"
	"sufragio/contexts/electoral-core/tally-service/application/queries"
	"sufragio/contexts/electoral-core/tally-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Results   ports.ResultsRepository
	Juntas    ports.JuntaReader
	Roll      ports.RollReader
	Elections ports.ElectionReader
	Cache     ports.ResultsCache
	CacheTTL  time.Duration
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Queries: queries.UseCase{
				Results:   deps.Results,
				Juntas:    deps.Juntas,
				Roll:      deps.Roll,
				Elections: deps.Elections,
				Cache:     deps.Cache,
				CacheTTL:  deps.CacheTTL,
				Logger:    deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Results:   store,
		Juntas:    store,
		Roll:      store,
		Elections: store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
