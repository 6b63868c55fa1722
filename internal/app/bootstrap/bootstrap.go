package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	ballotservice "sufragio/contexts/electoral-core/ballot-service"
	ballotpostgres "sufragio/contexts/electoral-core/ballot-service/adapters/postgres"
	ballotworkers "sufragio/contexts/electoral-core/ballot-service/application/workers"
	electionservice "sufragio/contexts/electoral-core/election-service"
	electionpostgres "sufragio/contexts/electoral-core/election-service/adapters/postgres"
	juntaservice "sufragio/contexts/electoral-core/junta-service"
	juntapostgres "sufragio/contexts/electoral-core/junta-service/adapters/postgres"
	tallyservice "sufragio/contexts/electoral-core/tally-service"
	tallypostgres "sufragio/contexts/electoral-core/tally-service/adapters/postgres"
	tallyredis "sufragio/contexts/electoral-core/tally-service/adapters/redis"
	voterregistry "sufragio/contexts/identity-access/voter-registry"
	voterpostgres "sufragio/contexts/identity-access/voter-registry/adapters/postgres"
	"sufragio/internal/platform/cache"
	"sufragio/internal/platform/config"
	"sufragio/internal/platform/db"
	"sufragio/internal/platform/httpserver"
	"sufragio/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	redis    *cache.Redis
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  ballotworkers.OutboxRelay
	relayEnabled bool
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	electionRepo := electionpostgres.NewRepository(pg.DB, logger)
	electionModule := electionservice.NewModule(electionservice.Dependencies{
		Elections:  electionRepo,
		Lists:      electionRepo,
		Candidates: electionRepo,
		Voters:     electionRepo,
		Clock:      electionpostgres.SystemClock{},
		Logger:     logger,
	})

	juntaRepo := juntapostgres.NewRepository(pg.DB, logger)
	juntaModule := juntaservice.NewModule(juntaservice.Dependencies{
		Juntas:     juntaRepo,
		Precincts:  juntaRepo,
		Voters:     juntaRepo,
		Candidates: juntaRepo,
		Elections:  juntaRepo,
		Clock:      juntapostgres.SystemClock{},
		Logger:     logger,
	})

	bus := messaging.NewBus(logger)
	ballotRepo := ballotpostgres.NewRepository(pg.DB, logger)
	ballotModule := ballotservice.NewModule(ballotservice.Dependencies{
		Voters:    ballotRepo,
		Juntas:    ballotRepo,
		Elections: ballotRepo,
		Ballots:   ballotRepo,
		Tokens:    ballotRepo,
		Outbox:    ballotRepo,
		Publisher: bus,
		Clock:     ballotpostgres.SystemClock{},
		IDGen:     ballotpostgres.UUIDGenerator{},
		Logger:    logger,
	})

	var redisConn *cache.Redis
	tallyRepo := tallypostgres.NewRepository(pg.DB, logger)
	tallyDeps := tallyservice.Dependencies{
		Results:   tallyRepo,
		Juntas:    tallyRepo,
		Roll:      tallyRepo,
		Elections: tallyRepo,
		CacheTTL:  15 * time.Second,
		Logger:    logger,
	}
	if cfg.EnableResultsCache && cfg.RedisAddr != "" {
		redisConn, err = cache.Connect(cfg.RedisAddr)
		if err != nil {
			_ = pg.Close()
			return nil, err
		}
		tallyDeps.Cache = tallyredis.NewCache(redisConn.Client)
	}
	tallyModule := tallyservice.NewModule(tallyDeps)

	voterRepo := voterpostgres.NewRepository(pg.DB, logger)
	voterModule := voterregistry.NewModule(voterregistry.Dependencies{
		Voters:     voterRepo,
		Juntas:     voterRepo,
		Candidates: voterRepo,
		Clock:      voterpostgres.SystemClock{},
		Logger:     logger,
	})

	server := httpserver.New(
		electionModule,
		juntaModule,
		ballotModule,
		tallyModule,
		voterModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		redis:    redisConn,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)
	ballotRepo := ballotpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		outboxRelay: ballotworkers.OutboxRelay{
			Outbox:    ballotRepo,
			Publisher: bus,
			Clock:     ballotpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		relayEnabled: cfg.EnableBallotOutboxRelay,
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if !w.relayEnabled {
		w.logger.Info("ballot outbox relay disabled",
			"event", "bootstrap_worker_relay_disabled",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
