package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talent-match/internal/config"
	"talent-match/internal/database"
	dbpostgres "talent-match/internal/database/postgres"
	"talent-match/internal/infrastructure/cache"
	"talent-match/internal/infrastructure/rag"
	"talent-match/internal/logger"
	"talent-match/internal/metrics"
	"talent-match/internal/pkg/jwt"
	"talent-match/internal/repository"
	"talent-match/internal/usecase"
	"talent-match/internal/ws"

	"go.uber.org/zap"
)

var ErrDatabaseNotConfigured = errors.New("database not configured")

type Usecases struct {
	Auth         *usecase.Auth
	Users        *usecase.Users
	Jobs         *usecase.Jobs
	CVs          *usecase.CVs
	Requirements *usecase.Requirements
	Matching     *usecase.Matching
}

type Container struct {
	Config  config.Config
	Logger  *zap.Logger
	DB      database.DB
	Cache   *cache.Redis
	RAG     *rag.Client
	Metrics *metrics.Registry
	Hub     *ws.Hub
	JWT     *jwt.HMACService

	Usecases Usecases
}

func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if !cfg.Database.Enabled() {
		return nil, ErrDatabaseNotConfigured
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	c := &Container{
		Config:  cfg,
		Logger:  log,
		DB:      db,
		Cache:   cache.NewRedis(cfg.Redis, logger.Named(log, "cache")),
		Metrics: metrics.New(),
		Hub:     ws.NewHub(logger.Named(log, "ws")),
		JWT:     jwt.NewHMACService(cfg.JWT),
	}
	if cfg.RAG.Enabled() {
		c.RAG = rag.NewClient(cfg.RAG, log)
	} else {
		log.Info("remote matching disabled, using local scorer only")
	}

	c.Usecases = buildUsecases(c)
	return c, nil
}

func buildUsecases(c *Container) Usecases {
	jobs := repository.NewPostgresJobRepository(c.DB)
	cvs := repository.NewPostgresCVRepository(c.DB)
	reqs := repository.NewPostgresRequirementRepository(c.DB)
	users := repository.NewPostgresUserRepository(c.DB)

	var remote usecase.RemoteMatcher
	if c.RAG != nil {
		remote = c.RAG
	}

	return Usecases{
		Auth:         usecase.NewAuthUsecase(users, c.JWT),
		Users:        usecase.NewUserUsecase(users),
		Jobs:         usecase.NewJobUsecase(jobs, c.Cache, c.Hub, logger.Named(c.Logger, "jobs")),
		CVs:          usecase.NewCVUsecase(cvs, c.Cache, c.Hub, logger.Named(c.Logger, "cvs")),
		Requirements: usecase.NewRequirementUsecase(reqs, c.Cache, c.Hub, logger.Named(c.Logger, "requirements")),
		Matching: usecase.NewMatchingUsecase(usecase.MatchingDeps{
			Jobs:         jobs,
			CVs:          cvs,
			Requirements: reqs,
			Remote:       remote,
			Cache:        c.Cache,
			Metrics:      c.Metrics,
			Logger:       logger.Named(c.Logger, "matching"),
			PoolSize:     c.Config.Match.PoolSize,
			CacheTTL:     c.Config.Redis.TTL,
		}),
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
