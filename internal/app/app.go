package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/oktavandi/fitness-challenge/internal/config"
	"github.com/oktavandi/fitness-challenge/internal/domain/performance"
	"github.com/oktavandi/fitness-challenge/internal/domain/sport"
	"github.com/oktavandi/fitness-challenge/internal/domain/team"
	"github.com/oktavandi/fitness-challenge/internal/domain/user"
	"github.com/oktavandi/fitness-challenge/internal/infrastructure/account/passport"
	"github.com/oktavandi/fitness-challenge/internal/infrastructure/repository/memory"
	"github.com/oktavandi/fitness-challenge/internal/infrastructure/repository/postgres"
	"github.com/oktavandi/fitness-challenge/internal/interfaces/httpapi"
	"github.com/oktavandi/fitness-challenge/internal/platform/cache"
	idgen "github.com/oktavandi/fitness-challenge/internal/platform/id"
	"github.com/oktavandi/fitness-challenge/internal/platform/logging"
	"github.com/oktavandi/fitness-challenge/internal/platform/resilience"
	"github.com/oktavandi/fitness-challenge/internal/usecase"
)

type repositories struct {
	users        user.Repository
	teams        team.Repository
	sports       sport.Repository
	performances performance.Repository
}

// NewHTTPServer wires repositories, services and the router into a
// ready-to-run server. With DB_URL set it uses postgres; otherwise it
// falls back to seeded in-memory stores for local development.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	store := cache.NewStore(cfg.CacheTTL)

	userSvc := usecase.NewUserService(repos.users, idgen.NewPrefixedGenerator("usr"))
	teamSvc := usecase.NewTeamService(repos.teams, repos.users, idgen.NewPrefixedGenerator("team"))
	sportSvc := usecase.NewSportService(repos.sports)
	performanceSvc := usecase.NewPerformanceService(repos.performances, repos.sports, idgen.NewPrefixedGenerator("perf"))
	leaderboardSvc := usecase.NewLeaderboardService(repos.users, repos.teams, repos.sports, repos.performances, store)
	progressSvc := usecase.NewProgressService(repos.performances, repos.sports, repos.users, repos.teams)
	dashboardSvc := usecase.NewDashboardService(userSvc, leaderboardSvc, progressSvc)

	if cfg.WarmupEnabled {
		warmupSvc := usecase.NewWarmupService(leaderboardSvc, sportSvc, cfg.WarmupWorkers)
		go func() {
			if err := warmupSvc.WarmLeaderboards(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("leaderboard warmup failed", "error", err)
			}
		}()
	}

	passportClient := passport.NewClient(
		&http.Client{Timeout: cfg.PassportTimeout},
		cfg.PassportBaseURL,
		cfg.PassportIntrospectPath,
		resilience.CircuitBreakerConfig{
			FailureThreshold: cfg.PassportCircuitFailureCount,
			OpenTimeout:      cfg.PassportCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.PassportCircuitHalfOpenMaxReq,
		},
		logger,
	)

	handler := httpapi.NewHandler(
		userSvc, teamSvc, sportSvc, performanceSvc,
		leaderboardSvc, progressSvc, dashboardSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, passportClient, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.DBURL == "" {
		logger.Info("DB_URL not set, using in-memory repositories")

		sportRepo := memory.NewSportRepository()
		if err := memory.SeedSports(ctx, sportRepo); err != nil {
			return repositories{}, fmt.Errorf("seed sports: %w", err)
		}

		return repositories{
			users:        memory.NewUserRepository(),
			teams:        memory.NewTeamRepository(),
			sports:       sportRepo,
			performances: memory.NewPerformanceRepository(),
		}, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return repositories{}, err
	}

	sportRepo := postgres.NewSportRepository(db)
	if err := postgres.SeedSports(ctx, sportRepo); err != nil {
		return repositories{}, fmt.Errorf("seed sports: %w", err)
	}
	logger.Info("connected to postgres")

	return repositories{
		users:        postgres.NewUserRepository(db),
		teams:        postgres.NewTeamRepository(db),
		sports:       sportRepo,
		performances: postgres.NewPerformanceRepository(db),
	}, nil
}
