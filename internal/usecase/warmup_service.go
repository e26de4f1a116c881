package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/oktavandi/fitness-challenge/internal/platform/logging"
)

// WarmupService precomputes the cached leaderboards so the first
// requests after startup do not pay the aggregation cost. Failures are
// logged and skipped; warmup never blocks serving.
type WarmupService struct {
	leaderboards *LeaderboardService
	sports       *SportService
	poolSize     int
}

func NewWarmupService(leaderboards *LeaderboardService, sports *SportService, poolSize int) *WarmupService {
	if poolSize <= 0 {
		poolSize = 4
	}
	return &WarmupService{
		leaderboards: leaderboards,
		sports:       sports,
		poolSize:     poolSize,
	}
}

func (s *WarmupService) WarmLeaderboards(ctx context.Context) error {
	ctx, span := startSpan(ctx, "WarmupService.WarmLeaderboards")
	var err error
	defer func() { endSpan(span, err) }()

	sports, err := s.sports.ListSports(ctx)
	if err != nil {
		err = fmt.Errorf("list sports: %w", err)
		return err
	}

	tasks := []func(context.Context) error{
		func(ctx context.Context) error {
			_, warmErr := s.leaderboards.OverallLeaderboard(ctx, 0)
			return warmErr
		},
		func(ctx context.Context) error {
			_, warmErr := s.leaderboards.TeamLeaderboard(ctx, 0)
			return warmErr
		},
	}
	for _, dimension := range []string{DimensionGender, DimensionAgeGroup, DimensionLocation} {
		dimension := dimension
		tasks = append(tasks, func(ctx context.Context) error {
			_, warmErr := s.leaderboards.DemographicLeaderboard(ctx, dimension)
			return warmErr
		})
	}
	for _, sp := range sports {
		name := sp.Name
		tasks = append(tasks, func(ctx context.Context) error {
			_, warmErr := s.leaderboards.SportLeaderboard(ctx, name, 0)
			return warmErr
		})
	}

	workers, err := ants.NewPool(s.poolSize)
	if err != nil {
		err = fmt.Errorf("create worker pool: %w", err)
		return err
	}
	defer workers.Release()

	var wg sync.WaitGroup
	for _, task := range tasks {
		task := task
		wg.Add(1)
		if submitErr := workers.Submit(func() {
			defer wg.Done()
			if warmErr := task(ctx); warmErr != nil {
				logging.Default().WarnContext(ctx, "leaderboard warmup task failed", "error", warmErr)
			}
		}); submitErr != nil {
			wg.Done()
			logging.Default().WarnContext(ctx, "leaderboard warmup submit failed", "error", submitErr)
		}
	}
	wg.Wait()

	return nil
}
