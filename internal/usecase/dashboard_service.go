package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/oktavandi/fitness-challenge/internal/domain/user"
)

const dashboardTopLimit = 5

// Dashboard is the landing view for an authenticated user: profile,
// standings position, progress summary and the top of the overall
// leaderboard in one payload.
type Dashboard struct {
	Profile    user.User
	Ranking    UserRanking
	Summary    ProgressSummary
	Streaks    Streaks
	TopOverall []LeaderboardEntry
	Recent     []HistoryEntry
}

type DashboardService struct {
	users        *UserService
	leaderboards *LeaderboardService
	progress     *ProgressService
}

func NewDashboardService(users *UserService, leaderboards *LeaderboardService, progress *ProgressService) *DashboardService {
	return &DashboardService{
		users:        users,
		leaderboards: leaderboards,
		progress:     progress,
	}
}

// Build assembles the dashboard. The independent parts are fetched
// concurrently; the first failure cancels the rest.
func (s *DashboardService) Build(ctx context.Context, userID string) (Dashboard, error) {
	ctx, span := startSpan(ctx, "DashboardService.Build", attribute.String("dashboard.user_id", userID))
	var err error
	defer func() { endSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		err = fmt.Errorf("%w: user id is required", ErrInvalidInput)
		return Dashboard{}, err
	}

	var out Dashboard
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		profile, buildErr := s.users.GetProfile(ctx, userID)
		if buildErr != nil {
			return buildErr
		}
		out.Profile = profile
		return nil
	})
	p.Go(func(ctx context.Context) error {
		ranking, buildErr := s.leaderboards.UserRanking(ctx, userID)
		if buildErr != nil {
			return buildErr
		}
		out.Ranking = ranking
		return nil
	})
	p.Go(func(ctx context.Context) error {
		snapshot, buildErr := s.progress.Snapshot(ctx, userID)
		if buildErr != nil {
			return buildErr
		}
		out.Summary = snapshot.Summary
		out.Recent = snapshot.Recent
		return nil
	})
	p.Go(func(ctx context.Context) error {
		streaks, buildErr := s.progress.Streaks(ctx, userID)
		if buildErr != nil {
			return buildErr
		}
		out.Streaks = streaks
		return nil
	})
	p.Go(func(ctx context.Context) error {
		top, buildErr := s.leaderboards.OverallLeaderboard(ctx, dashboardTopLimit)
		if buildErr != nil {
			return buildErr
		}
		out.TopOverall = top
		return nil
	})
	if err = p.Wait(); err != nil {
		return Dashboard{}, err
	}

	return out, nil
}
