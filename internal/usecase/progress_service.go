package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/oktavandi/fitness-challenge/internal/domain/performance"
	"github.com/oktavandi/fitness-challenge/internal/domain/sport"
	"github.com/oktavandi/fitness-challenge/internal/domain/team"
	"github.com/oktavandi/fitness-challenge/internal/domain/user"
)

const recentActivityLimit = 10

type ProgressSummary struct {
	TotalPoints          float64
	TotalActivities      int
	SportsPlayed         int
	ActiveDays           int
	FirstActivity        *time.Time
	LastActivity         *time.Time
	AvgPointsPerActivity float64
	TeamName             *string
}

// DailyPoint is one active day in the rollup. Days without activity are
// omitted; CumulativePoints still accumulates across the gaps.
type DailyPoint struct {
	Date             time.Time
	Points           float64
	Activities       int
	CumulativePoints float64
}

type SportTotals struct {
	SportName   string
	Unit        string
	TotalValue  float64
	AvgValue    float64
	MaxValue    float64
	TotalPoints float64
	Activities  int
}

type ProgressSnapshot struct {
	Summary        ProgressSummary
	Daily          []DailyPoint
	SportBreakdown []SportTotals
	Recent         []HistoryEntry
}

type WeeklyPoint struct {
	ISOYear              int
	ISOWeek              int
	WeekStart            time.Time
	Points               float64
	Activities           int
	AvgPointsPerActivity float64
}

// Streaks describes activity regularity. Consistency is the percentage
// of calendar days between the first and last activity that were
// active, rounded to one decimal.
type Streaks struct {
	CurrentStreak int
	LongestStreak int
	ActiveDays    int
	SpanDays      int
	Consistency   float64
}

type Achievement struct {
	Code        string
	Name        string
	Description string
	Earned      bool
}

type ProgressService struct {
	performanceRepo performance.Repository
	sportRepo       sport.Repository
	userRepo        user.Repository
	teamRepo        team.Repository
	now             func() time.Time
}

func NewProgressService(
	performanceRepo performance.Repository,
	sportRepo sport.Repository,
	userRepo user.Repository,
	teamRepo team.Repository,
) *ProgressService {
	return &ProgressService{
		performanceRepo: performanceRepo,
		sportRepo:       sportRepo,
		userRepo:        userRepo,
		teamRepo:        teamRepo,
		now:             time.Now,
	}
}

// Snapshot assembles the user's full progress view. The summary, daily
// rollup, sport breakdown and recent list are derived from one pass
// over the user's performances; performances and the sport catalog are
// fetched concurrently.
func (s *ProgressService) Snapshot(ctx context.Context, userID string) (ProgressSnapshot, error) {
	ctx, span := startSpan(ctx, "ProgressService.Snapshot", attribute.String("progress.user_id", userID))
	var err error
	defer func() { endSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		err = fmt.Errorf("%w: user id is required", ErrInvalidInput)
		return ProgressSnapshot{}, err
	}

	var (
		performances []performance.Performance
		sports       []sport.Sport
		owner        user.User
		ownerExists  bool
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, listErr := s.performanceRepo.List(ctx, performance.Filter{UserID: userID})
		if listErr != nil {
			return fmt.Errorf("list performances: %w", listErr)
		}
		performances = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, listErr := s.sportRepo.List(ctx)
		if listErr != nil {
			return fmt.Errorf("list sports: %w", listErr)
		}
		sports = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		u, exists, getErr := s.userRepo.GetByID(ctx, userID)
		if getErr != nil {
			return fmt.Errorf("get user: %w", getErr)
		}
		owner, ownerExists = u, exists
		return nil
	})
	if err = p.Wait(); err != nil {
		return ProgressSnapshot{}, err
	}

	sportsByID := make(map[string]sport.Sport, len(sports))
	for _, sp := range sports {
		sportsByID[sp.ID] = sp
	}

	summary := buildSummary(performances)
	if ownerExists && owner.TeamID != nil {
		tm, exists, getErr := s.teamRepo.GetByID(ctx, *owner.TeamID)
		if getErr != nil {
			err = fmt.Errorf("get team: %w", getErr)
			return ProgressSnapshot{}, err
		}
		if exists {
			summary.TeamName = &tm.Name
		}
	}

	return ProgressSnapshot{
		Summary:        summary,
		Daily:          buildDailyRollup(performances),
		SportBreakdown: buildSportBreakdown(performances, sportsByID),
		Recent:         buildRecent(performances, sportsByID, recentActivityLimit),
	}, nil
}

// Weekly rolls the user's performances into ISO weeks over the last
// `weeks` weeks (default 12). Weeks without activity are omitted.
func (s *ProgressService) Weekly(ctx context.Context, userID string, weeks int) ([]WeeklyPoint, error) {
	ctx, span := startSpan(ctx, "ProgressService.Weekly", attribute.String("progress.user_id", userID))
	var err error
	defer func() { endSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		err = fmt.Errorf("%w: user id is required", ErrInvalidInput)
		return nil, err
	}
	if weeks <= 0 {
		weeks = 12
	}

	cutoff := weekStart(normalizeDay(s.now())).AddDate(0, 0, -7*(weeks-1))
	performances, err := s.performanceRepo.List(ctx, performance.Filter{UserID: userID, From: &cutoff})
	if err != nil {
		err = fmt.Errorf("list performances: %w", err)
		return nil, err
	}

	type key struct{ year, week int }
	byWeek := make(map[key]*WeeklyPoint)
	for _, p := range performances {
		day := normalizeDay(p.DateRecorded)
		year, week := day.ISOWeek()
		k := key{year, week}
		wp, ok := byWeek[k]
		if !ok {
			wp = &WeeklyPoint{ISOYear: year, ISOWeek: week, WeekStart: weekStart(day)}
			byWeek[k] = wp
		}
		wp.Points += p.PointsCalculated
		wp.Activities++
	}

	out := make([]WeeklyPoint, 0, len(byWeek))
	for _, wp := range byWeek {
		wp.AvgPointsPerActivity = wp.Points / float64(wp.Activities)
		out = append(out, *wp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart.Before(out[j].WeekStart) })

	return out, nil
}

// Streaks computes calendar-day streaks. A streak is a run of
// consecutive active calendar days; the current streak counts backward
// from the most recent active day to the first gap.
func (s *ProgressService) Streaks(ctx context.Context, userID string) (Streaks, error) {
	ctx, span := startSpan(ctx, "ProgressService.Streaks", attribute.String("progress.user_id", userID))
	var err error
	defer func() { endSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		err = fmt.Errorf("%w: user id is required", ErrInvalidInput)
		return Streaks{}, err
	}

	performances, err := s.performanceRepo.List(ctx, performance.Filter{UserID: userID})
	if err != nil {
		err = fmt.Errorf("list performances: %w", err)
		return Streaks{}, err
	}

	return computeStreaks(performances), nil
}

// Achievements evaluates the fixed badge set against the user's
// lifetime totals.
func (s *ProgressService) Achievements(ctx context.Context, userID string) ([]Achievement, error) {
	ctx, span := startSpan(ctx, "ProgressService.Achievements", attribute.String("progress.user_id", userID))
	var err error
	defer func() { endSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		err = fmt.Errorf("%w: user id is required", ErrInvalidInput)
		return nil, err
	}

	performances, err := s.performanceRepo.List(ctx, performance.Filter{UserID: userID})
	if err != nil {
		err = fmt.Errorf("list performances: %w", err)
		return nil, err
	}

	var totalPoints float64
	sportsPlayed := make(map[string]struct{})
	for _, p := range performances {
		totalPoints += p.PointsCalculated
		sportsPlayed[p.SportID] = struct{}{}
	}
	activities := len(performances)
	sports := len(sportsPlayed)

	return []Achievement{
		{Code: "points_100", Name: "Century Club", Description: "Earn 100 total points", Earned: totalPoints >= 100},
		{Code: "points_500", Name: "Point Machine", Description: "Earn 500 total points", Earned: totalPoints >= 500},
		{Code: "points_1000", Name: "Point Legend", Description: "Earn 1000 total points", Earned: totalPoints >= 1000},
		{Code: "activities_5", Name: "Getting Started", Description: "Record 5 activities", Earned: activities >= 5},
		{Code: "activities_20", Name: "Regular", Description: "Record 20 activities", Earned: activities >= 20},
		{Code: "activities_50", Name: "Dedicated", Description: "Record 50 activities", Earned: activities >= 50},
		{Code: "sports_3", Name: "Explorer", Description: "Try 3 different sports", Earned: sports >= 3},
		{Code: "sports_5", Name: "All-Rounder", Description: "Try 5 different sports", Earned: sports >= 5},
	}, nil
}

func buildSummary(performances []performance.Performance) ProgressSummary {
	if len(performances) == 0 {
		return ProgressSummary{}
	}

	var summary ProgressSummary
	days := make(map[time.Time]struct{})
	sports := make(map[string]struct{})
	var first, last time.Time
	for i, p := range performances {
		summary.TotalPoints += p.PointsCalculated
		summary.TotalActivities++
		days[normalizeDay(p.DateRecorded)] = struct{}{}
		sports[p.SportID] = struct{}{}
		if i == 0 || p.DateRecorded.Before(first) {
			first = p.DateRecorded
		}
		if i == 0 || p.DateRecorded.After(last) {
			last = p.DateRecorded
		}
	}
	summary.SportsPlayed = len(sports)
	summary.ActiveDays = len(days)
	summary.FirstActivity = &first
	summary.LastActivity = &last
	summary.AvgPointsPerActivity = summary.TotalPoints / float64(summary.TotalActivities)

	return summary
}

func buildDailyRollup(performances []performance.Performance) []DailyPoint {
	byDay := make(map[time.Time]*DailyPoint)
	for _, p := range performances {
		day := normalizeDay(p.DateRecorded)
		dp, ok := byDay[day]
		if !ok {
			dp = &DailyPoint{Date: day}
			byDay[day] = dp
		}
		dp.Points += p.PointsCalculated
		dp.Activities++
	}

	out := make([]DailyPoint, 0, len(byDay))
	for _, dp := range byDay {
		out = append(out, *dp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	var cumulative float64
	for i := range out {
		cumulative += out[i].Points
		out[i].CumulativePoints = cumulative
	}

	return out
}

func buildSportBreakdown(performances []performance.Performance, sportsByID map[string]sport.Sport) []SportTotals {
	bySport := make(map[string]*SportTotals)
	for _, p := range performances {
		st, ok := bySport[p.SportID]
		if !ok {
			sp := sportsByID[p.SportID]
			st = &SportTotals{SportName: sp.Name, Unit: sp.Unit}
			bySport[p.SportID] = st
		}
		st.TotalValue += p.Value
		if p.Value > st.MaxValue {
			st.MaxValue = p.Value
		}
		st.TotalPoints += p.PointsCalculated
		st.Activities++
	}

	out := make([]SportTotals, 0, len(bySport))
	for _, st := range bySport {
		st.AvgValue = st.TotalValue / float64(st.Activities)
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		return out[i].SportName < out[j].SportName
	})

	return out
}

func buildRecent(performances []performance.Performance, sportsByID map[string]sport.Sport, limit int) []HistoryEntry {
	sorted := make([]performance.Performance, len(performances))
	copy(sorted, performances)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].DateRecorded.Equal(sorted[j].DateRecorded) {
			return sorted[i].DateRecorded.After(sorted[j].DateRecorded)
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]HistoryEntry, 0, len(sorted))
	for _, p := range sorted {
		sp := sportsByID[p.SportID]
		out = append(out, HistoryEntry{
			ID:        p.ID,
			SportName: sp.Name,
			Unit:      sp.Unit,
			Value:     p.Value,
			Points:    p.PointsCalculated,
			Date:      p.DateRecorded,
			Notes:     p.Notes,
		})
	}

	return out
}

func computeStreaks(performances []performance.Performance) Streaks {
	if len(performances) == 0 {
		return Streaks{}
	}

	daySet := make(map[time.Time]struct{})
	for _, p := range performances {
		daySet[normalizeDay(p.DateRecorded)] = struct{}{}
	}
	days := make([]time.Time, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	// The current streak is anchored at the most recent active day.
	current := 1
	for i := len(days) - 2; i >= 0; i-- {
		if days[i+1].Sub(days[i]) != 24*time.Hour {
			break
		}
		current++
	}

	spanDays := int(days[len(days)-1].Sub(days[0]).Hours()/24) + 1
	consistency := float64(len(days)) / float64(spanDays) * 100

	return Streaks{
		CurrentStreak: current,
		LongestStreak: longest,
		ActiveDays:    len(days),
		SpanDays:      spanDays,
		Consistency:   math.Round(consistency*10) / 10,
	}
}

// weekStart returns the Monday of the ISO week containing day.
func weekStart(day time.Time) time.Time {
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, -(weekday - 1))
}
