package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestProgressService_Snapshot(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	t1 := "t1"
	f.addTeam(t, "t1", "Trail Mix")
	f.addUser(t, "u1", "user-u1", &t1)
	f.addPerformance(t, "u1", "Running", 1, day(t, "2026-08-01"))
	f.addPerformance(t, "u1", "Running", 2, day(t, "2026-08-02"))
	f.addPerformance(t, "u1", "Walking", 6, day(t, "2026-08-03"))

	svc := NewProgressService(f.performances, f.sports, f.users, f.teams)
	got, err := svc.Snapshot(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}

	if got.Summary.TotalPoints != 60 || got.Summary.TotalActivities != 3 {
		t.Fatalf("unexpected summary totals: %+v", got.Summary)
	}
	if got.Summary.SportsPlayed != 2 || got.Summary.ActiveDays != 3 {
		t.Fatalf("unexpected summary counts: %+v", got.Summary)
	}
	if got.Summary.AvgPointsPerActivity != 20 {
		t.Fatalf("expected avg 20, got %v", got.Summary.AvgPointsPerActivity)
	}
	if got.Summary.FirstActivity == nil || !got.Summary.FirstActivity.Equal(day(t, "2026-08-01")) {
		t.Fatalf("unexpected first activity: %v", got.Summary.FirstActivity)
	}
	if got.Summary.LastActivity == nil || !got.Summary.LastActivity.Equal(day(t, "2026-08-03")) {
		t.Fatalf("unexpected last activity: %v", got.Summary.LastActivity)
	}
	if got.Summary.TeamName == nil || *got.Summary.TeamName != "Trail Mix" {
		t.Fatalf("unexpected team name: %v", got.Summary.TeamName)
	}

	if len(got.Daily) != 3 {
		t.Fatalf("expected 3 daily points, got %d", len(got.Daily))
	}
	wantCumulative := []float64{10, 30, 60}
	for i, want := range wantCumulative {
		if got.Daily[i].CumulativePoints != want {
			t.Fatalf("daily %d: expected cumulative %v, got %v", i, want, got.Daily[i].CumulativePoints)
		}
	}

	if len(got.SportBreakdown) != 2 {
		t.Fatalf("expected 2 sports in breakdown, got %d", len(got.SportBreakdown))
	}
	// Both sports total 30 points, so the tie falls back to name order.
	if got.SportBreakdown[0].SportName != "Running" || got.SportBreakdown[0].TotalValue != 3 || got.SportBreakdown[0].Activities != 2 {
		t.Fatalf("unexpected first breakdown entry: %+v", got.SportBreakdown[0])
	}
	if got.SportBreakdown[0].AvgValue != 1.5 || got.SportBreakdown[0].MaxValue != 2 {
		t.Fatalf("unexpected running value aggregates: %+v", got.SportBreakdown[0])
	}
	if got.SportBreakdown[1].SportName != "Walking" || got.SportBreakdown[1].TotalPoints != 30 {
		t.Fatalf("unexpected second breakdown entry: %+v", got.SportBreakdown[1])
	}
	if got.SportBreakdown[1].AvgValue != 6 || got.SportBreakdown[1].MaxValue != 6 {
		t.Fatalf("unexpected walking value aggregates: %+v", got.SportBreakdown[1])
	}

	if len(got.Recent) != 3 {
		t.Fatalf("expected 3 recent entries, got %d", len(got.Recent))
	}
	if got.Recent[0].SportName != "Walking" || !got.Recent[0].Date.Equal(day(t, "2026-08-03")) {
		t.Fatalf("unexpected most recent entry: %+v", got.Recent[0])
	}
}

func TestProgressService_Snapshot_EmptyHistory(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	svc := NewProgressService(f.performances, f.sports, f.users, f.teams)

	got, err := svc.Snapshot(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	if got.Summary.TotalActivities != 0 || got.Summary.FirstActivity != nil {
		t.Fatalf("expected empty summary, got %+v", got.Summary)
	}
	if len(got.Daily) != 0 || len(got.Recent) != 0 {
		t.Fatalf("expected empty rollups, got %+v", got)
	}
}

func TestProgressService_Weekly(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	f.addPerformance(t, "u1", "Walking", 4, day(t, "2026-08-11"))
	f.addPerformance(t, "u1", "Running", 2, day(t, "2026-08-18"))
	f.addPerformance(t, "u1", "Running", 1, day(t, "2026-08-19"))
	// Old activity outside the window.
	f.addPerformance(t, "u1", "Running", 9, day(t, "2026-01-05"))

	svc := NewProgressService(f.performances, f.sports, f.users, f.teams)
	svc.now = func() time.Time { return day(t, "2026-08-20") }

	got, err := svc.Weekly(context.Background(), "u1", 2)
	if err != nil {
		t.Fatalf("Weekly error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 weekly points, got %d", len(got))
	}
	if !got[0].WeekStart.Equal(day(t, "2026-08-10")) || got[0].Points != 20 || got[0].Activities != 1 {
		t.Fatalf("unexpected first week: %+v", got[0])
	}
	if !got[1].WeekStart.Equal(day(t, "2026-08-17")) || got[1].Points != 30 || got[1].Activities != 2 {
		t.Fatalf("unexpected second week: %+v", got[1])
	}
	if got[0].AvgPointsPerActivity != 20 || got[1].AvgPointsPerActivity != 15 {
		t.Fatalf("unexpected weekly averages: %+v", got)
	}
	if got[0].ISOYear != 2026 || got[1].ISOWeek != got[0].ISOWeek+1 {
		t.Fatalf("unexpected ISO labels: %+v", got)
	}
}

func TestProgressService_Streaks(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	f.addPerformance(t, "u1", "Running", 1, day(t, "2026-08-16"))
	f.addPerformance(t, "u1", "Running", 1, day(t, "2026-08-17"))
	f.addPerformance(t, "u1", "Running", 1, day(t, "2026-08-19"))
	f.addPerformance(t, "u1", "Walking", 2, day(t, "2026-08-20"))

	svc := NewProgressService(f.performances, f.sports, f.users, f.teams)

	got, err := svc.Streaks(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Streaks error: %v", err)
	}
	want := Streaks{CurrentStreak: 2, LongestStreak: 2, ActiveDays: 4, SpanDays: 5, Consistency: 80.0}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestProgressService_Streaks_CurrentCountsFromLatestDay(t *testing.T) {
	t.Parallel()

	// The current streak ends at the latest active day, however long ago
	// that was.
	f := newFixtures(t)
	f.addPerformance(t, "u1", "Running", 1, day(t, "2026-08-01"))
	f.addPerformance(t, "u1", "Running", 1, day(t, "2026-08-02"))
	f.addPerformance(t, "u1", "Running", 1, day(t, "2026-08-03"))

	svc := NewProgressService(f.performances, f.sports, f.users, f.teams)

	got, err := svc.Streaks(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Streaks error: %v", err)
	}
	if got.CurrentStreak != 3 {
		t.Fatalf("expected current streak 3, got %d", got.CurrentStreak)
	}
	if got.LongestStreak != 3 {
		t.Fatalf("expected longest streak 3, got %d", got.LongestStreak)
	}
}

func TestProgressService_Streaks_CurrentResetByGap(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	f.addPerformance(t, "u1", "Running", 1, day(t, "2026-08-01"))
	f.addPerformance(t, "u1", "Running", 1, day(t, "2026-08-02"))
	f.addPerformance(t, "u1", "Running", 1, day(t, "2026-08-03"))
	f.addPerformance(t, "u1", "Running", 1, day(t, "2026-08-10"))

	svc := NewProgressService(f.performances, f.sports, f.users, f.teams)

	got, err := svc.Streaks(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Streaks error: %v", err)
	}
	if got.CurrentStreak != 1 {
		t.Fatalf("expected current streak 1 after the gap, got %d", got.CurrentStreak)
	}
	if got.LongestStreak != 3 {
		t.Fatalf("expected longest streak 3, got %d", got.LongestStreak)
	}
}

func TestProgressService_Streaks_NoHistory(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	svc := NewProgressService(f.performances, f.sports, f.users, f.teams)

	got, err := svc.Streaks(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Streaks error: %v", err)
	}
	if got != (Streaks{}) {
		t.Fatalf("expected zero streaks, got %+v", got)
	}
}

func TestProgressService_Achievements(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	for i := 1; i <= 5; i++ {
		f.addPerformance(t, "u1", "Running", 10, day(t, fmt.Sprintf("2026-08-%02d", i)))
	}
	f.addPerformance(t, "u1", "Walking", 2, day(t, "2026-08-10"))
	f.addPerformance(t, "u1", "Cycling", 1, day(t, "2026-08-11"))

	svc := NewProgressService(f.performances, f.sports, f.users, f.teams)
	got, err := svc.Achievements(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Achievements error: %v", err)
	}

	// 513 points, 7 activities, 3 sports.
	wantEarned := map[string]bool{
		"points_100":    true,
		"points_500":    true,
		"points_1000":   false,
		"activities_5":  true,
		"activities_20": false,
		"activities_50": false,
		"sports_3":      true,
		"sports_5":      false,
	}
	if len(got) != len(wantEarned) {
		t.Fatalf("expected %d achievements, got %d", len(wantEarned), len(got))
	}
	for _, a := range got {
		want, ok := wantEarned[a.Code]
		if !ok {
			t.Fatalf("unexpected achievement code %q", a.Code)
		}
		if a.Earned != want {
			t.Fatalf("achievement %s: expected earned=%t, got %t", a.Code, want, a.Earned)
		}
	}
}

func TestProgressService_RejectsEmptyUser(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	svc := NewProgressService(f.performances, f.sports, f.users, f.teams)
	ctx := context.Background()

	if _, err := svc.Snapshot(ctx, " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Snapshot: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Weekly(ctx, "", 4); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Weekly: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Streaks(ctx, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Streaks: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Achievements(ctx, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Achievements: expected ErrInvalidInput, got %v", err)
	}
}
