package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oktavandi/fitness-challenge/internal/domain/performance"
)

func TestPerformanceService_Record(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	svc := NewPerformanceService(f.performances, f.sports, &stubIDGenerator{prefix: "perf"})

	recorded := day(t, "2026-08-15")
	svc.now = func() time.Time { return recorded.Add(14 * time.Hour) }

	when := recorded.Add(9 * time.Hour)
	got, err := svc.Record(context.Background(), "u1", RecordPerformanceInput{
		SportName: "Running",
		Value:     5,
		Date:      &when,
		Notes:     "  morning run  ",
	})
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}

	if got.ID != "perf-1" {
		t.Fatalf("unexpected id %q", got.ID)
	}
	if got.PointsCalculated != 50 {
		t.Fatalf("expected 50 points, got %v", got.PointsCalculated)
	}
	if !got.DateRecorded.Equal(recorded) {
		t.Fatalf("expected date normalized to midnight, got %v", got.DateRecorded)
	}
	if got.Notes != "morning run" {
		t.Fatalf("expected trimmed notes, got %q", got.Notes)
	}

	stored, err := f.performances.List(context.Background(), performance.Filter{UserID: "u1"})
	if err != nil {
		t.Fatalf("list performances: %v", err)
	}
	if len(stored) != 1 || stored[0].SportID != "sport-running" {
		t.Fatalf("unexpected stored performance: %+v", stored)
	}
}

func TestPerformanceService_Record_DefaultsToToday(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	svc := NewPerformanceService(f.performances, f.sports, &stubIDGenerator{prefix: "perf"})
	svc.now = func() time.Time { return day(t, "2026-08-15").Add(18 * time.Hour) }

	got, err := svc.Record(context.Background(), "u1", RecordPerformanceInput{SportName: "Walking", Value: 2})
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if !got.DateRecorded.Equal(day(t, "2026-08-15")) {
		t.Fatalf("expected today's midnight, got %v", got.DateRecorded)
	}
	if got.PointsCalculated != 10 {
		t.Fatalf("expected 10 points, got %v", got.PointsCalculated)
	}
}

func TestPerformanceService_Record_ZeroValue(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	svc := NewPerformanceService(f.performances, f.sports, &stubIDGenerator{prefix: "perf"})
	svc.now = func() time.Time { return day(t, "2026-08-15") }

	got, err := svc.Record(context.Background(), "u1", RecordPerformanceInput{SportName: "Running", Value: 0})
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if got.Value != 0 || got.PointsCalculated != 0 {
		t.Fatalf("expected zero-value activity with zero points, got %+v", got)
	}
}

func TestPerformanceService_Record_Validation(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	svc := NewPerformanceService(f.performances, f.sports, &stubIDGenerator{prefix: "perf"})
	svc.now = func() time.Time { return day(t, "2026-08-15") }
	ctx := context.Background()

	_, err := svc.Record(ctx, "u1", RecordPerformanceInput{SportName: "Quidditch", Value: 1})
	if !errors.Is(err, ErrUnknownSport) {
		t.Fatalf("expected ErrUnknownSport, got %v", err)
	}

	_, err = svc.Record(ctx, "u1", RecordPerformanceInput{SportName: "Running", Value: -3})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative value, got %v", err)
	}

	future := day(t, "2026-08-16")
	_, err = svc.Record(ctx, "u1", RecordPerformanceInput{SportName: "Running", Value: 1, Date: &future})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for future date, got %v", err)
	}

	_, err = svc.Record(ctx, "", RecordPerformanceInput{SportName: "Running", Value: 1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty user, got %v", err)
	}
}

func TestPerformanceService_History(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	f.addPerformance(t, "u1", "Running", 1, day(t, "2026-08-01"))
	f.addPerformance(t, "u1", "Cycling", 10, day(t, "2026-08-02"))
	f.addPerformance(t, "u1", "Running", 3, day(t, "2026-08-03"))
	f.addPerformance(t, "u2", "Running", 7, day(t, "2026-08-03"))

	svc := NewPerformanceService(f.performances, f.sports, &stubIDGenerator{prefix: "perf"})
	ctx := context.Background()

	got, err := svc.History(ctx, "u1", HistoryFilter{})
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if !got[0].Date.Equal(day(t, "2026-08-03")) || got[0].SportName != "Running" || got[0].Points != 30 {
		t.Fatalf("unexpected newest entry: %+v", got[0])
	}
	if got[2].SportName != "Running" || got[2].Value != 1 {
		t.Fatalf("unexpected oldest entry: %+v", got[2])
	}

	got, err = svc.History(ctx, "u1", HistoryFilter{SportName: "Cycling"})
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(got) != 1 || got[0].Unit != "km" || got[0].Points != 30 {
		t.Fatalf("unexpected sport-filtered history: %+v", got)
	}

	from := day(t, "2026-08-02")
	to := day(t, "2026-08-02")
	got, err = svc.History(ctx, "u1", HistoryFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(got) != 1 || got[0].SportName != "Cycling" {
		t.Fatalf("unexpected range-filtered history: %+v", got)
	}

	got, err = svc.History(ctx, "u1", HistoryFilter{Limit: 2})
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(got))
	}
}

func TestPerformanceService_History_UnknownSport(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	svc := NewPerformanceService(f.performances, f.sports, &stubIDGenerator{prefix: "perf"})

	_, err := svc.History(context.Background(), "u1", HistoryFilter{SportName: "Quidditch"})
	if !errors.Is(err, ErrUnknownSport) {
		t.Fatalf("expected ErrUnknownSport, got %v", err)
	}
}
