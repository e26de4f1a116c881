package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/oktavandi/fitness-challenge/internal/domain/performance"
	"github.com/oktavandi/fitness-challenge/internal/domain/sport"
	"github.com/oktavandi/fitness-challenge/internal/platform/id"
)

type RecordPerformanceInput struct {
	SportName string
	Value     float64
	Date      *time.Time
	Notes     string
}

type HistoryFilter struct {
	SportName string
	From      *time.Time
	To        *time.Time
	Limit     int
}

// HistoryEntry is a performance joined with its sport's display fields.
type HistoryEntry struct {
	ID        string
	SportName string
	Unit      string
	Value     float64
	Points    float64
	Date      time.Time
	Notes     string
}

type PerformanceService struct {
	performanceRepo performance.Repository
	sportRepo       sport.Repository
	idGen           id.Generator
	now             func() time.Time
}

func NewPerformanceService(performanceRepo performance.Repository, sportRepo sport.Repository, idGen id.Generator) *PerformanceService {
	return &PerformanceService{
		performanceRepo: performanceRepo,
		sportRepo:       sportRepo,
		idGen:           idGen,
		now:             time.Now,
	}
}

// Record stores one activity. Points are computed here from the sport's
// factor and frozen on the row; the recorded date is normalized to UTC
// midnight so daily rollups bucket consistently.
func (s *PerformanceService) Record(ctx context.Context, userID string, input RecordPerformanceInput) (performance.Performance, error) {
	ctx, span := startSpan(ctx, "PerformanceService.Record")
	var err error
	defer func() { endSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	input.SportName = strings.TrimSpace(input.SportName)
	if userID == "" {
		err = fmt.Errorf("%w: user id is required", ErrInvalidInput)
		return performance.Performance{}, err
	}
	if input.SportName == "" {
		err = fmt.Errorf("%w: sport name is required", ErrInvalidInput)
		return performance.Performance{}, err
	}
	if input.Value < 0 {
		err = fmt.Errorf("%w: value must be non-negative", ErrInvalidInput)
		return performance.Performance{}, err
	}

	sp, exists, err := s.sportRepo.GetByName(ctx, input.SportName)
	if err != nil {
		err = fmt.Errorf("get sport: %w", err)
		return performance.Performance{}, err
	}
	if !exists {
		err = fmt.Errorf("%w: sport=%s", ErrUnknownSport, input.SportName)
		return performance.Performance{}, err
	}

	recordedAt := s.now().UTC()
	date := recordedAt
	if input.Date != nil {
		date = input.Date.UTC()
	}
	date = normalizeDay(date)
	if date.After(normalizeDay(recordedAt)) {
		err = fmt.Errorf("%w: date cannot be in the future", ErrInvalidInput)
		return performance.Performance{}, err
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		err = fmt.Errorf("generate performance id: %w", err)
		return performance.Performance{}, err
	}

	item := performance.Performance{
		ID:               newID,
		UserID:           userID,
		SportID:          sp.ID,
		Value:            input.Value,
		PointsCalculated: sport.ComputePoints(sp.PointsPerUnit, input.Value),
		DateRecorded:     date,
		Notes:            strings.TrimSpace(input.Notes),
		CreatedAt:        recordedAt,
	}

	if err = s.performanceRepo.Create(ctx, item); err != nil {
		err = fmt.Errorf("create performance: %w", err)
		return performance.Performance{}, err
	}

	return item, nil
}

// History returns the user's performances newest first, optionally
// narrowed by sport and date range.
func (s *PerformanceService) History(ctx context.Context, userID string, filter HistoryFilter) ([]HistoryEntry, error) {
	ctx, span := startSpan(ctx, "PerformanceService.History")
	var err error
	defer func() { endSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		err = fmt.Errorf("%w: user id is required", ErrInvalidInput)
		return nil, err
	}

	repoFilter := performance.Filter{UserID: userID, From: filter.From, To: filter.To}
	if name := strings.TrimSpace(filter.SportName); name != "" {
		sp, exists, lookupErr := s.sportRepo.GetByName(ctx, name)
		if lookupErr != nil {
			err = fmt.Errorf("get sport: %w", lookupErr)
			return nil, err
		}
		if !exists {
			err = fmt.Errorf("%w: sport=%s", ErrUnknownSport, name)
			return nil, err
		}
		repoFilter.SportID = sp.ID
	}

	items, err := s.performanceRepo.List(ctx, repoFilter)
	if err != nil {
		err = fmt.Errorf("list performances: %w", err)
		return nil, err
	}

	sports, err := s.sportRepo.List(ctx)
	if err != nil {
		err = fmt.Errorf("list sports: %w", err)
		return nil, err
	}
	sportsByID := make(map[string]sport.Sport, len(sports))
	for _, sp := range sports {
		sportsByID[sp.ID] = sp
	}

	entries := make([]HistoryEntry, 0, len(items))
	for _, p := range items {
		sp := sportsByID[p.SportID]
		entries = append(entries, HistoryEntry{
			ID:        p.ID,
			SportName: sp.Name,
			Unit:      sp.Unit,
			Value:     p.Value,
			Points:    p.PointsCalculated,
			Date:      p.DateRecorded,
			Notes:     p.Notes,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date.After(entries[j].Date) })
	if filter.Limit > 0 && len(entries) > filter.Limit {
		entries = entries[:filter.Limit]
	}

	return entries, nil
}

// normalizeDay truncates a time to UTC midnight.
func normalizeDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
