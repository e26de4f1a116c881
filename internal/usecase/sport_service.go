package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/oktavandi/fitness-challenge/internal/domain/sport"
)

type SportService struct {
	sportRepo sport.Repository
}

func NewSportService(sportRepo sport.Repository) *SportService {
	return &SportService{sportRepo: sportRepo}
}

// ListSports returns the catalog ordered by name.
func (s *SportService) ListSports(ctx context.Context) ([]sport.Sport, error) {
	ctx, span := startSpan(ctx, "SportService.ListSports")
	var err error
	defer func() { endSpan(span, err) }()

	items, err := s.sportRepo.List(ctx)
	if err != nil {
		err = fmt.Errorf("list sports: %w", err)
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *SportService) GetSportByName(ctx context.Context, name string) (sport.Sport, error) {
	ctx, span := startSpan(ctx, "SportService.GetSportByName")
	var err error
	defer func() { endSpan(span, err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		err = fmt.Errorf("%w: sport name is required", ErrInvalidInput)
		return sport.Sport{}, err
	}

	item, exists, err := s.sportRepo.GetByName(ctx, name)
	if err != nil {
		err = fmt.Errorf("get sport: %w", err)
		return sport.Sport{}, err
	}
	if !exists {
		err = fmt.Errorf("%w: sport=%s", ErrUnknownSport, name)
		return sport.Sport{}, err
	}

	return item, nil
}
