package memory

import (
	"context"
	"sync"

	"github.com/oktavandi/fitness-challenge/internal/domain/performance"
)

type PerformanceRepository struct {
	mu    sync.RWMutex
	items []performance.Performance
}

func NewPerformanceRepository() *PerformanceRepository {
	return &PerformanceRepository{}
}

func (r *PerformanceRepository) List(_ context.Context, filter performance.Filter) ([]performance.Performance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]performance.Performance, 0, len(r.items))
	for _, item := range r.items {
		if filter.UserID != "" && item.UserID != filter.UserID {
			continue
		}
		if filter.SportID != "" && item.SportID != filter.SportID {
			continue
		}
		if filter.From != nil && item.DateRecorded.Before(*filter.From) {
			continue
		}
		if filter.To != nil && item.DateRecorded.After(*filter.To) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *PerformanceRepository) Create(_ context.Context, item performance.Performance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, item)
	return nil
}
