package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/oktavandi/fitness-challenge/internal/domain/sport"
)

type SportRepository struct {
	mu    sync.RWMutex
	items map[string]sport.Sport
}

func NewSportRepository() *SportRepository {
	return &SportRepository{items: make(map[string]sport.Sport)}
}

func (r *SportRepository) List(_ context.Context) ([]sport.Sport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]sport.Sport, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *SportRepository) GetByID(_ context.Context, sportID string) (sport.Sport, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[sportID]
	return item, ok, nil
}

// GetByName matches case-insensitively so URL path segments like
// "running" resolve to the catalog entry "Running".
func (r *SportRepository) GetByName(_ context.Context, name string) (sport.Sport, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if strings.EqualFold(item.Name, name) {
			return item, true, nil
		}
	}
	return sport.Sport{}, false, nil
}

func (r *SportRepository) Create(_ context.Context, item sport.Sport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}
