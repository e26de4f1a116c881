package postgres

import (
	"context"
	"fmt"

	"github.com/oktavandi/fitness-challenge/internal/domain/sport"
)

// SeedSports upserts the default catalog. Safe to run on every startup.
func SeedSports(ctx context.Context, repo *SportRepository) error {
	for _, sp := range sport.DefaultCatalog() {
		if err := repo.Create(ctx, sp); err != nil {
			return fmt.Errorf("seed sport %s: %w", sp.Name, err)
		}
	}
	return nil
}
