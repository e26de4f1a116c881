package memory

import (
	"context"
	"fmt"

	"github.com/oktavandi/fitness-challenge/internal/domain/sport"
)

// SeedSports loads the default catalog into the repository.
func SeedSports(ctx context.Context, repo *SportRepository) error {
	for _, sp := range sport.DefaultCatalog() {
		if err := repo.Create(ctx, sp); err != nil {
			return fmt.Errorf("seed sport %s: %w", sp.Name, err)
		}
	}
	return nil
}
