package performance

import "context"

type Repository interface {
	List(ctx context.Context, filter Filter) ([]Performance, error)
	Create(ctx context.Context, item Performance) error
}
