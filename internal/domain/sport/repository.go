package sport

import "context"

type Repository interface {
	List(ctx context.Context) ([]Sport, error)
	GetByID(ctx context.Context, sportID string) (Sport, bool, error)
	GetByName(ctx context.Context, name string) (Sport, bool, error)
	Create(ctx context.Context, item Sport) error
}
