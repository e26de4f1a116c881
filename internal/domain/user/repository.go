package user

import "context"

type Repository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, userID string) (User, bool, error)
	GetByUsername(ctx context.Context, username string) (User, bool, error)
	Create(ctx context.Context, item User) error
	Update(ctx context.Context, item User) error
	SetTeam(ctx context.Context, userID string, teamID *string) error
}
