package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/oktavandi/fitness-challenge/internal/domain/user"
)

const userColumns = `public_id, username, full_name, email, gender, age_group, location, team_public_id, created_at, updated_at`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE deleted_at IS NULL ORDER BY id`

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.User, bool, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE public_id = $1 AND deleted_at IS NULL`

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, bool, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND deleted_at IS NULL`

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, username); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user by username: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *UserRepository) Create(ctx context.Context, item user.User) error {
	query := `INSERT INTO users (public_id, username, full_name, email, gender, age_group, location, team_public_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Username, item.FullName, item.Email,
		item.Gender, item.AgeGroup, item.Location,
		ptrToNullString(item.TeamID), item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, item user.User) error {
	query := `UPDATE users
SET full_name = $2, email = $3, gender = $4, age_group = $5, location = $6, updated_at = $7
WHERE public_id = $1 AND deleted_at IS NULL`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.FullName, item.Email, item.Gender, item.AgeGroup, item.Location, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *UserRepository) SetTeam(ctx context.Context, userID string, teamID *string) error {
	query := `UPDATE users SET team_public_id = $2, updated_at = NOW() WHERE public_id = $1 AND deleted_at IS NULL`

	_, err := r.db.ExecContext(ctx, query, userID, ptrToNullString(teamID))
	if err != nil {
		return fmt.Errorf("set user team: %w", err)
	}
	return nil
}
