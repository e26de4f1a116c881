package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/oktavandi/fitness-challenge/internal/domain/sport"
)

const sportColumns = `public_id, name, unit, points_per_unit, description`

type SportRepository struct {
	db *sqlx.DB
}

func NewSportRepository(db *sqlx.DB) *SportRepository {
	return &SportRepository{db: db}
}

func (r *SportRepository) List(ctx context.Context) ([]sport.Sport, error) {
	query := `SELECT ` + sportColumns + ` FROM sports ORDER BY name`

	var rows []sportTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list sports: %w", err)
	}

	out := make([]sport.Sport, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SportRepository) GetByID(ctx context.Context, sportID string) (sport.Sport, bool, error) {
	query := `SELECT ` + sportColumns + ` FROM sports WHERE public_id = $1`

	var row sportTableModel
	if err := r.db.GetContext(ctx, &row, query, sportID); err != nil {
		if isNotFound(err) {
			return sport.Sport{}, false, nil
		}
		return sport.Sport{}, false, fmt.Errorf("get sport by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *SportRepository) GetByName(ctx context.Context, name string) (sport.Sport, bool, error) {
	query := `SELECT ` + sportColumns + ` FROM sports WHERE LOWER(name) = LOWER($1)`

	var row sportTableModel
	if err := r.db.GetContext(ctx, &row, query, name); err != nil {
		if isNotFound(err) {
			return sport.Sport{}, false, nil
		}
		return sport.Sport{}, false, fmt.Errorf("get sport by name: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *SportRepository) Create(ctx context.Context, item sport.Sport) error {
	query := `INSERT INTO sports (public_id, name, unit, points_per_unit, description)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (public_id) DO UPDATE SET
    name = EXCLUDED.name,
    unit = EXCLUDED.unit,
    points_per_unit = EXCLUDED.points_per_unit,
    description = EXCLUDED.description`

	_, err := r.db.ExecContext(ctx, query, item.ID, item.Name, item.Unit, item.PointsPerUnit, item.Description)
	if err != nil {
		return fmt.Errorf("upsert sport: %w", err)
	}
	return nil
}
