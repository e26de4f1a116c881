package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/oktavandi/fitness-challenge/internal/domain/performance"
)

const performanceColumns = `public_id, user_public_id, sport_public_id, value, points_calculated, date_recorded, notes, created_at`

type PerformanceRepository struct {
	db *sqlx.DB
}

func NewPerformanceRepository(db *sqlx.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

func (r *PerformanceRepository) List(ctx context.Context, filter performance.Filter) ([]performance.Performance, error) {
	var (
		conditions = []string{"deleted_at IS NULL"}
		args       []any
	)
	addCondition := func(column, op string, value any) {
		args = append(args, value)
		conditions = append(conditions, column+" "+op+" $"+strconv.Itoa(len(args)))
	}
	if filter.UserID != "" {
		addCondition("user_public_id", "=", filter.UserID)
	}
	if filter.SportID != "" {
		addCondition("sport_public_id", "=", filter.SportID)
	}
	if filter.From != nil {
		addCondition("date_recorded", ">=", *filter.From)
	}
	if filter.To != nil {
		addCondition("date_recorded", "<=", *filter.To)
	}

	query := `SELECT ` + performanceColumns + ` FROM performances WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY date_recorded, id`

	var rows []performanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list performances: %w", err)
	}

	out := make([]performance.Performance, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PerformanceRepository) Create(ctx context.Context, item performance.Performance) error {
	query := `INSERT INTO performances (public_id, user_public_id, sport_public_id, value, points_calculated, date_recorded, notes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.UserID, item.SportID, item.Value,
		item.PointsCalculated, item.DateRecorded, item.Notes, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert performance: %w", err)
	}
	return nil
}
