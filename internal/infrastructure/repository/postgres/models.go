package postgres

import (
	"database/sql"
	"time"

	"github.com/oktavandi/fitness-challenge/internal/domain/performance"
	"github.com/oktavandi/fitness-challenge/internal/domain/sport"
	"github.com/oktavandi/fitness-challenge/internal/domain/team"
	"github.com/oktavandi/fitness-challenge/internal/domain/user"
)

type userTableModel struct {
	PublicID  string         `db:"public_id"`
	Username  string         `db:"username"`
	FullName  string         `db:"full_name"`
	Email     string         `db:"email"`
	Gender    string         `db:"gender"`
	AgeGroup  string         `db:"age_group"`
	Location  string         `db:"location"`
	TeamID    sql.NullString `db:"team_public_id"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (m userTableModel) toDomain() user.User {
	return user.User{
		ID:        m.PublicID,
		Username:  m.Username,
		FullName:  m.FullName,
		Email:     m.Email,
		Gender:    m.Gender,
		AgeGroup:  m.AgeGroup,
		Location:  m.Location,
		TeamID:    nullStringToPtr(m.TeamID),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type teamTableModel struct {
	PublicID    string    `db:"public_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedBy   string    `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:          m.PublicID,
		Name:        m.Name,
		Description: m.Description,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}

type sportTableModel struct {
	PublicID      string  `db:"public_id"`
	Name          string  `db:"name"`
	Unit          string  `db:"unit"`
	PointsPerUnit float64 `db:"points_per_unit"`
	Description   string  `db:"description"`
}

func (m sportTableModel) toDomain() sport.Sport {
	return sport.Sport{
		ID:            m.PublicID,
		Name:          m.Name,
		Unit:          m.Unit,
		PointsPerUnit: m.PointsPerUnit,
		Description:   m.Description,
	}
}

type performanceTableModel struct {
	PublicID         string    `db:"public_id"`
	UserID           string    `db:"user_public_id"`
	SportID          string    `db:"sport_public_id"`
	Value            float64   `db:"value"`
	PointsCalculated float64   `db:"points_calculated"`
	DateRecorded     time.Time `db:"date_recorded"`
	Notes            string    `db:"notes"`
	CreatedAt        time.Time `db:"created_at"`
}

func (m performanceTableModel) toDomain() performance.Performance {
	return performance.Performance{
		ID:               m.PublicID,
		UserID:           m.UserID,
		SportID:          m.SportID,
		Value:            m.Value,
		PointsCalculated: m.PointsCalculated,
		DateRecorded:     m.DateRecorded.UTC(),
		Notes:            m.Notes,
		CreatedAt:        m.CreatedAt,
	}
}

func nullStringToPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func ptrToNullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
