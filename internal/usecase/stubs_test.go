package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/oktavandi/fitness-challenge/internal/domain/performance"
	"github.com/oktavandi/fitness-challenge/internal/domain/sport"
	"github.com/oktavandi/fitness-challenge/internal/domain/team"
	"github.com/oktavandi/fitness-challenge/internal/domain/user"
	"github.com/oktavandi/fitness-challenge/internal/infrastructure/repository/memory"
)

type stubIDGenerator struct {
	prefix string
	next   int
}

func (g *stubIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next), nil
}

type fixtures struct {
	users        *memory.UserRepository
	teams        *memory.TeamRepository
	sports       *memory.SportRepository
	performances *memory.PerformanceRepository
}

func newFixtures(t *testing.T) fixtures {
	t.Helper()

	f := fixtures{
		users:        memory.NewUserRepository(),
		teams:        memory.NewTeamRepository(),
		sports:       memory.NewSportRepository(),
		performances: memory.NewPerformanceRepository(),
	}
	if err := memory.SeedSports(context.Background(), f.sports); err != nil {
		t.Fatalf("seed sports: %v", err)
	}
	return f
}

func (f fixtures) addUser(t *testing.T, id, username string, teamID *string) {
	t.Helper()

	err := f.users.Create(context.Background(), user.User{
		ID:       id,
		Username: username,
		Email:    username + "@example.com",
		TeamID:   teamID,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", id, err)
	}
}

func (f fixtures) addTeam(t *testing.T, id, name string) {
	t.Helper()

	err := f.teams.Create(context.Background(), team.Team{ID: id, Name: name, CreatedBy: "u-owner"})
	if err != nil {
		t.Fatalf("create team %s: %v", id, err)
	}
}

func (f fixtures) addPerformance(t *testing.T, userID, sportName string, value float64, day time.Time) {
	t.Helper()

	sp, ok, err := f.sports.GetByName(context.Background(), sportName)
	if err != nil || !ok {
		t.Fatalf("sport %s not seeded", sportName)
	}
	err = f.performances.Create(context.Background(), performance.Performance{
		ID:               fmt.Sprintf("p-%s-%s-%d", userID, sp.ID, day.Unix()),
		UserID:           userID,
		SportID:          sp.ID,
		Value:            value,
		PointsCalculated: sport.ComputePoints(sp.PointsPerUnit, value),
		DateRecorded:     day,
		CreatedAt:        day,
	})
	if err != nil {
		t.Fatalf("create performance: %v", err)
	}
}

func day(t *testing.T, value string) time.Time {
	t.Helper()

	out, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		t.Fatalf("parse day %q: %v", value, err)
	}
	return out
}
