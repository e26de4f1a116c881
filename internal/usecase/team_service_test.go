package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestTeamService_ListTeams(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	t1 := "t1"
	f.addTeam(t, "t1", "Alpha")
	f.addTeam(t, "t2", "Beta")
	f.addUser(t, "u-owner", "owner", &t1)
	f.addUser(t, "u2", "rider", &t1)
	f.addUser(t, "u3", "loner", nil)
	svc := NewTeamService(f.teams, f.users, &stubIDGenerator{prefix: "team"})

	got, err := svc.ListTeams(context.Background())
	if err != nil {
		t.Fatalf("ListTeams error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(got))
	}

	byID := make(map[string]TeamSummary, len(got))
	for _, s := range got {
		byID[s.Team.ID] = s
	}
	if s := byID["t1"]; s.MemberCount != 2 || s.CreatedByName != "owner" {
		t.Fatalf("unexpected t1 summary: %+v", s)
	}
	if s := byID["t2"]; s.MemberCount != 0 || s.CreatedByName != "owner" {
		t.Fatalf("unexpected t2 summary: %+v", s)
	}
}

func TestTeamService_CreateTeam(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	f.addUser(t, "u1", "founder", nil)
	svc := NewTeamService(f.teams, f.users, &stubIDGenerator{prefix: "team"})

	got, err := svc.CreateTeam(context.Background(), "u1", CreateTeamInput{Name: " Road Warriors ", Description: "weekend rides"})
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}
	if got.ID != "team-1" || got.Name != "Road Warriors" || got.CreatedBy != "u1" {
		t.Fatalf("unexpected team: %+v", got)
	}

	// The creator joins their own team on creation.
	creator, _, err := f.users.GetByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if creator.TeamID == nil || *creator.TeamID != "team-1" {
		t.Fatalf("creator should be a member, got %+v", creator.TeamID)
	}
}

func TestTeamService_CreateTeam_DuplicateName(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	f.addUser(t, "u1", "founder", nil)
	f.addTeam(t, "t1", "Road Warriors")
	svc := NewTeamService(f.teams, f.users, &stubIDGenerator{prefix: "team"})

	_, err := svc.CreateTeam(context.Background(), "u1", CreateTeamInput{Name: "Road Warriors"})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestTeamService_CreateTeam_UnknownCreator(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	svc := NewTeamService(f.teams, f.users, &stubIDGenerator{prefix: "team"})

	_, err := svc.CreateTeam(context.Background(), "ghost", CreateTeamInput{Name: "Road Warriors"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamService_JoinTeam(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	t1 := "t1"
	f.addTeam(t, "t1", "Alpha")
	f.addTeam(t, "t2", "Beta")
	f.addUser(t, "u1", "member", &t1)
	svc := NewTeamService(f.teams, f.users, &stubIDGenerator{prefix: "team"})

	// Joining a second team replaces the prior membership.
	if err := svc.JoinTeam(context.Background(), "u1", "t2"); err != nil {
		t.Fatalf("JoinTeam error: %v", err)
	}

	stored, _, err := f.users.GetByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if stored.TeamID == nil || *stored.TeamID != "t2" {
		t.Fatalf("expected membership in t2, got %+v", stored.TeamID)
	}
}

func TestTeamService_JoinTeam_NotFound(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	f.addUser(t, "u1", "member", nil)
	f.addTeam(t, "t1", "Alpha")
	svc := NewTeamService(f.teams, f.users, &stubIDGenerator{prefix: "team"})
	ctx := context.Background()

	if err := svc.JoinTeam(ctx, "u1", "ghost-team"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown team, got %v", err)
	}
	if err := svc.JoinTeam(ctx, "ghost-user", "t1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
}
