package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oktavandi/fitness-challenge/internal/domain/team"
	"github.com/oktavandi/fitness-challenge/internal/domain/user"
	"github.com/oktavandi/fitness-challenge/internal/platform/id"
)

type CreateTeamInput struct {
	Name        string
	Description string
}

// TeamSummary is a team enriched with membership facts for listings.
type TeamSummary struct {
	Team          team.Team
	MemberCount   int
	CreatedByName string
}

type TeamService struct {
	teamRepo team.Repository
	userRepo user.Repository
	idGen    id.Generator
	now      func() time.Time
}

func NewTeamService(teamRepo team.Repository, userRepo user.Repository, idGen id.Generator) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		idGen:    idGen,
		now:      time.Now,
	}
}

func (s *TeamService) ListTeams(ctx context.Context) ([]TeamSummary, error) {
	ctx, span := startSpan(ctx, "TeamService.ListTeams")
	var err error
	defer func() { endSpan(span, err) }()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		err = fmt.Errorf("list teams: %w", err)
		return nil, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		err = fmt.Errorf("list users: %w", err)
		return nil, err
	}

	membersByTeam := make(map[string]int, len(items))
	nameByUser := make(map[string]string, len(users))
	for _, u := range users {
		nameByUser[u.ID] = u.Username
		if u.TeamID != nil {
			membersByTeam[*u.TeamID]++
		}
	}

	summaries := make([]TeamSummary, 0, len(items))
	for _, t := range items {
		summaries = append(summaries, TeamSummary{
			Team:          t,
			MemberCount:   membersByTeam[t.ID],
			CreatedByName: nameByUser[t.CreatedBy],
		})
	}

	return summaries, nil
}

// CreateTeam registers a new team and moves the creator into it.
func (s *TeamService) CreateTeam(ctx context.Context, creatorUserID string, input CreateTeamInput) (team.Team, error) {
	ctx, span := startSpan(ctx, "TeamService.CreateTeam")
	var err error
	defer func() { endSpan(span, err) }()

	creatorUserID = strings.TrimSpace(creatorUserID)
	input.Name = strings.TrimSpace(input.Name)
	if creatorUserID == "" {
		err = fmt.Errorf("%w: creator user id is required", ErrInvalidInput)
		return team.Team{}, err
	}
	if input.Name == "" {
		err = fmt.Errorf("%w: team name is required", ErrInvalidInput)
		return team.Team{}, err
	}

	_, exists, err := s.userRepo.GetByID(ctx, creatorUserID)
	if err != nil {
		err = fmt.Errorf("get user: %w", err)
		return team.Team{}, err
	}
	if !exists {
		err = fmt.Errorf("%w: user=%s", ErrNotFound, creatorUserID)
		return team.Team{}, err
	}

	_, taken, err := s.teamRepo.GetByName(ctx, input.Name)
	if err != nil {
		err = fmt.Errorf("check team name: %w", err)
		return team.Team{}, err
	}
	if taken {
		err = fmt.Errorf("%w: team name=%s", ErrAlreadyExists, input.Name)
		return team.Team{}, err
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		err = fmt.Errorf("generate team id: %w", err)
		return team.Team{}, err
	}

	item := team.Team{
		ID:          newID,
		Name:        input.Name,
		Description: strings.TrimSpace(input.Description),
		CreatedBy:   creatorUserID,
		CreatedAt:   s.now().UTC(),
	}

	if err = s.teamRepo.Create(ctx, item); err != nil {
		err = fmt.Errorf("create team: %w", err)
		return team.Team{}, err
	}

	if err = s.userRepo.SetTeam(ctx, creatorUserID, &item.ID); err != nil {
		err = fmt.Errorf("assign creator to team: %w", err)
		return team.Team{}, err
	}

	return item, nil
}

// JoinTeam moves the user into the team, replacing any prior
// membership. A user belongs to at most one team.
func (s *TeamService) JoinTeam(ctx context.Context, userID, teamID string) error {
	ctx, span := startSpan(ctx, "TeamService.JoinTeam")
	var err error
	defer func() { endSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	teamID = strings.TrimSpace(teamID)
	if userID == "" || teamID == "" {
		err = fmt.Errorf("%w: user id and team id are required", ErrInvalidInput)
		return err
	}

	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		err = fmt.Errorf("get team: %w", err)
		return err
	}
	if !exists {
		err = fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		return err
	}

	_, exists, err = s.userRepo.GetByID(ctx, userID)
	if err != nil {
		err = fmt.Errorf("get user: %w", err)
		return err
	}
	if !exists {
		err = fmt.Errorf("%w: user=%s", ErrNotFound, userID)
		return err
	}

	if err = s.userRepo.SetTeam(ctx, userID, &teamID); err != nil {
		err = fmt.Errorf("join team: %w", err)
		return err
	}

	return nil
}
