package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oktavandi/fitness-challenge/internal/domain/user"
	"github.com/oktavandi/fitness-challenge/internal/platform/id"
)

type RegisterUserInput struct {
	Username string
	FullName string
	Email    string
	Gender   string
	AgeGroup string
	Location string
}

// UpdateProfileInput carries partial profile edits. Nil fields are left
// unchanged.
type UpdateProfileInput struct {
	FullName *string
	Gender   *string
	AgeGroup *string
	Location *string
}

type UserService struct {
	userRepo user.Repository
	idGen    id.Generator
	now      func() time.Time
}

func NewUserService(userRepo user.Repository, idGen id.Generator) *UserService {
	return &UserService{
		userRepo: userRepo,
		idGen:    idGen,
		now:      time.Now,
	}
}

func (s *UserService) Register(ctx context.Context, input RegisterUserInput) (user.User, error) {
	ctx, span := startSpan(ctx, "UserService.Register")
	var err error
	defer func() { endSpan(span, err) }()

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Username == "" {
		err = fmt.Errorf("%w: username is required", ErrInvalidInput)
		return user.User{}, err
	}
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		err = fmt.Errorf("%w: valid email is required", ErrInvalidInput)
		return user.User{}, err
	}

	_, exists, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		err = fmt.Errorf("check username: %w", err)
		return user.User{}, err
	}
	if exists {
		err = fmt.Errorf("%w: username=%s", ErrAlreadyExists, input.Username)
		return user.User{}, err
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		err = fmt.Errorf("generate user id: %w", err)
		return user.User{}, err
	}

	now := s.now().UTC()
	item := user.User{
		ID:        newID,
		Username:  input.Username,
		FullName:  strings.TrimSpace(input.FullName),
		Email:     input.Email,
		Gender:    strings.TrimSpace(input.Gender),
		AgeGroup:  strings.TrimSpace(input.AgeGroup),
		Location:  strings.TrimSpace(input.Location),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = s.userRepo.Create(ctx, item); err != nil {
		err = fmt.Errorf("create user: %w", err)
		return user.User{}, err
	}

	return item, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (user.User, error) {
	ctx, span := startSpan(ctx, "UserService.GetProfile")
	var err error
	defer func() { endSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		err = fmt.Errorf("%w: user id is required", ErrInvalidInput)
		return user.User{}, err
	}

	item, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		err = fmt.Errorf("get user: %w", err)
		return user.User{}, err
	}
	if !exists {
		err = fmt.Errorf("%w: user=%s", ErrNotFound, userID)
		return user.User{}, err
	}

	return item, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (user.User, error) {
	ctx, span := startSpan(ctx, "UserService.UpdateProfile")
	var err error
	defer func() { endSpan(span, err) }()

	item, err := s.GetProfile(ctx, userID)
	if err != nil {
		return user.User{}, err
	}

	if input.FullName != nil {
		item.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Gender != nil {
		item.Gender = strings.TrimSpace(*input.Gender)
	}
	if input.AgeGroup != nil {
		item.AgeGroup = strings.TrimSpace(*input.AgeGroup)
	}
	if input.Location != nil {
		item.Location = strings.TrimSpace(*input.Location)
	}
	item.UpdatedAt = s.now().UTC()

	if err = s.userRepo.Update(ctx, item); err != nil {
		err = fmt.Errorf("update user: %w", err)
		return user.User{}, err
	}

	return item, nil
}
