package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestUserService_Register(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	svc := NewUserService(f.users, &stubIDGenerator{prefix: "user"})

	got, err := svc.Register(context.Background(), RegisterUserInput{
		Username: "  runner42  ",
		FullName: "Sam Runner",
		Email:    "sam@example.com",
		Gender:   "Female",
		AgeGroup: "26-35",
		Location: "Jakarta",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if got.ID != "user-1" || got.Username != "runner42" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if got.CreatedAt.IsZero() || !got.CreatedAt.Equal(got.UpdatedAt) {
		t.Fatalf("unexpected timestamps: %+v", got)
	}

	stored, ok, err := f.users.GetByUsername(context.Background(), "runner42")
	if err != nil || !ok {
		t.Fatalf("registered user not stored: ok=%t err=%v", ok, err)
	}
	if stored.Location != "Jakarta" {
		t.Fatalf("unexpected stored user: %+v", stored)
	}
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	f.addUser(t, "u1", "runner42", nil)
	svc := NewUserService(f.users, &stubIDGenerator{prefix: "user"})

	_, err := svc.Register(context.Background(), RegisterUserInput{Username: "runner42", Email: "other@example.com"})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUserService_Register_Validation(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	svc := NewUserService(f.users, &stubIDGenerator{prefix: "user"})
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterUserInput{Username: "", Email: "a@b.com"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty username, got %v", err)
	}

	_, err = svc.Register(ctx, RegisterUserInput{Username: "someone", Email: "not-an-email"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad email, got %v", err)
	}
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	svc := NewUserService(f.users, &stubIDGenerator{prefix: "user"})

	_, err := svc.GetProfile(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	f.addUser(t, "u1", "runner42", nil)
	svc := NewUserService(f.users, &stubIDGenerator{prefix: "user"})

	location := " Bandung "
	got, err := svc.UpdateProfile(context.Background(), "u1", UpdateProfileInput{Location: &location})
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if got.Location != "Bandung" {
		t.Fatalf("expected trimmed location, got %q", got.Location)
	}
	if got.Username != "runner42" {
		t.Fatalf("username should be unchanged, got %q", got.Username)
	}

	stored, _, err := f.users.GetByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if stored.Location != "Bandung" {
		t.Fatalf("update not persisted: %+v", stored)
	}
}
