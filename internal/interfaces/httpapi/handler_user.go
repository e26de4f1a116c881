package httpapi

import (
	"net/http"

	"github.com/oktavandi/fitness-challenge/internal/usecase"
)

type registerUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	FullName string `json:"full_name" validate:"max=128"`
	Email    string `json:"email" validate:"required,email"`
	Gender   string `json:"gender" validate:"max=32"`
	AgeGroup string `json:"age_group" validate:"max=32"`
	Location string `json:"location" validate:"max=128"`
}

type updateProfileRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,max=128"`
	Gender   *string `json:"gender" validate:"omitempty,max=32"`
	AgeGroup *string `json:"age_group" validate:"omitempty,max=32"`
	Location *string `json:"location" validate:"omitempty,max=128"`
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterUser")
	defer span.End()

	var req registerUserRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.userService.Register(ctx, usecase.RegisterUserInput{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
		Gender:   req.Gender,
		AgeGroup: req.AgeGroup,
		Location: req.Location,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "register user failed", "username", req.Username, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, userToDTO(created))
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMe")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	profile, err := h.userService.GetProfile(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get profile failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(profile))
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMe")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateProfileRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.userService.UpdateProfile(ctx, principal.UserID, usecase.UpdateProfileInput{
		FullName: req.FullName,
		Gender:   req.Gender,
		AgeGroup: req.AgeGroup,
		Location: req.Location,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update profile failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(updated))
}
