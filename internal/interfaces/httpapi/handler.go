package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/oktavandi/fitness-challenge/internal/domain/user"
	"github.com/oktavandi/fitness-challenge/internal/platform/logging"
	"github.com/oktavandi/fitness-challenge/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	userService        *usecase.UserService
	teamService        *usecase.TeamService
	sportService       *usecase.SportService
	performanceService *usecase.PerformanceService
	leaderboardService *usecase.LeaderboardService
	progressService    *usecase.ProgressService
	dashboardService   *usecase.DashboardService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	userService *usecase.UserService,
	teamService *usecase.TeamService,
	sportService *usecase.SportService,
	performanceService *usecase.PerformanceService,
	leaderboardService *usecase.LeaderboardService,
	progressService *usecase.ProgressService,
	dashboardService *usecase.DashboardService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		userService:        userService,
		teamService:        teamService,
		sportService:       sportService,
		performanceService: performanceService,
		leaderboardService: leaderboardService,
		progressService:    progressService,
		dashboardService:   dashboardService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeAndValidate(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(body) == 0 {
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}
	if err := sonic.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: malformed JSON body", usecase.ErrInvalidInput)
	}
	if err := h.validator.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok || strings.TrimSpace(principal.UserID) == "" {
		return user.Principal{}, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized)
	}
	return principal, nil
}

// queryInt parses an optional integer query parameter, falling back to
// def when absent or unparseable.
func queryInt(r *http.Request, name string, def int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}
