package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/oktavandi/fitness-challenge/internal/domain/user"
	"github.com/oktavandi/fitness-challenge/internal/infrastructure/repository/memory"
	"github.com/oktavandi/fitness-challenge/internal/platform/cache"
	"github.com/oktavandi/fitness-challenge/internal/platform/id"
	"github.com/oktavandi/fitness-challenge/internal/platform/logging"
	"github.com/oktavandi/fitness-challenge/internal/usecase"
)

type stubVerifier struct {
	principals map[string]user.Principal
}

func (v *stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	principal, ok := v.principals[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return principal, nil
}

type testServer struct {
	router       http.Handler
	users        *memory.UserRepository
	performances *memory.PerformanceRepository
	verifier     *stubVerifier
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	users := memory.NewUserRepository()
	teams := memory.NewTeamRepository()
	sports := memory.NewSportRepository()
	performances := memory.NewPerformanceRepository()
	if err := memory.SeedSports(context.Background(), sports); err != nil {
		t.Fatalf("seed sports: %v", err)
	}

	store := cache.NewStore(time.Minute)
	idGen := id.NewRandomGenerator()
	logger := logging.NewNop()

	userService := usecase.NewUserService(users, idGen)
	teamService := usecase.NewTeamService(teams, users, idGen)
	sportService := usecase.NewSportService(sports)
	performanceService := usecase.NewPerformanceService(performances, sports, idGen)
	leaderboardService := usecase.NewLeaderboardService(users, teams, sports, performances, store)
	progressService := usecase.NewProgressService(performances, sports, users, teams)
	dashboardService := usecase.NewDashboardService(userService, leaderboardService, progressService)

	handler := NewHandler(
		userService,
		teamService,
		sportService,
		performanceService,
		leaderboardService,
		progressService,
		dashboardService,
		logger,
	)
	verifier := &stubVerifier{principals: map[string]user.Principal{}}

	return &testServer{
		router:       NewRouter(handler, verifier, logger, []string{"*"}),
		users:        users,
		performances: performances,
		verifier:     verifier,
	}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) googleResponseEnvelope {
	t.Helper()

	var envelope googleResponseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body=%s)", err, rec.Body.String())
	}
	if envelope.APIVersion != googleAPIVersion {
		t.Fatalf("expected apiVersion %q, got %q", googleAPIVersion, envelope.APIVersion)
	}
	return envelope
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	decodeEnvelope(t, rec)
}

func TestRouter_PublicRoutes(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	for _, path := range []string{
		"/v1/sports",
		"/v1/teams",
		"/v1/leaderboard",
		"/v1/leaderboard/teams",
		"/v1/leaderboard/sports/Running",
		"/v1/leaderboard/demographics/gender",
	} {
		rec := s.do(t, http.MethodGet, path, "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d (body=%s)", path, rec.Code, rec.Body.String())
		}
		envelope := decodeEnvelope(t, rec)
		if envelope.Error != nil {
			t.Fatalf("%s: unexpected error body: %+v", path, envelope.Error)
		}
	}
}

func TestRouter_AuthorizedRoutesRejectMissingToken(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/v1/me", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Error == nil || envelope.Error.Status != "UNAUTHENTICATED" {
		t.Fatalf("unexpected error body: %+v", envelope.Error)
	}
}

func TestRouter_RegisterAndRecordPerformance(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/v1/users", "", `{"username":"runner42","email":"runner@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (body=%s)", rec.Code, rec.Body.String())
	}

	users, err := s.users.List(context.Background())
	if err != nil || len(users) != 1 {
		t.Fatalf("expected 1 registered user, got %d (err=%v)", len(users), err)
	}
	s.verifier.principals["token-1"] = user.Principal{UserID: users[0].ID, Email: users[0].Email}

	rec = s.do(t, http.MethodPost, "/v1/performances", "token-1", `{"sport":"Running","value":5}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("record: expected 201, got %d (body=%s)", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/v1/me/performances", "token-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("history: expected 200, got %d (body=%s)", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/v1/me/ranking", "token-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("ranking: expected 200, got %d (body=%s)", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/v1/dashboard", "token-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard: expected 200, got %d (body=%s)", rec.Code, rec.Body.String())
	}
}

func TestRouter_ValidationErrors(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/v1/users", "", `{"username":"x","email":"runner@example.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("short username: expected 400, got %d", rec.Code)
	}

	rec = s.do(t, http.MethodPost, "/v1/users", "", `{broken`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed JSON: expected 400, got %d", rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/v1/leaderboard/sports/Quidditch", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown sport: expected 404, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Error == nil || envelope.Error.Status != "NOT_FOUND" {
		t.Fatalf("unexpected error body: %+v", envelope.Error)
	}

	rec = s.do(t, http.MethodGet, "/v1/leaderboard/demographics/shoe_size", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad dimension: expected 400, got %d", rec.Code)
	}
}

func TestRouter_DuplicateUsernameConflict(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	body := `{"username":"runner42","email":"runner@example.com"}`
	if rec := s.do(t, http.MethodPost, "/v1/users", "", body); rec.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", rec.Code)
	}
	rec := s.do(t, http.MethodPost, "/v1/users", "", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("second register: expected 409, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Error == nil || envelope.Error.Status != "ALREADY_EXISTS" {
		t.Fatalf("unexpected error body: %+v", envelope.Error)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/v1/sports", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
}
