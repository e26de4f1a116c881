package passport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/oktavandi/fitness-challenge/internal/domain/user"
	"github.com/oktavandi/fitness-challenge/internal/platform/logging"
	"github.com/oktavandi/fitness-challenge/internal/platform/resilience"
	"github.com/oktavandi/fitness-challenge/internal/usecase"
)

const maxResponseBytes = 1 << 20

// ErrTransient marks failures worth retrying: network errors, 5xx and
// an open circuit. Callers translate it to ErrDependencyUnavailable.
var ErrTransient = errors.New("passport: transient failure")

// Client verifies access tokens against the passport account service's
// introspection endpoint. A circuit breaker sheds load while passport
// is down so auth failures stay fast.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	breaker       *resilience.CircuitBreaker
	logger        *logging.Logger
}

func NewClient(httpClient *http.Client, baseURL, introspectPath string, breakerCfg resilience.CircuitBreakerConfig, logger *logging.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	if logger == nil {
		logger = logging.Default()
	}
	cfg := resilience.NormalizeCircuitBreakerConfig(breakerCfg)

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(baseURL, introspectPath),
		breaker:       resilience.NewCircuitBreaker(cfg.FailureThreshold, cfg.OpenTimeout, cfg.HalfOpenMaxReq),
		logger:        logger,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	if allowErr := c.breaker.Allow(); allowErr != nil {
		return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, allowErr)
	}

	decoded, err := c.introspect(ctx, token)
	if err != nil {
		if errors.Is(err, ErrTransient) {
			c.breaker.RecordFailure()
			return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return user.Principal{}, err
	}
	c.breaker.RecordSuccess()

	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, errors.New("invalid introspect response: user_id is empty")
	}

	return user.Principal{
		UserID: decoded.UserID,
		Email:  decoded.Email,
	}, nil
}

func (c *Client) introspect(ctx context.Context, token string) (introspectResponse, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return introspectResponse{}, errors.Wrap(err, "marshal introspect request")
	}
	if _, err := buf.Write(encoded); err != nil {
		return introspectResponse{}, errors.Wrap(err, "buffer introspect request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(buf.B))
	if err != nil {
		return introspectResponse{}, errors.Wrap(err, "create introspect request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return introspectResponse{}, errors.Mark(errors.Wrap(err, "request introspection"), ErrTransient)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return introspectResponse{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	case resp.StatusCode >= http.StatusInternalServerError:
		c.logger.WarnContext(ctx, "passport introspection server error", "status_code", resp.StatusCode)
		return introspectResponse{}, errors.Mark(errors.Newf("introspection failed with status %d", resp.StatusCode), ErrTransient)
	case resp.StatusCode != http.StatusOK:
		return introspectResponse{}, errors.Newf("introspection failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return introspectResponse{}, errors.Mark(errors.Wrap(err, "read introspect response"), ErrTransient)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return introspectResponse{}, errors.Wrap(err, "unmarshal introspect response")
	}

	return decoded, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return baseURL + path
}
