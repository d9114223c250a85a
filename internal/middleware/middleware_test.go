package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/ressourcerie/internal/config"
	"github.com/deppfellow/ressourcerie/internal/domain"
	"github.com/deppfellow/ressourcerie/internal/errs"
	"github.com/deppfellow/ressourcerie/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

func newTestServer(rateLimit float64, burst int) *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Server: config.ServerConfig{
				CORSAllowedOrigins: []string{"*"},
				RateLimit:          rateLimit,
				RateLimitBurst:     burst,
			},
			Storage:       config.StorageConfig{Driver: config.StorageDriverMemory},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

func newTestEcho(s *server.Server) *echo.Echo {
	m := NewMiddlewares(s)
	e := echo.New()
	e.HTTPErrorHandler = m.Global.GlobalErrorHandler
	e.Use(RequestID(), m.ContextEnhancer.EnhanceContext(), m.RateLimit.Limit())
	return e
}

func serve(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()
	var httpErr errs.HTTPError
	if err := json.Unmarshal(rec.Body.Bytes(), &httpErr); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, rec.Body.String())
	}
	return httpErr
}

func TestRateLimit(t *testing.T) {
	e := newTestEcho(newTestServer(1, 1))
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	e.GET("/status", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	if rec := serve(e, "/ping"); rec.Code != http.StatusNoContent {
		t.Fatalf("expected first request through, got %d", rec.Code)
	}

	rec := serve(e, "/ping")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if httpErr := decodeError(t, rec); httpErr.Code != "TOO_MANY_REQUESTS" {
		t.Fatalf("unexpected code %s", httpErr.Code)
	}

	for i := 0; i < 3; i++ {
		if rec := serve(e, "/status"); rec.Code != http.StatusNoContent {
			t.Fatalf("expected /status to bypass the limiter, got %d", rec.Code)
		}
	}
}

func TestRateLimitDisabled(t *testing.T) {
	e := newTestEcho(newTestServer(0, 0))
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	for i := 0; i < 5; i++ {
		if rec := serve(e, "/ping"); rec.Code != http.StatusNoContent {
			t.Fatalf("request %d: expected 204, got %d", i, rec.Code)
		}
	}
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"domain invalid state", domain.InvalidState("offer 1 is not OPEN"), http.StatusConflict, "INVALID_STATE"},
		{"wrapped domain not found", errors.Wrap(domain.NotFound("offer not found: 9"), "lookup"), http.StatusNotFound, "NOT_FOUND"},
		{"http error passes through", errs.NewBadRequestError("bad", true, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"echo method not allowed", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho(newTestServer(0, 0))
			e.GET("/fail", func(c echo.Context) error { return tt.err })

			rec := serve(e, "/fail")
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if httpErr := decodeError(t, rec); httpErr.Code != tt.wantCode {
				t.Fatalf("expected code %s, got %s", tt.wantCode, httpErr.Code)
			}
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	e := newTestEcho(newTestServer(0, 0))

	rec := serve(e, "/missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if httpErr := decodeError(t, rec); httpErr.Message != "Route not found" {
		t.Fatalf("unexpected message %q", httpErr.Message)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Fatalf("expected a generated request id")
	}
}
