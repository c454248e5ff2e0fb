package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRouter_HealthAndNotFound(t *testing.T) {
	t.Parallel()

	router := NewRouter(RouterConfig{
		JWTSecret: testSecret,
	})

	t.Run("health is open", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("unknown route is JSON 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"code":"not_found"`) {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("session routes require a token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/sessions/s1/join", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
