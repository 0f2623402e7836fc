package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TuanDoan14112003/storebuilder-backend/internal/config"
	"github.com/TuanDoan14112003/storebuilder-backend/internal/server"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestServer() *echo.Echo {
	cfg := config.Config{JWTSecret: "test-secret", FEURL: "http://localhost:3000"}
	return server.New(cfg, zap.NewNop())
}

func TestServer_Health(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// 末尾スラッシュ付きでも同じルートに当たる。
func TestServer_TrailingSlashAccepted(t *testing.T) {
	e := newTestServer()
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})

	for _, path := range []string{"/ping", "/ping/", "/health/"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "GET %s", path)
	}
}

func TestServer_CSRFTokenIssued(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/csrf", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "csrf_token")
}
