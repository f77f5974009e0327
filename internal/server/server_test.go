package server_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodstore/internal/config"
	"foodstore/internal/handler"
	"foodstore/internal/logger"
	"foodstore/internal/server"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingRoutes struct{}

func (pingRoutes) RegisterRoutes(api *echo.Group, _ handler.AuthMiddlewares) {
	api.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})
	api.GET("/boom", func(c echo.Context) error {
		panic("boom")
	})
}

func newServer(t *testing.T, buf *bytes.Buffer) *echo.Echo {
	t.Helper()
	log := logger.New("foodstore", "debug", buf)
	e := server.New(config.Config{CORSOrigins: []string{"http://localhost:3000"}}, log.WithComponent("http"))
	server.RegisterRoutes(e, handler.AuthMiddlewares{}, pingRoutes{})
	return e
}

func TestHealthz(t *testing.T) {
	var buf bytes.Buffer
	e := newServer(t, &buf)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"ok"}`, rec.Body.String())
}

func TestAPIGroupAndRequestLog(t *testing.T) {
	var buf bytes.Buffer
	e := newServer(t, &buf)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	assert.Contains(t, buf.String(), `"uri":"/api/ping"`)
	assert.Contains(t, buf.String(), `"component":"http"`)
}

func TestRecoverTurnsPanicInto500(t *testing.T) {
	var buf bytes.Buffer
	e := newServer(t, &buf)

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/boom", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	var buf bytes.Buffer
	e := newServer(t, &buf)

	req := httptest.NewRequest(http.MethodOptions, "/api/ping", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodGet)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
