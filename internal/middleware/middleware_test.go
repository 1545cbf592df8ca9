package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-booking-api/internal/auth"
	"clinic-booking-api/internal/middleware"
)

const secret = "middleware-test-secret"

func get(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	e := echo.New()
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get(middleware.UserIDKey).(string))
	}, middleware.Auth(secret))

	assert.Equal(t, http.StatusUnauthorized, get(e, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(e, "not-a-jwt").Code)

	tok, err := auth.MakeToken("user-1", "patient", secret)
	require.NoError(t, err)
	rec := get(e, tok)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Body.String())
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	e.GET("/ping", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, middleware.Auth(secret), middleware.RequireRole("doctor"))

	patientTok, err := auth.MakeToken("user-1", "patient", secret)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, get(e, patientTok).Code)

	doctorTok, err := auth.MakeToken("user-2", "doctor", secret)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(e, doctorTok).Code)
}

func TestRateLimit(t *testing.T) {
	e := echo.New()
	e.GET("/ping", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, middleware.RateLimit(middleware.NewRateLimiter(1, 2)))

	assert.Equal(t, http.StatusOK, get(e, "").Code)
	assert.Equal(t, http.StatusOK, get(e, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(e, "").Code, "burst exhausted")
}
