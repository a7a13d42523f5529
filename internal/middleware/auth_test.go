package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/pkg/config"
	"storefront-service/prometheus"
)

func TestMain(m *testing.M) {
	prometheus.InitMetrics(&config.Config{
		Metrics: config.MetricsConfig{Prefix: "middleware_test"},
	})
	os.Exit(m.Run())
}

func callGuarded(t *testing.T, token, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	guarded := AdminAuth(token)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, guarded(c))
	return rec
}

func TestAdminAuthAcceptsExactToken(t *testing.T) {
	rec := callGuarded(t, "secret", "Bearer secret")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminAuthBearerIsCaseInsensitive(t *testing.T) {
	rec := callGuarded(t, "secret", "bearer secret")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminAuthRejectsMissingHeader(t *testing.T) {
	rec := callGuarded(t, "secret", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestAdminAuthRejectsMalformedHeader(t *testing.T) {
	for _, header := range []string{"secret", "Basic secret", "Bearer"} {
		rec := callGuarded(t, "secret", header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAdminAuthRejectsWrongToken(t *testing.T) {
	rec := callGuarded(t, "secret", "Bearer not-the-secret")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
