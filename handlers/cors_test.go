package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetracker/config"
	"timetracker/mailer"
)

func newRouterWithOrigins(t *testing.T, origins []string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	os.Setenv("SECRET_KEY", "cors-test-secret")
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.AllowedOrigins = origins

	db, err := config.OpenDB(fmt.Sprintf("sqlite://file:%s?mode=memory&cache=shared", uuid.NewString()), false)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	return SetupRouter(db, cfg, mailer.New(cfg))
}

func TestCORSAllowedOriginEchoed(t *testing.T) {
	router := newRouterWithOrigins(t, []string{"http://localhost:3000", "http://localhost:5173"})

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))
}

func TestCORSDisallowedOriginOmitted(t *testing.T) {
	router := newRouterWithOrigins(t, []string{"http://localhost:3000"})

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://evil.example")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWildcardAllowsAll(t *testing.T) {
	router := newRouterWithOrigins(t, []string{"*"})

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://anywhere.example")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	router := newRouterWithOrigins(t, []string{"http://localhost:3000"})

	req := httptest.NewRequest("OPTIONS", "/api/v1/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}
