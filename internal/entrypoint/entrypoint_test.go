package entrypoint

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/wordbook/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Database: config.Database{Path: filepath.Join(dir, "wordbook.db")},
		Audit:    config.Audit{Dir: filepath.Join(dir, "audit")},
		Tasks: config.Tasks{
			Enabled:         true,
			Workers:         1,
			ReleaseAfter:    time.Minute,
			CleanupInterval: time.Hour,
		},
		StageExpiry: config.StageExpiry{
			Enabled:  true,
			Schedule: "0 3 * * *",
			After:    24 * time.Hour,
		},
	}
}

func TestNewApp(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := NewApp(testConfig(t), "test")
	require.NoError(t, err)

	require.NotNil(t, app.TaskClient)
	require.NotNil(t, app.Scheduler)
	assert.True(t, app.Scheduler.IsRunning())

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest("GET", "/api/tasks/types", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	app.Shutdown(ctx)
	assert.False(t, app.Scheduler.IsRunning())
}

func TestNewApp_TasksDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)
	cfg.Tasks.Enabled = false

	app, err := NewApp(cfg, "test")
	require.NoError(t, err)
	defer app.Shutdown(context.Background())

	assert.Nil(t, app.TaskClient)
	assert.Nil(t, app.Scheduler)

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest("GET", "/api/tasks/types", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewApp_InvalidSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.StageExpiry.Schedule = "whenever"

	_, err := NewApp(cfg, "test")

	assert.Error(t, err)
}

func TestNewApp_MetricsAndRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)
	cfg.Tasks.Enabled = false
	cfg.StageExpiry.Enabled = false
	cfg.Metrics.Enabled = true
	cfg.HTTP.RateLimit = "100-M"

	app, err := NewApp(cfg, "test")
	require.NoError(t, err)
	defer app.Shutdown(context.Background())

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest("GET", "/api/words", nil))
	assert.Equal(t, "100", w.Header().Get("X-RateLimit-Limit"))
}

func TestNewApp_InvalidRateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.HTTP.RateLimit = "fast"

	_, err := NewApp(cfg, "test")

	assert.Error(t, err)
}
