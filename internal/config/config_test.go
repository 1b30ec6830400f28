package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(DefaultPort), cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 2, cfg.ShutdownTimeoutInSeconds)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, DefaultAuditDir, cfg.Audit.Dir)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 2, cfg.Tasks.Workers)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
	assert.False(t, cfg.StageExpiry.Enabled)
	assert.Equal(t, "0 3 * * *", cfg.Schedule)
	assert.Equal(t, 7*24*time.Hour, cfg.After)
	assert.Equal(t, DefaultDictionaryBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultRateLimit, cfg.RateLimit)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestNewConfig_Environment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_PATH", "/data/words.db")
	t.Setenv("AUDIT_DIR", "")
	t.Setenv("TASKS_ENABLED", "false")
	t.Setenv("TASK_WORKERS", "4")
	t.Setenv("STAGE_EXPIRY_ENABLED", "true")
	t.Setenv("STAGE_EXPIRY_SCHEDULE", "*/30 * * * *")
	t.Setenv("STAGE_EXPIRY_AFTER", "36h")
	t.Setenv("DICTIONARY_BASE_URL", "http://localhost:9999")
	t.Setenv("RATE_LIMIT", "")
	t.Setenv("METRICS_ENABLED", "false")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.Port)
	assert.Equal(t, "/data/words.db", cfg.Database.Path)
	assert.Empty(t, cfg.Audit.Dir)
	assert.False(t, cfg.Tasks.Enabled)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.StageExpiry.Enabled)
	assert.Equal(t, "*/30 * * * *", cfg.Schedule)
	assert.Equal(t, 36*time.Hour, cfg.After)
	assert.Equal(t, "http://localhost:9999", cfg.BaseURL)
	assert.Empty(t, cfg.RateLimit)
	assert.False(t, cfg.Metrics.Enabled)
}
