package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Audit
		Global
		Database
		Tasks
		StageExpiry
		Dictionary
		Metrics
	}

	HTTP struct {
		Port      int32
		Host      string
		RateLimit string // Per client IP, e.g. "300-M"; empty disables
	}
	Audit struct {
		Dir string // Empty disables payload archiving
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	StageExpiry struct {
		Enabled  bool
		Schedule string        // Cron format: "0 3 * * *" = daily at 03:00
		After    time.Duration // Pending stage words untouched this long become FAIL
	}
	Dictionary struct {
		BaseURL string
	}
	Metrics struct {
		Enabled bool
	}
)

func NewConfig() *Config {
	return newConfig(viper.New())
}

func newConfig(v *viper.Viper) *Config {
	v.AutomaticEnv()
	// AUDIT_DIR="" has to mean "disabled" rather than "use the default".
	v.AllowEmptyEnv(true)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("rate_limit", DefaultRateLimit)
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("audit_dir", DefaultAuditDir)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Stage expiry defaults
	v.SetDefault("stage_expiry_enabled", false)
	v.SetDefault("stage_expiry_schedule", "0 3 * * *")
	v.SetDefault("stage_expiry_after", "168h") // 7 days

	v.SetDefault("dictionary_base_url", DefaultDictionaryBaseURL)

	return &Config{
		HTTP: HTTP{
			Port:      v.GetInt32("PORT"),
			Host:      v.GetString("HOST"),
			RateLimit: v.GetString("RATE_LIMIT"),
		},
		Audit: Audit{
			Dir: v.GetString("AUDIT_DIR"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		StageExpiry: StageExpiry{
			Enabled:  v.GetBool("STAGE_EXPIRY_ENABLED"),
			Schedule: v.GetString("STAGE_EXPIRY_SCHEDULE"),
			After:    v.GetDuration("STAGE_EXPIRY_AFTER"),
		},
		Dictionary: Dictionary{
			BaseURL: v.GetString("DICTIONARY_BASE_URL"),
		},
		Metrics: Metrics{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}
}
