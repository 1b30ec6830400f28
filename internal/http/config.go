package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordbook/internal/audit"
	"github.com/mrlokans/wordbook/internal/metrics"
)

// RouterConfig contains all dependencies needed to create the HTTP router.
type RouterConfig struct {
	// Store backs every vocabulary endpoint.
	Store VocabularyStore

	// Database is pinged by /health. Optional.
	Database Pinger

	// TaskQueue enables /api/tasks and word enrichment. Optional.
	TaskQueue TaskQueue

	// StageExpiryAfter is the age used when stage expiry is run by hand.
	StageExpiryAfter time.Duration

	// Auditor archives created and deleted words. Optional.
	Auditor *audit.Auditor

	// Metrics records every request and serves /metrics. Optional.
	Metrics *metrics.Metrics

	// RateLimiter guards /api. Optional, see RateLimitMiddleware.
	RateLimiter gin.HandlerFunc

	// Application info
	Version string
}
