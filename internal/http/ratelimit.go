package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// CodeRateLimited is returned when a client exceeds the API rate limit.
const CodeRateLimited = "rate_limited"

// RateLimitMiddleware limits requests per client IP using an in-memory
// store. rate uses the limiter format: "<limit>-<S|M|H|D>", e.g. "300-M".
// An empty rate disables limiting and returns a nil handler.
func RateLimitMiddleware(rate string) (gin.HandlerFunc, error) {
	if rate == "" {
		return nil, nil
	}

	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", rate, err)
	}

	instance := limiter.New(memory.NewStore(), parsed)
	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Error: "too many requests",
				Code:  CodeRateLimited,
			})
		}),
	), nil
}
