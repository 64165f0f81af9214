package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const checkTimeout = 5 * time.Second

// Status represents the health status of a service or dependency.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// CheckResult represents the health check result for a single dependency.
type CheckResult struct {
	Status    Status `json:"status"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Report represents the overall health status of the service.
type Report struct {
	Status  Status                 `json:"status"`
	Version string                 `json:"version,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// Checker performs health checks on service dependencies. Plan storage
// is the only hard dependency; the optimizer collaborator is optional,
// so its absence only degrades the report.
type Checker struct {
	redisClient      *redis.Client
	optimizerEnabled bool
	version          string
}

// NewChecker creates a new health checker with the given dependencies.
// redisClient may be nil when the service runs without plan storage.
func NewChecker(redisClient *redis.Client, optimizerEnabled bool, version string) *Checker {
	return &Checker{
		redisClient:      redisClient,
		optimizerEnabled: optimizerEnabled,
		version:          version,
	}
}

// Check pings every dependency and aggregates the results.
func (c *Checker) Check(ctx context.Context) *Report {
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	report := &Report{
		Status:  StatusHealthy,
		Version: c.version,
		Checks:  make(map[string]CheckResult),
	}

	if c.redisClient != nil {
		start := time.Now()
		if err := c.redisClient.Ping(checkCtx).Err(); err != nil {
			report.Status = StatusUnhealthy
			report.Checks["redis"] = CheckResult{
				Status: StatusUnhealthy,
				Error:  err.Error(),
			}
		} else {
			report.Checks["redis"] = CheckResult{
				Status:    StatusHealthy,
				LatencyMs: time.Since(start).Milliseconds(),
			}
		}
	}

	if c.optimizerEnabled {
		report.Checks["optimizer"] = CheckResult{Status: StatusHealthy}
	} else {
		report.Checks["optimizer"] = CheckResult{Status: StatusDegraded}
		if report.Status == StatusHealthy {
			report.Status = StatusDegraded
		}
	}

	return report
}

// LiveHandler returns a Gin handler for liveness probes.
func (c *Checker) LiveHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// ReadyHandler returns a Gin handler for readiness probes. Degraded
// still reports ready; only a failing hard dependency returns 503.
func (c *Checker) ReadyHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		report := c.Check(ctx.Request.Context())

		httpStatus := http.StatusOK
		if report.Status == StatusUnhealthy {
			httpStatus = http.StatusServiceUnavailable
		}

		ctx.JSON(httpStatus, report)
	}
}
