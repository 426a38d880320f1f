// Package health serves liveness and readiness endpoints for a pawswap node.
//
// The health check system supports multiple endpoints:
//   - /health - Basic liveness check
//   - /health/ready - Readiness check for load balancers
//   - /health/detailed - Component status including AMM invariants
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/gorilla/mux"
)

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// ComponentHealth represents the health status of a single component
type ComponentHealth struct {
	Status    Status                 `json:"status"`
	Message   string                 `json:"message,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metrics   map[string]interface{} `json:"metrics,omitempty"`
}

// HealthCheck represents the overall health check response
type HealthCheck struct {
	Status     Status                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// StateSource is the application state the checker inspects.
type StateSource interface {
	LastBlockHeight() int64
	CheckInvariants(ctx context.Context) (string, bool)
}

// Checker performs health checks against the application state
type Checker struct {
	logger  log.Logger
	source  StateSource
	version string

	mu            sync.RWMutex
	lastCheck     time.Time
	cachedHealth  *HealthCheck
	cacheDuration time.Duration
}

// NewChecker creates a new health checker
func NewChecker(logger log.Logger, source StateSource, version string, cacheDuration time.Duration) *Checker {
	return &Checker{
		logger:        logger,
		source:        source,
		version:       version,
		cacheDuration: cacheDuration,
	}
}

// Check performs a health check. Non-detailed results are cached for the
// configured duration.
func (c *Checker) Check(ctx context.Context, detailed bool) *HealthCheck {
	if !detailed && c.shouldUseCached() {
		c.mu.RLock()
		defer c.mu.RUnlock()
		return c.cachedHealth
	}

	health := &HealthCheck{
		Timestamp:  time.Now(),
		Version:    c.version,
		Components: make(map[string]ComponentHealth),
	}
	health.Components["store"] = c.checkStore()
	if detailed {
		health.Components["invariants"] = c.checkInvariants(ctx)
	}
	health.Status = calculateOverallStatus(health.Components)

	c.mu.Lock()
	c.lastCheck = time.Now()
	c.cachedHealth = health
	c.mu.Unlock()

	return health
}

// checkStore reports the committed height of the state store
func (c *Checker) checkStore() ComponentHealth {
	height := c.source.LastBlockHeight()
	status := StatusHealthy
	message := "state committed"
	if height == 0 {
		status = StatusDegraded
		message = "no committed state yet"
	}
	return ComponentHealth{
		Status:    status,
		Message:   message,
		Timestamp: time.Now(),
		Metrics:   map[string]interface{}{"height": height},
	}
}

// checkInvariants runs the AMM invariants; any broken one is unhealthy
func (c *Checker) checkInvariants(ctx context.Context) ComponentHealth {
	msg, broken := c.source.CheckInvariants(ctx)
	if broken {
		c.logger.Error("invariant broken", "details", msg)
		return ComponentHealth{Status: StatusUnhealthy, Message: msg, Timestamp: time.Now()}
	}
	return ComponentHealth{Status: StatusHealthy, Message: "all invariants hold", Timestamp: time.Now()}
}

// calculateOverallStatus determines the overall health status based on component statuses
func calculateOverallStatus(components map[string]ComponentHealth) Status {
	hasDegraded := false
	for _, component := range components {
		switch component.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			hasDegraded = true
		}
	}
	if hasDegraded {
		return StatusDegraded
	}
	return StatusHealthy
}

// shouldUseCached determines if cached health check results should be used
func (c *Checker) shouldUseCached() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.cachedHealth == nil {
		return false
	}
	return time.Since(c.lastCheck) < c.cacheDuration
}

// RegisterRoutes registers health check endpoints on the router
func (c *Checker) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", c.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", c.handleHealthReady).Methods(http.MethodGet)
	router.HandleFunc("/health/detailed", c.handleHealthDetailed).Methods(http.MethodGet)
}

// handleHealth handles the basic liveness check endpoint
func (c *Checker) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleHealthReady handles the readiness check endpoint; degraded is still ready
func (c *Checker) handleHealthReady(w http.ResponseWriter, r *http.Request) {
	health := c.Check(r.Context(), false)
	statusCode := http.StatusOK
	if health.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, statusCode, health)
}

// handleHealthDetailed handles the detailed health check endpoint
func (c *Checker) handleHealthDetailed(w http.ResponseWriter, r *http.Request) {
	health := c.Check(r.Context(), true)
	statusCode := http.StatusOK
	if health.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, statusCode, health)
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}
