package monitoring

import (
	"context"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// CheckFunc probes a single dependency. A nil return means healthy.
type CheckFunc func(ctx context.Context) error

type CheckResult struct {
	Name    string    `json:"name"`
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
	LastRun time.Time `json:"last_run"`
}

type RequestStats struct {
	RequestCount    int64            `json:"request_count"`
	AvgDuration     string           `json:"avg_request_duration"`
	ActiveRequests  int64            `json:"active_requests"`
	ErrorCount      int64            `json:"error_count"`
	StatusCodes     map[string]int64 `json:"status_codes"`
	Endpoints       map[string]int64 `json:"endpoint_calls"`
	StartTime       time.Time        `json:"start_time"`
	LastRequest     time.Time        `json:"last_request"`
}

type SystemStats struct {
	Uptime         string `json:"uptime"`
	AllocMB        uint64 `json:"alloc_mb"`
	SysMB          uint64 `json:"sys_mb"`
	NumGC          uint32 `json:"num_gc"`
	GoroutineCount int    `json:"goroutine_count"`
	GoVersion      string `json:"go_version"`
}

// Monitor collects request counters and runs registered health checks.
type Monitor struct {
	mu             sync.RWMutex
	requestCount   int64
	errorCount     int64
	activeRequests int64
	totalDuration  time.Duration
	statusCodes    map[string]int64
	endpoints      map[string]int64
	startTime      time.Time
	lastRequest    time.Time

	checkMu sync.RWMutex
	checks  map[string]CheckFunc

	checkTimeout time.Duration
}

func NewMonitor() *Monitor {
	return &Monitor{
		statusCodes:  make(map[string]int64),
		endpoints:    make(map[string]int64),
		startTime:    time.Now(),
		checks:       make(map[string]CheckFunc),
		checkTimeout: 5 * time.Second,
	}
}

func (m *Monitor) RegisterCheck(name string, fn CheckFunc) {
	m.checkMu.Lock()
	defer m.checkMu.Unlock()
	m.checks[name] = fn
}

// RunChecks executes every registered check with a bounded timeout.
func (m *Monitor) RunChecks(ctx context.Context) map[string]CheckResult {
	m.checkMu.RLock()
	checks := make(map[string]CheckFunc, len(m.checks))
	for name, fn := range m.checks {
		checks[name] = fn
	}
	m.checkMu.RUnlock()

	results := make(map[string]CheckResult, len(checks))
	for name, fn := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, m.checkTimeout)
		result := CheckResult{Name: name, Status: "healthy", LastRun: time.Now()}
		if err := fn(checkCtx); err != nil {
			result.Status = "unhealthy"
			result.Message = err.Error()
		}
		cancel()
		results[name] = result
	}
	return results
}

func (m *Monitor) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		m.mu.Lock()
		m.activeRequests++
		m.mu.Unlock()

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()
		endpoint := c.Request.Method + " " + c.FullPath()

		m.mu.Lock()
		m.requestCount++
		m.activeRequests--
		m.totalDuration += duration
		m.lastRequest = time.Now()
		if statusCode >= 400 {
			m.errorCount++
		}
		m.statusCodes[http.StatusText(statusCode)]++
		m.endpoints[endpoint]++
		m.mu.Unlock()
	}
}

func (m *Monitor) Stats() RequestStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := RequestStats{
		RequestCount:   m.requestCount,
		ActiveRequests: m.activeRequests,
		ErrorCount:     m.errorCount,
		StatusCodes:    make(map[string]int64, len(m.statusCodes)),
		Endpoints:      make(map[string]int64, len(m.endpoints)),
		StartTime:      m.startTime,
		LastRequest:    m.lastRequest,
	}
	if m.requestCount > 0 {
		stats.AvgDuration = (m.totalDuration / time.Duration(m.requestCount)).String()
	}
	for k, v := range m.statusCodes {
		stats.StatusCodes[k] = v
	}
	for k, v := range m.endpoints {
		stats.Endpoints[k] = v
	}
	return stats
}

func (m *Monitor) systemStats() SystemStats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return SystemStats{
		Uptime:         time.Since(m.startTime).String(),
		AllocMB:        ms.Alloc / 1024 / 1024,
		SysMB:          ms.Sys / 1024 / 1024,
		NumGC:          ms.NumGC,
		GoroutineCount: runtime.NumGoroutine(),
		GoVersion:      runtime.Version(),
	}
}

func (m *Monitor) MetricsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"application": m.Stats(),
			"system":      m.systemStats(),
			"timestamp":   time.Now(),
		})
	}
}

func (m *Monitor) HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := m.RunChecks(c.Request.Context())

		overall := "healthy"
		for _, check := range checks {
			if check.Status != "healthy" {
				overall = "unhealthy"
				break
			}
		}

		status := http.StatusOK
		if overall != "healthy" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"status":    overall,
			"checks":    checks,
			"uptime":    time.Since(m.startTime).String(),
			"timestamp": time.Now(),
		})
	}
}
