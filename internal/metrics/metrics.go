package metrics

import (
	"database/sql"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// EndpointMetrics tracks metrics for a specific endpoint
type EndpointMetrics struct {
	Requests     int64
	Errors       int64
	TotalLatency int64
}

// Metrics holds all application metrics
type Metrics struct {
	mu sync.RWMutex

	// Request metrics
	TotalRequests      int64
	SuccessfulRequests int64
	FailedRequests     int64

	// Request latency (in milliseconds)
	TotalLatency int64
	RequestCount int64

	// Estimate metrics
	EstimatesComputed int64
	EstimatesNoData   int64
	EstimateErrors    int64

	// Best-slot scan metrics
	BestSlotScans  int64
	BestSlotNoData int64

	// Check-in metrics
	SignalsAccepted int64
	SignalsRejected int64
	SignalErrors    int64

	// Explanation metrics
	ExplanationsGenerated int64
	ExplanationFallbacks  int64

	// Report generation metrics
	ReportsGenerated int64
	ReportErrors     int64

	// WebSocket metrics
	WSConnections int64
	WSMessagesIn  int64
	WSMessagesOut int64

	// Endpoint-specific metrics
	EndpointMetrics map[string]*EndpointMetrics

	// Start time for uptime calculation
	StartTime time.Time
}

// global metrics instance
var globalMetrics *Metrics
var once sync.Once

// Init initializes the global metrics instance
func Init() {
	once.Do(func() {
		globalMetrics = &Metrics{
			StartTime:       time.Now(),
			EndpointMetrics: make(map[string]*EndpointMetrics),
		}
	})
}

// Get returns the global metrics instance
func Get() *Metrics {
	if globalMetrics == nil {
		Init()
	}
	return globalMetrics
}

// IncrementRequests increments request counters
func (m *Metrics) IncrementRequests(success bool, latencyMs int64) {
	atomic.AddInt64(&m.TotalRequests, 1)
	atomic.AddInt64(&m.TotalLatency, latencyMs)
	atomic.AddInt64(&m.RequestCount, 1)

	if success {
		atomic.AddInt64(&m.SuccessfulRequests, 1)
	} else {
		atomic.AddInt64(&m.FailedRequests, 1)
	}
}

// IncrementEstimate tracks one estimate request outcome
func (m *Metrics) IncrementEstimate(outcome string) {
	switch outcome {
	case "ok":
		atomic.AddInt64(&m.EstimatesComputed, 1)
	case "no_data":
		atomic.AddInt64(&m.EstimatesNoData, 1)
	default:
		atomic.AddInt64(&m.EstimateErrors, 1)
	}
}

// IncrementBestSlotScan tracks one best-slot scan
func (m *Metrics) IncrementBestSlotScan(found bool) {
	atomic.AddInt64(&m.BestSlotScans, 1)
	if !found {
		atomic.AddInt64(&m.BestSlotNoData, 1)
	}
}

// IncrementSignal tracks an accepted or throttled check-in
func (m *Metrics) IncrementSignal(accepted bool) {
	if accepted {
		atomic.AddInt64(&m.SignalsAccepted, 1)
	} else {
		atomic.AddInt64(&m.SignalsRejected, 1)
	}
}

// IncrementSignalError tracks a failed signal write
func (m *Metrics) IncrementSignalError() {
	atomic.AddInt64(&m.SignalErrors, 1)
}

// IncrementExplanation tracks whether the text generator produced the
// explanation or the fixed fallback was used
func (m *Metrics) IncrementExplanation(generated bool) {
	if generated {
		atomic.AddInt64(&m.ExplanationsGenerated, 1)
	} else {
		atomic.AddInt64(&m.ExplanationFallbacks, 1)
	}
}

// IncrementReportGenerated increments report generation counters
func (m *Metrics) IncrementReportGenerated(success bool) {
	if success {
		atomic.AddInt64(&m.ReportsGenerated, 1)
	} else {
		atomic.AddInt64(&m.ReportErrors, 1)
	}
}

// IncrementWSConnection increments WebSocket connection counter
func (m *Metrics) IncrementWSConnection() {
	atomic.AddInt64(&m.WSConnections, 1)
}

// DecrementWSConnection decrements WebSocket connection counter
func (m *Metrics) DecrementWSConnection() {
	atomic.AddInt64(&m.WSConnections, -1)
}

// IncrementWSMessageIn increments WebSocket incoming message counter
func (m *Metrics) IncrementWSMessageIn() {
	atomic.AddInt64(&m.WSMessagesIn, 1)
}

// IncrementWSMessageOut increments WebSocket outgoing message counter
func (m *Metrics) IncrementWSMessageOut() {
	atomic.AddInt64(&m.WSMessagesOut, 1)
}

// TrackEndpoint tracks metrics for a specific endpoint
func (m *Metrics) TrackEndpoint(path, method string, statusCode int, latencyMs int64) {
	key := method + " " + path

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.EndpointMetrics == nil {
		m.EndpointMetrics = make(map[string]*EndpointMetrics)
	}

	em, exists := m.EndpointMetrics[key]
	if !exists {
		em = &EndpointMetrics{}
		m.EndpointMetrics[key] = em
	}

	atomic.AddInt64(&em.Requests, 1)
	atomic.AddInt64(&em.TotalLatency, latencyMs)
	if statusCode >= 400 {
		atomic.AddInt64(&em.Errors, 1)
	}
}

// GetEndpointMetrics returns a copy of endpoint metrics
func (m *Metrics) GetEndpointMetrics() map[string]EndpointMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]EndpointMetrics)
	for k, v := range m.EndpointMetrics {
		result[k] = EndpointMetrics{
			Requests:     atomic.LoadInt64(&v.Requests),
			Errors:       atomic.LoadInt64(&v.Errors),
			TotalLatency: atomic.LoadInt64(&v.TotalLatency),
		}
	}
	return result
}

// GetAverageLatency returns average request latency in milliseconds
func (m *Metrics) GetAverageLatency() float64 {
	count := atomic.LoadInt64(&m.RequestCount)
	if count == 0 {
		return 0
	}
	total := atomic.LoadInt64(&m.TotalLatency)
	return float64(total) / float64(count)
}

// GetUptime returns the application uptime
func (m *Metrics) GetUptime() time.Duration {
	return time.Since(m.StartTime)
}

// EndpointMetricsSnapshot represents endpoint metrics in a snapshot
type EndpointMetricsSnapshot struct {
	Requests     int64   `json:"requests"`
	Errors       int64   `json:"errors"`
	ErrorRate    float64 `json:"error_rate"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}

// MetricsSnapshot represents a point-in-time snapshot of all metrics
type MetricsSnapshot struct {
	// Uptime
	UptimeSeconds float64 `json:"uptime_seconds"`
	StartTime     string  `json:"start_time"`

	// Request metrics
	Requests struct {
		Total        int64   `json:"total"`
		Successful   int64   `json:"successful"`
		Failed       int64   `json:"failed"`
		AvgLatencyMs float64 `json:"avg_latency_ms"`
	} `json:"requests"`

	// Estimate metrics
	Estimates struct {
		Computed int64 `json:"computed"`
		NoData   int64 `json:"no_data"`
		Errors   int64 `json:"errors"`
	} `json:"estimates"`

	// Best-slot metrics
	BestSlot struct {
		Scans  int64 `json:"scans"`
		NoData int64 `json:"no_data"`
	} `json:"best_slot"`

	// Check-in metrics
	Signals struct {
		Accepted int64 `json:"accepted"`
		Rejected int64 `json:"rejected"`
		Errors   int64 `json:"errors"`
	} `json:"signals"`

	// Explanation metrics
	Explanations struct {
		Generated int64 `json:"generated"`
		Fallbacks int64 `json:"fallbacks"`
	} `json:"explanations"`

	// Report metrics
	Reports struct {
		Generated int64 `json:"generated"`
		Errors    int64 `json:"errors"`
	} `json:"reports"`

	// WebSocket metrics
	WebSocket struct {
		Connections int64 `json:"connections"`
		MessagesIn  int64 `json:"messages_in"`
		MessagesOut int64 `json:"messages_out"`
	} `json:"websocket"`

	// System metrics
	System struct {
		Goroutines   int    `json:"goroutines"`
		HeapAllocMB  uint64 `json:"heap_alloc_mb"`
		HeapInUseMB  uint64 `json:"heap_inuse_mb"`
		StackInUseMB uint64 `json:"stack_inuse_mb"`
		NumGC        uint32 `json:"num_gc"`
	} `json:"system"`

	// Endpoint-specific metrics (top endpoints by request count)
	Endpoints map[string]EndpointMetricsSnapshot `json:"endpoints,omitempty"`
}

// Snapshot returns a point-in-time snapshot of all metrics
func (m *Metrics) Snapshot() MetricsSnapshot {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	snapshot := MetricsSnapshot{}

	// Uptime
	snapshot.UptimeSeconds = m.GetUptime().Seconds()
	snapshot.StartTime = m.StartTime.Format(time.RFC3339)

	// Request metrics
	snapshot.Requests.Total = atomic.LoadInt64(&m.TotalRequests)
	snapshot.Requests.Successful = atomic.LoadInt64(&m.SuccessfulRequests)
	snapshot.Requests.Failed = atomic.LoadInt64(&m.FailedRequests)
	snapshot.Requests.AvgLatencyMs = m.GetAverageLatency()

	// Estimate metrics
	snapshot.Estimates.Computed = atomic.LoadInt64(&m.EstimatesComputed)
	snapshot.Estimates.NoData = atomic.LoadInt64(&m.EstimatesNoData)
	snapshot.Estimates.Errors = atomic.LoadInt64(&m.EstimateErrors)

	// Best-slot metrics
	snapshot.BestSlot.Scans = atomic.LoadInt64(&m.BestSlotScans)
	snapshot.BestSlot.NoData = atomic.LoadInt64(&m.BestSlotNoData)

	// Check-in metrics
	snapshot.Signals.Accepted = atomic.LoadInt64(&m.SignalsAccepted)
	snapshot.Signals.Rejected = atomic.LoadInt64(&m.SignalsRejected)
	snapshot.Signals.Errors = atomic.LoadInt64(&m.SignalErrors)

	// Explanation metrics
	snapshot.Explanations.Generated = atomic.LoadInt64(&m.ExplanationsGenerated)
	snapshot.Explanations.Fallbacks = atomic.LoadInt64(&m.ExplanationFallbacks)

	// Report metrics
	snapshot.Reports.Generated = atomic.LoadInt64(&m.ReportsGenerated)
	snapshot.Reports.Errors = atomic.LoadInt64(&m.ReportErrors)

	// WebSocket metrics
	snapshot.WebSocket.Connections = atomic.LoadInt64(&m.WSConnections)
	snapshot.WebSocket.MessagesIn = atomic.LoadInt64(&m.WSMessagesIn)
	snapshot.WebSocket.MessagesOut = atomic.LoadInt64(&m.WSMessagesOut)

	// System metrics
	snapshot.System.Goroutines = runtime.NumGoroutine()
	snapshot.System.HeapAllocMB = memStats.HeapAlloc / 1024 / 1024
	snapshot.System.HeapInUseMB = memStats.HeapInuse / 1024 / 1024
	snapshot.System.StackInUseMB = memStats.StackInuse / 1024 / 1024
	snapshot.System.NumGC = memStats.NumGC

	// Endpoint metrics
	endpointMetrics := m.GetEndpointMetrics()
	if len(endpointMetrics) > 0 {
		snapshot.Endpoints = make(map[string]EndpointMetricsSnapshot)
		for k, v := range endpointMetrics {
			em := EndpointMetricsSnapshot{
				Requests: v.Requests,
				Errors:   v.Errors,
			}
			if v.Requests > 0 {
				em.ErrorRate = float64(v.Errors) / float64(v.Requests) * 100
				em.AvgLatencyMs = float64(v.TotalLatency) / float64(v.Requests)
			}
			snapshot.Endpoints[k] = em
		}
	}

	return snapshot
}

// HealthStatus represents the health status of a component
type HealthStatus struct {
	Status  string `json:"status"` // "healthy", "degraded", "unhealthy"
	Message string `json:"message,omitempty"`
	Latency int64  `json:"latency_ms,omitempty"`
}

// HealthCheck represents the overall health check response
type HealthCheck struct {
	Status     string                  `json:"status"` // "healthy", "degraded", "unhealthy"
	Version    string                  `json:"version"`
	Uptime     string                  `json:"uptime"`
	Timestamp  string                  `json:"timestamp"`
	Components map[string]HealthStatus `json:"components"`
}

// CheckDatabaseHealth checks database connectivity
func CheckDatabaseHealth(db *sql.DB) HealthStatus {
	start := time.Now()

	if db == nil {
		return HealthStatus{
			Status:  "unhealthy",
			Message: "database connection not initialized",
		}
	}

	err := db.Ping()
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return HealthStatus{
			Status:  "unhealthy",
			Message: err.Error(),
			Latency: latency,
		}
	}

	// Check if latency is acceptable (< 100ms)
	if latency > 100 {
		return HealthStatus{
			Status:  "degraded",
			Message: "high latency",
			Latency: latency,
		}
	}

	return HealthStatus{
		Status:  "healthy",
		Latency: latency,
	}
}

// CheckMemoryHealth checks memory usage
func CheckMemoryHealth(maxHeapMB uint64) HealthStatus {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	heapMB := memStats.HeapAlloc / 1024 / 1024

	if heapMB > maxHeapMB {
		return HealthStatus{
			Status:  "unhealthy",
			Message: "heap memory exceeds limit",
		}
	}

	// Warn if using more than 80% of limit
	if heapMB > (maxHeapMB * 80 / 100) {
		return HealthStatus{
			Status:  "degraded",
			Message: "heap memory usage high",
		}
	}

	return HealthStatus{
		Status: "healthy",
	}
}

// DetermineOverallStatus determines overall health from component statuses
func DetermineOverallStatus(components map[string]HealthStatus) string {
	hasUnhealthy := false
	hasDegraded := false

	for _, status := range components {
		switch status.Status {
		case "unhealthy":
			hasUnhealthy = true
		case "degraded":
			hasDegraded = true
		}
	}

	if hasUnhealthy {
		return "unhealthy"
	}
	if hasDegraded {
		return "degraded"
	}
	return "healthy"
}
