package monitoring

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

const responseTimeWindow = 1000

// Metrics holds application metrics
type Metrics struct {
	RequestCount int64
	ErrorCount   int64
	StartTime    time.Time

	responseTimes []time.Duration
	responseMutex sync.RWMutex

	requestCountByStatus map[int]int64
	statusMutex          sync.RWMutex

	computations   map[string]int64
	highRiskByFlag map[string]int64
	domainMutex    sync.RWMutex

	RateLimitIPBlocks      int64
	RateLimitRedisErrors   int64
	RateLimitFallbackCount int64
}

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime:            time.Now(),
		responseTimes:        make([]time.Duration, 0, responseTimeWindow),
		requestCountByStatus: make(map[int]int64),
		computations:         make(map[string]int64),
		highRiskByFlag:       make(map[string]int64),
	}
}

// IncrementRequest increments the request count
func (m *Metrics) IncrementRequest() {
	atomic.AddInt64(&m.RequestCount, 1)
}

// IncrementError increments the error count
func (m *Metrics) IncrementError() {
	atomic.AddInt64(&m.ErrorCount, 1)
}

// RecordResponseTime keeps the most recent response times for percentiles
func (m *Metrics) RecordResponseTime(duration time.Duration) {
	m.responseMutex.Lock()
	defer m.responseMutex.Unlock()

	m.responseTimes = append(m.responseTimes, duration)
	if len(m.responseTimes) > responseTimeWindow {
		m.responseTimes = m.responseTimes[1:]
	}
}

// RecordRequestByStatus records request count by HTTP status code
func (m *Metrics) RecordRequestByStatus(statusCode int) {
	m.statusMutex.Lock()
	defer m.statusMutex.Unlock()
	m.requestCountByStatus[statusCode]++
}

// RecordComputation counts a computation for domain and each raised flag
func (m *Metrics) RecordComputation(domain string, flags []string) {
	m.domainMutex.Lock()
	defer m.domainMutex.Unlock()

	m.computations[domain]++
	for _, flag := range flags {
		m.highRiskByFlag[flag]++
	}
}

// IncrementRateLimitIPBlock increments IP-based rate limit blocks
func (m *Metrics) IncrementRateLimitIPBlock() {
	atomic.AddInt64(&m.RateLimitIPBlocks, 1)
}

// IncrementRateLimitRedisError increments Redis error count for rate limiting
func (m *Metrics) IncrementRateLimitRedisError() {
	atomic.AddInt64(&m.RateLimitRedisErrors, 1)
}

// IncrementRateLimitFallback increments fallback rate limiter usage count
func (m *Metrics) IncrementRateLimitFallback() {
	atomic.AddInt64(&m.RateLimitFallbackCount, 1)
}

// GetPercentileResponseTime calculates percentile response time
func (m *Metrics) GetPercentileResponseTime(percentile float64) time.Duration {
	m.responseMutex.RLock()
	times := make([]time.Duration, len(m.responseTimes))
	copy(times, m.responseTimes)
	m.responseMutex.RUnlock()

	if len(times) == 0 {
		return 0
	}

	sort.Slice(times, func(i, j int) bool {
		return times[i] < times[j]
	})

	index := int(float64(len(times)-1) * percentile / 100.0)
	if index >= len(times) {
		index = len(times) - 1
	}

	return times[index]
}

// GetStatusCodeDistribution returns request count by status code
func (m *Metrics) GetStatusCodeDistribution() map[int]int64 {
	m.statusMutex.RLock()
	defer m.statusMutex.RUnlock()

	distribution := make(map[int]int64, len(m.requestCountByStatus))
	for code, count := range m.requestCountByStatus {
		distribution[code] = count
	}
	return distribution
}

// GetComputationStats returns computation counts per domain and high-risk counts per flag
func (m *Metrics) GetComputationStats() map[string]interface{} {
	m.domainMutex.RLock()
	defer m.domainMutex.RUnlock()

	computations := make(map[string]int64, len(m.computations))
	for k, v := range m.computations {
		computations[k] = v
	}
	flags := make(map[string]int64, len(m.highRiskByFlag))
	for k, v := range m.highRiskByFlag {
		flags[k] = v
	}

	return map[string]interface{}{
		"by_domain":      computations,
		"high_risk_flag": flags,
	}
}

// GetRateLimitStats returns rate limiting statistics
func (m *Metrics) GetRateLimitStats() map[string]interface{} {
	return map[string]interface{}{
		"ip_blocks":      atomic.LoadInt64(&m.RateLimitIPBlocks),
		"redis_errors":   atomic.LoadInt64(&m.RateLimitRedisErrors),
		"fallback_count": atomic.LoadInt64(&m.RateLimitFallbackCount),
	}
}

// GetStats returns current metrics statistics
func (m *Metrics) GetStats() map[string]interface{} {
	requests := atomic.LoadInt64(&m.RequestCount)
	errors := atomic.LoadInt64(&m.ErrorCount)

	errorRate := float64(0)
	if requests > 0 {
		errorRate = float64(errors) / float64(requests) * 100
	}

	return map[string]interface{}{
		"uptime_seconds":     time.Since(m.StartTime).Seconds(),
		"total_requests":     requests,
		"error_count":        errors,
		"error_rate_percent": errorRate,
		"start_time":         m.StartTime.Format(time.RFC3339),

		"p50_response_time_ms":     float64(m.GetPercentileResponseTime(50)) / 1e6,
		"p95_response_time_ms":     float64(m.GetPercentileResponseTime(95)) / 1e6,
		"p99_response_time_ms":     float64(m.GetPercentileResponseTime(99)) / 1e6,
		"status_code_distribution": m.GetStatusCodeDistribution(),
		"computations":             m.GetComputationStats(),
		"rate_limit":               m.GetRateLimitStats(),
	}
}
