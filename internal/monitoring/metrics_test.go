package monitoring

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.IncrementRequest()
	m.IncrementRequest()
	m.IncrementError()
	m.RecordRequestByStatus(200)
	m.RecordRequestByStatus(400)
	m.RecordRequestByStatus(400)

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats["total_requests"])
	assert.Equal(t, int64(1), stats["error_count"])
	assert.Equal(t, 50.0, stats["error_rate_percent"])
	assert.Equal(t, map[int]int64{200: 1, 400: 2}, m.GetStatusCodeDistribution())
}

func TestRecordComputation(t *testing.T) {
	m := NewMetrics()

	m.RecordComputation("vector", []string{"breteauIndexHighRisk"})
	m.RecordComputation("vector", nil)
	m.RecordComputation("rodent", []string{"rodentIndexHighRisk", "waterContaminationHighRisk"})

	stats := m.GetComputationStats()
	assert.Equal(t, map[string]int64{"vector": 2, "rodent": 1}, stats["by_domain"])
	assert.Equal(t, map[string]int64{
		"breteauIndexHighRisk":       1,
		"rodentIndexHighRisk":        1,
		"waterContaminationHighRisk": 1,
	}, stats["high_risk_flag"])
}

func TestPercentileResponseTime(t *testing.T) {
	m := NewMetrics()
	assert.Equal(t, time.Duration(0), m.GetPercentileResponseTime(95))

	for i := 1; i <= 100; i++ {
		m.RecordResponseTime(time.Duration(i) * time.Millisecond)
	}

	assert.Equal(t, 50*time.Millisecond, m.GetPercentileResponseTime(50))
	assert.Equal(t, 100*time.Millisecond, m.GetPercentileResponseTime(100))
}

func TestResponseTimeWindowIsBounded(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < responseTimeWindow; j++ {
				m.RecordResponseTime(time.Millisecond)
			}
		}()
	}
	wg.Wait()

	m.responseMutex.RLock()
	defer m.responseMutex.RUnlock()
	assert.Len(t, m.responseTimes, responseTimeWindow)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestComputationLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelInfo)

	logger.ComputationLogger("vector", nil, time.Microsecond)
	assert.Empty(t, buf.String())

	logger.ComputationLogger("vector", []string{"houseIndexHighRisk"}, time.Microsecond)
	assert.Contains(t, buf.String(), `"flags":["houseIndexHighRisk"]`)
	assert.Contains(t, buf.String(), `"timestamp"`)
}
