package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZanzyTHEbar/epi-index/internal/indices"
	"github.com/ZanzyTHEbar/epi-index/internal/monitoring"
	"github.com/ZanzyTHEbar/epi-index/internal/ratelimit"
)

func setupRouter(t *testing.T, limitPerMin int) (*gin.Engine, *monitoring.Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	metrics := monitoring.NewMetrics()
	logger := monitoring.NewLoggerWithWriter(io.Discard, slog.LevelInfo)
	limiter := ratelimit.NewRateLimiter(ratelimit.DisabledRedisClient(), ratelimit.Config{
		IPLimitPerMin:   limitPerMin,
		BurstMultiplier: 1,
		CleanupInterval: time.Hour,
	}, metrics)
	t.Cleanup(limiter.Close)

	return NewRouter(Dependencies{
		Engine:         indices.Default(),
		Metrics:        metrics,
		Logger:         logger,
		Limiter:        limiter,
		AllowedOrigins: []string{"*"},
	}), metrics
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, _ := json.Marshal(b)
		reader = bytes.NewBuffer(payload)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := setupRouter(t, 100)

	tests := []struct {
		name           string
		method         string
		expectedStatus int
	}{
		{"GET /health returns OK status", http.MethodGet, http.StatusOK},
		{"POST /health not found", http.MethodPost, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, tt.method, "/health", nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "ok", decode(t, w)["status"])
				assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
			}
		})
	}
}

func TestVectorBorneEndpoint(t *testing.T) {
	r, metrics := setupRouter(t, 100)

	tests := []struct {
		name             string
		body             interface{}
		expectedStatus   int
		validateResponse func(t *testing.T, response map[string]interface{})
	}{
		{
			name: "boundary house index and high breteau index",
			body: indices.VectorBorneCounters{
				HousesSurveyed: 200, PositiveHouses: 10, ContainersInspected: 400, PositiveContainers: 80,
			},
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, response map[string]interface{}) {
				assert.Equal(t, "vector", response["domain"])
				assert.Equal(t, map[string]interface{}{
					"houseIndex": 5.0, "containerIndex": 20.0, "breteauIndex": 40.0,
				}, response["indices"])
				assert.Equal(t, map[string]interface{}{
					"houseIndex": "5.0%", "containerIndex": "20.0%", "breteauIndex": "40.0",
				}, response["display"])
				assert.Equal(t, []interface{}{"breteauIndexHighRisk"}, response["flags"])
				assert.Equal(t, []interface{}{"High risk: Breteau Index above 20 threshold"}, response["warnings"])
			},
		},
		{
			name:           "all zero",
			body:           map[string]int{},
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, response map[string]interface{}) {
				assert.Equal(t, []interface{}{}, response["flags"])
				assert.Equal(t, 0.0, response["indices"].(map[string]interface{})["houseIndex"])
			},
		},
		{
			name:           "negative counter",
			body:           map[string]int{"housesSurveyed": 10, "positiveHouses": -1},
			expectedStatus: http.StatusBadRequest,
			validateResponse: func(t *testing.T, response map[string]interface{}) {
				assert.Equal(t, "validation", response["category"])
			},
		},
		{
			name:           "non integer counter",
			body:           `{"housesSurveyed": 2.5}`,
			expectedStatus: http.StatusBadRequest,
			validateResponse: func(t *testing.T, response map[string]interface{}) {
				assert.Equal(t, "validation", response["category"])
			},
		},
		{
			name:           "malformed JSON",
			body:           `{"housesSurveyed":`,
			expectedStatus: http.StatusBadRequest,
			validateResponse: func(t *testing.T, response map[string]interface{}) {
				assert.Equal(t, "validation", response["category"])
				assert.Equal(t, "[INVALID_INPUT] Malformed request body", response["error"])
				assert.Contains(t, response["fields"], "body")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/v1/indices/vector", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.validateResponse != nil {
				tt.validateResponse(t, decode(t, w))
			}
		})
	}

	computations := metrics.GetComputationStats()["by_domain"].(map[string]int64)
	assert.Equal(t, int64(2), computations["vector"])
}

func TestRodentBorneEndpoint(t *testing.T) {
	r, _ := setupRouter(t, 100)

	w := doJSON(r, http.MethodPost, "/api/v1/indices/rodent", indices.RodentBorneCounters{
		AreasInspected: 20, RodentSightings: 3,
		TrapsSet: 40, RodentsCaught: 6,
		WaterSamplesCollected: 30, ContaminatedSamples: 5,
	})
	require.Equal(t, http.StatusOK, w.Code)

	response := decode(t, w)
	assert.Equal(t, map[string]interface{}{
		"rodentIndex": "15.0%", "trapSuccessRate": "15.0%", "waterContaminationRate": "16.7%",
	}, response["display"])
	assert.Equal(t, []interface{}{"rodentIndexHighRisk", "waterContaminationHighRisk"}, response["flags"])
}

func TestFormEndpoints(t *testing.T) {
	r, _ := setupRouter(t, 100)

	t.Run("vector form parses leniently", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/v1/forms/vector", map[string]string{
			"housesSurveyed":      "100",
			"positiveHouses":      "33 houses",
			"containersInspected": "50",
			"positiveContainers":  "",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]interface{}{
			"houseIndex": 33.0, "containerIndex": 0.0, "breteauIndex": 0.0,
		}, decode(t, w)["indices"])
	})

	t.Run("rodent form clamps negatives", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/v1/forms/rodent", map[string]string{
			"areasInspected":  "-4",
			"rodentSightings": "2",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0.0, decode(t, w)["indices"].(map[string]interface{})["rodentIndex"])
	})

	t.Run("non string fields are rejected", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/v1/forms/vector", `{"housesSurveyed": 10}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRiskEndpoint(t *testing.T) {
	r, _ := setupRouter(t, 100)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedFlags  []interface{}
	}{
		{
			name:           "house index exactly on threshold",
			body:           map[string]interface{}{"domain": "vector", "indices": map[string]float64{"houseIndex": 5.0}},
			expectedStatus: http.StatusOK,
			expectedFlags:  []interface{}{},
		},
		{
			name:           "house index above threshold",
			body:           map[string]interface{}{"domain": "vector", "indices": map[string]float64{"houseIndex": 5.1}},
			expectedStatus: http.StatusOK,
			expectedFlags:  []interface{}{"houseIndexHighRisk"},
		},
		{
			name:           "unknown domain",
			body:           map[string]interface{}{"domain": "avian", "indices": map[string]float64{}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing domain",
			body:           map[string]interface{}{"indices": map[string]float64{}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative index",
			body:           map[string]interface{}{"domain": "rodent", "indices": map[string]float64{"rodentIndex": -1}},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/v1/risk", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedFlags != nil {
				assert.Equal(t, tt.expectedFlags, decode(t, w)["flags"])
			}
		})
	}
}

func TestRiskEndpointReturnsReport(t *testing.T) {
	r, _ := setupRouter(t, 100)

	w := doJSON(r, http.MethodPost, "/api/v1/risk", map[string]interface{}{
		"domain":  "vector",
		"indices": map[string]float64{"houseIndex": 6, "containerIndex": 12.5, "breteauIndex": 20},
	})
	require.Equal(t, http.StatusOK, w.Code)

	response := decode(t, w)
	assert.Equal(t, "vector", response["domain"])
	assert.Equal(t, map[string]interface{}{
		"houseIndex": "6.0%", "containerIndex": "12.5%", "breteauIndex": "20.0",
	}, response["display"])
	assert.Equal(t, []interface{}{"High risk: House Index above 5% threshold"}, response["warnings"])
	assert.NotContains(t, response["indices"], "rodentIndex")
}

func TestServicesHealthEndpoint(t *testing.T) {
	r, _ := setupRouter(t, 100)

	w := doJSON(r, http.MethodGet, "/health/services", nil)
	require.Equal(t, http.StatusOK, w.Code)

	response := decode(t, w)
	assert.Equal(t, "ok", response["status"])
	services := response["services"].(map[string]interface{})
	assert.Equal(t, "disabled", services["redis"].(map[string]interface{})["status"])
	assert.Equal(t, "closed", services["redis_breaker"].(map[string]interface{})["state"])
}

func TestThresholdsEndpoint(t *testing.T) {
	r, _ := setupRouter(t, 100)

	w := doJSON(r, http.MethodGet, "/api/v1/thresholds", nil)
	require.Equal(t, http.StatusOK, w.Code)

	response := decode(t, w)
	assert.Equal(t, map[string]interface{}{
		"houseIndex": 5.0, "breteauIndex": 20.0, "rodentIndex": 10.0, "waterContamination": 15.0,
	}, response["thresholds"])
}

func TestRateLimitAppliesToAPI(t *testing.T) {
	r, _ := setupRouter(t, 2)

	for i := 0; i < 2; i++ {
		w := doJSON(r, http.MethodGet, "/api/v1/thresholds", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(r, http.MethodGet, "/api/v1/thresholds", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "rate_limit", decode(t, w)["category"])

	health := doJSON(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := setupRouter(t, 100)

	doJSON(r, http.MethodPost, "/api/v1/indices/rodent", indices.RodentBorneCounters{})
	w := doJSON(r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	response := decode(t, w)
	assert.Contains(t, response, "computations")
	assert.Contains(t, response, "rate_limiter")
}
