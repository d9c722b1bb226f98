package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataprofiler/adapters/cache"
	"dataprofiler/adapters/comparison"
	"dataprofiler/adapters/profiling"
	"dataprofiler/adapters/sampling"
	"dataprofiler/adapters/workerpool"
	"dataprofiler/internal/config"
	"dataprofiler/internal/logging"
	"dataprofiler/internal/orchestrator"
	"dataprofiler/ports"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	rngFactory := sampling.Factory{}
	sampler := sampling.NewSampler(rngFactory)
	pool := workerpool.New()
	engine := profiling.NewEngine(pool, 1000, 1000, ports.PoolOptions{MaxWorkers: 4, ChunkSize: 50, TimeoutMs: 5000})
	store, err := cache.New(t.TempDir(), time.Hour, logging.New(logging.LevelError))
	require.NoError(t, err)
	comparator := comparison.New()
	orch := orchestrator.New(rngFactory, sampler, pool, engine, store, comparator)

	cfg := &config.Config{
		Server:     config.ServerConfig{Port: "5000", Env: "development"},
		RateLimit:  config.RateLimitConfig{RequestsPerWindow: 1000, Window: 15 * time.Minute},
		CORS:       config.CORSConfig{AllowedOrigins: []string{"*"}},
		Cache:      config.CacheConfig{},
		WorkerPool: config.WorkerPoolConfig{MaxWorkers: 4, DefaultChunkSize: 50, DefaultTimeout: 5 * time.Second, ParallelThreshold: 1000},
	}
	return New(orch, cfg, logging.New(logging.LevelError))
}

func doRequest(s *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestProfileUsageEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/api/profile", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProfileEndpointHappyPath(t *testing.T) {
	s := newTestServer(t)
	payload, _ := json.Marshal(map[string]interface{}{
		"csv": "a,b\n1,x\n2,y\n3,x\n",
	})

	rec := doRequest(s, http.MethodPost, "/api/profile", payload)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestProfileEndpointRejectsMalformedBody(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodPost, "/api/profile", []byte("not json"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileEndpointRejectsMissingCSV(t *testing.T) {
	s := newTestServer(t)
	payload, _ := json.Marshal(map[string]interface{}{"csv": ""})
	rec := doRequest(s, http.MethodPost, "/api/profile", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareEndpointHappyPath(t *testing.T) {
	s := newTestServer(t)
	payload, _ := json.Marshal(map[string]interface{}{
		"dataset1": []map[string]interface{}{{"a": 1.0}, {"a": 2.0}},
		"dataset2": []map[string]interface{}{{"a": 1.0}, {"a": 2.0}, {"a": 3.0}},
	})

	rec := doRequest(s, http.MethodPost, "/api/compare", payload)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
}

func TestBodySizeLimitRejectsOversizedPayload(t *testing.T) {
	s := newTestServer(t)
	huge := bytes.Repeat([]byte("a"), maxBodyBytes+1)
	payload, _ := json.Marshal(map[string]interface{}{"csv": string(huge)})

	rec := doRequest(s, http.MethodPost, "/api/profile", payload)
	assert.NotEqual(t, http.StatusOK, rec.Code)
}
