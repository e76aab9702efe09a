package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-service-template/internal/cache"
	"github.com/MKhiriev/go-service-template/internal/config"
	"github.com/MKhiriev/go-service-template/internal/logger"
	"github.com/MKhiriev/go-service-template/internal/service"
	"github.com/MKhiriev/go-service-template/internal/store"
	"github.com/MKhiriev/go-service-template/models"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer runs the real route tree over real services with no database
// and a local cache.
func newTestServer(t *testing.T, timeout time.Duration) (*resty.Client, *syncBuffer) {
	t.Helper()

	cfg := newTestConfig(timeout, config.EnvironmentDevelopment)
	cfg.Cache = config.Cache{
		Backend:         config.CacheBackendLocal,
		StateTTL:        time.Minute,
		StateCapacity:   100,
		SessionTTL:      time.Minute,
		SessionCapacity: 100,
	}

	registry, err := cache.NewRegistry(t.Context(), cfg.Cache, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = registry.Close() })

	services, err := service.NewServices(&store.Storages{}, registry, cfg, time.Now(), logger.Nop())
	require.NoError(t, err)

	buf := &syncBuffer{}
	h, _ := newTestHandler(t, services, cfg, buf)

	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	return resty.New().SetBaseURL(srv.URL), buf
}

func decodeResty(t *testing.T, resp *resty.Response) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(resp.Body(), &out), "body: %s", resp.Body())
	return out
}

func TestE2E_DemoRoutes(t *testing.T) {
	client, buf := newTestServer(t, 200*time.Millisecond)

	ok, err := client.R().SetHeader(models.HeaderRequestID, "e2e-ok").Get("/ok")
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, ok.StatusCode())
	assert.Equal(t, "e2e-ok", ok.Header().Get(models.HeaderRequestID))
	okBody := decodeResty(t, ok)
	assert.Equal(t, "e2e-ok", okBody["request_id"])
	assert.Equal(t, map[string]any{"hello": "world"}, okBody["data"])

	problem, err := client.R().Get("/err")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, problem.StatusCode())
	assert.Equal(t, models.ContentTypeProblemJSON, problem.Header().Get(models.HeaderContentType))
	assert.NotEmpty(t, problem.Header().Get(models.HeaderRequestID))

	slow, err := client.R().Get("/timeout")
	require.NoError(t, err)
	assert.Equal(t, http.StatusGatewayTimeout, slow.StatusCode())
	assert.Equal(t, float64(200), metaOf(t, decodeResty(t, slow))["timeout_ms"])

	missing, err := client.R().Get("/nope")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode())

	assert.Eventually(t, func() bool {
		return len(buf.accessRecords()) == 4
	}, time.Second, 10*time.Millisecond)

	waitAbandoned(t, buf)
}

func TestE2E_HealthAndAuth(t *testing.T) {
	client, _ := newTestServer(t, time.Second)

	health, err := client.R().Get("/api/v1/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, health.StatusCode())
	assert.Equal(t, "test-service", decodeResty(t, health)["data"].(map[string]any)["name"])

	ready, err := client.R().Get("/api/v1/health/ready")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, ready.StatusCode())

	// nothing marks the service as started in this test
	started, err := client.R().Get("/api/v1/health/started")
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, started.StatusCode())
	assert.Equal(t, models.CodeUnavailable, decodeResty(t, started)["code"])

	login, err := client.R().
		SetHeader(models.HeaderContentType, models.ContentTypeJSON).
		SetBody(map[string]string{"login": "alice", "password": "secret"}).
		Post("/api/v1/auth/login")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotImplemented, login.StatusCode())
	assert.Equal(t, models.CodeNotImplemented, decodeResty(t, login)["code"])

	metrics, err := client.R().Get("/metrics")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, metrics.StatusCode())
	assert.Contains(t, metrics.String(), "test_http_requests_total")
}
