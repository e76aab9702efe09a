package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-service-template/internal/config"
	"github.com/MKhiriev/go-service-template/internal/service"
	"github.com/MKhiriev/go-service-template/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDemoHandler(t *testing.T, timeout time.Duration) *Handler {
	t.Helper()
	h, _ := newTestHandler(t, &service.Services{}, newTestConfig(timeout, config.EnvironmentDevelopment), &syncBuffer{})
	return h
}

func TestDemoOK(t *testing.T) {
	h := newDemoHandler(t, time.Second)

	rec := serve(h.handle(h.demoOK), requestWithID(http.MethodGet, "/ok", "rid-ok"))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "rid-ok", rec.Header().Get(models.HeaderRequestID))

	body := decodeBody(t, rec.Body.Bytes())
	assert.Equal(t, models.CodeOK, body["code"])
	assert.Equal(t, map[string]any{"hello": "world"}, body["data"])
}

func TestDemoError(t *testing.T) {
	h := newDemoHandler(t, time.Second)

	rec := serve(h.handle(h.demoError), httptest.NewRequest(http.MethodGet, "/err", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, models.ContentTypeProblemJSON, rec.Header().Get(models.HeaderContentType))

	body := decodeBody(t, rec.Body.Bytes())
	assert.Equal(t, "https://example.com/problems/validation", body["type"])
	assert.Equal(t, "Invalid input", body["title"])
	assert.Equal(t, float64(400), body["status"])
	assert.Equal(t, "The 'name' field is required.", body["detail"])
	assert.Equal(t, "/err", body["instance"])
}

func TestDemoTimeout_ThroughPipeline(t *testing.T) {
	buf := &syncBuffer{}
	h, _ := newTestHandler(t, &service.Services{}, newTestConfig(testTimeout, config.EnvironmentDevelopment), buf)

	start := time.Now()
	rec := serve(h.Init(), httptest.NewRequest(http.MethodGet, "/timeout", nil))

	assert.Less(t, time.Since(start), demoSlowFor)
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, models.CodeTimeout, decodeBody(t, rec.Body.Bytes())["code"])

	waitAbandoned(t, buf)
}

// waitAbandoned blocks until the /timeout route has observed cancellation and
// stopped logging.
func waitAbandoned(t *testing.T, buf *syncBuffer) {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(buf.messages("slow demo route abandoned")) == 1
	}, time.Second, 5*time.Millisecond, "abandoned /timeout handler did not exit")
}
