package http

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-service-template/internal/config"
	"github.com/MKhiriev/go-service-template/internal/logger"
	"github.com/MKhiriev/go-service-template/internal/metrics"
	"github.com/MKhiriev/go-service-template/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for the concurrent writes the deadline
// layer produces.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// entries returns every JSON log line written so far.
func (b *syncBuffer) entries() []map[string]any {
	b.mu.Lock()
	raw := append([]byte(nil), b.buf.Bytes()...)
	b.mu.Unlock()

	var out []map[string]any
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &entry); err == nil {
			out = append(out, entry)
		}
	}
	return out
}

// accessRecords returns the access logger's records only.
func (b *syncBuffer) accessRecords() []map[string]any {
	var out []map[string]any
	for _, entry := range b.entries() {
		if _, ok := entry["latency_ms"]; ok {
			out = append(out, entry)
		}
	}
	return out
}

// messages returns the log lines whose message equals msg.
func (b *syncBuffer) messages(msg string) []map[string]any {
	var out []map[string]any
	for _, entry := range b.entries() {
		if entry["message"] == msg {
			out = append(out, entry)
		}
	}
	return out
}

func newTestConfig(timeout time.Duration, environment string) *config.StructuredConfig {
	return &config.StructuredConfig{
		App: config.App{
			Name:        "test-service",
			Environment: environment,
			Version:     "1.0.0",
		},
		Server: config.Server{
			RequestTimeout:     timeout,
			CORSAllowedOrigins: []string{"*"},
		},
	}
}

func newTestHandler(t *testing.T, services *service.Services, cfg *config.StructuredConfig, buf *syncBuffer) (*Handler, *metrics.Recorder) {
	t.Helper()

	recorder := metrics.NewRecorder("test")
	log := logger.NewLoggerWithLevel("test", "debug", buf)
	return NewHandler(services, cfg, recorder, log), recorder
}

// routedPipeline mounts register's routes the way Init does and wraps them in
// the full pipeline.
func routedPipeline(h *Handler, register func(r chi.Router)) http.Handler {
	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(h.withRoutePattern)
		register(r)
	})
	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.CheckHTTPMethod(router))
	return h.pipeline(router)
}

func decodeBody(t *testing.T, body []byte) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), "body: %s", body)
	return out
}

func metaOf(t *testing.T, body map[string]any) map[string]any {
	t.Helper()

	meta, ok := body["meta"].(map[string]any)
	require.True(t, ok, "meta missing in %v", body)
	return meta
}

// counterValue sums every sample of the named counter family.
func counterValue(t *testing.T, recorder *metrics.Recorder, name string) float64 {
	t.Helper()

	families, err := recorder.Registry().Gather()
	require.NoError(t, err)

	var total float64
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}
