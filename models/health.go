package models

import "time"

// HealthReport is the result of a health capability call. Handlers copy it
// into an envelope field by field.
type HealthReport struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Count   int            `json:"count,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Healthy reports whether the report carries the OK code.
func (r HealthReport) Healthy() bool {
	return r.Code == CodeOK
}

// ComponentStatus describes the state of a single dependency probed by the
// readiness check.
type ComponentStatus struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// Component status values.
const (
	ComponentUp       = "up"
	ComponentDown     = "down"
	ComponentDisabled = "disabled"
)

// AppInfo is returned by the aggregate health endpoint.
type AppInfo struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	Environment string    `json:"environment"`
	StartedAt   time.Time `json:"started_at"`
	UptimeMS    int64     `json:"uptime_ms"`
}
