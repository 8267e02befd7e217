package infra

import (
	"net/http"
	"net/url"
	"time"

	"github.com/mandalnilabja/msgrelay/internal/transport/http/handler/shared"
	"github.com/mandalnilabja/msgrelay/internal/version"
)

// Status returns name, version, upstream host and uptime.
func (h *Handlers) Status(w http.ResponseWriter, r *http.Request) {
	upstreamHost := ""
	if u, err := url.Parse(h.UpstreamURL); err == nil {
		upstreamHost = u.Host
	}

	shared.WriteJSON(w, map[string]any{
		"name":           version.Name,
		"version":        version.Version,
		"status":         "running",
		"upstream":       upstreamHost,
		"uptime_seconds": int64(time.Since(h.StartTime).Seconds()),
	}, http.StatusOK)
}

// HealthCheck handler returns the application health status.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, map[string]string{
		"status": "active",
		"app":    version.Name,
	}, http.StatusOK)
}
