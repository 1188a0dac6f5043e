package httpapi

import (
	"context"
	"net/http"
	"time"
)

const (
	serviceName       = "VoltDrive Backend"
	healthPingTimeout = 2 * time.Second
)

type healthResponse struct {
	Status    string  `json:"status"`
	Service   string  `json:"service"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
	Database  string  `json:"database"`
}

// Health reports liveness together with the result of a store ping.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	resp := healthResponse{
		Status:    "ok",
		Service:   serviceName,
		Timestamp: now.UTC().Format(time.RFC3339Nano),
		Uptime:    now.Sub(h.started).Seconds(),
		Database:  "connected",
	}
	status := http.StatusOK

	if h.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()

		if err := h.ping(ctx); err != nil {
			h.logger.Warn(r.Context(), "database ping failed", "error", err.Error())
			resp.Status = "degraded"
			resp.Database = "disconnected"
			status = http.StatusServiceUnavailable
			w.Header().Set("X-DB-Status", "disconnected")
		}
	}

	writeJSON(w, status, resp)
}
