package handler

import (
	"context"
	"net/http"
	"time"
)

type ServiceHealth struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // up, down, unknown
	Details string `json:"details,omitempty"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	services := []ServiceHealth{
		h.checkPostgres(ctx),
		h.checkS3(ctx),
	}

	status := "healthy"
	for _, s := range services {
		if s.Status == "down" {
			status = "degraded"
		}
	}

	writeJSON(w, map[string]interface{}{
		"status":   status,
		"services": services,
	})
}

func (h *Handler) checkPostgres(ctx context.Context) ServiceHealth {
	if err := h.db.Ping(ctx); err != nil {
		return ServiceHealth{Name: "postgres", Status: "down", Details: err.Error()}
	}
	return ServiceHealth{Name: "postgres", Status: "up"}
}

func (h *Handler) checkS3(ctx context.Context) ServiceHealth {
	if h.logs == nil {
		return ServiceHealth{Name: "s3", Status: "unknown", Details: "not configured"}
	}
	if err := h.logs.Healthy(ctx); err != nil {
		return ServiceHealth{Name: "s3", Status: "down", Details: err.Error()}
	}
	return ServiceHealth{Name: "s3", Status: "up"}
}
