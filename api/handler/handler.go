package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"

	"execview/api/model"
)

var validExecutionIDRe = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

type ExecutionStore interface {
	GetExecution(ctx context.Context, id string) (*model.HistoryEntry, error)
	Ping(ctx context.Context) error
}

type LogArchive interface {
	GetLog(ctx context.Context, key string) (string, error)
	Healthy(ctx context.Context) error
}

type Handler struct {
	db     ExecutionStore
	logs   LogArchive
	logger *slog.Logger
}

// New builds the history handler. logs may be nil when no archive is
// configured; entries then serve their inline output.
func New(db ExecutionStore, logs LogArchive, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{db: db, logs: logs, logger: logger}
}

// ValidateExecutionID is middleware that rejects requests with malformed
// execution ids.
func ValidateExecutionID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !validExecutionIDRe.MatchString(id) {
			http.Error(w, "invalid execution id", http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
