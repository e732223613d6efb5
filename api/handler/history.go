package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"execview/api/model"
	"execview/api/store"
)

func (h *Handler) GetLongExecutionLog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := h.db.GetExecution(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "execution not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("get execution failed", "id", id, "error", err)
		http.Error(w, "failed to load execution", http.StatusInternalServerError)
		return
	}

	log := entry.Output
	if entry.LogKey != "" && h.logs != nil {
		archived, err := h.logs.GetLog(r.Context(), entry.LogKey)
		if err != nil {
			h.logger.Error("get archived log failed", "id", id, "key", entry.LogKey, "error", err)
			http.Error(w, "failed to load execution log", http.StatusInternalServerError)
			return
		}
		log = archived
	}

	writeJSON(w, model.ToLongExecutionLog(entry, log, entry.Running()))
}
