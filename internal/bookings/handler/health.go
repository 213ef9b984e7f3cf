package handler

import (
	"net/http"

	"classbook/pkg/blob"
	"classbook/pkg/httputil"
	"classbook/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type HealthHandler struct {
	store blob.Store
	log   *logger.Logger
}

func NewHealthHandler(store blob.Store, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		store: store,
		log:   log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.log.Error("Health check failed", "error", err)
		if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
		}); writeErr != nil {
			h.log.Error("failed to write health response", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		h.log.Error("failed to write health response", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
}
