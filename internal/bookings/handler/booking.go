package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"classbook/internal/bookings/service"
	apperrors "classbook/pkg/errors"
	"classbook/pkg/httputil"
	"classbook/pkg/logger"
	"classbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const bookingsPath = "/api/v1/bookings"

// BookingHandler exposes the booking API on a single path, dispatching on
// method and query parameters the way the public booking form expects.
type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(svc service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: svc,
		log:     log,
	}
}

// Get serves both the availability check (?classId=...) and the admin
// listing (?admin=true&key=...).
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	params := r.URL.Query()

	if params.Get("admin") == "true" && params.Get("key") != "" {
		records, err := h.service.ListAll(r.Context(), params.Get("key"))
		if err != nil {
			h.writeError(w, "Get", err)
			return
		}
		h.writeJSON(w, "Get", http.StatusOK, records)
		return
	}

	classID := params.Get("classId")
	if classID == "" {
		h.writeMessage(w, "Get", http.StatusBadRequest, "Missing classId parameter")
		return
	}

	h.writeJSON(w, "Get", http.StatusOK, h.service.GetAvailability(r.Context(), classID))
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeMessage(w, "Create", http.StatusBadRequest, "Invalid request body")
		return
	}

	confirmation, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	h.writeJSON(w, "Create", http.StatusOK, confirmation)
}

// Delete resets one class (?key=...&classId=...) or every class
// (?key=...&resetAll=true).
func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	params := r.URL.Query()
	adminKey := params.Get("key")

	if classID := params.Get("classId"); classID != "" {
		if err := h.service.DeleteOne(r.Context(), classID, adminKey); err != nil {
			h.writeError(w, "Delete", err)
			return
		}
		h.writeMessage(w, "Delete", http.StatusOK, fmt.Sprintf("Bookings for %s have been reset.", classID))
		return
	}

	if params.Get("resetAll") == "true" {
		deleted, err := h.service.ResetAll(r.Context(), adminKey)
		if err != nil {
			h.writeError(w, "Delete", err)
			return
		}
		h.writeMessage(w, "Delete", http.StatusOK, fmt.Sprintf("All bookings have been reset (%d classes removed).", deleted))
		return
	}

	h.writeMessage(w, "Delete", http.StatusBadRequest, "Specify classId or resetAll=true")
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET(bookingsPath, h.Get)
	router.POST(bookingsPath, h.Create)
	router.DELETE(bookingsPath, h.Delete)

	// CORS preflight: the middleware has already set the headers, the
	// empty 200 is all the browser needs.
	router.GlobalOPTIONS = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, "MethodNotAllowed", apperrors.MethodNotAllowed("Method not supported"))
	})
}

func (h *BookingHandler) writeJSON(w http.ResponseWriter, op string, statusCode int, data any) {
	if err := httputil.WriteJSON(w, statusCode, data); err != nil {
		h.log.Error("failed to write JSON response", "handler", op, "error", err)
	}
}

func (h *BookingHandler) writeMessage(w http.ResponseWriter, op string, statusCode int, message string) {
	if err := httputil.WriteMessage(w, statusCode, message); err != nil {
		h.log.Error("failed to write message response", "handler", op, "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, op string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", op, "error", writeErr)
	}
}
