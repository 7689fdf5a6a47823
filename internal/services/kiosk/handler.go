package kiosk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"food-corner/internal/cart"
	"food-corner/internal/logger"
	"food-corner/internal/models"
	"food-corner/internal/store"
)

// Handler handles HTTP requests for the kiosk
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new kiosk handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// SetupRoutes sets up the HTTP routes
func (h *Handler) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /menu", h.withLogging(h.Menu))
	mux.HandleFunc("POST /sessions", h.withLogging(h.OpenSession))
	mux.HandleFunc("GET /sessions/{id}", h.withLogging(h.ViewCart))
	mux.HandleFunc("DELETE /sessions/{id}", h.withLogging(h.ClearCart))
	mux.HandleFunc("PUT /sessions/{id}/items/{itemID}", h.withLogging(h.SetLine))
	mux.HandleFunc("POST /sessions/{id}/checkout", h.withLogging(h.Checkout))
	mux.HandleFunc("GET /health", h.withLogging(h.HealthCheck))

	return mux
}

// Menu handles GET /menu requests
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())

	items, err := h.service.Menu(r.Context())
	if err != nil {
		h.writeServiceError(w, err, requestID)
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}

	h.writeJSON(w, http.StatusOK, items, requestID)
}

// OpenSession handles POST /sessions requests
func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())

	id := h.service.OpenSession()

	h.writeJSON(w, http.StatusCreated, map[string]string{"session_id": id}, requestID)
}

// ViewCart handles GET /sessions/{id} requests
func (h *Handler) ViewCart(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())

	lines, total, err := h.service.Lines(r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err, requestID)
		return
	}
	if lines == nil {
		lines = []cart.Line{}
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"lines": lines,
		"total": total,
	}, requestID)
}

// ClearCart handles DELETE /sessions/{id} requests
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())

	if err := h.service.Clear(r.PathValue("id")); err != nil {
		h.writeServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetLine handles PUT /sessions/{id}/items/{itemID} requests
func (h *Handler) SetLine(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())

	itemID, err := strconv.ParseInt(r.PathValue("itemID"), 10, 64)
	if err != nil || itemID <= 0 {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid item id", requestID)
		return
	}

	var body struct {
		Quantity int    `json:"quantity"`
		Modifier string `json:"modifier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	if err := h.service.SetLine(r.Context(), r.PathValue("id"), itemID, body.Quantity, body.Modifier); err != nil {
		h.writeServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Checkout handles POST /sessions/{id}/checkout requests
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())

	var body struct {
		CustomerName  string `json:"customer_name"`
		ContactNumber string `json:"contact_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	order, err := h.service.Checkout(ctx, r.PathValue("id"), body.CustomerName, body.ContactNumber, requestID)
	if err != nil {
		h.writeServiceError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusCreated, order, requestID)
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "kiosk",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// writeServiceError maps service errors onto HTTP status codes.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, requestID string) {
	var verr *cart.ValidationError
	var unavailable *store.UnavailableError

	switch {
	case errors.Is(err, ErrSessionNotFound):
		h.writeErrorResponse(w, http.StatusNotFound, "Session not found", requestID)
	case errors.Is(err, store.ErrMenuItemNotFound):
		h.writeErrorResponse(w, http.StatusNotFound, "Menu item not found", requestID)
	case errors.As(err, &verr):
		h.writeErrorResponse(w, http.StatusBadRequest, verr.Error(), requestID)
	case errors.As(err, &unavailable):
		h.logger.Error("store_unavailable", "Store operation failed", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable", requestID)
	default:
		h.logger.Error("request_failed", "Unhandled service error", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
	}
}

// writeJSON writes a successful JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, body interface{}, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", requestID, err, nil)
	}
}

// writeErrorResponse writes an error response in JSON format
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	}

	json.NewEncoder(w).Encode(errorResponse)
}

// withLogging adds request logging middleware
func (h *Handler) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()
		r = r.WithContext(logger.WithRequestID(r.Context(), requestID))

		h.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

		rw := &responseWriter{ResponseWriter: w, statusCode: 200}

		next(rw, r)

		duration := time.Since(start)
		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": duration.Milliseconds(),
			})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
