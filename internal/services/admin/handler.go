package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"food-corner/internal/logger"
	"food-corner/internal/models"
	"food-corner/internal/store"
)

// Handler handles HTTP requests for the admin console
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new admin handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// SetupRoutes sets up the HTTP routes
func (h *Handler) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /admin/orders", h.withLogging(h.ListOrders))
	mux.HandleFunc("POST /admin/orders/{id}/ready", h.withLogging(h.MarkReady))
	mux.HandleFunc("POST /admin/orders/{id}/collect", h.withLogging(h.MarkCollected))
	mux.HandleFunc("GET /health", h.withLogging(h.HealthCheck))

	return mux
}

// ListOrders handles GET /admin/orders requests. The response is served
// from the last polled snapshot, not a live store read.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())

	orders := h.service.Orders(r.URL.Query().Get("all") == "1")
	if orders == nil {
		orders = []models.Order{}
	}

	h.writeJSON(w, http.StatusOK, orders, requestID)
}

// MarkReady handles POST /admin/orders/{id}/ready requests
func (h *Handler) MarkReady(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())

	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}

	order, err := h.service.MarkReady(r.Context(), id, requestID)
	if err != nil {
		h.writeServiceError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, order, requestID)
}

// MarkCollected handles POST /admin/orders/{id}/collect requests
func (h *Handler) MarkCollected(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())

	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}

	order, err := h.service.MarkCollected(r.Context(), id, requestID)
	if err != nil {
		h.writeServiceError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, order, requestID)
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "admin-console",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// pathID parses the {id} path segment.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, requestID string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid id", requestID)
		return 0, false
	}
	return id, true
}

// writeServiceError maps service errors onto HTTP status codes.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, requestID string) {
	var invalid *models.InvalidTransitionError
	var unavailable *store.UnavailableError

	switch {
	case errors.As(err, &invalid):
		h.writeErrorResponse(w, http.StatusConflict, invalid.Error(), requestID)
	case errors.Is(err, store.ErrOrderNotFound):
		h.writeErrorResponse(w, http.StatusNotFound, "Order not found", requestID)
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
