package order

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
	"food-corner/internal/receipt"
	"food-corner/internal/store"
)

// Handler handles HTTP requests for the order service
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// SetupRoutes sets up the HTTP routes
func (h *Handler) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /orders", h.withLogging(h.CreateOrder))
	mux.HandleFunc("GET /orders", h.withLogging(h.ListOrders))
	mux.HandleFunc("GET /orders/{id}", h.withLogging(h.GetOrder))
	mux.HandleFunc("PATCH /orders/{id}/status", h.withLogging(h.UpdateStatus))
	mux.HandleFunc("GET /orders/{id}/receipt", h.withLogging(h.GetReceipt))

	mux.HandleFunc("GET /menu", h.withLogging(h.ListMenu))
	mux.HandleFunc("POST /menu", h.withLogging(h.AddMenuItem))
	mux.HandleFunc("PUT /menu/{id}", h.withLogging(h.UpdateMenuItem))
	mux.HandleFunc("DELETE /menu/{id}", h.withLogging(h.DeleteMenuItem))
	mux.HandleFunc("PATCH /menu/{id}/availability", h.withLogging(h.ToggleAvailability))

	mux.HandleFunc("GET /health", h.withLogging(h.HealthCheck))

	return mux
}

// CreateOrder handles POST /orders requests
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())

	var draft models.Order
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&draft); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	created, err := h.service.CreateOrder(ctx, &draft, requestID)
	if err != nil {
		h.writeServiceError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusCreated, created, requestID)
}

// ListOrders handles GET /orders requests
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())

	filter := store.Filter{
		IncludeCollected: r.URL.Query().Get("all") == "1",
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			h.writeErrorResponse(w, http.StatusBadRequest, "Invalid limit", requestID)
			return
		}
		filter.Limit = limit
	}

	orders, err := h.service.ListOrders(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, err, requestID)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	h.writeJSON(w, http.StatusOK, orders, requestID)
}

// GetOrder handles GET /orders/{id} requests
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())

	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}

	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, order, requestID)
}

// UpdateStatus handles PATCH /orders/{id}/status requests
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())

	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), id, models.OrderStatus(body.Status), requestID)
	if err != nil {
		h.writeServiceError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, order, requestID)
}

// GetReceipt handles GET /orders/{id}/receipt requests
func (h *Handler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())

	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}

	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, requestID)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, receipt.Render(order))
}

// ListMenu handles GET /menu requests
func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())

	items, err := h.service.ListMenuItems(r.Context())
	if err != nil {
		h.writeServiceError(w, err, requestID)
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}

	h.writeJSON(w, http.StatusOK, items, requestID)
}

// AddMenuItem handles POST /menu requests
func (h *Handler) AddMenuItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())

	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	created, err := h.service.AddMenuItem(r.Context(), &item, requestID)
	if err != nil {
		h.writeServiceError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusCreated, created, requestID)
}

// UpdateMenuItem handles PUT /menu/{id} requests
func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())

	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}

	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}
	item.ID = id

	if err := h.service.UpdateMenuItem(r.Context(), &item, requestID); err != nil {
		h.writeServiceError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, &item, requestID)
}

// DeleteMenuItem handles DELETE /menu/{id} requests
func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())

	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}

	if err := h.service.DeleteMenuItem(r.Context(), id, requestID); err != nil {
		h.writeServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleAvailability handles PATCH /menu/{id}/availability requests
func (h *Handler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())

	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}

	if err := h.service.ToggleAvailability(r.Context(), id, requestID); err != nil {
		h.writeServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	healthy := h.service.HealthCheck(ctx)

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "order-service",
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		response["status"] = "unhealthy"
		w.WriteHeader(http.StatusServiceUnavailable)
	}
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
	var verr *cart.ValidationError
	var invalid *models.InvalidTransitionError
	var unavailable *store.UnavailableError

	switch {
	case errors.As(err, &verr):
		h.writeErrorResponse(w, http.StatusBadRequest, verr.Error(), requestID)
	case errors.As(err, &invalid):
		h.writeErrorResponse(w, http.StatusConflict, invalid.Error(), requestID)
	case errors.Is(err, store.ErrOrderNotFound):
		h.writeErrorResponse(w, http.StatusNotFound, "Order not found", requestID)
	case errors.Is(err, store.ErrMenuItemNotFound):
		h.writeErrorResponse(w, http.StatusNotFound, "Menu item not found", requestID)
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
