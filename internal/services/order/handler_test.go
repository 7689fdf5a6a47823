package order

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"food-corner/internal/logger"
	"food-corner/internal/models"
)

func newTestHandler(fs *fakeStore) *Handler {
	return NewHandler(newTestService(fs), logger.New("order-service-test"))
}

func TestWithLoggingCarriesRequestID(t *testing.T) {
	h := newTestHandler(newFakeStore())

	var first, second string
	wrapped := h.withLogging(func(w http.ResponseWriter, r *http.Request) {
		first = logger.RequestID(r.Context())
		second = logger.RequestID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	wrapped(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders", nil))

	if first == "" {
		t.Fatal("no request id on the request context")
	}
	if first != second {
		t.Errorf("request id regenerated within one request: %q vs %q", first, second)
	}
}

func TestUpdateStatusHTTPInvalidTransition(t *testing.T) {
	fs := newFakeStore(&models.Order{ID: 1, Status: models.StatusReceived})
	mux := newTestHandler(fs).SetupRoutes()

	req := httptest.NewRequest(http.MethodPatch, "/orders/1/status", strings.NewReader(`{"status":"collected"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}

	var envelope struct {
		Error     string `json:"error"`
		RequestID string `json:"request_id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope.Error == "" || envelope.RequestID == "" {
		t.Errorf("incomplete error envelope: %+v", envelope)
	}
	if len(fs.updates) != 0 {
		t.Errorf("store was written despite invalid transition: %v", fs.updates)
	}
}

func TestUpdateStatusHTTPIdempotentReapply(t *testing.T) {
	fs := newFakeStore(&models.Order{ID: 1, Status: models.StatusReady})
	mux := newTestHandler(fs).SetupRoutes()

	req := httptest.NewRequest(http.MethodPatch, "/orders/1/status", strings.NewReader(`{"status":"ready"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var order models.Order
	if err := json.NewDecoder(rec.Body).Decode(&order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if order.Status != models.StatusReady {
		t.Errorf("status = %s, want %s", order.Status, models.StatusReady)
	}
	if len(fs.updates) != 0 {
		t.Errorf("idempotent re-apply wrote to the store: %v", fs.updates)
	}
}
