package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"food-corner/internal/models"
)

func TestREST_CreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var draft models.Order
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			t.Fatalf("decode draft: %v", err)
		}
		draft.ID = 42
		json.NewEncoder(w).Encode(draft)
	}))
	defer srv.Close()

	client := NewREST(srv.URL)
	draft := &models.Order{
		CustomerName:  "Pema Sherpa",
		ContactNumber: "12345",
		Status:        models.StatusReceived,
		Items:         []models.OrderItem{{Name: "Momo", Price: 12.5, Quantity: 2}},
	}
	id, err := client.CreateOrder(context.Background(), draft)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if id != 42 || draft.ID != 42 {
		t.Errorf("id = %d, draft.ID = %d, want 42", id, draft.ID)
	}
}

func TestREST_ServerErrorMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewREST(srv.URL)
	_, err := client.ListOrders(context.Background(), Filter{})
	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("ListOrders = %v, want UnavailableError", err)
	}
}

func TestREST_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	client := NewREST(srv.URL)
	if _, err := client.GetOrder(context.Background(), 7); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("GetOrder = %v, want ErrOrderNotFound", err)
	}
	if err := client.ToggleAvailability(context.Background(), 7); !errors.Is(err, ErrMenuItemNotFound) {
		t.Errorf("ToggleAvailability = %v, want ErrMenuItemNotFound", err)
	}
}

func TestREST_ListOrdersQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]models.Order{})
	}))
	defer srv.Close()

	client := NewREST(srv.URL)
	if _, err := client.ListOrders(context.Background(), Filter{IncludeCollected: true, Limit: 5}); err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if gotQuery != "all=1&limit=5" {
		t.Errorf("query = %q, want \"all=1&limit=5\"", gotQuery)
	}
}

func TestApplyFilter(t *testing.T) {
	orders := []models.Order{
		{ID: 1, Status: models.StatusCollected},
		{ID: 2, Status: models.StatusReceived},
		{ID: 3, Status: models.StatusReady},
		{ID: 4, Status: models.StatusReceived},
	}

	pending := ApplyFilter(orders, Filter{})
	if len(pending) != 3 {
		t.Fatalf("pending = %d orders, want 3", len(pending))
	}

	windowed := ApplyFilter(orders, Filter{Limit: 2})
	if len(windowed) != 2 || windowed[0].ID != 3 || windowed[1].ID != 4 {
		t.Errorf("windowed = %+v, want newest two pending orders", windowed)
	}

	all := ApplyFilter(orders, Filter{IncludeCollected: true})
	if len(all) != 4 {
		t.Errorf("all = %d orders, want 4", len(all))
	}
}
