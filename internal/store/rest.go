package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"food-corner/internal/models"
)

// REST is the order-service API binding. It implements the same Client and
// Catalog contracts as the Postgres binding, so the kiosk, admin console and
// status board can run either against the database or against the HTTP API.
type REST struct {
	baseURL string
	client  *http.Client
}

// NewREST creates the REST binding for the given order-service base URL.
func NewREST(baseURL string) *REST {
	return &REST{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateOrder submits a draft to POST /orders.
func (r *REST) CreateOrder(ctx context.Context, draft *models.Order) (int64, error) {
	var created models.Order
	err := r.do(ctx, http.MethodPost, "/orders", draft, &created)
	if err != nil {
		return 0, err
	}
	draft.ID = created.ID
	draft.CreatedAt = created.CreatedAt
	return created.ID, nil
}

// ListOrders fetches the order snapshot from GET /orders.
func (r *REST) ListOrders(ctx context.Context, filter Filter) ([]models.Order, error) {
	path := "/orders"
	var params []string
	if filter.IncludeCollected {
		params = append(params, "all=1")
	}
	if filter.Limit > 0 {
		params = append(params, fmt.Sprintf("limit=%d", filter.Limit))
	}
	if len(params) > 0 {
		path += "?" + strings.Join(params, "&")
	}

	var orders []models.Order
	if err := r.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder fetches one order from GET /orders/{id}.
func (r *REST) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := r.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus issues PATCH /orders/{id}/status.
func (r *REST) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	body := map[string]string{"status": string(status)}
	return r.do(ctx, http.MethodPatch, fmt.Sprintf("/orders/%d/status", id), body, nil)
}

// ListMenuItems fetches the menu from GET /menu.
func (r *REST) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := r.do(ctx, http.MethodGet, "/menu", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddMenuItem creates a menu item via POST /menu.
func (r *REST) AddMenuItem(ctx context.Context, item *models.MenuItem) (int64, error) {
	var created models.MenuItem
	if err := r.do(ctx, http.MethodPost, "/menu", item, &created); err != nil {
		return 0, err
	}
	item.ID = created.ID
	return created.ID, nil
}

// UpdateMenuItem replaces a menu item via PUT /menu/{id}.
func (r *REST) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	return r.do(ctx, http.MethodPut, fmt.Sprintf("/menu/%d", item.ID), item, nil)
}

// DeleteMenuItem removes a menu item via DELETE /menu/{id}.
func (r *REST) DeleteMenuItem(ctx context.Context, id int64) error {
	return r.do(ctx, http.MethodDelete, fmt.Sprintf("/menu/%d", id), nil, nil)
}

// ToggleAvailability flips availability via PATCH /menu/{id}/availability.
func (r *REST) ToggleAvailability(ctx context.Context, id int64) error {
	return r.do(ctx, http.MethodPatch, fmt.Sprintf("/menu/%d/availability", id), nil, nil)
}

// do performs one API call. Transport failures and 5xx responses map to
// UnavailableError; 404 maps to the not-found sentinels; other 4xx responses
// surface the server's error message.
func (r *REST) do(ctx context.Context, method, path string, body, out interface{}) error {
	op := fmt.Sprintf("%s %s", method, path)

	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return &UnavailableError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return &UnavailableError{Op: op, Err: fmt.Errorf("server returned %d", resp.StatusCode)}
	case resp.StatusCode == http.StatusNotFound:
		if strings.HasPrefix(path, "/menu") {
			return ErrMenuItemNotFound
		}
		return ErrOrderNotFound
	case resp.StatusCode >= 400:
		var envelope struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error == "" {
			return fmt.Errorf("%s rejected with status %d", op, resp.StatusCode)
		}
		return fmt.Errorf("%s rejected: %s", op, envelope.Error)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &UnavailableError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
		}
	}
	return nil
}

var (
	_ Client  = (*REST)(nil)
	_ Catalog = (*REST)(nil)
)
