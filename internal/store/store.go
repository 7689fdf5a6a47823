// Package store defines the order store and menu catalog client contracts.
// Two interchangeable bindings exist: a direct Postgres binding and a REST
// binding that talks to the order-service API. Every view goes through these
// interfaces so the backends can be swapped without touching the views.
package store

import (
	"context"
	"errors"
	"fmt"

	"food-corner/internal/models"
)

// ErrOrderNotFound is returned when the referenced order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// ErrMenuItemNotFound is returned when the referenced menu item does not exist.
var ErrMenuItemNotFound = errors.New("menu item not found")

// UnavailableError wraps a transient store failure. Pollers log it and retry
// on the next tick; submissions surface it to the user without retrying.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// Filter narrows ListOrders results.
type Filter struct {
	// IncludeCollected keeps terminal orders in the listing. The pending
	// views leave it false.
	IncludeCollected bool
	// Limit keeps only the newest N orders (by insertion order). Zero means
	// no limit.
	Limit int
}

// Client is the order store seen by every view. The store is the single
// source of truth for order status; local copies are reconciled against it
// on every poll.
type Client interface {
	// CreateOrder persists a draft and returns the id the store assigned.
	CreateOrder(ctx context.Context, draft *models.Order) (int64, error)
	// ListOrders returns the current snapshot in insertion order.
	ListOrders(ctx context.Context, filter Filter) ([]models.Order, error)
	// GetOrder returns one order with its items.
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	// UpdateStatus overwrites the stored status. Last write wins; the
	// lifecycle rules are enforced by the caller against the freshest
	// status it knows.
	UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error
}

// Catalog is the menu catalog service.
type Catalog interface {
	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)
	AddMenuItem(ctx context.Context, item *models.MenuItem) (int64, error)
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id int64) error
	ToggleAvailability(ctx context.Context, id int64) error
}

// ApplyFilter filters and windows an order snapshot the same way every
// binding does: drop collected orders unless asked to keep them, then keep
// the newest Limit entries.
func ApplyFilter(orders []models.Order, filter Filter) []models.Order {
	filtered := orders
	if !filter.IncludeCollected {
		filtered = make([]models.Order, 0, len(orders))
		for _, o := range orders {
			if o.Pending() {
				filtered = append(filtered, o)
			}
		}
	}
	if filter.Limit > 0 && len(filtered) > filter.Limit {
		filtered = filtered[len(filtered)-filter.Limit:]
	}
	return filtered
}
