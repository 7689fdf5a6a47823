// Package kiosk implements the customer ordering surface: menu browsing,
// session-scoped carts and checkout against the order store.
package kiosk

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"food-corner/internal/cart"
	"food-corner/internal/logger"
	"food-corner/internal/models"
	"food-corner/internal/store"
)

// ErrSessionNotFound is returned when the referenced cart session does not exist.
var ErrSessionNotFound = errors.New("session not found")

// Service owns the cart sessions. Carts live in memory only; an order exists
// nowhere outside the kiosk until checkout succeeds.
type Service struct {
	store   store.Client
	catalog store.Catalog
	logger  *logger.Logger

	mu       sync.Mutex
	sessions map[string]*cart.Cart
}

// NewService creates the kiosk service.
func NewService(st store.Client, cat store.Catalog, log *logger.Logger) *Service {
	return &Service{
		store:    st,
		catalog:  cat,
		logger:   log,
		sessions: make(map[string]*cart.Cart),
	}
}

// OpenSession creates a fresh cart and returns its session id.
func (s *Service) OpenSession() string {
	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = cart.New()
	s.mu.Unlock()

	s.logger.Debug("session_opened", "Cart session opened", "", map[string]interface{}{
		"session_id": id,
	})
	return id
}

// Menu returns the items a customer can order right now. Unavailable items
// are filtered out; the admin surface sees them through the catalog directly.
func (s *Service) Menu(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.catalog.ListMenuItems(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if item.Available {
			available = append(available, item)
		}
	}
	return available, nil
}

// SetLine sets the quantity and modifier for a menu item in the session's
// cart. The item is resolved against the catalog so the cart snapshots the
// current name and price.
func (s *Service) SetLine(ctx context.Context, sessionID string, itemID int64, quantity int, modifier string) error {
	items, err := s.catalog.ListMenuItems(ctx)
	if err != nil {
		return err
	}

	var item *models.MenuItem
	for i := range items {
		if items[i].ID == itemID {
			item = &items[i]
			break
		}
	}
	if item == nil {
		return store.ErrMenuItemNotFound
	}
	if !item.Available {
		return &cart.ValidationError{Field: "item_id", Message: fmt.Sprintf("%s is not available", item.Name)}
	}

	c, err := s.session(sessionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return c.SetLine(*item, quantity, modifier)
}

// Lines returns the session's submittable cart lines and their total.
func (s *Service) Lines(sessionID string) ([]cart.Line, float64, error) {
	c, err := s.session(sessionID)
	if err != nil {
		return nil, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return c.SubmittableLines(), c.Total(), nil
}

// Clear empties the session's cart without closing the session.
func (s *Service) Clear(sessionID string) error {
	c, err := s.session(sessionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	c.Clear()
	s.mu.Unlock()
	return nil
}

// Checkout assembles the session's cart into an order draft and submits it.
// Only the submitted lines are removed, and only after the store accepts the
// order: a failure leaves the cart intact for a retry, and lines added while
// the submission was in flight stay for the next checkout.
func (s *Service) Checkout(ctx context.Context, sessionID, customerName, contactNumber, requestID string) (*models.Order, error) {
	c, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	lines := c.SubmittableLines()
	s.mu.Unlock()

	draft, err := cart.Assemble(customerName, contactNumber, lines)
	if err != nil {
		return nil, err
	}

	id, err := s.store.CreateOrder(ctx, draft)
	if err != nil {
		s.logger.Error("checkout_failed", "Order submission failed, cart kept", requestID, err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}
	draft.ID = id

	s.mu.Lock()
	c.RemoveLines(lines)
	s.mu.Unlock()

	s.logger.Info("order_submitted", fmt.Sprintf("Order %d submitted for %s", id, draft.CustomerName), requestID, map[string]interface{}{
		"order_id":   id,
		"session_id": sessionID,
		"total":      draft.Total(),
	})

	return draft, nil
}

func (s *Service) session(id string) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return c, nil
}
