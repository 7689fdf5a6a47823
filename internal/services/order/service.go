package order

import (
	"context"
	"errors"
	"fmt"

	"food-corner/internal/cart"
	"food-corner/internal/logger"
	"food-corner/internal/messaging"
	"food-corner/internal/models"
	"food-corner/internal/store"
)

// Store is what the order service needs from its backing store: the order
// and catalog operations plus a liveness probe. The Postgres binding
// satisfies it.
type Store interface {
	store.Client
	store.Catalog
	Ping(ctx context.Context) error
}

// Service implements the order store's server-side operations on top of the
// Postgres binding and republishes status changes to the notifications
// fanout.
type Service struct {
	store     Store
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewService creates the order service. The publisher may be nil when no
// broker is configured; status events are then only logged.
func NewService(st Store, pub *messaging.Publisher, log *logger.Logger) *Service {
	return &Service{
		store:     st,
		publisher: pub,
		logger:    log,
	}
}

// CreateOrder validates and persists a submitted draft. Whatever status the
// client sent, a new order always starts at "received".
func (s *Service) CreateOrder(ctx context.Context, draft *models.Order, requestID string) (*models.Order, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	draft.Status = models.StatusReceived
	id, err := s.store.CreateOrder(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("order_created", fmt.Sprintf("Order %d created", id), requestID, map[string]interface{}{
		"order_id":      id,
		"customer_name": draft.CustomerName,
		"total_amount":  draft.Total(),
	})

	return draft, nil
}

// ListOrders returns the current snapshot.
func (s *Service) ListOrders(ctx context.Context, filter store.Filter) ([]models.Order, error) {
	return s.store.ListOrders(ctx, filter)
}

// GetOrder returns one order with its items.
func (s *Service) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	return s.store.GetOrder(ctx, id)
}

// UpdateStatus advances an order after checking the transition against the
// stored status. Re-applying the current status is an idempotent no-op that
// returns the order unchanged.
func (s *Service) UpdateStatus(ctx context.Context, id int64, target models.OrderStatus, requestID string) (*models.Order, error) {
	if !target.Valid() {
		return nil, &cart.ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", target)}
	}

	current, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	err = models.ValidateTransition(current.Status, target)
	if errors.Is(err, models.ErrNoTransition) {
		return current, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}

	old := current.Status
	current.Status = target

	s.logger.Info("order_status_updated", fmt.Sprintf("Order %d moved from %s to %s", id, old, target), requestID, map[string]interface{}{
		"order_id":   id,
		"old_status": string(old),
		"new_status": string(target),
	})

	if s.publisher != nil {
		event := models.StatusChangedMessage(current, old)
		if err := s.publisher.PublishNotification(ctx, event); err != nil {
			// The transition already committed; a lost event only delays
			// the next poll's reconciliation.
			s.logger.Error("notification_publish_failed", "Failed to publish status event", requestID, err, map[string]interface{}{
				"order_id": id,
			})
		}
	}

	return current, nil
}

// HealthCheck reports whether the backing database is reachable.
func (s *Service) HealthCheck(ctx context.Context) bool {
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error("health_check_failed", "Database ping failed", "", err, nil)
		return false
	}
	return true
}

// validateDraft re-applies the assembler's rules server-side so that a
// malformed draft can never reach the store, whichever binding produced it.
func validateDraft(draft *models.Order) error {
	if draft.CustomerName == "" {
		return &cart.ValidationError{Field: "customer_name", Message: "customer name is required"}
	}
	if draft.ContactNumber == "" {
		return &cart.ValidationError{Field: "contact_number", Message: "contact number must contain digits"}
	}
	for _, r := range draft.ContactNumber {
		if r < '0' || r > '9' {
			return &cart.ValidationError{Field: "contact_number", Message: "contact number must be digits only"}
		}
	}
	if len(draft.Items) == 0 {
		return &cart.ValidationError{Field: "items", Message: "items cannot be empty"}
	}
	for i, item := range draft.Items {
		if item.Name == "" {
			return &cart.ValidationError{Field: fmt.Sprintf("items[%d].name", i), Message: "item name is required"}
		}
		if item.Quantity <= 0 {
			return &cart.ValidationError{Field: fmt.Sprintf("items[%d].quantity", i), Message: "item quantity must be greater than 0"}
		}
		if item.Price < 0 {
			return &cart.ValidationError{Field: fmt.Sprintf("items[%d].price", i), Message: "item price must not be negative"}
		}
	}
	return nil
}
