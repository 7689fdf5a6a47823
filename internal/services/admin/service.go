// Package admin implements the staff console: a polled view over the order
// store, the only actor allowed to advance order status.
package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"food-corner/internal/logger"
	"food-corner/internal/messaging"
	"food-corner/internal/models"
	"food-corner/internal/poller"
	"food-corner/internal/receipt"
	"food-corner/internal/store"
)

// Service polls the order store, raises the new-order alert and issues the
// ready/collected transitions.
type Service struct {
	store     store.Client
	publisher *messaging.Publisher
	logger    *logger.Logger
	loop      *poller.Loop

	mu       sync.RWMutex
	snapshot []models.Order
}

// NewService creates the admin console service. The publisher may be nil
// when no broker is configured; the alert is then only logged.
func NewService(st store.Client, pub *messaging.Publisher, log *logger.Logger, interval time.Duration) *Service {
	s := &Service{
		store:     st,
		publisher: pub,
		logger:    log,
	}
	s.loop = poller.New(interval, s.fetch, s.apply, log)
	s.loop.OnGrowth(s.alert)
	return s
}

// Run drives the polling loop until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	return s.loop.Run(ctx)
}

// Orders returns the console's current view: pending orders by default, the
// full history when all is set. The view is the store's last successful
// snapshot, never a merge of stale and fresh data. The returned slice is a
// copy; updateLocal keeps patching the internal snapshot after this returns.
func (s *Service) Orders(all bool) []models.Order {
	s.mu.RLock()
	snapshot := make([]models.Order, len(s.snapshot))
	copy(snapshot, s.snapshot)
	s.mu.RUnlock()

	return store.ApplyFilter(snapshot, store.Filter{IncludeCollected: all})
}

// MarkReady advances an order from received to ready. Repeating the call on
// an already-ready order is a no-op.
func (s *Service) MarkReady(ctx context.Context, id int64, requestID string) (*models.Order, error) {
	return s.transition(ctx, id, models.StatusReady, requestID)
}

// MarkCollected advances an order from ready to collected and fires the
// receipt print without waiting for it. The order drops out of the pending
// view but stays queryable in the full history.
func (s *Service) MarkCollected(ctx context.Context, id int64, requestID string) (*models.Order, error) {
	order, err := s.transition(ctx, id, models.StatusCollected, requestID)
	if err != nil {
		return nil, err
	}

	go s.printReceipt(order, requestID)

	return order, nil
}

// transition validates a status change against the store's current value
// before writing. The store stays the source of truth: the optimistic local
// update below is overwritten by the next poll's snapshot either way.
func (s *Service) transition(ctx context.Context, id int64, target models.OrderStatus, requestID string) (*models.Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	err = models.ValidateTransition(order.Status, target)
	if errors.Is(err, models.ErrNoTransition) {
		s.logger.Debug("transition_noop", fmt.Sprintf("Order %d already %s", id, target), requestID, nil)
		return order, nil
	}
	if err != nil {
		s.logger.Error("invalid_transition", fmt.Sprintf("Refused transition for order %d", id), requestID, err, map[string]interface{}{
			"order_id": id,
			"from":     string(order.Status),
			"to":       string(target),
		})
		return nil, err
	}

	if err := s.store.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}

	old := order.Status
	order.Status = target
	s.updateLocal(id, target)

	s.logger.Info("order_transitioned", fmt.Sprintf("Order %d moved from %s to %s", id, old, target), requestID, map[string]interface{}{
		"order_id":   id,
		"old_status": string(old),
		"new_status": string(target),
	})

	return order, nil
}

func (s *Service) fetch(ctx context.Context) ([]models.Order, error) {
	return s.store.ListOrders(ctx, store.Filter{IncludeCollected: true})
}

func (s *Service) apply(orders []models.Order) {
	s.mu.Lock()
	s.snapshot = orders
	s.mu.Unlock()
}

// alert fires once per growing tick, whatever the growth amount.
func (s *Service) alert(current, previous int) {
	s.logger.Info("new_order_alert", fmt.Sprintf("New orders arrived: %d -> %d", previous, current), "", map[string]interface{}{
		"order_count":    current,
		"previous_count": previous,
	})

	if s.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	event := models.NewOrdersAlertMessage(current, previous)
	if err := s.publisher.PublishNotification(ctx, event); err != nil {
		s.logger.Error("notification_publish_failed", "Failed to publish new-order alert", "", err, nil)
	}
}

// updateLocal patches the snapshot so the console reflects a transition
// before the next poll lands.
func (s *Service) updateLocal(id int64, status models.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.snapshot {
		if s.snapshot[i].ID == id {
			s.snapshot[i].Status = status
			return
		}
	}
}

// printReceipt renders the receipt for a collected order. Fire and forget:
// a failure is logged, never surfaced to the transition.
func (s *Service) printReceipt(order *models.Order, requestID string) {
	text := receipt.Render(order)
	fmt.Print(text)

	s.logger.Info("receipt_printed", fmt.Sprintf("Receipt printed for order %d", order.ID), requestID, map[string]interface{}{
		"order_id": order.ID,
	})
}
