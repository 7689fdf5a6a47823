// Package status implements the customer-facing status board: a read-only
// polled window over the newest pending orders.
package status

import (
	"context"
	"sync"
	"time"

	"food-corner/internal/logger"
	"food-corner/internal/models"
	"food-corner/internal/poller"
	"food-corner/internal/store"
)

// BoardEntry is one row on the status board.
type BoardEntry struct {
	OrderID      int64   `json:"order_id"`
	CustomerName string  `json:"customer_name"`
	Status       string  `json:"status"`
	Total        float64 `json:"total"`
}

// Service polls the store for the newest pending orders and serves them as
// board entries. The window never includes collected orders.
type Service struct {
	store  store.Client
	logger *logger.Logger
	loop   *poller.Loop
	window int

	mu      sync.RWMutex
	entries []BoardEntry
}

// NewService creates the status board service. window caps how many orders
// the board shows at once.
func NewService(st store.Client, log *logger.Logger, interval time.Duration, window int) *Service {
	s := &Service{
		store:  st,
		logger: log,
		window: window,
	}
	s.loop = poller.New(interval, s.fetch, s.apply, log)
	return s
}

// Run drives the polling loop until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	return s.loop.Run(ctx)
}

// Board returns the current board entries, oldest first.
func (s *Service) Board() []BoardEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries
}

func (s *Service) fetch(ctx context.Context) ([]models.Order, error) {
	return s.store.ListOrders(ctx, store.Filter{Limit: s.window})
}

func (s *Service) apply(orders []models.Order) {
	entries := make([]BoardEntry, 0, len(orders))
	for _, o := range orders {
		entries = append(entries, BoardEntry{
			OrderID:      o.ID,
			CustomerName: o.CustomerName,
			Status:       o.Status.Display(),
			Total:        o.Total(),
		})
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
}
