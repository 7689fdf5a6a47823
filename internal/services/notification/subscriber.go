// Package notification implements the console subscriber that turns broker
// events into human-readable alerts for the counter staff.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"food-corner/internal/logger"
	"food-corner/internal/messaging"
	"food-corner/internal/models"
)

// Subscriber consumes order notifications and prints them to the console.
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger

	shutdown chan os.Signal
	done     chan bool
}

// NewSubscriber creates a new notification subscriber
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
		shutdown: make(chan os.Signal, 1),
		done:     make(chan bool, 1),
	}
}

// Start starts the notification subscriber
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)

	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)

	go func() {
		if err := s.consumer.StartConsuming(ctx, s.handleNotification); err != nil {
			s.logger.Error("consumer_failed", "Notification consumer failed", requestID, err, nil)
		}
		s.done <- true
	}()

	select {
	case <-s.shutdown:
		s.logger.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		return s.consumer.Close()
	case <-s.done:
		return nil
	}
}

// handleNotification dispatches an incoming event by its kind field.
func (s *Subscriber) handleNotification(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var envelope models.Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse notification message", requestID, err, nil)
		return fmt.Errorf("failed to parse notification: %w", err)
	}

	switch envelope.Kind {
	case models.KindNewOrders:
		var alert models.NewOrdersAlert
		if err := json.Unmarshal(body, &alert); err != nil {
			return fmt.Errorf("failed to parse new-orders alert: %w", err)
		}
		s.displayNewOrders(&alert, requestID)
	case models.KindStatusChanged:
		var change models.StatusChanged
		if err := json.Unmarshal(body, &change); err != nil {
			return fmt.Errorf("failed to parse status change: %w", err)
		}
		s.displayStatusChange(&change, requestID)
	default:
		s.logger.Error("unknown_message_kind", fmt.Sprintf("Dropping message of kind %q", envelope.Kind), requestID, nil, nil)
	}

	return nil
}

// displayNewOrders rings the bell for the counter staff.
func (s *Subscriber) displayNewOrders(alert *models.NewOrdersAlert, requestID string) {
	fmt.Printf("🔔 [%s] New orders at the counter: %d waiting (was %d)\n",
		alert.ObservedAt.Format("2006-01-02 15:04:05"),
		alert.OrderCount,
		alert.PreviousCount,
	)

	s.logger.Info("notification_displayed", "New-order alert displayed", requestID, map[string]interface{}{
		"order_count":    alert.OrderCount,
		"previous_count": alert.PreviousCount,
	})
}

func (s *Subscriber) displayStatusChange(change *models.StatusChanged, requestID string) {
	var message string
	switch models.OrderStatus(change.NewStatus) {
	case models.StatusReady:
		message = fmt.Sprintf("🍽️ [%s] Order %d for %s is ready for collection",
			change.Timestamp.Format("2006-01-02 15:04:05"),
			change.OrderID,
			change.CustomerName,
		)
	case models.StatusCollected:
		message = fmt.Sprintf("✅ [%s] Order %d for %s was collected",
			change.Timestamp.Format("2006-01-02 15:04:05"),
			change.OrderID,
			change.CustomerName,
		)
	default:
		message = fmt.Sprintf("[%s] Order %d for %s moved from %s to %s",
			change.Timestamp.Format("2006-01-02 15:04:05"),
			change.OrderID,
			change.CustomerName,
			models.OrderStatus(change.OldStatus).Display(),
			models.OrderStatus(change.NewStatus).Display(),
		)
	}

	fmt.Println(message)

	s.logger.Info("notification_displayed", "Status change displayed", requestID, map[string]interface{}{
		"order_id":   change.OrderID,
		"old_status": change.OldStatus,
		"new_status": change.NewStatus,
	})
}
