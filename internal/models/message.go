package models

import "time"

// Notification kinds carried on the fanout exchange.
const (
	KindNewOrders     = "new_orders"
	KindStatusChanged = "status_changed"
)

// Envelope is the minimal shape every notification shares; consumers decode
// it first to pick the concrete type.
type Envelope struct {
	Kind string `json:"kind"`
}

// NewOrdersAlert is published when the admin console's poll observes the
// order count growing. One alert covers the whole tick, however many orders
// arrived in it.
type NewOrdersAlert struct {
	Kind          string    `json:"kind"`
	OrderCount    int       `json:"order_count"`
	PreviousCount int       `json:"previous_count"`
	ObservedAt    time.Time `json:"observed_at"`
}

// NewOrdersAlertMessage builds an alert for a count rise.
func NewOrdersAlertMessage(current, previous int) *NewOrdersAlert {
	return &NewOrdersAlert{
		Kind:          KindNewOrders,
		OrderCount:    current,
		PreviousCount: previous,
		ObservedAt:    time.Now().UTC(),
	}
}

// StatusChanged is published when an order's status is advanced through the
// store.
type StatusChanged struct {
	Kind         string    `json:"kind"`
	OrderID      int64     `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	OldStatus    string    `json:"old_status"`
	NewStatus    string    `json:"new_status"`
	Timestamp    time.Time `json:"timestamp"`
}

// StatusChangedMessage builds a StatusChanged event for an order transition.
func StatusChangedMessage(order *Order, old OrderStatus) *StatusChanged {
	return &StatusChanged{
		Kind:         KindStatusChanged,
		OrderID:      order.ID,
		CustomerName: order.CustomerName,
		OldStatus:    string(old),
		NewStatus:    string(order.Status),
		Timestamp:    time.Now().UTC(),
	}
}
