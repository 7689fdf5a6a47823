package models

import "time"

// MenuItem is a sellable item on the menu. Menu items are edited in the
// catalog only; orders carry their own name/price snapshots.
type MenuItem struct {
	ID        int64    `json:"id,omitempty" db:"id"`
	Name      string   `json:"name" db:"name"`
	Price     float64  `json:"price" db:"price"`
	Photo     string   `json:"photo" db:"photo"`
	Category  string   `json:"category" db:"category"`
	Modifiers []string `json:"modifiers" db:"modifiers"`
	Available bool     `json:"available" db:"available"`
}

// HasModifier reports whether label is one of the item's modifier options.
func (m *MenuItem) HasModifier(label string) bool {
	for _, mod := range m.Modifiers {
		if mod == label {
			return true
		}
	}
	return false
}

// OrderItem is a line on a submitted order: a name/price snapshot taken at
// submission time, independent of later menu edits.
type OrderItem struct {
	ID       int64   `json:"id,omitempty" db:"id"`
	OrderID  int64   `json:"order_id,omitempty" db:"order_id"`
	Name     string  `json:"name" db:"name"`
	Price    float64 `json:"price" db:"price"`
	Quantity int     `json:"quantity" db:"quantity"`
	Modifier string  `json:"modifier,omitempty" db:"modifier"`
}

// Order is a customer order. Everything except Status is immutable once the
// store has assigned an ID.
type Order struct {
	ID            int64       `json:"id,omitempty" db:"id"`
	CustomerName  string      `json:"customer_name" db:"customer_name"`
	ContactNumber string      `json:"contact_number" db:"contact_number"`
	Items         []OrderItem `json:"items"`
	Status        OrderStatus `json:"status" db:"status"`
	CreatedAt     time.Time   `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at,omitempty" db:"updated_at"`
}

// Total returns the order total as price*quantity summed over all items.
func (o *Order) Total() float64 {
	total := 0.0
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Pending reports whether the order still belongs on the pending views.
func (o *Order) Pending() bool {
	return o.Status != StatusCollected
}
