package cart

import (
	"strings"

	"food-corner/internal/models"
)

// Assemble converts submittable cart lines plus customer contact details into
// an order draft ready for the store. The draft's status is always
// "received" and its id is unset until the store assigns one. Assemble never
// touches the store itself.
func Assemble(customerName, contactNumber string, lines []Line) (*models.Order, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, &ValidationError{Field: "customer_name", Message: "customer name is required"}
	}

	digits := stripNonDigits(contactNumber)
	if digits == "" {
		return nil, &ValidationError{Field: "contact_number", Message: "contact number must contain digits"}
	}

	if len(lines) == 0 {
		return nil, &ValidationError{Field: "items", Message: "cart is empty"}
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			Name:     line.Item.Name,
			Price:    line.Item.Price,
			Quantity: line.Quantity,
			Modifier: line.Modifier,
		})
	}

	return &models.Order{
		CustomerName:  customerName,
		ContactNumber: digits,
		Items:         items,
		Status:        models.StatusReceived,
	}, nil
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
