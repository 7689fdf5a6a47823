// Package receipt renders a finalized order as printable plain text.
package receipt

import (
	"fmt"
	"strings"

	"food-corner/internal/models"
)

const (
	shopName    = "Himalayan Food Corner"
	shopAddress = "143 Toi Toi Street, Nelson"
	shopPhone   = "02108101308"
)

// Render formats an order as a printable receipt. It is a pure projection of
// the order's item snapshots; it never consults the menu catalog.
func Render(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s\n%s\n\n", shopName, shopAddress, shopPhone)
	fmt.Fprintf(&b, "Order Receipt #%d\n", order.ID)
	fmt.Fprintf(&b, "Customer: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "Contact:  %s\n\n", order.ContactNumber)

	for _, item := range order.Items {
		name := item.Name
		if item.Modifier != "" {
			name = fmt.Sprintf("%s (%s)", item.Name, item.Modifier)
		}
		fmt.Fprintf(&b, "%-30s x%d  $%.2f\n", name, item.Quantity, item.Price*float64(item.Quantity))
	}

	fmt.Fprintf(&b, "\nTotal: $%.2f\n", order.Total())

	return b.String()
}
