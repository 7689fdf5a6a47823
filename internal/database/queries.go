package database

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (customer_name, contact_number, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	InsertOrderItemSQL = `
		INSERT INTO order_items (order_id, name, price, quantity, modifier)
		VALUES ($1, $2, $3, $4, $5)`

	UpdateOrderStatusSQL = `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2`

	GetOrderSQL = `
		SELECT id, customer_name, contact_number, status, created_at, updated_at
		FROM orders WHERE id = $1`

	ListOrdersSQL = `
		SELECT id, customer_name, contact_number, status, created_at, updated_at
		FROM orders
		ORDER BY id ASC`

	ListPendingOrdersSQL = `
		SELECT id, customer_name, contact_number, status, created_at, updated_at
		FROM orders
		WHERE status <> 'collected'
		ORDER BY id ASC`

	ListOrderItemsSQL = `
		SELECT id, order_id, name, price, quantity, modifier
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id ASC`
)

// Menu queries
const (
	InsertMenuItemSQL = `
		INSERT INTO menu_items (name, price, photo, category, modifiers, available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	UpdateMenuItemSQL = `
		UPDATE menu_items
		SET name = $1, price = $2, photo = $3, category = $4, modifiers = $5, available = $6
		WHERE id = $7`

	DeleteMenuItemSQL = `
		DELETE FROM menu_items WHERE id = $1`

	ToggleAvailabilitySQL = `
		UPDATE menu_items SET available = NOT available WHERE id = $1`

	ListMenuItemsSQL = `
		SELECT id, name, price, photo, category, modifiers, available
		FROM menu_items
		ORDER BY id ASC`
)
