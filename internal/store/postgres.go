package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"food-corner/internal/database"
	"food-corner/internal/models"
)

// Postgres is the direct database binding for both the order store and the
// menu catalog.
type Postgres struct {
	db *database.DB
}

// NewPostgres creates the Postgres binding.
func NewPostgres(db *database.DB) *Postgres {
	return &Postgres{db: db}
}

// Ping reports whether the database is reachable.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

// CreateOrder inserts the draft and its item snapshots in one transaction.
func (p *Postgres) CreateOrder(ctx context.Context, draft *models.Order) (int64, error) {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return 0, &UnavailableError{Op: "create order", Err: err}
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, database.InsertOrderSQL,
		draft.CustomerName, draft.ContactNumber, draft.Status).Scan(&id, &draft.CreatedAt)
	if err != nil {
		return 0, &UnavailableError{Op: "create order", Err: err}
	}

	for _, item := range draft.Items {
		_, err = tx.Exec(ctx, database.InsertOrderItemSQL,
			id, item.Name, item.Price, item.Quantity, item.Modifier)
		if err != nil {
			return 0, &UnavailableError{Op: "create order items", Err: err}
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, &UnavailableError{Op: "create order", Err: err}
	}

	draft.ID = id
	return id, nil
}

// ListOrders returns orders in insertion order, items included.
func (p *Postgres) ListOrders(ctx context.Context, filter Filter) ([]models.Order, error) {
	sql := ListOrdersQuery(filter)
	rows, err := p.db.Query(ctx, sql)
	if err != nil {
		return nil, &UnavailableError{Op: "list orders", Err: err}
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, &UnavailableError{Op: "list orders", Err: err}
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, &UnavailableError{Op: "list orders", Err: err}
	}

	if filter.Limit > 0 && len(orders) > filter.Limit {
		orders = orders[len(orders)-filter.Limit:]
	}

	if err := p.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder returns one order with its items.
func (p *Postgres) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	err := scanOrder(p.db.QueryRow(ctx, database.GetOrderSQL, id), &o)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, &UnavailableError{Op: "get order", Err: err}
	}

	orders := []models.Order{o}
	if err := p.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// UpdateStatus overwrites the stored status. Last write wins at the record
// level; lifecycle validation happens in the caller.
func (p *Postgres) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	tag, err := p.db.Pool.Exec(ctx, database.UpdateOrderStatusSQL, status, id)
	if err != nil {
		return &UnavailableError{Op: "update status", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// loadItems attaches item snapshots to the given orders in one query.
func (p *Postgres) loadItems(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, len(orders))
	index := make(map[int64]*models.Order, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = &orders[i]
	}

	rows, err := p.db.Query(ctx, database.ListOrderItemsSQL, ids)
	if err != nil {
		return &UnavailableError{Op: "list order items", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.Name, &item.Price, &item.Quantity, &item.Modifier)
		if err != nil {
			return &UnavailableError{Op: "list order items", Err: err}
		}
		if o, ok := index[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

// ListOrdersQuery picks the listing statement for a filter.
func ListOrdersQuery(filter Filter) string {
	if filter.IncludeCollected {
		return database.ListOrdersSQL
	}
	return database.ListPendingOrdersSQL
}

func scanOrder(row pgx.Row, o *models.Order) error {
	return row.Scan(&o.ID, &o.CustomerName, &o.ContactNumber, &o.Status, &o.CreatedAt, &o.UpdatedAt)
}

// ListMenuItems returns the full menu in insertion order.
func (p *Postgres) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := p.db.Query(ctx, database.ListMenuItemsSQL)
	if err != nil {
		return nil, &UnavailableError{Op: "list menu", Err: err}
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var m models.MenuItem
		err := rows.Scan(&m.ID, &m.Name, &m.Price, &m.Photo, &m.Category, &m.Modifiers, &m.Available)
		if err != nil {
			return nil, &UnavailableError{Op: "list menu", Err: err}
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// AddMenuItem inserts a new menu item and returns its id.
func (p *Postgres) AddMenuItem(ctx context.Context, item *models.MenuItem) (int64, error) {
	var id int64
	err := p.db.QueryRow(ctx, database.InsertMenuItemSQL,
		item.Name, item.Price, item.Photo, item.Category, item.Modifiers, item.Available).Scan(&id)
	if err != nil {
		return 0, &UnavailableError{Op: "add menu item", Err: err}
	}
	item.ID = id
	return id, nil
}

// UpdateMenuItem replaces every editable field of a menu item.
func (p *Postgres) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	tag, err := p.db.Pool.Exec(ctx, database.UpdateMenuItemSQL,
		item.Name, item.Price, item.Photo, item.Category, item.Modifiers, item.Available, item.ID)
	if err != nil {
		return &UnavailableError{Op: "update menu item", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

// DeleteMenuItem removes a menu item from the catalog.
func (p *Postgres) DeleteMenuItem(ctx context.Context, id int64) error {
	tag, err := p.db.Pool.Exec(ctx, database.DeleteMenuItemSQL, id)
	if err != nil {
		return &UnavailableError{Op: "delete menu item", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

// ToggleAvailability flips the availability flag of a menu item.
func (p *Postgres) ToggleAvailability(ctx context.Context, id int64) error {
	tag, err := p.db.Pool.Exec(ctx, database.ToggleAvailabilitySQL, id)
	if err != nil {
		return &UnavailableError{Op: "toggle availability", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

var (
	_ Client  = (*Postgres)(nil)
	_ Catalog = (*Postgres)(nil)
)
