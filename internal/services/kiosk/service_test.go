package kiosk

import (
	"context"
	"errors"
	"testing"

	"food-corner/internal/cart"
	"food-corner/internal/logger"
	"food-corner/internal/models"
	"food-corner/internal/store"
)

type fakeBackend struct {
	menu      []models.MenuItem
	created   []*models.Order
	createErr error
	nextID    int64
	onCreate  func()
}

func (f *fakeBackend) CreateOrder(ctx context.Context, draft *models.Order) (int64, error) {
	if f.onCreate != nil {
		f.onCreate()
	}
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	f.created = append(f.created, draft)
	return f.nextID, nil
}

func (f *fakeBackend) ListOrders(ctx context.Context, filter store.Filter) ([]models.Order, error) {
	return nil, nil
}

func (f *fakeBackend) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	return nil, store.ErrOrderNotFound
}

func (f *fakeBackend) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	return nil
}

func (f *fakeBackend) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return f.menu, nil
}

func (f *fakeBackend) AddMenuItem(ctx context.Context, item *models.MenuItem) (int64, error) {
	return 0, nil
}

func (f *fakeBackend) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	return nil
}

func (f *fakeBackend) DeleteMenuItem(ctx context.Context, id int64) error {
	return nil
}

func (f *fakeBackend) ToggleAvailability(ctx context.Context, id int64) error {
	return nil
}

func testMenu() []models.MenuItem {
	return []models.MenuItem{
		{ID: 1, Name: "Veg Momo", Price: 12.5, Available: true, Modifiers: []string{"spicy", "mild"}},
		{ID: 2, Name: "Masala Chai", Price: 4.0, Available: true},
		{ID: 3, Name: "Sel Roti", Price: 6.0, Available: false},
	}
}

func newTestService(fb *fakeBackend) *Service {
	return NewService(fb, fb, logger.New("kiosk-test"))
}

func TestMenuFiltersUnavailable(t *testing.T) {
	svc := newTestService(&fakeBackend{menu: testMenu()})

	items, err := svc.Menu(context.Background())
	if err != nil {
		t.Fatalf("Menu: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("menu has %d items, want 2", len(items))
	}
	for _, item := range items {
		if !item.Available {
			t.Errorf("unavailable item %s on kiosk menu", item.Name)
		}
	}
}

func TestSetLineUnknownItem(t *testing.T) {
	svc := newTestService(&fakeBackend{menu: testMenu()})
	sid := svc.OpenSession()

	err := svc.SetLine(context.Background(), sid, 99, 1, "")
	if !errors.Is(err, store.ErrMenuItemNotFound) {
		t.Fatalf("expected ErrMenuItemNotFound, got %v", err)
	}
}

func TestSetLineUnavailableItem(t *testing.T) {
	svc := newTestService(&fakeBackend{menu: testMenu()})
	sid := svc.OpenSession()

	err := svc.SetLine(context.Background(), sid, 3, 1, "")
	var verr *cart.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSetLineUnknownSession(t *testing.T) {
	svc := newTestService(&fakeBackend{menu: testMenu()})

	err := svc.SetLine(context.Background(), "nope", 1, 1, "")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestCheckoutEmptyNameKeepsCart(t *testing.T) {
	fb := &fakeBackend{menu: testMenu()}
	svc := newTestService(fb)
	sid := svc.OpenSession()
	ctx := context.Background()

	if err := svc.SetLine(ctx, sid, 1, 2, "spicy"); err != nil {
		t.Fatalf("SetLine: %v", err)
	}

	_, err := svc.Checkout(ctx, sid, "  ", "021555123", "req-1")
	var verr *cart.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(fb.created) != 0 {
		t.Error("store was called for an invalid draft")
	}

	lines, _, err := svc.Lines(sid)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if len(lines) != 1 {
		t.Errorf("cart has %d lines after failed checkout, want 1", len(lines))
	}
}

func TestCheckoutStoreFailureKeepsCart(t *testing.T) {
	fb := &fakeBackend{menu: testMenu(), createErr: &store.UnavailableError{Op: "create_order", Err: errors.New("down")}}
	svc := newTestService(fb)
	sid := svc.OpenSession()
	ctx := context.Background()

	if err := svc.SetLine(ctx, sid, 1, 2, ""); err != nil {
		t.Fatalf("SetLine: %v", err)
	}

	_, err := svc.Checkout(ctx, sid, "Dawa", "021555123", "req-1")
	var unavailable *store.UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected UnavailableError, got %v", err)
	}

	lines, _, _ := svc.Lines(sid)
	if len(lines) != 1 {
		t.Errorf("cart has %d lines after store failure, want 1", len(lines))
	}
}

func TestCheckoutKeepsLinesAddedDuringSubmit(t *testing.T) {
	fb := &fakeBackend{menu: testMenu()}
	svc := newTestService(fb)
	sid := svc.OpenSession()
	ctx := context.Background()

	if err := svc.SetLine(ctx, sid, 1, 2, "spicy"); err != nil {
		t.Fatalf("SetLine: %v", err)
	}

	// The store call runs outside the session lock, so a second customer
	// action can land while the submission is in flight.
	fb.onCreate = func() {
		if err := svc.SetLine(ctx, sid, 2, 1, ""); err != nil {
			t.Errorf("SetLine during submit: %v", err)
		}
	}

	order, err := svc.Checkout(ctx, sid, "Dawa", "021555123", "req-1")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if len(order.Items) != 1 {
		t.Fatalf("order has %d items, want 1", len(order.Items))
	}

	lines, _, err := svc.Lines(sid)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if len(lines) != 1 || lines[0].Item.ID != 2 {
		t.Fatalf("line added during submit was discarded: %+v", lines)
	}
}

func TestCheckoutSubmitsAndClears(t *testing.T) {
	fb := &fakeBackend{menu: testMenu()}
	svc := newTestService(fb)
	sid := svc.OpenSession()
	ctx := context.Background()

	if err := svc.SetLine(ctx, sid, 1, 2, "spicy"); err != nil {
		t.Fatalf("SetLine: %v", err)
	}
	if err := svc.SetLine(ctx, sid, 2, 1, ""); err != nil {
		t.Fatalf("SetLine: %v", err)
	}

	order, err := svc.Checkout(ctx, sid, "Dawa", "021-555-123", "req-1")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if order.ID != 1 {
		t.Errorf("order id = %d, want 1", order.ID)
	}
	if order.ContactNumber != "021555123" {
		t.Errorf("contact = %q, want digits only", order.ContactNumber)
	}
	if order.Status != models.StatusReceived {
		t.Errorf("status = %s, want %s", order.Status, models.StatusReceived)
	}
	if len(order.Items) != 2 {
		t.Fatalf("order has %d items, want 2", len(order.Items))
	}

	lines, total, _ := svc.Lines(sid)
	if len(lines) != 0 || total != 0 {
		t.Errorf("cart not cleared after checkout: %d lines, total %v", len(lines), total)
	}
}
