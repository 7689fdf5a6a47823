package order

import (
	"context"
	"errors"
	"testing"

	"food-corner/internal/cart"
	"food-corner/internal/logger"
	"food-corner/internal/models"
	"food-corner/internal/store"
)

type fakeStore struct {
	orders  map[int64]*models.Order
	created []*models.Order
	updates []models.OrderStatus
	nextID  int64
}

func newFakeStore(orders ...*models.Order) *fakeStore {
	fs := &fakeStore{orders: make(map[int64]*models.Order)}
	for _, o := range orders {
		fs.orders[o.ID] = o
	}
	return fs
}

func (f *fakeStore) CreateOrder(ctx context.Context, draft *models.Order) (int64, error) {
	f.nextID++
	draft.ID = f.nextID
	f.created = append(f.created, draft)
	f.orders[draft.ID] = draft
	return draft.ID, nil
}

func (f *fakeStore) ListOrders(ctx context.Context, filter store.Filter) ([]models.Order, error) {
	return nil, nil
}

func (f *fakeStore) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, store.ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	o, ok := f.orders[id]
	if !ok {
		return store.ErrOrderNotFound
	}
	f.updates = append(f.updates, status)
	o.Status = status
	return nil
}

func (f *fakeStore) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return nil, nil
}

func (f *fakeStore) AddMenuItem(ctx context.Context, item *models.MenuItem) (int64, error) {
	return 0, nil
}

func (f *fakeStore) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	return nil
}

func (f *fakeStore) DeleteMenuItem(ctx context.Context, id int64) error {
	return nil
}

func (f *fakeStore) ToggleAvailability(ctx context.Context, id int64) error {
	return nil
}

func (f *fakeStore) Ping(ctx context.Context) error {
	return nil
}

func newTestService(fs *fakeStore) *Service {
	return NewService(fs, nil, logger.New("order-service-test"))
}

func validItems() []models.OrderItem {
	return []models.OrderItem{
		{Name: "Veg Momo", Price: 12.5, Quantity: 2, Modifier: "spicy"},
	}
}

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		name      string
		draft     models.Order
		wantField string
	}{
		{
			name:  "valid draft",
			draft: models.Order{CustomerName: "Dawa", ContactNumber: "021555123", Items: validItems()},
		},
		{
			name:      "empty customer name",
			draft:     models.Order{ContactNumber: "021555123", Items: validItems()},
			wantField: "customer_name",
		},
		{
			name:      "empty contact number",
			draft:     models.Order{CustomerName: "Dawa", Items: validItems()},
			wantField: "contact_number",
		},
		{
			name:      "contact number with letters",
			draft:     models.Order{CustomerName: "Dawa", ContactNumber: "021abc", Items: validItems()},
			wantField: "contact_number",
		},
		{
			name:      "no items",
			draft:     models.Order{CustomerName: "Dawa", ContactNumber: "021555123"},
			wantField: "items",
		},
		{
			name: "item without name",
			draft: models.Order{CustomerName: "Dawa", ContactNumber: "021555123", Items: []models.OrderItem{
				{Price: 5, Quantity: 1},
			}},
			wantField: "items[0].name",
		},
		{
			name: "item with zero quantity",
			draft: models.Order{CustomerName: "Dawa", ContactNumber: "021555123", Items: []models.OrderItem{
				{Name: "Masala Chai", Price: 4, Quantity: 0},
			}},
			wantField: "items[0].quantity",
		},
		{
			name: "item with negative price",
			draft: models.Order{CustomerName: "Dawa", ContactNumber: "021555123", Items: []models.OrderItem{
				{Name: "Masala Chai", Price: -1, Quantity: 1},
			}},
			wantField: "items[0].price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDraft(&tt.draft)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("validateDraft: %v", err)
				}
				return
			}

			var verr *cart.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestCreateOrderForcesReceived(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs)

	draft := &models.Order{
		CustomerName:  "Dawa",
		ContactNumber: "021555123",
		Items:         validItems(),
		Status:        models.StatusCollected,
	}

	created, err := svc.CreateOrder(context.Background(), draft, "req-1")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if created.Status != models.StatusReceived {
		t.Errorf("status = %s, want %s", created.Status, models.StatusReceived)
	}
	if created.ID == 0 {
		t.Error("order id not assigned")
	}
}

func TestCreateOrderRejectsInvalidDraft(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs)

	draft := &models.Order{ContactNumber: "021555123", Items: validItems()}

	_, err := svc.CreateOrder(context.Background(), draft, "req-1")
	var verr *cart.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(fs.created) != 0 {
		t.Error("store was called for an invalid draft")
	}
}

func TestUpdateStatusValidTransition(t *testing.T) {
	fs := newFakeStore(&models.Order{ID: 1, Status: models.StatusReceived})
	svc := newTestService(fs)

	order, err := svc.UpdateStatus(context.Background(), 1, models.StatusReady, "req-1")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if order.Status != models.StatusReady {
		t.Errorf("status = %s, want %s", order.Status, models.StatusReady)
	}
	if len(fs.updates) != 1 || fs.updates[0] != models.StatusReady {
		t.Errorf("store updates = %v", fs.updates)
	}
}

func TestUpdateStatusIdempotentReapply(t *testing.T) {
	fs := newFakeStore(&models.Order{ID: 1, CustomerName: "Dawa", Status: models.StatusReady})
	svc := newTestService(fs)

	order, err := svc.UpdateStatus(context.Background(), 1, models.StatusReady, "req-1")
	if err != nil {
		t.Fatalf("re-apply returned error: %v", err)
	}
	if order.Status != models.StatusReady {
		t.Errorf("status = %s, want %s", order.Status, models.StatusReady)
	}
	if order.CustomerName != "Dawa" {
		t.Errorf("re-apply did not return the current order: %+v", order)
	}
	if len(fs.updates) != 0 {
		t.Errorf("idempotent re-apply wrote to the store: %v", fs.updates)
	}
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	fs := newFakeStore(&models.Order{ID: 1, Status: models.StatusReceived})
	svc := newTestService(fs)

	_, err := svc.UpdateStatus(context.Background(), 1, models.StatusCollected, "req-1")
	var invalid *models.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if len(fs.updates) != 0 {
		t.Errorf("store was written despite invalid transition: %v", fs.updates)
	}
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	fs := newFakeStore(&models.Order{ID: 1, Status: models.StatusReceived})
	svc := newTestService(fs)

	_, err := svc.UpdateStatus(context.Background(), 1, models.OrderStatus("cooked"), "req-1")
	var verr *cart.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.UpdateStatus(context.Background(), 42, models.StatusReady, "req-1")
	if !errors.Is(err, store.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
