package notification

import (
	"context"
	"encoding/json"
	"testing"

	"food-corner/internal/logger"
	"food-corner/internal/models"
)

func newTestSubscriber() *Subscriber {
	return NewSubscriber(nil, logger.New("notification-test"))
}

func TestHandleNotification_NewOrders(t *testing.T) {
	body, _ := json.Marshal(models.NewOrdersAlertMessage(5, 3))

	if err := newTestSubscriber().handleNotification(context.Background(), body); err != nil {
		t.Fatalf("handleNotification: %v", err)
	}
}

func TestHandleNotification_StatusChanged(t *testing.T) {
	order := &models.Order{ID: 7, CustomerName: "Dawa", Status: models.StatusReady}
	body, _ := json.Marshal(models.StatusChangedMessage(order, models.StatusReceived))

	if err := newTestSubscriber().handleNotification(context.Background(), body); err != nil {
		t.Fatalf("handleNotification: %v", err)
	}
}

func TestHandleNotification_UnknownKindIsDropped(t *testing.T) {
	if err := newTestSubscriber().handleNotification(context.Background(), []byte(`{"kind":"mystery"}`)); err != nil {
		t.Fatalf("unknown kind should be dropped, got %v", err)
	}
}

func TestHandleNotification_MalformedJSON(t *testing.T) {
	if err := newTestSubscriber().handleNotification(context.Background(), []byte(`{`)); err == nil {
		t.Fatal("expected parse error")
	}
}
