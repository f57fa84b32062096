package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

func TestStatusChangedEventJSON(t *testing.T) {
	sale := 75.0
	order := models.Order{
		ID:               primitive.NewObjectID(),
		OrderNumber:      "ORD240307000001",
		ProductPrice:     100,
		ProductSalePrice: &sale,
		PaymentStatus:    models.PaymentCompleted,
	}
	at := time.Date(2024, time.March, 7, 12, 0, 0, 0, time.UTC)

	body, err := json.Marshal(NewStatusChanged(order, models.PaymentPending, at))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["type"] != "order.status_changed" {
		t.Fatalf("unexpected type %v", decoded["type"])
	}
	if decoded["previousStatus"] != "pending" || decoded["paymentStatus"] != "completed" {
		t.Fatalf("unexpected statuses %v -> %v", decoded["previousStatus"], decoded["paymentStatus"])
	}
	if decoded["amount"] != 75.0 {
		t.Fatalf("expected sale amount, got %v", decoded["amount"])
	}
	if decoded["orderId"] != order.ID.Hex() {
		t.Fatalf("unexpected order id %v", decoded["orderId"])
	}
}

func TestCreatedEventOmitsPreviousStatus(t *testing.T) {
	body, err := json.Marshal(NewOrderCreated(models.Order{OrderNumber: "ORD240307000002", PaymentStatus: models.PaymentPending}, time.Now()))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, ok := decoded["previousStatus"]; ok {
		t.Fatalf("expected previousStatus to be omitted, got %s", body)
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = Nop{}
	if err := p.Publish(context.Background(), OrderEvent{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	p.Close()
}
