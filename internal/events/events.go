// Package events publishes order lifecycle records. The stream doubles as the
// payment status history, which the orders collection does not keep.
package events

import (
	"context"
	"time"

	"storefront/internal/models"
)

type Type string

const (
	OrderCreated       Type = "order.created"
	OrderStatusChanged Type = "order.status_changed"
)

type OrderEvent struct {
	Type           Type                 `json:"type"`
	OrderID        string               `json:"orderId"`
	OrderNumber    string               `json:"orderNumber"`
	PaymentStatus  models.PaymentStatus `json:"paymentStatus"`
	PreviousStatus models.PaymentStatus `json:"previousStatus,omitempty"`
	Amount         float64              `json:"amount"`
	At             time.Time            `json:"at"`
}

func NewOrderCreated(order models.Order, at time.Time) OrderEvent {
	return OrderEvent{
		Type:          OrderCreated,
		OrderID:       order.ID.Hex(),
		OrderNumber:   order.OrderNumber,
		PaymentStatus: order.PaymentStatus,
		Amount:        order.AmountDue(),
		At:            at,
	}
}

func NewStatusChanged(order models.Order, previous models.PaymentStatus, at time.Time) OrderEvent {
	return OrderEvent{
		Type:           OrderStatusChanged,
		OrderID:        order.ID.Hex(),
		OrderNumber:    order.OrderNumber,
		PaymentStatus:  order.PaymentStatus,
		PreviousStatus: previous,
		Amount:         order.AmountDue(),
		At:             at,
	}
}

type Publisher interface {
	Publish(ctx context.Context, event OrderEvent) error
	Close()
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, OrderEvent) error { return nil }
func (Nop) Close()                                    {}
