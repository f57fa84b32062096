package orders

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/events"
	"storefront/internal/models"
	"storefront/internal/store"
)

type memoryRepo struct {
	mu     sync.Mutex
	orders []models.Order
	writes int
	err    error
}

func (r *memoryRepo) Create(_ context.Context, order models.Order) (primitive.ObjectID, error) {
	if r.err != nil {
		return primitive.NilObjectID, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	order.ID = primitive.NewObjectID()
	r.orders = append(r.orders, order)
	r.writes++
	return order.ID, nil
}

func (r *memoryRepo) ListAll(context.Context) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Order, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		out = append(out, r.orders[i])
	}
	return out, nil
}

func (r *memoryRepo) FindByOrderNumber(_ context.Context, orderNumber string) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return models.Order{}, store.ErrNotFound
}

func (r *memoryRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.PaymentStatus) (models.Order, models.PaymentStatus, error) {
	if !status.Valid() {
		return models.Order{}, "", store.ErrInvalidStatus
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.orders {
		if o.ID == id {
			previous := o.PaymentStatus
			r.orders[i].PaymentStatus = status
			r.writes++
			return r.orders[i], previous, nil
		}
	}
	return models.Order{}, "", store.ErrNotFound
}

type stubSequencer struct {
	mu   sync.Mutex
	next int
	err  error
}

func (s *stubSequencer) Next(context.Context) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return "ORD240307" + leftPad(s.next), nil
}

func leftPad(n int) string {
	digits := []byte("000000")
	for i := len(digits) - 1; i >= 0 && n > 0; i-- {
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e events.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() {}

type recordingNotifier struct {
	mu        sync.Mutex
	placed    []string
	confirmed []string
	// release, when set, holds every send until it is closed.
	release chan struct{}
}

func (n *recordingNotifier) OrderPlaced(o models.Order) error {
	if n.release != nil {
		<-n.release
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.placed = append(n.placed, o.OrderNumber)
	return nil
}

func (n *recordingNotifier) PaymentConfirmed(o models.Order) error {
	if n.release != nil {
		<-n.release
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed = append(n.confirmed, o.OrderNumber)
	return nil
}
