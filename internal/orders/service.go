// Package orders validates checkout submissions and drives the payment status
// of persisted orders.
package orders

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/events"
	"storefront/internal/models"
)

type Sequencer interface {
	Next(ctx context.Context) (string, error)
}

type Repository interface {
	Create(ctx context.Context, order models.Order) (primitive.ObjectID, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) (models.Order, models.PaymentStatus, error)
}

type Notifier interface {
	OrderPlaced(order models.Order) error
	PaymentConfirmed(order models.Order) error
}

type Service struct {
	seq      Sequencer
	repo     Repository
	events   events.Publisher
	notifier Notifier
	now      func() time.Time

	// mail tracks e-mails still being sent in the background.
	mail sync.WaitGroup
}

func NewService(seq Sequencer, repo Repository, publisher events.Publisher, notifier Notifier) *Service {
	return &Service{
		seq:      seq,
		repo:     repo,
		events:   publisher,
		notifier: notifier,
		now:      time.Now,
	}
}

// Place mints an order number, validates the draft with it and persists the
// order. No record is written when either step fails.
func (s *Service) Place(ctx context.Context, d Draft) (models.Order, error) {
	number, err := s.seq.Next(ctx)
	if err != nil {
		return models.Order{}, err
	}
	d.OrderNumber = number

	order, err := Validate(d, s.now().UTC())
	if err != nil {
		return models.Order{}, err
	}

	id, err := s.repo.Create(ctx, order)
	if err != nil {
		return models.Order{}, fmt.Errorf("create order: %w", err)
	}
	order.ID = id

	log.Println("[ORDER] [INFO] order created:", order.OrderNumber)
	s.publish(ctx, events.NewOrderCreated(order, s.now().UTC()))
	s.sendMail("new order", func() error { return s.notifier.OrderPlaced(order) })
	return order, nil
}

func (s *Service) List(ctx context.Context) ([]models.Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Lookup(ctx context.Context, orderNumber string) (models.Order, error) {
	return s.repo.FindByOrderNumber(ctx, orderNumber)
}

// SetStatus overwrites the payment status. Any status may follow any other;
// the buyer is e-mailed only when an order first becomes completed.
func (s *Service) SetStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) (models.Order, error) {
	order, previous, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return models.Order{}, err
	}

	log.Printf("[ORDER] [INFO] order %s payment status %s -> %s", order.OrderNumber, previous, status)
	s.publish(ctx, events.NewStatusChanged(order, previous, s.now().UTC()))
	if status == models.PaymentCompleted && previous != models.PaymentCompleted {
		s.sendMail("payment confirmation", func() error { return s.notifier.PaymentConfirmed(order) })
	}
	return order, nil
}

// sendMail runs send off the request path so a slow SMTP server does not
// hold up the response. Failures are only logged.
func (s *Service) sendMail(what string, send func() error) {
	s.mail.Add(1)
	go func() {
		defer s.mail.Done()
		if err := send(); err != nil {
			log.Printf("[ORDER] [WARN] %s e-mail failed: %v", what, err)
		}
	}()
}

// Wait blocks until every queued e-mail has been attempted.
func (s *Service) Wait() {
	s.mail.Wait()
}

func (s *Service) publish(ctx context.Context, event events.OrderEvent) {
	if err := s.events.Publish(ctx, event); err != nil {
		log.Printf("[ORDER] [WARN] publish %s for %s failed: %v", event.Type, event.OrderNumber, err)
	}
}
