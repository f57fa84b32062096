package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

type OrderStore struct {
	coll *mongo.Collection
}

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{coll: db.Collection(ordersCollection)}
}

// Create inserts an already validated order. Uniqueness of the order number
// comes from the sequence generator and the orderNumber_unique index.
func (s *OrderStore) Create(ctx context.Context, order models.Order) (primitive.ObjectID, error) {
	res, err := s.coll.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert order %s: %w", order.OrderNumber, translate(err))
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert order %s: unexpected id type %T", order.OrderNumber, res.InsertedID)
	}
	return id, nil
}

// ListAll returns every order, newest first.
func (s *OrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (s *OrderStore) FindByOrderNumber(ctx context.Context, orderNumber string) (models.Order, error) {
	var order models.Order
	err := s.coll.FindOne(ctx, bson.M{"orderNumber": orderNumber}).Decode(&order)
	if err != nil {
		return models.Order{}, translate(err)
	}
	return order, nil
}

// UpdateStatus overwrites paymentStatus and returns the updated record along
// with the status it replaced. Unknown statuses are rejected before any
// round trip, and a missing id never creates a document.
func (s *OrderStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) (models.Order, models.PaymentStatus, error) {
	if !status.Valid() {
		return models.Order{}, "", ErrInvalidStatus
	}

	var before models.Order
	err := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"paymentStatus": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&before)
	if err != nil {
		return models.Order{}, "", translate(err)
	}

	previous := before.PaymentStatus
	updated := before
	updated.PaymentStatus = status
	return updated, previous, nil
}
