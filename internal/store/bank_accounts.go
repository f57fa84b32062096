package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

type BankAccountStore struct {
	coll *mongo.Collection
}

func NewBankAccountStore(db *mongo.Database) *BankAccountStore {
	return &BankAccountStore{coll: db.Collection(bankAccountsCollection)}
}

func (s *BankAccountStore) List(ctx context.Context) ([]models.BankAccount, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find bank accounts: %w", err)
	}
	defer cursor.Close(ctx)

	accounts := make([]models.BankAccount, 0)
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("decode bank accounts: %w", err)
	}
	return accounts, nil
}

func (s *BankAccountStore) Create(ctx context.Context, account models.BankAccount) (models.BankAccount, error) {
	now := time.Now()
	account.ID = primitive.NilObjectID
	account.CreatedAt = now
	account.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, account)
	if err != nil {
		return models.BankAccount{}, fmt.Errorf("insert bank account: %w", translate(err))
	}
	account.ID, _ = res.InsertedID.(primitive.ObjectID)
	return account, nil
}

func (s *BankAccountStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete bank account: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
