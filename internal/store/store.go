// Package store holds the MongoDB collections behind the storefront.
package store

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidStatus = errors.New("invalid payment status")
	ErrInvalidRole   = errors.New("invalid role")
	ErrDuplicate     = errors.New("already exists")
)

const (
	ordersCollection       = "orders"
	usersCollection        = "users"
	bankAccountsCollection = "bankAccounts"
	websiteInfoCollection  = "website_info"
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	}
	return err
}
