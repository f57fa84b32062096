package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BankAccount is shown to buyers on the payment instructions page so they can
// settle an order by manual transfer.
type BankAccount struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	AccountName   string             `bson:"accountName" json:"accountName"`
	AccountNumber string             `bson:"accountNumber" json:"accountNumber"`
	IBAN          string             `bson:"iban" json:"iban"`
	PhoneNumber   string             `bson:"phoneNumber" json:"phoneNumber"`
	Instructions  string             `bson:"instructions,omitempty" json:"instructions,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
