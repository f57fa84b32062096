package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentMethod string

const (
	PaymentJazzCash     PaymentMethod = "jazzcash"
	PaymentEasyPaisa    PaymentMethod = "easypaisa"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// Valid reports whether m is one of the accepted manual payment channels.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentJazzCash, PaymentEasyPaisa, PaymentBankTransfer:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// PaymentStatuses lists every status an admin may set, in display order.
var PaymentStatuses = []PaymentStatus{PaymentPending, PaymentCompleted, PaymentFailed}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

// Order is the persisted purchase record. Product and user fields are copies
// taken at checkout time, so later catalog or account edits never touch them.
type Order struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber      string             `bson:"orderNumber" json:"orderNumber"`
	ProductID        string             `bson:"productId" json:"productId"`
	ProductTitle     string             `bson:"productTitle" json:"productTitle"`
	ProductPrice     float64            `bson:"productPrice" json:"productPrice"`
	ProductSalePrice *float64           `bson:"productSalePrice,omitempty" json:"productSalePrice,omitempty"`
	UserID           string             `bson:"userId" json:"userId"`
	UserName         string             `bson:"userName" json:"userName"`
	UserEmail        string             `bson:"userEmail" json:"userEmail"`
	UserRole         string             `bson:"userRole,omitempty" json:"userRole,omitempty"`
	PhoneNumber      string             `bson:"phoneNumber" json:"phoneNumber"`
	PaymentMethod    PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus    PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AmountDue is what the buyer is asked to transfer: the sale price when one
// was captured, otherwise the list price.
func (o Order) AmountDue() float64 {
	if o.ProductSalePrice != nil && *o.ProductSalePrice > 0 {
		return *o.ProductSalePrice
	}
	return o.ProductPrice
}
