package orders

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"storefront/internal/models"
)

// Draft is an order as submitted by a buyer, before validation. OrderNumber is
// always overwritten with a freshly minted number.
type Draft struct {
	ProductID        string   `json:"productId" validate:"required"`
	ProductTitle     string   `json:"productTitle" validate:"required"`
	ProductPrice     *float64 `json:"productPrice" validate:"required,gte=0"`
	ProductSalePrice *float64 `json:"productSalePrice" validate:"omitempty,gte=0"`
	UserEmail        string   `json:"userEmail" validate:"required,email"`
	UserID           string   `json:"userId" validate:"required"`
	UserName         string   `json:"userName" validate:"required"`
	UserRole         string   `json:"userRole"`
	PhoneNumber      *string  `json:"phoneNumber" validate:"required"`
	PaymentMethod    string   `json:"paymentMethod" validate:"omitempty,oneof=jazzcash easypaisa bank_transfer"`
	PaymentStatus    string   `json:"paymentStatus" validate:"omitempty,oneof=pending completed failed"`
	OrderNumber      string   `json:"orderNumber" validate:"required"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors lists every failing field of a rejected payload.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks a draft and returns the normalised order, with defaults
// filled in and both timestamps set to now.
func Validate(d Draft, now time.Time) (models.Order, error) {
	d.ProductID = strings.TrimSpace(d.ProductID)
	d.ProductTitle = strings.TrimSpace(d.ProductTitle)
	d.UserEmail = strings.TrimSpace(d.UserEmail)
	d.UserID = strings.TrimSpace(d.UserID)
	d.UserName = strings.TrimSpace(d.UserName)
	d.UserRole = strings.TrimSpace(d.UserRole)
	d.PaymentMethod = strings.TrimSpace(d.PaymentMethod)
	d.PaymentStatus = strings.TrimSpace(d.PaymentStatus)
	d.OrderNumber = strings.TrimSpace(d.OrderNumber)

	if err := validate.Struct(d); err != nil {
		return models.Order{}, toValidationErrors(err)
	}

	order := models.Order{
		OrderNumber:      d.OrderNumber,
		ProductID:        d.ProductID,
		ProductTitle:     d.ProductTitle,
		ProductPrice:     *d.ProductPrice,
		ProductSalePrice: d.ProductSalePrice,
		UserID:           d.UserID,
		UserName:         d.UserName,
		UserEmail:        d.UserEmail,
		UserRole:         d.UserRole,
		PhoneNumber:      *d.PhoneNumber,
		PaymentMethod:    models.PaymentMethod(d.PaymentMethod),
		PaymentStatus:    models.PaymentStatus(d.PaymentStatus),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = models.PaymentBankTransfer
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = models.PaymentPending
	}
	return order, nil
}

func toValidationErrors(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	out := make(ValidationErrors, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		out = append(out, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Invalid email address"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
