package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/orders"
	"storefront/internal/store"
)

/* =========================
   CREATE ORDER
========================= */

func CreateOrder(svc OrderService, db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/public/order"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := ensureDBConnection(ctx, db); err != nil {
			log.Println("[ORDER] [ERROR] database ping failed:", err)
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var draft orders.Draft
		if err := c.ShouldBindJSON(&draft); err != nil {
			respondValidationError(c, err)
			return
		}

		order, err := svc.Place(ctx, draft)
		if err != nil {
			var invalid orders.ValidationErrors
			if errors.As(err, &invalid) {
				log.Println("[ORDER] [ERROR] rejected order:", err)
				respondValidationError(c, invalid)
				return
			}
			respondInternalError(c, route, "Internal server error", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success":     true,
			"orderId":     order.ID.Hex(),
			"orderNumber": order.OrderNumber,
			"message":     "Order created successfully",
		})
	}
}

/* =========================
   PAYMENT INSTRUCTIONS
========================= */

// GetPaymentAccounts returns the order together with every bank account the
// buyer may transfer to.
func GetPaymentAccounts(svc OrderService, accounts BankAccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/public/accounts/:orderNumber"
		defer handlePanic(c, route)

		orderNumber := strings.TrimSpace(c.Param("orderNumber"))
		if orderNumber == "" {
			respondWithError(c, http.StatusNotFound, route, "Order not found")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		order, err := svc.Lookup(ctx, orderNumber)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "Order not found")
			return
		}
		if err != nil {
			respondInternalError(c, route, "Failed to fetch data", err)
			return
		}

		bankAccounts, err := accounts.List(ctx)
		if err != nil {
			respondInternalError(c, route, "Failed to fetch data", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"order":        order,
			"bankAccounts": bankAccounts,
		})
	}
}
