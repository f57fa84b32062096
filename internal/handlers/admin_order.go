package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
	"storefront/internal/store"
)

type updateOrderStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required,oneof=pending completed failed"`
}

/* =========================
   LIST ORDERS
========================= */

// ListOrders returns every order newest first. page and limit are optional;
// without them the whole list is returned.
func ListOrders(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/orders"
		defer handlePanic(c, route)

		page, limit, paged, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		all, err := svc.List(ctx)
		if err != nil {
			respondInternalError(c, route, "Failed to fetch orders", err)
			return
		}

		if !paged {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": all})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"data":       paginate(all, page, limit),
			"pagination": pageInfo{Page: page, Limit: limit, Total: len(all)},
		})
	}
}

/* =========================
   UPDATE PAYMENT STATUS
========================= */

func UpdateOrderStatus(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/admin/orders/:id"
		defer handlePanic(c, route)

		orderID, ok := parseObjectIDParam(c, "id")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "Invalid ID format")
			return
		}

		var req updateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		order, err := svc.SetStatus(ctx, orderID, models.PaymentStatus(strings.TrimSpace(req.PaymentStatus)))
		switch {
		case errors.Is(err, store.ErrInvalidStatus):
			respondWithError(c, http.StatusBadRequest, route, "Invalid payment status")
			return
		case errors.Is(err, store.ErrNotFound):
			respondWithError(c, http.StatusNotFound, route, "Order not found")
			return
		case err != nil:
			respondInternalError(c, route, "Internal server error", err)
			return
		}

		log.Printf("[ORDER] [INFO] admin %s set %s to %s", adminEmail(c), order.OrderNumber, order.PaymentStatus)
		c.JSON(http.StatusOK, order)
	}
}
