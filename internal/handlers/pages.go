package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/store"
)

type orderSummary struct {
	Total     int
	Pending   int
	Completed int
	Failed    int
	Revenue   float64
}

// summarize counts orders per payment status. Revenue only includes
// completed orders.
func summarize(all []models.Order) orderSummary {
	var s orderSummary
	for _, o := range all {
		s.Total++
		switch o.PaymentStatus {
		case models.PaymentPending:
			s.Pending++
		case models.PaymentCompleted:
			s.Completed++
			s.Revenue += o.AmountDue()
		case models.PaymentFailed:
			s.Failed++
		}
	}
	return s
}

func Home() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/admin")
	}
}

func LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"callbackUrl": c.Query("callbackUrl")})
}

func UnauthorizedPage(c *gin.Context) {
	c.HTML(http.StatusForbidden, "unauthorized.html", gin.H{})
}

func AdminDashboardPage(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		all, err := svc.List(ctx)
		if err != nil {
			respondInternalError(c, route, "Failed to fetch orders", err)
			return
		}

		recent := all
		if len(recent) > 5 {
			recent = recent[:5]
		}
		c.HTML(http.StatusOK, "dashboard.html", gin.H{
			"admin":   adminEmail(c),
			"summary": summarize(all),
			"recent":  recent,
		})
	}
}

func AdminOrdersPage(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/orders"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		all, err := svc.List(ctx)
		if err != nil {
			respondInternalError(c, route, "Failed to fetch orders", err)
			return
		}
		c.HTML(http.StatusOK, "orders.html", gin.H{
			"admin":     adminEmail(c),
			"orders":    all,
			"statuses":  models.PaymentStatuses,
			"requestId": middleware.RequestIDFrom(c),
		})
	}
}

// PaymentInstructionsPage shows a buyer how to settle an order by manual
// transfer.
func PaymentInstructionsPage(svc OrderService, accounts BankAccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /payment-instructions/:orderNumber"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		order, err := svc.Lookup(ctx, c.Param("orderNumber"))
		if errors.Is(err, store.ErrNotFound) {
			c.HTML(http.StatusNotFound, "payment_instructions.html", gin.H{"notFound": true})
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

		c.HTML(http.StatusOK, "payment_instructions.html", gin.H{
			"order":        order,
			"amountDue":    order.AmountDue(),
			"bankAccounts": bankAccounts,
		})
	}
}
