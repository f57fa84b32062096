package handlers

import (
	"net/http"
	"strings"
	"testing"

	"storefront/internal/middleware"
	"storefront/internal/models"
)

func TestAdminPagesRedirectWithoutAdminSession(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/admin/orders", "", "")
	expectStatus(t, w, http.StatusFound)
	if w.Header().Get("Location") != middleware.LoginPath {
		t.Fatalf("expected login redirect, got %q", w.Header().Get("Location"))
	}

	w = app.do(t, http.MethodGet, "/admin", "", app.token(t, models.RoleUser))
	expectStatus(t, w, http.StatusFound)
	if w.Header().Get("Location") != middleware.UnauthorizedPath {
		t.Fatalf("expected unauthorized redirect, got %q", w.Header().Get("Location"))
	}

	w = app.do(t, http.MethodGet, middleware.UnauthorizedPath, "", "")
	expectStatus(t, w, http.StatusForbidden)
}

func TestAdminPagesRender(t *testing.T) {
	app := newTestApp(t)
	placed := placeOrder(t, app)
	placeOrder(t, app)
	w := app.asAdmin(t, http.MethodPatch, "/api/admin/orders/"+placed.OrderID, `{"paymentStatus":"completed"}`)
	expectStatus(t, w, http.StatusOK)

	w = app.asAdmin(t, http.MethodGet, "/admin", "")
	expectStatus(t, w, http.StatusOK)
	if got := w.Body.String(); got != "orders=2 completed=1 revenue=80" {
		t.Fatalf("unexpected dashboard %q", got)
	}

	w = app.asAdmin(t, http.MethodGet, "/admin/orders", "")
	expectStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), placed.OrderNumber+":completed;") {
		t.Fatalf("unexpected orders page %q", w.Body.String())
	}
}

func TestPaymentInstructionsPage(t *testing.T) {
	app := newTestApp(t)
	app.accounts.accounts = []models.BankAccount{{Name: "Meezan"}, {Name: "JazzCash"}}
	placed := placeOrder(t, app)

	w := app.do(t, http.MethodGet, "/payment-instructions/"+placed.OrderNumber, "", "")
	expectStatus(t, w, http.StatusOK)
	if got := w.Body.String(); got != placed.OrderNumber+" due=80 accounts=2" {
		t.Fatalf("unexpected page %q", got)
	}

	w = app.do(t, http.MethodGet, "/payment-instructions/ORD000000000000", "", "")
	expectStatus(t, w, http.StatusNotFound)
}

func TestSummarize(t *testing.T) {
	sale := 40.0
	s := summarize([]models.Order{
		{PaymentStatus: models.PaymentCompleted, ProductPrice: 100},
		{PaymentStatus: models.PaymentCompleted, ProductPrice: 100, ProductSalePrice: &sale},
		{PaymentStatus: models.PaymentFailed, ProductPrice: 100},
		{PaymentStatus: models.PaymentPending, ProductPrice: 100},
	})
	if s.Total != 4 || s.Completed != 2 || s.Failed != 1 || s.Pending != 1 || s.Revenue != 140 {
		t.Fatalf("unexpected summary %+v", s)
	}
}

func TestHomeRedirectsToAdmin(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/", "", "")
	expectStatus(t, w, http.StatusFound)
	if w.Header().Get("Location") != "/admin" {
		t.Fatalf("unexpected location %q", w.Header().Get("Location"))
	}
}
