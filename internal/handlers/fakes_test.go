package handlers

import (
	"context"
	"errors"
	"html/template"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/config"
	"storefront/internal/events"
	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/orders"
	"storefront/internal/sequence"
	"storefront/internal/session"
	"storefront/internal/store"
)

type memoryCounter struct {
	mu  sync.Mutex
	seq int64
}

func (c *memoryCounter) Increment(context.Context, string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq, nil
}

type memoryOrders struct {
	mu     sync.Mutex
	orders []models.Order
	err    error
}

func (r *memoryOrders) Create(_ context.Context, order models.Order) (primitive.ObjectID, error) {
	if r.err != nil {
		return primitive.NilObjectID, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	order.ID = primitive.NewObjectID()
	r.orders = append(r.orders, order)
	return order.ID, nil
}

func (r *memoryOrders) ListAll(context.Context) ([]models.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Order, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		out = append(out, r.orders[i])
	}
	return out, nil
}

func (r *memoryOrders) FindByOrderNumber(_ context.Context, orderNumber string) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return models.Order{}, store.ErrNotFound
}

func (r *memoryOrders) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.PaymentStatus) (models.Order, models.PaymentStatus, error) {
	if !status.Valid() {
		return models.Order{}, "", store.ErrInvalidStatus
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.orders {
		if o.ID == id {
			previous := o.PaymentStatus
			r.orders[i].PaymentStatus = status
			return r.orders[i], previous, nil
		}
	}
	return models.Order{}, "", store.ErrNotFound
}

func (r *memoryOrders) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

type memoryAccounts struct {
	accounts []models.BankAccount
}

func (m *memoryAccounts) List(context.Context) ([]models.BankAccount, error) {
	out := make([]models.BankAccount, len(m.accounts))
	copy(out, m.accounts)
	return out, nil
}

func (m *memoryAccounts) Create(_ context.Context, account models.BankAccount) (models.BankAccount, error) {
	account.ID = primitive.NewObjectID()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	m.accounts = append(m.accounts, account)
	return account, nil
}

func (m *memoryAccounts) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, a := range m.accounts {
		if a.ID == id {
			m.accounts = append(m.accounts[:i], m.accounts[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type memoryUsers struct {
	users []models.User
}

func (m *memoryUsers) Create(_ context.Context, user models.User) (models.User, error) {
	if _, ok := models.ParseRole(string(user.Role)); !ok {
		return models.User{}, store.ErrInvalidRole
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	for _, u := range m.users {
		if u.Email == user.Email {
			return models.User{}, store.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	m.users = append(m.users, user)
	return user, nil
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (m *memoryUsers) List(context.Context) ([]models.User, error) {
	return append([]models.User(nil), m.users...), nil
}

func (m *memoryUsers) UpdateRole(_ context.Context, id primitive.ObjectID, role models.Role) error {
	if _, ok := models.ParseRole(string(role)); !ok {
		return store.ErrInvalidRole
	}
	for i, u := range m.users {
		if u.ID == id {
			m.users[i].Role = role
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memoryUsers) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type memoryWebsiteInfo struct {
	info  *models.WebsiteInfo
	saves int
}

func (m *memoryWebsiteInfo) Get(context.Context) (models.WebsiteInfo, error) {
	if m.info == nil {
		return models.WebsiteInfo{}, store.ErrNotFound
	}
	return *m.info, nil
}

func (m *memoryWebsiteInfo) Save(_ context.Context, info models.WebsiteInfo) error {
	m.info = &info
	m.saves++
	return nil
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error { return p.err }

var errDatabaseDown = errors.New("database down")

type testApp struct {
	router   *gin.Engine
	orders   *memoryOrders
	accounts *memoryAccounts
	users    *memoryUsers
	info     *memoryWebsiteInfo
	sessions *session.Manager
	pinger   *fakePinger

	publicDir string
}

const testPages = `
{{define "login.html"}}login {{.callbackUrl}}{{end}}
{{define "unauthorized.html"}}unauthorized{{end}}
{{define "dashboard.html"}}orders={{.summary.Total}} completed={{.summary.Completed}} revenue={{.summary.Revenue}}{{end}}
{{define "orders.html"}}{{range .orders}}{{.OrderNumber}}:{{.PaymentStatus}};{{end}}{{end}}
{{define "payment_instructions.html"}}{{if .notFound}}missing{{else}}{{.order.OrderNumber}} due={{.amountDue}} accounts={{len .bankAccounts}}{{end}}{{end}}
`

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := &testApp{
		orders:   &memoryOrders{},
		accounts: &memoryAccounts{},
		users:    &memoryUsers{},
		info:     &memoryWebsiteInfo{},
		sessions: session.NewManager("test-secret", time.Hour),
		pinger:   &fakePinger{},

		publicDir: t.TempDir(),
	}

	generator := sequence.NewGenerator(&memoryCounter{})
	svc := orders.NewService(generator, app.orders, events.Nop{}, notify.NewMailer(config.SMTPConfig{}))

	app.router = NewRouter(Deps{
		Orders:       svc,
		BankAccounts: app.accounts,
		Users:        app.users,
		WebsiteInfo:  app.info,
		Sessions:     app.sessions,
		DB:           app.pinger,
		PublicDir:    app.publicDir,
	})
	app.router.SetHTMLTemplate(template.Must(template.New("pages").Parse(testPages)))
	return app
}

func (a *testApp) token(t *testing.T, role models.Role) string {
	t.Helper()
	raw, _, err := a.sessions.Issue(models.User{ID: primitive.NewObjectID(), Email: string(role) + "@shop.test", Role: role})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	return raw
}

func (a *testApp) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) asAdmin(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, method, path, body, a.token(t, models.RoleAdmin))
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}
