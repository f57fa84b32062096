package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/orders"
)

type OrderService interface {
	Place(ctx context.Context, d orders.Draft) (models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	Lookup(ctx context.Context, orderNumber string) (models.Order, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) (models.Order, error)
}

type BankAccountRepository interface {
	List(ctx context.Context) ([]models.BankAccount, error)
	Create(ctx context.Context, account models.BankAccount) (models.BankAccount, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type UserRepository interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, role models.Role) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type WebsiteInfoRepository interface {
	Get(ctx context.Context) (models.WebsiteInfo, error)
	Save(ctx context.Context, info models.WebsiteInfo) error
}

type SessionIssuer interface {
	Issue(user models.User) (string, time.Time, error)
}

type SessionManager interface {
	SessionIssuer
	middleware.SessionResolver
}

type Deps struct {
	Orders       OrderService
	BankAccounts BankAccountRepository
	Users        UserRepository
	WebsiteInfo  WebsiteInfoRepository
	Sessions     SessionManager
	DB           Pinger
	// PublicDir is served under /public and receives branding uploads.
	PublicDir string
	// TemplateGlob is loaded when set; tests install templates themselves.
	TemplateGlob string
}

// NewRouter wires every route behind the authorization gate. The gate runs
// before routing, so admin paths are protected whether or not a handler is
// registered for them.
func NewRouter(d Deps) *gin.Engine {
	useJSONFieldNames()

	r := gin.New()
	r.Use(middleware.RequestID(), gin.Logger(), gin.Recovery(), middleware.Gate(d.Sessions))

	if d.TemplateGlob != "" {
		r.LoadHTMLGlob(d.TemplateGlob)
	}
	if d.PublicDir != "" {
		r.Static("/public", d.PublicDir)
	}

	r.GET("/", Home())
	r.GET("/healthz", Health(d.DB))
	r.GET("/auth/login", LoginPage)
	r.GET("/unauthorized", UnauthorizedPage)
	r.GET("/payment-instructions/:orderNumber", PaymentInstructionsPage(d.Orders, d.BankAccounts))

	r.GET("/admin", AdminDashboardPage(d.Orders))
	r.GET("/admin/orders", AdminOrdersPage(d.Orders))

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", Register(d.Users))
		auth.POST("/login", Login(d.Users, d.Sessions))
		auth.POST("/logout", Logout())
		auth.GET("/session", middleware.RequireSession(), CurrentSession())
	}

	public := r.Group("/api/public")
	{
		public.POST("/order", CreateOrder(d.Orders, d.DB))
		public.GET("/accounts/:orderNumber", GetPaymentAccounts(d.Orders, d.BankAccounts))
		public.GET("/website-info", GetWebsiteInfo(d.WebsiteInfo))
	}

	admin := r.Group("/api/admin")
	{
		admin.GET("/orders", ListOrders(d.Orders))
		admin.GET("/orders/export", ExportOrders(d.Orders))
		admin.PATCH("/orders/:id", UpdateOrderStatus(d.Orders))

		admin.GET("/accounts", ListBankAccounts(d.BankAccounts))
		admin.POST("/accounts", CreateBankAccount(d.BankAccounts))
		admin.DELETE("/accounts/:id", DeleteBankAccount(d.BankAccounts))

		admin.GET("/user", ListUsers(d.Users))
		admin.POST("/user", CreateUser(d.Users))
		admin.PATCH("/user/:id", UpdateUserRole(d.Users))
		admin.DELETE("/user/:id", DeleteUser(d.Users))

		admin.POST("/website-info", SaveWebsiteInfo(d.WebsiteInfo, d.PublicDir))
	}

	return r
}
