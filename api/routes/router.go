package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orderhub/orderhub-backend/api/controllers"
	"github.com/orderhub/orderhub-backend/api/middleware"
	authsvc "github.com/orderhub/orderhub-backend/internal/auth"
	catalogsvc "github.com/orderhub/orderhub-backend/internal/catalog"
	customersvc "github.com/orderhub/orderhub-backend/internal/customers"
	ordersvc "github.com/orderhub/orderhub-backend/internal/orders"
	pricetablesvc "github.com/orderhub/orderhub-backend/internal/pricetables"
	"github.com/orderhub/orderhub-backend/internal/pricing"
	sellersvc "github.com/orderhub/orderhub-backend/internal/sellers"
	whatsappsvc "github.com/orderhub/orderhub-backend/internal/whatsapp"
	"github.com/orderhub/orderhub-backend/pkg/config"
	"github.com/orderhub/orderhub-backend/pkg/db"
	"github.com/orderhub/orderhub-backend/pkg/enums"
	"github.com/orderhub/orderhub-backend/pkg/logger"
	"github.com/orderhub/orderhub-backend/pkg/redis"
)

// Deps bundles everything the router needs wired.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *db.Client
	Redis       *redis.Client
	Auth        authsvc.Service
	Sellers     sellersvc.Service
	Customers   customersvc.Service
	Catalog     catalogsvc.Service
	PriceTables pricetablesvc.Service
	Orders      ordersvc.Service
	Pricing     *pricing.Resolver
	WhatsApp    whatsappsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/password/forgot", controllers.AuthForgotPassword(deps.Auth, logg))
		r.Post("/password/reset", controllers.AuthResetPassword(deps.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/sellers", func(r chi.Router) {
			r.Use(middleware.RequireRoles(logg, enums.UserRoleAdmin))
			r.Post("/", controllers.CreateSeller(deps.Sellers, logg))
			r.Get("/", controllers.ListSellers(deps.Sellers, logg))
			r.Get("/{sellerId}", controllers.GetSeller(deps.Sellers, logg))
			r.Patch("/{sellerId}", controllers.UpdateSeller(deps.Sellers, logg))
		})

		r.Route("/items", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRoles(logg, enums.UserRoleSeller, enums.UserRoleCustomer))
				r.Get("/", controllers.ListItems(deps.Catalog, deps.Pricing, logg))
				r.Get("/{itemId}", controllers.GetItem(deps.Catalog, deps.Pricing, logg))
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRoles(logg, enums.UserRoleSeller))
				r.Post("/", controllers.CreateItem(deps.Catalog, logg))
				r.Patch("/{itemId}", controllers.UpdateItem(deps.Catalog, logg))
				r.Delete("/{itemId}", controllers.DeactivateItem(deps.Catalog, logg))
			})
		})

		r.Route("/customers", func(r chi.Router) {
			r.Use(middleware.RequireRoles(logg, enums.UserRoleSeller))
			r.Post("/", controllers.CreateCustomer(deps.Customers, logg))
			r.Get("/", controllers.ListCustomers(deps.Customers, logg))
			r.Get("/{customerId}", controllers.GetCustomer(deps.Customers, logg))
			r.Patch("/{customerId}", controllers.UpdateCustomer(deps.Customers, logg))
			r.Delete("/{customerId}", controllers.DeactivateCustomer(deps.Customers, logg))
			r.Delete("/{customerId}/price-table", controllers.UnassignPriceTableCustomer(deps.PriceTables, logg))
		})

		r.Route("/price-tables", func(r chi.Router) {
			r.Use(middleware.RequireRoles(logg, enums.UserRoleSeller))
			r.Post("/", controllers.CreatePriceTable(deps.PriceTables, logg))
			r.Get("/", controllers.ListPriceTables(deps.PriceTables, logg))
			r.Get("/{tableId}", controllers.GetPriceTable(deps.PriceTables, logg))
			r.Patch("/{tableId}", controllers.UpdatePriceTable(deps.PriceTables, logg))
			r.Put("/{tableId}/items/{itemId}", controllers.SetPriceTableItem(deps.PriceTables, logg))
			r.Delete("/{tableId}/items/{itemId}", controllers.RemovePriceTableItem(deps.PriceTables, logg))
			r.Post("/{tableId}/customers", controllers.AssignPriceTableCustomer(deps.PriceTables, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRoles(logg, enums.UserRoleSeller, enums.UserRoleCustomer))
				r.Post("/", controllers.CreateOrder(deps.Orders, logg))
				r.Get("/", controllers.ListOrders(deps.Orders, logg))
				r.Get("/{orderId}", controllers.GetOrder(deps.Orders, logg))
			})
			r.With(middleware.RequireRoles(logg, enums.UserRoleSeller)).
				Patch("/{orderId}/status", controllers.UpdateOrderStatus(deps.Orders, logg))
		})

		r.With(middleware.RequireRoles(logg, enums.UserRoleSeller, enums.UserRoleCustomer)).
			Post("/prices/resolve", controllers.ResolvePrices(deps.Pricing, logg))

		r.With(middleware.RequireRoles(logg, enums.UserRoleSeller)).
			Post("/whatsapp/batch", controllers.WhatsAppBatch(deps.WhatsApp, logg))
	})

	return r
}
