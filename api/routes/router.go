package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/evermart/evermart-backend/api/controllers"
	"github.com/evermart/evermart-backend/api/middleware"
	"github.com/evermart/evermart-backend/internal/cart"
	"github.com/evermart/evermart-backend/internal/catalog"
	"github.com/evermart/evermart-backend/internal/checkout"
	"github.com/evermart/evermart-backend/internal/orders"
	"github.com/evermart/evermart-backend/internal/users"
	"github.com/evermart/evermart-backend/internal/wishlist"
	"github.com/evermart/evermart-backend/pkg/config"
	"github.com/evermart/evermart-backend/pkg/db"
	"github.com/evermart/evermart-backend/pkg/logger"
	"github.com/evermart/evermart-backend/pkg/metrics"
	pkgredis "github.com/evermart/evermart-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config     *config.Config
	Logger     *logger.Logger
	DB         db.Pinger
	Redis      *pkgredis.Client
	Registry   *prometheus.Registry
	Catalog    catalog.Service
	Cart       cart.Service
	Orders     orders.Service
	Users      users.Service
	Wishlist   wishlist.Service
	Checkout   checkout.Service
	APIMetrics *metrics.HTTPMetrics
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.APIMetrics),
		middleware.CORS(),
	)

	var cache pkgredis.Pinger
	if deps.Redis != nil {
		cache = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, cache))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		var store pkgredis.IdempotencyStore
		if deps.Redis != nil {
			store = deps.Redis
		}
		r.Use(middleware.Idempotency(store, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Catalog, logg))
			r.Post("/", controllers.CreateProduct(deps.Catalog, logg))
			r.Get("/details/{category}", controllers.GetFacets(deps.Catalog, logg))
			r.Get("/{productId}", controllers.GetProduct(deps.Catalog, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.GetWishlist(deps.Wishlist, logg))
			r.Put("/toggle", controllers.ToggleWishlist(deps.Wishlist, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.Cart, logg))
			r.Post("/", controllers.AddCartItems(deps.Cart, logg))
			r.Post("/remove", controllers.RemoveCartProduct(deps.Cart, logg))
			r.Post("/reduce-quantity", controllers.ReduceCartQuantity(deps.Cart, logg))
			r.Post("/clear", controllers.ClearCart(deps.Cart, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(deps.Orders, logg))
			r.Post("/", controllers.CreateOrder(deps.Orders, logg))
			r.Patch("/{orderId}/status", controllers.UpdateOrderStatus(deps.Orders, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.ListUsers(deps.Users, logg))
			r.Post("/", controllers.CreateUser(deps.Users, logg))
			r.Get("/me", controllers.GetCurrentUser(deps.Users, logg))
			r.Patch("/{userId}", controllers.UpdateUser(deps.Users, logg))
			r.Delete("/{userId}", controllers.DeleteUser(deps.Users, logg))
		})

		r.Post("/checkout/session", controllers.CreateCheckoutSession(deps.Checkout, logg))
	})

	return r
}
