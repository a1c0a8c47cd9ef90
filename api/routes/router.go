package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mickytroxxy/bluegrass/api/controllers"
	"github.com/mickytroxxy/bluegrass/api/middleware"
	"github.com/mickytroxxy/bluegrass/internal/account"
	"github.com/mickytroxxy/bluegrass/internal/cart"
	"github.com/mickytroxxy/bluegrass/internal/catalog"
	checkoutsvc "github.com/mickytroxxy/bluegrass/internal/checkout"
	"github.com/mickytroxxy/bluegrass/pkg/config"
	"github.com/mickytroxxy/bluegrass/pkg/logger"
)

// Deps carries everything the route tree consumes.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	CatalogStore    *catalog.Store
	CartStore       *cart.Store
	AccountService  account.Service
	CheckoutService checkoutsvc.Service
	Committer       controllers.Committer
	Registry        *prometheus.Registry
	ReadyPingers    []controllers.Pinger
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.ReadyPingers...))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", controllers.CatalogState(deps.CatalogStore, deps.Logger))
			r.Post("/category", controllers.CatalogChangeCategory(deps.CatalogStore, deps.Logger))
			r.Post("/load-more", controllers.CatalogLoadMore(deps.CatalogStore, deps.Logger))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(deps.CartStore, deps.Logger))
			r.Delete("/", controllers.CartClear(deps.CartStore, deps.Committer, deps.Logger))
			r.Post("/items", controllers.CartAddItem(deps.CartStore, deps.Committer, deps.Logger))
			r.Patch("/items/{productId}", controllers.CartSetQuantity(deps.CartStore, deps.Committer, deps.Logger))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.CartStore, deps.Committer, deps.Logger))
		})

		r.Post("/checkout", controllers.CheckoutConfirm(deps.CheckoutService, deps.Logger))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", controllers.AccountSignup(deps.AccountService, deps.Logger))
			r.Post("/signout", controllers.AccountSignOut(deps.AccountService, deps.Logger))
			r.Get("/me", controllers.AccountCurrent(deps.AccountService, deps.Logger))
		})
	})

	return r
}
