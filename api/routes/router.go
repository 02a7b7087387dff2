package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/diningtech/tableside/api/controllers"
	"github.com/diningtech/tableside/api/middleware"
	"github.com/diningtech/tableside/internal/menu"
	"github.com/diningtech/tableside/internal/sessions"
	"github.com/diningtech/tableside/internal/tables"
	"github.com/diningtech/tableside/pkg/config"
	"github.com/diningtech/tableside/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	cartStore controllers.Pinger,
	catalog *menu.Store,
	resolver *tables.Resolver,
	registry *sessions.Registry,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, cartStore, catalog))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/tables", controllers.ListTables(resolver))
		r.Get("/menu", controllers.MenuFetch(catalog, logg))

		r.Route("/session", func(r chi.Router) {
			r.Post("/resolve", controllers.SessionResolve(resolver, logg))
			r.Get("/", controllers.SessionState(registry, resolver, logg))
			r.Post("/category", controllers.SessionSelectCategory(registry, resolver, logg))
			r.Post("/end", controllers.SessionEnd(registry, resolver, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(registry, resolver, logg))
			r.Delete("/", controllers.CartClear(registry, resolver, logg))
			r.Post("/items", controllers.CartAddItem(registry, resolver, logg))
			r.Put("/items/{itemID}", controllers.CartSetQuantity(registry, resolver, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(registry, resolver, logg))
			r.Post("/", controllers.OrderPlace(registry, resolver, logg))
		})

		r.Post("/service-requests", controllers.ServiceRequestCreate(registry, resolver, logg))
	})

	return r
}
