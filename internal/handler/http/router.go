package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rechevshop/storefront/internal/service"
	"github.com/rechevshop/storefront/pkg/health"
	"github.com/rechevshop/storefront/pkg/middleware"
)

// RouterConfig bundles the services and cross-cutting pieces the router needs.
type RouterConfig struct {
	AuthService     *service.AuthService
	VehicleService  *service.VehicleService
	CartService     *service.CartService
	CatalogService  *service.CatalogService
	CheckoutService *service.CheckoutService
	HealthHandler   *health.Handler
	Logger          *slog.Logger
	CORSOrigins     []string
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowedOrigins = cfg.CORSOrigins
	}
	r.Use(middleware.CORS(corsCfg))

	// Health check endpoints
	r.Get("/health/live", cfg.HealthHandler.LivenessHandler())
	r.Get("/health/ready", cfg.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	authHandler := NewAuthHandler(cfg.AuthService, cfg.Logger)
	vehicleHandler := NewVehicleHandler(cfg.VehicleService, cfg.Logger)
	cartHandler := NewCartHandler(cfg.CartService, cfg.Logger)
	catalogHandler := NewCatalogHandler(cfg.CatalogService, cfg.Logger)
	checkoutHandler := NewCheckoutHandler(cfg.CheckoutService, cfg.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionID)

		r.Route("/auth/session", func(r chi.Router) {
			r.Put("/", authHandler.SignIn)
			r.Get("/", authHandler.Get)
			r.Delete("/", authHandler.SignOut)
		})

		r.Route("/vehicle", func(r chi.Router) {
			r.Post("/", vehicleHandler.Select)
			r.Post("/lookup", vehicleHandler.Lookup)
			r.Get("/", vehicleHandler.Get)
			r.Delete("/", vehicleHandler.Clear)
		})

		r.Get("/products", catalogHandler.ListProducts)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Delete("/", cartHandler.Clear)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productID}", cartHandler.UpdateQuantity)
			r.Delete("/items/{productID}", cartHandler.RemoveItem)
		})

		r.Post("/checkout", checkoutHandler.Submit)
	})

	return r
}
