package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/poscatalog/catalog-backend/api/controllers"
	"github.com/poscatalog/catalog-backend/api/middleware"
	productsvc "github.com/poscatalog/catalog-backend/internal/products"
	"github.com/poscatalog/catalog-backend/internal/refdata"
	"github.com/poscatalog/catalog-backend/pkg/config"
	"github.com/poscatalog/catalog-backend/pkg/db"
	"github.com/poscatalog/catalog-backend/pkg/logger"
	"github.com/poscatalog/catalog-backend/pkg/metrics"
)

// NewRouter wires middleware and handlers. Health and metrics stay outside
// the auth gate; everything under /api/v1 requires a bearer token.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	httpMetrics *metrics.HTTPMetrics,
	productService productsvc.Service,
	refdataService refdata.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbClient, logg))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Post("/", controllers.CreateProduct(productService, logg))
			r.Get("/{id}", controllers.GetProduct(productService, logg))
			r.Put("/{id}", controllers.UpdateProduct(productService, logg))
			r.Delete("/{id}", controllers.DeleteProduct(productService, logg))
		})

		r.Route("/brands", func(r chi.Router) {
			r.Get("/", controllers.ListBrands(refdataService, logg))
			r.Post("/", controllers.CreateBrand(refdataService, logg))
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(refdataService, logg))
			r.Post("/", controllers.CreateCategory(refdataService, logg))
		})
		r.Route("/units", func(r chi.Router) {
			r.Get("/", controllers.ListUnits(refdataService, logg))
			r.Post("/", controllers.CreateUnit(refdataService, logg))
		})
		r.Route("/taxes", func(r chi.Router) {
			r.Get("/", controllers.ListTaxes(refdataService, logg))
			r.Post("/", controllers.CreateTax(refdataService, logg))
		})
		r.Route("/warehouses", func(r chi.Router) {
			r.Get("/", controllers.ListWarehouses(refdataService, logg))
			r.Post("/", controllers.CreateWarehouse(refdataService, logg))
		})
	})

	return r
}
