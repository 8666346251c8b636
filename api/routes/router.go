package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andremartins/storefront-backend/api/controllers"
	"github.com/andremartins/storefront-backend/api/middleware"
	"github.com/andremartins/storefront-backend/internal/cart"
	"github.com/andremartins/storefront-backend/internal/catalog"
	"github.com/andremartins/storefront-backend/internal/favorites"
	"github.com/andremartins/storefront-backend/internal/localstore"
	"github.com/andremartins/storefront-backend/internal/orders"
	"github.com/andremartins/storefront-backend/internal/remote"
	"github.com/andremartins/storefront-backend/pkg/config"
	"github.com/andremartins/storefront-backend/pkg/logger"
	"github.com/andremartins/storefront-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gatherer prometheus.Gatherer,
	httpMetrics *metrics.HTTPMetrics,
	store localstore.Store,
	remoteClient remote.Client,
	catalogService catalog.Service,
	cartService cart.Service,
	favoritesService favorites.Service,
	checkoutService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, store))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", controllers.CatalogProducts(catalogService, logg))
		r.Get("/products/search", controllers.CatalogSearch(catalogService, logg))
		r.Get("/products/{productId}", controllers.CatalogProductDetail(catalogService, logg))
		r.Get("/brands", controllers.CatalogBrands(catalogService, logg))
		r.Get("/categories", controllers.CatalogCategories(catalogService, logg))
		r.Get("/categories/featured", controllers.CatalogFeaturedCategories(catalogService, logg))
		r.Get("/categories/{categoryId}", controllers.CatalogCategoryDetail(catalogService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateItem(cartService, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(cartService, logg))
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", controllers.FavoritesList(favoritesService, logg))
			r.Get("/ids", controllers.FavoriteIDs(favoritesService, logg))
			r.Post("/", controllers.FavoriteAdd(favoritesService, logg))
			r.Post("/toggle", controllers.FavoriteToggle(favoritesService, logg))
			r.Delete("/{productId}", controllers.FavoriteRemove(favoritesService, logg))
		})

		r.Post("/checkout", controllers.Checkout(checkoutService, logg))
	})

	r.Route("/api/admin/v1/products", func(r chi.Router) {
		r.Post("/", controllers.AdminCreateProduct(remoteClient, catalogService, logg))
		r.Patch("/{productId}", controllers.AdminUpdateProduct(remoteClient, catalogService, logg))
		r.Delete("/{productId}", controllers.AdminDeleteProduct(remoteClient, catalogService, logg))
	})

	return r
}
