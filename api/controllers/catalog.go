package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/andremartins/storefront-backend/api/responses"
	"github.com/andremartins/storefront-backend/internal/catalog"
	"github.com/andremartins/storefront-backend/internal/remote"
	pkgerrors "github.com/andremartins/storefront-backend/pkg/errors"
	"github.com/andremartins/storefront-backend/pkg/logger"
)

// CatalogProducts lists products, optionally narrowed by the category,
// brand, featured, on_sale and best_seller query params. Filters combine.
func CatalogProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		products := svc.Products()

		if raw := query.Get("category"); raw != "" {
			categoryID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id"))
				return
			}
			products = keepProducts(products, func(p remote.Product) bool { return p.CategoryID == categoryID })
		}
		if brand := query.Get("brand"); brand != "" {
			products = keepProducts(products, func(p remote.Product) bool { return p.Brand == brand })
		}
		if query.Get("featured") == "true" {
			products = keepProducts(products, func(p remote.Product) bool { return p.Featured })
		}
		if query.Get("on_sale") == "true" {
			products = keepProducts(products, func(p remote.Product) bool { return p.OnSale })
		}
		if query.Get("best_seller") == "true" {
			products = keepProducts(products, func(p remote.Product) bool { return p.BestSeller })
		}

		responses.WriteSuccess(w, products)
	}
}

// CatalogSearch matches q against product names, descriptions, brands and
// category names. An empty q yields an empty list.
func CatalogSearch(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.SearchProducts(r.URL.Query().Get("q")))
	}
}

func CatalogProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, ok := svc.ProductByID(productID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func CatalogBrands(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.AllBrands())
	}
}

func CatalogCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.Categories())
	}
}

func CatalogFeaturedCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.FeaturedCategories())
	}
}

func CatalogCategoryDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := parseIDParam(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, ok := svc.CategoryByID(categoryID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "category not found"))
			return
		}
		responses.WriteSuccess(w, category)
	}
}

func keepProducts(products []remote.Product, keep func(remote.Product) bool) []remote.Product {
	out := make([]remote.Product, 0, len(products))
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}
