package controllers

import (
	"net/http"

	"github.com/andremartins/storefront-backend/api/responses"
	"github.com/andremartins/storefront-backend/api/validators"
	"github.com/andremartins/storefront-backend/internal/catalog"
	"github.com/andremartins/storefront-backend/internal/remote"
	pkgerrors "github.com/andremartins/storefront-backend/pkg/errors"
	"github.com/andremartins/storefront-backend/pkg/logger"
)

// AdminCreateProduct appends a product to the backend catalog and refreshes
// the storefront view so the change is visible without a restart.
func AdminCreateProduct(client remote.Client, cat catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload remote.CreateProductInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := validateCreateProduct(payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := client.CreateProduct(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating product"))
			return
		}

		if err := cat.Refresh(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, product.ID)
			logg.Info(ctx, "admin.product.created")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminUpdateProduct applies a partial patch; absent fields stay untouched.
func AdminUpdateProduct(client remote.Client, cat catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload remote.UpdateProductInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Price != nil && !payload.Price.IsPositive() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive"))
			return
		}
		if payload.Stock != nil && *payload.Stock < 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative"))
			return
		}

		product, err := client.UpdateProduct(r.Context(), productID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating product"))
			return
		}
		if product == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		if err := cat.Refresh(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminDeleteProduct removes the product from the backend catalog.
func AdminDeleteProduct(client remote.Client, cat catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deleted, err := client.DeleteProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting product"))
			return
		}
		if !deleted {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		if err := cat.Refresh(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"id": productID, "deleted": true})
	}
}

func validateCreateProduct(input remote.CreateProductInput) error {
	details := map[string]string{}
	if input.Name == "" {
		details["name"] = "is required"
	}
	if !input.Price.IsPositive() {
		details["price"] = "must be positive"
	}
	if input.Stock < 0 {
		details["stock"] = "must not be negative"
	}
	if input.Rating < 0 || input.Rating > 5 {
		details["rating"] = "must be between 0 and 5"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}
