package controllers

import (
	"net/http"

	"github.com/andremartins/storefront-backend/api/responses"
	"github.com/andremartins/storefront-backend/api/validators"
	orderssvc "github.com/andremartins/storefront-backend/internal/orders"
	"github.com/andremartins/storefront-backend/pkg/logger"
	"github.com/andremartins/storefront-backend/pkg/types"
)

// Checkout submits the session cart and returns the created order. The cart
// is cleared only after the order is accepted.
func Checkout(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := requireSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload types.CustomerInfo
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Checkout(r.Context(), sessionID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithOrderID(ctx, order.ID)
			logg.Info(ctx, "checkout.completed")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
