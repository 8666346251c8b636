package controllers

import (
	"net/http"

	"github.com/andremartins/storefront-backend/api/responses"
	"github.com/andremartins/storefront-backend/internal/localstore"
	"github.com/andremartins/storefront-backend/pkg/config"
	pkgerrors "github.com/andremartins/storefront-backend/pkg/errors"
	"github.com/andremartins/storefront-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the session state backend answers.
func HealthReady(cfg *config.Config, logg *logger.Logger, store localstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)

		if store != nil {
			if err := store.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "state store unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
