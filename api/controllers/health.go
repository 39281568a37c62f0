package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/lotmotors/resale-backend/api/responses"
	"github.com/lotmotors/resale-backend/pkg/config"
	pkgerrors "github.com/lotmotors/resale-backend/pkg/errors"
	"github.com/lotmotors/resale-backend/pkg/logger"
)

const readyCheckTimeout = 2 * time.Second

// Pinger is the health probe the readiness endpoint runs against each
// backing store.
type Pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Resale-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the backing stores before reporting ready. Nil pingers
// are skipped so the endpoint stays usable in partial deployments.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP Pinger) http.HandlerFunc {
	checks := map[string]Pinger{
		"database": dbP,
		"redis":    redisP,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Resale-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
