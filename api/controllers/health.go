package controllers

import (
	"context"
	"net/http"

	"github.com/orderhub/orderhub-backend/api/responses"
	"github.com/orderhub/orderhub-backend/pkg/config"
	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
	"github.com/orderhub/orderhub-backend/pkg/logger"
)

const envHeader = "X-OrderHub-Env"

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and Redis before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbPing, redisPing pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		if dbPing != nil {
			if err := dbPing.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		if redisPing != nil {
			if err := redisPing.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
