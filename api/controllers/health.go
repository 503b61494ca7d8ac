package controllers

import (
	"net/http"

	"github.com/FyliaCare/WarehousePOS-sub000/api/responses"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/config"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/db"
	pkgerrors "github.com/FyliaCare/WarehousePOS-sub000/pkg/errors"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WarehousePOS-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WarehousePOS-Env", cfg.App.Env)

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
