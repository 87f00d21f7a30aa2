package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/cargodesk/cargodesk-backend/api/responses"
	"github.com/cargodesk/cargodesk-backend/pkg/config"
	"github.com/cargodesk/cargodesk-backend/pkg/logger"
)

// Pinger is the readiness contract external dependencies expose.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-CargoDesk-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes the dependencies a request actually needs. Optional
// dependencies (nil pingers) are reported as skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-CargoDesk-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{}
		healthy := true
		for name, dep := range deps {
			if dep == nil {
				checks[name] = "skipped"
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				checks[name] = "down"
				healthy = false
				if logg != nil {
					logg.Error(logg.WithField(ctx, "dependency", name), "readiness probe failed", err)
				}
				continue
			}
			checks[name] = "ok"
		}

		status := http.StatusOK
		payload := map[string]any{"status": "ready", "checks": checks}
		if !healthy {
			status = http.StatusServiceUnavailable
			payload["status"] = "degraded"
		}
		responses.WriteSuccessStatus(w, status, payload)
	}
}
