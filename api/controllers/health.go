package controllers

import (
	"context"
	"net/http"

	"github.com/diningtech/tableside/api/responses"
	"github.com/diningtech/tableside/internal/menu"
	"github.com/diningtech/tableside/pkg/config"
	pkgerrors "github.com/diningtech/tableside/pkg/errors"
	"github.com/diningtech/tableside/pkg/logger"
)

// Pinger is anything the readiness probe can check connectivity against.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Tableside-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the cart store connection and reports whether the menu
// mirror is serving. A nil cartStore (embedded SQLite) skips the ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, cartStore Pinger, catalog *menu.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Tableside-Env", cfg.App.Env)
		ctx := r.Context()

		if cartStore != nil {
			if err := cartStore.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart store unreachable"))
				return
			}
		}

		status := map[string]any{
			"status":        "ready",
			"menu_degraded": catalog.Degraded(),
		}
		responses.WriteSuccess(w, status)
	}
}
