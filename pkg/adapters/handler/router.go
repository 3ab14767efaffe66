package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/BMSaiko/FoodLister-sub003/pkg/config"
	"github.com/BMSaiko/FoodLister-sub003/pkg/logger"
	"github.com/BMSaiko/FoodLister-sub003/pkg/ports"
	"golang.org/x/time/rate"
)

// Services bundles what the router dispatches to
type Services struct {
	Restaurants ports.RestaurantService
	Lists       ports.ListService
	Visits      ports.VisitService
	Health      Pinger // optional; /healthz reports 503 when it fails
}

// Pinger checks that a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, log *logger.Logger, svc Services) http.Handler {
	rh := NewRestaurantHandler(svc.Restaurants, log)
	lh := NewListHandler(svc.Lists, log)
	vh := NewVisitHandler(svc.Visits, log)

	mw := NewMiddleware(cfg, log)
	previewLimiter := NewIPRateLimiter(rate.Limit(cfg.PreviewRatePerSec), cfg.PreviewBurst, log)

	mux := http.NewServeMux()

	// Public Routes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Health != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := svc.Health.Ping(ctx); err != nil {
				log.HTTPError(r.Context(), r.Method, r.URL.Path, http.StatusServiceUnavailable, err)
				writeMessage(w, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	mux.HandleFunc("GET /l/{slug}", lh.GetPublicList)
	mux.HandleFunc("POST /api/v1/links/preview", previewLimiter.Limit(rh.Preview))

	// Protected Routes
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("POST /api/v1/restaurants", rh.Create)
	protectedMux.HandleFunc("GET /api/v1/restaurants", rh.List)
	protectedMux.HandleFunc("GET /api/v1/restaurants/{id}", rh.Get)
	protectedMux.HandleFunc("PUT /api/v1/restaurants/{id}", rh.Update)
	protectedMux.HandleFunc("DELETE /api/v1/restaurants/{id}", rh.Delete)

	// Visit Routes
	protectedMux.HandleFunc("POST /api/v1/restaurants/{id}/visits", vh.Record)
	protectedMux.HandleFunc("GET /api/v1/restaurants/{id}/visits", vh.Summary)
	protectedMux.HandleFunc("GET /api/v1/visits", vh.Mine)

	// List Routes
	protectedMux.HandleFunc("POST /api/v1/lists", lh.CreateList)
	protectedMux.HandleFunc("GET /api/v1/lists", lh.ListLists)
	protectedMux.HandleFunc("GET /api/v1/lists/{id}", lh.GetList)
	protectedMux.HandleFunc("PUT /api/v1/lists/{id}", lh.UpdateList)
	protectedMux.HandleFunc("DELETE /api/v1/lists/{id}", lh.DeleteList)
	protectedMux.HandleFunc("POST /api/v1/lists/{id}/restaurants", lh.AddRestaurant)
	protectedMux.HandleFunc("PUT /api/v1/lists/{id}/restaurants", lh.Reorder)
	protectedMux.HandleFunc("DELETE /api/v1/lists/{id}/restaurants/{restaurantID}", lh.RemoveRestaurant)

	// More specific public patterns above win over this prefix
	mux.Handle("/api/v1/", mw.AuthMiddleware(protectedMux))

	return mw.RequestID(mw.RequestLogger(mux))
}
