package handler

import (
	"log/slog"
	"net/http"

	"github.com/BMSaiko/FoodLister-sub003/pkg/adapters/handler"
	"github.com/BMSaiko/FoodLister-sub003/pkg/adapters/repository/sqlite"
	"github.com/BMSaiko/FoodLister-sub003/pkg/config"
	"github.com/BMSaiko/FoodLister-sub003/pkg/core/services"
	"github.com/BMSaiko/FoodLister-sub003/pkg/logger"
)

var mux http.Handler

func init() {
	cfg := config.Load()
	log := logger.New(cfg.AppEnv, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error("refusing to serve", slog.String("error", err.Error()))
		mux = unavailable()
		return
	}

	// Note: On Vercel, a local sqlite file is ephemeral unless DATABASE_URL points at Turso
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}

	mux = handler.NewRouter(cfg, log, handler.Services{
		Restaurants: services.NewRestaurantService(repo),
		Lists:       services.NewListService(repo),
		Visits:      services.NewVisitService(repo),
		Health:      repo,
	})
}

// unavailable answers every request with 500 so a misconfigured deploy
// never serves traffic.
func unavailable() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"server misconfigured"}`, http.StatusInternalServerError)
	})
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
