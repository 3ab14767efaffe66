package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BMSaiko/FoodLister-sub003/pkg/adapters/handler"
	"github.com/BMSaiko/FoodLister-sub003/pkg/adapters/repository/sqlite"
	"github.com/BMSaiko/FoodLister-sub003/pkg/config"
	"github.com/BMSaiko/FoodLister-sub003/pkg/core/services"
	"github.com/BMSaiko/FoodLister-sub003/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.AppEnv, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error("refusing to start", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize Repository
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer repo.Close()

	// Initialize Router
	mux := handler.NewRouter(cfg, log, handler.Services{
		Restaurants: services.NewRestaurantService(repo),
		Lists:       services.NewListService(repo),
		Visits:      services.NewVisitService(repo),
		Health:      repo,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server starting", slog.String("port", cfg.Port), slog.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", slog.String("error", err.Error()))
	}
	log.Info("server stopped")
}
