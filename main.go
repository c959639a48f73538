package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"booking-intake/config"
	"booking-intake/database"
	"booking-intake/handlers"
	"booking-intake/middleware"
	"booking-intake/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	manager := database.NewManager(database.ManagerConfig{
		ConnString:     cfg.ConnString,
		Database:       cfg.Database,
		Collection:     cfg.Collection,
		ConnectTimeout: cfg.ConnectTimeout,
	}, logger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := manager.Close(ctx); err != nil {
			logger.Error("failed to close database connection", "error", err)
		}
	}()

	bookings := database.NewBookingRepository(database.NewMongoStore(manager), nil)

	app := router.New(handlers.New(bookings, manager, logger), router.Options{
		AllowOrigins: cfg.AllowOrigins,
		Metrics:      middleware.NewMetrics(),
	})

	logger.Info("booking service starting", "addr", cfg.Addr())
	if err := app.Listen(cfg.Addr()); err != nil {
		logger.Error("server stopped", "error", err)
	}
}
