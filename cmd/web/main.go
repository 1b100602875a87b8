// @title           SmartHire Hub API
// @version         1.0
// @description     Job board backend: employers post jobs, admins moderate them, job seekers apply.
// @host            localhost:5000
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"os/signal"
	"syscall"

	_ "smarthire_backend/docs"
	"smarthire_backend/internal/app"
	"smarthire_backend/internal/config"
	"smarthire_backend/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env, "driver", cfg.Database.Driver)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize application", "error", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("Failed to close application", "error", err)
		}
	}()

	if err := application.Run(ctx); err != nil {
		logger.Error("Server stopped with error", "error", err)
		return
	}
	logger.Info("Server stopped")
}
