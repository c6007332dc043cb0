package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"restaurant-hub/internal/audit"
	"restaurant-hub/internal/auth"
	"restaurant-hub/internal/config"
	"restaurant-hub/internal/database"
	"restaurant-hub/internal/logger"
	"restaurant-hub/internal/server"
	"restaurant-hub/internal/store"
)

func main() {
	cfg := config.Load()
	appLog := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	db, err := database.Open(cfg, appLog)
	if err != nil {
		log.Fatalf("store init failed: %v", err)
	}

	app := server.New(server.Deps{
		Config: cfg,
		Store:  store.New(db),
		Tokens: auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL),
		Audit:  audit.NewService(db),
		Log:    appLog,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		appLog.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			appLog.Error("shutdown failed", "error", err)
		}
	}()

	appLog.Info("server listening", "port", cfg.HTTPPort, "login_error_mode", cfg.LoginErrorMode)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
