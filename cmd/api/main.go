package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skincare-backend/internal/bootstrap"
	"skincare-backend/internal/shared/config"
	"skincare-backend/internal/shared/server"
	"skincare-backend/internal/shared/telemetry"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	telemetry.Init(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	if app.DB != nil {
		defer app.DB.Close()
	}

	addr := server.Addr(cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		telemetry.Info("server.start", map[string]any{"addr": addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	telemetry.Info("server.shutdown", map[string]any{"addr": addr})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
