package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"skylight/internal/config"
	"skylight/internal/db"
	applog "skylight/internal/log"
	"skylight/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		applog.Warn(context.Background(), "failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		applog.Error(context.Background(), "invalid configuration", "error", err)
		os.Exit(1)
	}
	if err := applog.SetLevel(cfg.Logging.Level); err != nil {
		applog.Warn(context.Background(), "invalid log level, keeping default", "error", err)
	}

	database, err := db.Configure(cfg.Database)
	if err != nil {
		applog.Error(context.Background(), "failed to initialize database", "error", err)
		os.Exit(1)
	}

	srv, err := server.New(server.Config{
		Addr:      cfg.Server.Addr,
		Session:   cfg.Auth.Session,
		Database:  database,
		Passcode:  cfg.Auth.Passcode,
		Providers: cfg.Providers,
	})
	if err != nil {
		applog.Error(context.Background(), "failed to build server", "error", err)
		os.Exit(1)
	}

	go func() {
		applog.Info(context.Background(), "starting http server", "addr", cfg.Server.Addr)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(context.Background(), "server encountered an error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	<-sigCh

	applog.Info(context.Background(), "shutting down http server")
	if err := srv.Stop(); err != nil {
		applog.Error(context.Background(), "graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
