// Command agentd runs the conversational agent as an HTTP service. It loads
// configuration from the environment (with .env support), builds the service
// container once, and serves the JSON API until terminated.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modularai/agentcore"
	"github.com/modularai/agentcore/config"
	"github.com/modularai/agentcore/httpapi"
	"github.com/modularai/agentcore/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.NewSlogLogger(logging.LogLevelError, "text").Error("config load failed", "error", err.Error())
		os.Exit(1)
	}

	logger := logging.NewSlogLogger(logging.ParseLogLevel(cfg.LogLevel), cfg.LogFormat)

	app, err := agentcore.New(cfg, func(o *agentcore.Options) {
		o.Logger = logger
	})
	if err != nil {
		logger.Error("container build failed", "error", err.Error())
		os.Exit(1)
	}
	defer app.Close()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewServer(app.Agent, app.Memory, app.Retriever, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr, "app", cfg.AppName, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err.Error())
	}
}
