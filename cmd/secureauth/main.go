package main

import (
	"context"
	"os"
	"os/signal"
	"secureauth/internal/app"
	"secureauth/internal/app/deps"
	"secureauth/internal/app/services"
	"syscall"
	"time"

	dl "secureauth/internal/core/domain/logging"
)

const shutdownTimeout = 20 * time.Second

func main() {
	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)

	application := app.New(deps, services)
	if err := application.Start(context.Background()); err != nil {
		deps.Logger.Error(context.Background(), "Could not start HTTP server.", dl.Entry("err", err))
		shutdownDeps()
		os.Exit(1)
	}

	stopCh, closeCh := createChannel()
	defer closeCh()

	sig := <-stopCh
	deps.Logger.Info(context.Background(), "Got stop signal.", dl.Entry("signal", sig.String()))
	shutdown(context.Background(), application, deps, shutdownDeps)
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

func shutdown(ctx context.Context, application *app.App, deps *deps.Deps, shutdownDeps func()) {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := application.Shutdown(ctx); err != nil {
		deps.Logger.Error(ctx, "HTTP server did not shut down in time.", dl.Entry("err", err))
	}

	deps.Logger.Info(ctx, "HTTP server has shut down.")
	shutdownDeps()
}
