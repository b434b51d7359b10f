package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	carthandler "rocketcart/internal/handlers/cart"
	"rocketcart/internal/routes"
)

type App struct {
	log    *slog.Logger
	server *http.Server
}

func New(log *slog.Logger, port int, readTimeout, writeTimeout time.Duration, service carthandler.CartService, feed carthandler.NotificationFeed) *App {
	mux := http.NewServeMux()
	routes.New(carthandler.New(log, service, feed)).Register(mux)

	return &App{
		log: log,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      mux,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
	}
}

func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic(err)
	}
}

func (a *App) Run() error {
	const op = "app.Run"

	a.log.Info("Starting HTTP server", "addr", a.server.Addr)

	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (a *App) Stop(ctx context.Context) error {
	const op = "app.Stop"

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
