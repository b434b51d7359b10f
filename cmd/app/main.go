package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rocketcart/internal/app"
	"rocketcart/internal/clients/shopapi"
	"rocketcart/internal/database/filestore"
	"rocketcart/internal/database/memstore"
	"rocketcart/internal/database/psql"
	"rocketcart/internal/database/redisstore"
	"rocketcart/internal/notify"
	cartservice "rocketcart/internal/service/cart"
	"rocketcart/pkg/config"
	"rocketcart/pkg/lib/logger"
	"rocketcart/pkg/lib/logger/sl"
)

const notificationBacklog = 50

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.SetupLogger(cfg.HTTP.Env)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()

	storage, closer, err := openStorage(ctx, log, cfg)
	if err != nil {
		log.Error("Failed to open storage", sl.Err(err))
		panic(err)
	}
	defer closer.Close()

	recorder := notify.NewRecorder(notificationBacklog)
	notifiers := []notify.Notifier{recorder, notify.NewLog(log)}
	if cfg.HTTP.Env == config.EnvLocal {
		notifiers = append(notifiers, notify.NewConsole(os.Stderr))
	}

	store, err := cartservice.New(
		ctx,
		log,
		cfg.Storage.Key,
		storage,
		shopapi.New(log, cfg.API.BaseURL, cfg.API.Timeout),
		notify.Multi(notifiers...),
	)
	if err != nil {
		log.Error("Failed to restore cart", sl.Err(err))
		panic(err)
	}

	application := app.New(
		log,
		cfg.HTTP.Port,
		cfg.HTTP.ReadTimeout,
		cfg.HTTP.WriteTimeout,
		store,
		recorder,
	)

	go func() {
		if err := application.Run(); err != nil {
			log.Error("Application failed to start", sl.Err(err))
			panic(err)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGTERM, syscall.SIGINT)
	<-done

	log.Info("Stopping HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := application.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop HTTP server", sl.Err(err))
	}

	log.Info("Closing storage")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openStorage(ctx context.Context, log *slog.Logger, cfg *config.Config) (cartservice.SnapshotStorage, io.Closer, error) {
	log = log.With("driver", cfg.Storage.Driver)

	switch cfg.Storage.Driver {
	case config.DriverRedis:
		s, err := redisstore.Connect(ctx, log, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.DriverPostgres:
		s, err := psql.New(log, cfg.ConnectionString())
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.DriverMemory:
		return memstore.New(), nopCloser{}, nil
	default:
		s, err := filestore.New(log, cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		return s, nopCloser{}, nil
	}
}
