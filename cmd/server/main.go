package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmolina/warden"
	pgxadapter "github.com/jmolina/warden/adapters/pgx"
	"github.com/jmolina/warden/config"
	"github.com/jmolina/warden/core"
	"github.com/jmolina/warden/pkg/logging"
)

func main() {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Error(context.Background(), "invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, cleanup, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to open storage", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	app := fiber.New()
	app.Use(recoverer.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.ClientOrigins,
		AllowCredentials: true,
	}))

	app.Get("/healthz", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	if _, err := warden.New(app, warden.Config{
		Secret:  cfg.TokenSecret,
		Storage: storage,
		Secure:  cfg.Production(),
		Log:     log,
	}); err != nil {
		log.Error(ctx, "failed to assemble auth stack", "error", err)
		os.Exit(1)
	}

	go func() {
		<-ctx.Done()
		log.Info(ctx, "shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	log.Info(ctx, "server listening", "port", cfg.Port, "env", cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}

// openStorage connects to PostgreSQL when DATABASE_URL is set and falls back
// to in-memory storage otherwise. The fallback keeps local development free of
// infrastructure; config.Load rejects it in production.
func openStorage(ctx context.Context, cfg *config.Config, log logging.Logger) (core.UserStorage, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Warn(ctx, "DATABASE_URL not set, using in-memory storage")
		return warden.NewMemoryStorage(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	log.Info(ctx, "connected to postgres")
	return pgxadapter.New(pool), pool.Close, nil
}
