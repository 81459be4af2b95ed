// Package main wires the HTTP server for the team task management service.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"team-task-manager/config"
	"team-task-manager/internal/metrics"
	"team-task-manager/internal/repository"
	"team-task-manager/internal/transport/http/middleware"
	"team-task-manager/internal/transport/http/server/handlers-fiber"
	"team-task-manager/internal/usecase"
	"team-task-manager/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}

	repo, err := repository.New(ctx, "postgres", log, cfg)
	if err != nil {
		log.Errorw("repository initialization error", "error", err)
		return
	}
	if err := repo.OnStart(ctx); err != nil {
		log.Errorw("repository start error", "error", err)
		return
	}
	defer func() {
		_ = repo.OnStop(context.Background())
	}()

	timeout := cfg.HTTP.RequestTimeout
	uc := usecase.New(log, ctx, repo, timeout)

	serv := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.RequestTimeout,
		WriteTimeout: cfg.HTTP.RequestTimeout,
	})
	serv.Use(recover.New())
	serv.Use(requestid.New())
	serv.Use(middleware.RequestLogger(log))
	serv.Use(metrics.FiberMiddleware)

	serv.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "team task management API",
			"version": version,
			"status":  "online",
		})
	})
	serv.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})
	serv.Get("/metrics", metrics.Handler())

	h := handlers_fiber.NewHandler(log, uc)
	h.Register(serv)

	go func() {
		if err := serv.Listen(cfg.ServerAddr()); err != nil {
			log.Errorw("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = serv.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warnw("server shutdown timeout", "timeout", cfg.Server.ShutdownTimeout)
	}
}
