package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobalert-web/internal/app"
	"jobalert-web/internal/config"

	"github.com/gofiber/fiber/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("[Server] %v", err)
	}
}

// run serves the portal until ctx is cancelled, then drains in-flight page
// requests before the session sweeper, the ws hub and Redis are closed.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return fmt.Errorf("invalid HTTP port: %w", err)
	}

	portal, cleanup, err := app.Bootstrap(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	logger := portal.Container.Logger
	defer func() {
		if err := cleanup(); err != nil {
			logger.Printf("[Server] cleanup error: %v", err)
		}
	}()

	logger.Printf("[HTTP] listening on %s env=%s api=%s redis=%t",
		addr, cfg.App.Environment, cfg.API.BaseURL, portal.Container.Redis.Available())

	errCh := make(chan error, 1)
	go func() {
		errCh <- portal.Fiber.Listen(addr, fiber.ListenConfig{
			DisableStartupMessage: cfg.IsProduction(),
		})
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Printf("[Server] shutting down timeout=%s sessions=%d", cfg.App.ShutdownTimeout, portal.Container.Sessions.Len())
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := portal.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
