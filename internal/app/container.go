package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"jobalert-web/internal/config"
	"jobalert-web/internal/infrastructure/cache"
	"jobalert-web/internal/infrastructure/portalapi"
	"jobalert-web/internal/pkg/jwt"
	"jobalert-web/internal/usecase"
	"jobalert-web/internal/view"
	"jobalert-web/internal/ws"
)

type Container struct {
	Config   config.Config
	Logger   *log.Logger
	API      *portalapi.Client
	Redis    *cache.Redis
	Tokens   usecase.TokenStore
	Sessions *usecase.SessionManager
	Hub      *ws.Hub
	Admin    *usecase.Admin
	Renderer *view.Renderer

	stopHub context.CancelFunc
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)

	api := portalapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)
	if api == nil {
		return nil, portalapi.ErrNotConfigured
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	rdb := cache.NewRedis(cfg.Redis, cfg.Session.TokenTTL, logger)
	var tokens usecase.TokenStore = rdb
	if !rdb.Available() {
		tokens = cache.NewMemory(cfg.Session.TokenTTL)
	}

	sessions := usecase.NewSessionManager(api, tokens, jwt.NewUnverifiedInspector(0), cfg.Session.IdleTTL, logger)
	if err := sessions.StartSweeper(cfg.Session.SweepSpec); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	hub := ws.NewHub(logger)
	hubCtx, stopHub := context.WithCancel(context.Background())
	go hub.Run(hubCtx)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		API:      api,
		Redis:    rdb,
		Tokens:   tokens,
		Sessions: sessions,
		Hub:      hub,
		Admin:    usecase.NewAdminUsecase(api, hub, logger),
		Renderer: renderer,
		stopHub:  stopHub,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Sessions != nil {
		c.Sessions.StopSweeper()
	}
	if c.stopHub != nil {
		c.stopHub()
	}

	var errs []error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}
	return errors.Join(errs...)
}
