package main

import (
	"log"

	"github.com/nullwave/flotilla/internal/controller"
	"github.com/nullwave/flotilla/internal/env"
	"github.com/nullwave/flotilla/internal/events"
	"github.com/nullwave/flotilla/internal/server"
	"github.com/nullwave/flotilla/internal/service"
	"github.com/labstack/echo/v4"
)

// Application wires env config into services, the controller, and the echo
// router, and owns the running HTTP server.
type Application struct {
	Config *env.Config
	E      *echo.Echo
}

// Setup loads configuration and builds the echo instance, without starting
// to listen. Split from Run so tests can exercise the router directly.
func (a *Application) Setup() error {
	cfg, err := env.LoadServerConfig()
	if err != nil {
		return err
	}
	a.Config = cfg

	bus := events.NewMemoryEventBus()
	games := service.NewMemoryService(nil, bus)
	auth := service.NewIdentityService(cfg.JWTSecret)
	notifier := service.NewNotificationService(bus)

	ctrl := controller.NewAppController(auth, games, games, notifier)

	a.E = server.New(ctrl, server.Config{
		JWTSecret:      cfg.JWTSecret,
		RateLimitPerIP: cfg.RateLimit,
	})

	return nil
}

// Run sets up and starts serving on Config.Port, blocking until the server
// stops or fails.
func (a *Application) Run() error {
	if err := a.Setup(); err != nil {
		return err
	}

	log.Printf("listening on :%s", a.Config.Port)
	return a.E.Start(":" + a.Config.Port)
}
