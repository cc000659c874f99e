package server

import (
	"net/http"
	"time"

	"github.com/nullwave/flotilla/internal/controller"
	"github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Config holds the knobs New needs that don't belong on env.Config directly
// (kept separate so the server package never imports internal/env).
type Config struct {
	JWTSecret      string
	RateLimitPerIP int
}

// New builds the echo instance: routes, JWT auth, and per-IP rate limiting.
// Login is the only route that bypasses the JWT middleware; every other
// route runs through it and then RequirePlayerID.
func New(ctrl *controller.AppController, cfg Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(rateLimiter(cfg.RateLimitPerIP))

	h := NewEchoHandler(ctrl)

	e.POST("/login", h.Login)

	api := e.Group("")
	api.Use(echojwt.WithConfig(echojwt.Config{SigningKey: []byte(cfg.JWTSecret)}))
	api.Use(RequirePlayerID)

	api.GET("/matches", h.ListMatches)
	api.POST("/matches", h.HostMatch)
	api.POST("/matches/solo", h.HostSoloMatch)
	api.POST("/matches/:id/join", h.JoinMatch)
	api.GET("/matches/:id", h.GetState)
	api.POST("/matches/:id/place", h.PlaceShip)
	api.POST("/matches/:id/attack", h.Attack)
	api.GET("/matches/:id/ws", h.StreamMatchEvents)

	return e
}

// rateLimiter caps requests per client IP using a token bucket, refilled at
// perSecond and capped at perSecond so a single burst can't exceed the
// steady-state rate. A non-positive perSecond disables limiting.
func rateLimiter(perSecond int) echo.MiddlewareFunc {
	if perSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	cfg := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(perSecond),
				Burst:     perSecond,
				ExpiresIn: 3 * time.Minute,
			},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(ctx echo.Context, err error) error {
			return ctx.JSON(http.StatusForbidden, nil)
		},
		DenyHandler: func(ctx echo.Context, identifier string, err error) error {
			return ctx.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
		},
	}

	return middleware.RateLimiterWithConfig(cfg)
}
