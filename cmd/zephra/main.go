package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/kelvins/geocoder"
	"github.com/sirupsen/logrus"

	httpapi "github.com/alurubalakarthikeya/Zephra/internal/api/http"
	"github.com/alurubalakarthikeya/Zephra/internal/config"
	"github.com/alurubalakarthikeya/Zephra/internal/dashboard"
	"github.com/alurubalakarthikeya/Zephra/internal/dashboard/providers"
	"github.com/alurubalakarthikeya/Zephra/internal/scheduler"
	"github.com/alurubalakarthikeya/Zephra/internal/simulate"
	"github.com/alurubalakarthikeya/Zephra/internal/store"
)

func main() {
	log := logrus.New()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	// The live provider resolves city names through Google geocoding.
	geocoder.ApiKey = cfg.GeocoderAPIKey

	// Shared HTTP client for outbound live-API calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Daily seed state, created once and injected everywhere.
	seeds := simulate.NewSeedState(time.Now())

	// Per-location dashboard cache, invalidated on day rollover.
	cache := store.NewMemoryCache(cfg.CacheMaxAge)

	mock := providers.NewMockProvider(seeds, simulate.NewGenerator(), cfg.MockLatency)
	live := providers.NewOpenMeteoProvider(httpClient)

	// Mode manager orchestrating providers and cache.
	service, err := dashboard.NewService(seeds, cache, log, mock, live, cfg.DataMode, cfg.DefaultLocation)
	if err != nil {
		log.WithError(err).Fatal("failed to build dashboard service")
	}

	// Rollover poll: the seed is never refreshed by a timer of its own.
	sched := scheduler.New(cfg.Locations, cfg.SeedPollInterval, service, log)
	if err := sched.Start(); err != nil {
		log.WithError(err).Fatal("failed to start scheduler")
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "zephra",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "zephra",
			"mode":    service.Mode(),
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Error("fiber server stopped")
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Error("error during shutdown")
	}
}
