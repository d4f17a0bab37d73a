package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/medtrack/internal/api"
	"github.com/terraincognita07/medtrack/internal/cli"
	"github.com/terraincognita07/medtrack/internal/db"
)

const shutdownTimeout = 10 * time.Second

type ServeCmd struct{}

func (cmd *ServeCmd) Run(appCtx *cli.Context) error {
	config, err := loadServerConfig()
	if err != nil {
		return err
	}
	time.Local = config.Location

	database, err := db.OpenSQLite(config.DBPath)
	if err != nil {
		return err
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	handler, err := api.NewHandler(database, api.Config{
		SecretKey:    config.SecretKey,
		Location:     config.Location,
		CookieSecure: config.CookieSecure,
		Logger:       appCtx.Logger,
	})
	if err != nil {
		return err
	}
	app := newServerApp(handler, config)

	go func() {
		<-appCtx.Context.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appCtx.Logger.Error("server shutdown failed", "error", err)
		}
	}()

	appCtx.Logger.Info("medtrack listening",
		"addr", "http://0.0.0.0:"+config.Port,
		"db", config.DBPath,
		"tz", config.Location.String(),
	)
	return app.Listen(":" + config.Port)
}

func newServerApp(handler *api.Handler, config serverConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Medtrack",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	if config.CORSOrigin != "" {
		app.Use(cors.New(corsMiddlewareConfig(config.CORSOrigin)))
	}
	app.Use(csrf.New(csrfMiddlewareConfig(config.CookieSecure)))

	api.RegisterRoutes(app, handler)
	return app
}
