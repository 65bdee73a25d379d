package main

import (
	"context"
	"os"

	"github.com/osse101/inventory-migrator/internal/bootstrap"
	"github.com/osse101/inventory-migrator/internal/handler"
	"github.com/osse101/inventory-migrator/internal/server"
)

type ServeCommand struct {
	app *app
}

func (c *ServeCommand) Name() string {
	return "serve"
}

func (c *ServeCommand) Description() string {
	return "Serve the migration API locally and run the reminder scheduler"
}

func (c *ServeCommand) Run(args []string) error {
	cfg := c.app.cfg
	services := c.app.services

	srv := server.NewServer(cfg.ListenAddr(), cfg.APIKey, server.Deps{
		Version:   cfg.Version,
		Migration: services.Migration,
		Reminders: services.Reminders,
		Readiness: []handler.HealthChecker{handler.HealthCheckFunc(func(context.Context) error {
			_, err := os.Stat(cfg.UserDataDir)
			return err
		})},
	})

	services.Reminders.Start()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	c.app.out.Info("Listening on http://%s", cfg.ListenAddr())

	var serveErr error
	select {
	case serveErr = <-errCh:
	case <-c.app.ctx.Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:    srv,
		Reminders: services.Reminders,
	})
	return serveErr
}
