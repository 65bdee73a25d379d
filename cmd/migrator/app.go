package main

import (
	"context"
	"io"

	"github.com/osse101/inventory-migrator/internal/bootstrap"
	"github.com/osse101/inventory-migrator/internal/config"
)

// app is the state shared by all commands
type app struct {
	cfg      *config.Config
	services *bootstrap.Services
	out      printer
	ctx      context.Context
}

func newApp(ctx context.Context, cfg *config.Config, w io.Writer, color bool) *app {
	return &app{
		cfg:      cfg,
		services: bootstrap.BuildServices(cfg),
		out:      printer{w: w, color: color},
		ctx:      ctx,
	}
}

func newRegistry(a *app) *Registry {
	r := NewRegistry()
	r.Register(&StatusCommand{app: a})
	r.Register(&RunCommand{app: a})
	r.Register(&SkipCommand{app: a})
	r.Register(&ServeCommand{app: a})
	r.Register(&RemindCommand{app: a})
	r.Register(&SeedCommand{app: a})
	return r
}
