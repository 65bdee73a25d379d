package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/inventory-migrator/internal/bootstrap"
	"github.com/osse101/inventory-migrator/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 2
	}

	logCloser, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger setup failed: %v\n", err)
		return 2
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(ctx, cfg, os.Stdout, isTerminal(os.Stdout))
	registry := newRegistry(a)

	if len(args) < 1 {
		registry.PrintHelp(os.Stderr)
		return 1
	}

	cmd, ok := registry.Get(args[0])
	if !ok {
		a.out.Error("unknown command: %s", args[0])
		registry.PrintHelp(os.Stderr)
		return 1
	}

	if err := cmd.Run(args[1:]); err != nil {
		a.out.Error("%v", err)
		return 1
	}
	return 0
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
