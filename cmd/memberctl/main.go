package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kerhoff/GymMembers/internal/cli"
	"github.com/Kerhoff/GymMembers/internal/config"
	"github.com/Kerhoff/GymMembers/pkg/logger"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	l := logger.NewWithOutput(cfg.LogLevel, os.Stderr, false)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(l)
	if err := app.NewRootCommand(cfg.APIURL, cfg.Timeout).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
