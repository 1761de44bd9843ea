package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/nhle/studentpro/internal/api"
	"github.com/nhle/studentpro/internal/cli"
	"github.com/nhle/studentpro/internal/identity"
	"github.com/nhle/studentpro/internal/logging"
	"github.com/nhle/studentpro/internal/model"
)

func main() {
	// A missing .env is fine; its values only override the environment.
	_ = godotenv.Load()

	path := model.DefaultConfigPath()
	if p := os.Getenv(model.EnvPrefix + "_CONFIG"); p != "" {
		path = p
	}

	cfg, err := model.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logging.SetDebug(cfg.Log.Debug)
	logging.Debugf("config loaded from %s, api %s", path, cfg.API.ResolveBaseURL())

	store, err := identity.Open(cfg.Identity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening identity storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	client := api.NewClient(cfg.API.ResolveBaseURL())
	env := cli.NewEnv(cfg, path, store, client)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(env).Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		store.Close()
		os.Exit(1)
	}
}
