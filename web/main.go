package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	configPath := flag.String("config", "", "TOML config file")
	addr := flag.String("addr", "", "Address to serve on (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load config", "err", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	logger, err := core.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to create logger", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof("Whitted Raytracer Web Server")
	logger.Infof("Visit http://localhost%s/api/scenes to list scenes", cfg.Addr)

	if err := server.NewServer(cfg, logger).Start(ctx); err != nil {
		logger.Errorf("Error starting server: %v", err)
		os.Exit(1)
	}
}
