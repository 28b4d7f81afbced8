package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/linkwish/linkwish/gin"
)

// shutdownGrace bounds how long in-flight requests get on shutdown.
const shutdownGrace = 10 * time.Second

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	cfg := deps.Config

	port := cfg.Server.Port
	if c.Port != "" {
		port = c.Port
	}

	opts := []gin.ServerOption{
		gin.WithRequestTimeout(cfg.Server.RequestTimeout),
		gin.WithMaxRawHTML(cfg.Server.MaxRawHTML),
		gin.WithRateLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst),
	}
	if cfg.Server.Environment == "production" {
		opts = append(opts, gin.WithReleaseMode())
	}

	server := gin.NewServer(deps.Pipeline, deps.Wishlist, deps.Logger, opts...)

	ctx, stop := signal.NotifyContext(deps.Ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- server.Open(":" + port)
	}()

	deps.Logger.Info("server listening", "port", port)
	fmt.Fprintf(deps.Stdout, "linkwish listening on :%s\n", port)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	deps.Logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Close(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errc
}
