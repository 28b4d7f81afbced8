package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/linkwish/linkwish"
	"github.com/linkwish/linkwish/config"
	"github.com/linkwish/linkwish/extract"
	"github.com/linkwish/linkwish/sqlite"
)

// Runner runs the extraction pipeline for one request.
type Runner interface {
	Run(ctx context.Context, req extract.Request) (*linkwish.ExtractionOutcome, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *config.Config

	DB       *sqlite.DB
	Wishlist linkwish.WishlistService
	Pipeline Runner
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve  ServeCmd  `cmd:"" help:"Run the HTTP API server"`
	Peek   PeekCmd   `cmd:"" help:"Extract metadata for URLs without saving"`
	Add    AddCmd    `cmd:"" help:"Extract metadata for a URL and save it to the wishlist"`
	List   ListCmd   `cmd:"" help:"List wishlist entries"`
	Remove RemoveCmd `cmd:"" help:"Remove a wishlist entry"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Port string `short:"p" help:"Port to listen on (overrides config)"`
}

// PeekCmd is the "peek" subcommand.
type PeekCmd struct {
	URLs        []string `arg:"" help:"URLs to extract metadata for"`
	JSON        bool     `help:"Print full records as JSON"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent extraction limit"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	URL string `arg:"" help:"URL to save"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Site   string `help:"Filter by site name"`
	Limit  int    `help:"Maximum entries to show"`
	Offset int    `help:"Entries to skip"`
}

// RemoveCmd is the "remove" subcommand.
type RemoveCmd struct {
	ID string `arg:"" help:"Entry ID"`
}
