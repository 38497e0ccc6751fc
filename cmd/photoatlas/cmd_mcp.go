package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"photoatlas/cmd/photoatlas/internal"
	"photoatlas/internal/config"
	"photoatlas/internal/geocode"
	"photoatlas/internal/mcpserver"
	"photoatlas/internal/search"
)

// handleMCP implements the MCP stdio server subcommand
func handleMCP(ctx context.Context, cfg *config.Config, logger *logrus.Logger, args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `USAGE:
    photoatlas mcp

DESCRIPTION:
    Run an MCP stdio server exposing:
      - search_photo_albums
`)
	}

	if err := fs.Parse(args); err != nil {
		logger.Fatalf("Failed to parse arguments: %v", err)
	}

	store, provider, err := buildStore(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to set up vector store: %v", err)
	}
	defer provider.Close()

	resolver := geocode.New(cfg.Geocode.CachePath, logger)
	defer resolver.Close()

	service := search.NewService(store, resolver, cfg.Search.DefaultRadiusKm, logger)

	server := mcpserver.New(service, logger, internal.Version)
	if err := server.Run(ctx); err != nil {
		logger.Fatalf("MCP server failed: %v", err)
	}
}
