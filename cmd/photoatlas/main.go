package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"photoatlas/cmd/photoatlas/internal"
	"photoatlas/internal/config"
	"photoatlas/internal/gcpauth"
	"photoatlas/internal/vecstore"
)

func main() {
	if len(os.Args) < 2 {
		internal.PrintUsage()
		os.Exit(1)
	}

	configPath := ""
	debug := false
	args := os.Args[1:]

	for _, arg := range args {
		if arg == "-h" || arg == "-help" || arg == "--help" {
			internal.PrintUsage()
			os.Exit(0)
		}
		if arg == "-v" || arg == "-version" || arg == "--version" {
			fmt.Printf("photoatlas version %s\n", internal.Version)
			os.Exit(0)
		}
	}

	validSubcommands := map[string]bool{
		"upload":            true,
		"search":            true,
		"create-collection": true,
		"delete-collection": true,
		"mcp":               true,
	}

	subcommandIndex := -1
	for i, arg := range args {
		if !strings.HasPrefix(arg, "-") && validSubcommands[arg] {
			subcommandIndex = i
			break
		}
	}

	if subcommandIndex == -1 {
		fmt.Fprintf(os.Stderr, "Error: No subcommand specified\n\n")
		internal.PrintUsage()
		os.Exit(1)
	}

	// Parse global flags (before subcommand)
	globalFlags := args[:subcommandIndex]
	for i := 0; i < len(globalFlags); i++ {
		flag := globalFlags[i]
		switch {
		case flag == "-config" || flag == "--config":
			if i+1 < len(globalFlags) {
				configPath = globalFlags[i+1]
				i++
			}
		case flag == "-debug" || flag == "--debug":
			debug = true
		case strings.HasPrefix(flag, "-"):
			fmt.Fprintf(os.Stderr, "Error: Unknown global flag: %s\n\n", flag)
			internal.PrintUsage()
			os.Exit(1)
		}
	}

	subcommand := args[subcommandIndex]
	subcommandArgs := args[subcommandIndex+1:]

	logger := internal.NewLogger(debug)
	if subcommand != "mcp" {
		if err := internal.SetupLogFile(logger, subcommand); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize log file: %v\n", err)
		}
	}

	cfg, err := loadConfig(configPath, subcommand)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Coarse cancellation: an interrupt cancels the run context; the
	// deferred provider close in each handler releases the handle.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch subcommand {
	case "upload":
		handleUpload(ctx, cfg, logger, subcommandArgs)
	case "search":
		handleSearch(ctx, cfg, logger, subcommandArgs)
	case "create-collection":
		handleCreateCollection(ctx, cfg, logger, subcommandArgs)
	case "delete-collection":
		handleDeleteCollection(ctx, cfg, logger, subcommandArgs)
	case "mcp":
		handleMCP(ctx, cfg, logger, subcommandArgs)
	}
}

func loadConfig(configPath, subcommand string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err == nil {
		return cfg, nil
	}

	if config.IsConfigNotFound(err) {
		if notFoundErr, ok := err.(*config.ConfigNotFoundError); ok && subcommand == "upload" {
			created, createErr := config.WriteDefaultTemplate(notFoundErr.RequestedPath)
			if createErr == nil && created {
				fmt.Fprintf(os.Stderr, "Created default config at %s\n", notFoundErr.RequestedPath)
				fmt.Fprintln(os.Stderr, "Please fill in your Weaviate and Google Cloud settings and rerun.")
				os.Exit(1)
			}
		}
	}
	return nil, err
}

// buildStore wires the credential manager, connection provider and store.
// The returned provider must be closed by the caller.
func buildStore(cfg *config.Config, logger *logrus.Logger) (*vecstore.Store, *vecstore.Provider, error) {
	tokens, err := gcpauth.NewManager(&cfg.Auth, logger)
	if err != nil {
		return nil, nil, err
	}
	provider := vecstore.NewProvider(cfg.Weaviate, tokens, logger)
	store := vecstore.NewStore(provider, cfg, logger)
	return store, provider, nil
}
