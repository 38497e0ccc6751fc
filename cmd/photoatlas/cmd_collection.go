package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"photoatlas/internal/config"
)

// handleCreateCollection implements the create-collection subcommand
func handleCreateCollection(ctx context.Context, cfg *config.Config, logger *logrus.Logger, args []string) {
	fs := flag.NewFlagSet("create-collection", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `USAGE:
    photoatlas create-collection

DESCRIPTION:
    Create the photo collection with its multimodal vectorizer schema.
    Does nothing when the collection already exists.
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

	if err := store.EnsureCollection(ctx); err != nil {
		logger.Fatalf("Failed to create collection: %v", err)
	}
	fmt.Printf("Collection %q is ready\n", store.Collection())
}

// handleDeleteCollection implements the delete-collection subcommand
func handleDeleteCollection(ctx context.Context, cfg *config.Config, logger *logrus.Logger, args []string) {
	fs := flag.NewFlagSet("delete-collection", flag.ExitOnError)

	var force bool
	fs.BoolVar(&force, "force", false, "Skip the confirmation prompt")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `USAGE:
    photoatlas delete-collection [-force]

DESCRIPTION:
    Delete the photo collection and every stored photo in it.
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		logger.Fatalf("Failed to parse arguments: %v", err)
	}

	if !force && !confirm(fmt.Sprintf("Delete collection %q and all stored photos?", cfg.Weaviate.Collection)) {
		fmt.Println("Aborted")
		return
	}

	store, provider, err := buildStore(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to set up vector store: %v", err)
	}
	defer provider.Close()

	if err := store.DeleteCollection(ctx); err != nil {
		logger.Fatalf("Failed to delete collection: %v", err)
	}
	fmt.Printf("Collection %q deleted\n", store.Collection())
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
