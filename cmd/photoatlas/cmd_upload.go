package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"photoatlas/internal/config"
	"photoatlas/internal/filereader"
	"photoatlas/internal/ingest"
)

// handleUpload implements the upload subcommand
func handleUpload(ctx context.Context, cfg *config.Config, logger *logrus.Logger, args []string) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)

	var batchSize int
	var skipExisting, noProgress bool

	fs.IntVar(&batchSize, "batch-size", cfg.Upload.BatchSize, "Number of images per batch")
	fs.BoolVar(&skipExisting, "skip-existing", false, "Skip images already present in the collection")
	fs.BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `USAGE:
    photoatlas upload [options] <directory>

DESCRIPTION:
    Walk a directory for image files and ingest them into the photo
    collection. Each image is stored with its base64 payload and, when the
    file carries EXIF GPS data, its coordinates. The collection is created
    on first use.

OPTIONS:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
EXAMPLES:
    photoatlas upload ~/Pictures/2024
    photoatlas upload ~/Pictures -batch-size 20 -skip-existing
`)
	}

	if err := fs.Parse(args); err != nil {
		logger.Fatalf("Failed to parse arguments: %v", err)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: upload directory is required\n\n")
		fs.Usage()
		os.Exit(1)
	}
	dir := fs.Arg(0)

	reader := filereader.New(cfg.Upload.Patterns, logger)
	records, err := reader.Read(dir)
	if err != nil {
		logger.Fatalf("Failed to read images: %v", err)
	}
	if len(records) == 0 {
		fmt.Println("No images found")
		return
	}

	store, provider, err := buildStore(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to set up vector store: %v", err)
	}
	defer provider.Close()

	if err := store.EnsureCollection(ctx); err != nil {
		logger.Fatalf("Failed to ensure collection: %v", err)
	}

	pipeline := ingest.NewPipeline(store, logger)
	report, err := pipeline.Ingest(ctx, records, ingest.Options{
		BatchSize:    batchSize,
		SkipExisting: skipExisting,
		BaseURL:      cfg.Upload.BaseURL,
		Progress:     newUploadProgress(!noProgress && defaultProgressEnabled()),
	})
	if err != nil {
		logger.Fatalf("Upload aborted: %v", err)
	}

	fmt.Printf("Processed %d image(s): %s\n", report.Total(), report)
	for _, failure := range report.Failures {
		fmt.Printf("  failed: %s\n", failure)
	}
	if report.Failed > 0 {
		os.Exit(1)
	}
}
