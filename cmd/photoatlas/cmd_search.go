package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"photoatlas/internal/config"
	"photoatlas/internal/geocode"
	"photoatlas/internal/search"
	"photoatlas/internal/vecstore"
)

// handleSearch implements the search subcommand
func handleSearch(ctx context.Context, cfg *config.Config, logger *logrus.Logger, args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)

	var limit int
	var radiusKm float64
	var location string
	var listAll, jsonOutput bool

	fs.IntVar(&limit, "limit", cfg.Search.DefaultLimit, "Number of results to return")
	fs.StringVar(&location, "location", "", "Restrict results to photos taken near this place")
	fs.Float64Var(&radiusKm, "radius-km", 0, "Radius around the location in kilometres")
	fs.BoolVar(&listAll, "all", false, "List stored photos without ranking")
	fs.BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `USAGE:
    photoatlas search [options] "<query>"
    photoatlas search -all [options]

DESCRIPTION:
    Search the photo collection with a natural language query. Results are
    ranked by the backend's multimodal similarity. With -location the
    search is restricted to photos taken within -radius-km of that place;
    an unresolvable place falls back to an unrestricted search.

OPTIONS:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
EXAMPLES:
    photoatlas search "dog on a beach"
    photoatlas search "sunset" -location "Paris" -radius-km 10
    photoatlas search -all -limit 50
`)
	}

	if err := fs.Parse(args); err != nil {
		logger.Fatalf("Failed to parse arguments: %v", err)
	}

	if !listAll && fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: search query is required (or use -all)\n\n")
		fs.Usage()
		os.Exit(1)
	}

	store, provider, err := buildStore(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to set up vector store: %v", err)
	}
	defer provider.Close()

	resolver := geocode.New(cfg.Geocode.CachePath, logger)
	defer resolver.Close()

	service := search.NewService(store, resolver, cfg.Search.DefaultRadiusKm, logger)

	var results []vecstore.SearchResult
	query := ""
	if listAll {
		results, err = service.ListAll(ctx, limit)
	} else {
		query = fs.Arg(0)
		results, err = service.Search(ctx, search.Params{
			Query:    query,
			Limit:    limit,
			Location: location,
			RadiusKm: radiusKm,
		})
	}
	if err != nil {
		logger.Fatalf("Search failed: %v", err)
	}

	if jsonOutput {
		outputJSON(results, query)
	} else {
		outputText(results, query)
	}
}

// outputText prints search results as human-readable text
func outputText(results []vecstore.SearchResult, query string) {
	if len(results) == 0 {
		fmt.Println("No results found")
		return
	}

	if query != "" {
		fmt.Printf("Found %d result(s) for: %s\n\n", len(results), query)
	} else {
		fmt.Printf("%d stored photo(s)\n\n", len(results))
	}

	for i, result := range results {
		fmt.Printf("%d. %s%s\n", i+1, result.Title, result.Extension)
		fmt.Printf("   URL: %s\n", result.URL)
		if result.Coordinates != nil {
			fmt.Printf("   GPS: %.4f, %.4f\n", result.Coordinates.Latitude, result.Coordinates.Longitude)
		}
		if result.Score != nil {
			fmt.Printf("   Similarity: %.3f\n", *result.Score)
		} else if result.Distance != nil {
			fmt.Printf("   Distance:   %.3f\n", *result.Distance)
		}
		fmt.Println()
	}
}

// outputJSON prints search results as JSON
func outputJSON(results []vecstore.SearchResult, query string) {
	output := map[string]interface{}{
		"query":   query,
		"count":   len(results),
		"results": results,
	}

	jsonData, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal results: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(jsonData))
}
