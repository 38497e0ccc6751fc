package mcpserver

import (
	"fmt"
	"strings"

	"photoatlas/internal/vecstore"
)

const noResultsMessage = "No photos found matching your search."

// formatResults renders one numbered entry per result: title with extension,
// URL, a GPS line (or its absence), and the ranking metric when present.
func formatResults(results []vecstore.SearchResult) string {
	if len(results) == 0 {
		return noResultsMessage
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d photo(s):\n", len(results))
	for i, result := range results {
		fmt.Fprintf(&b, "\n%d. %s%s\n", i+1, result.Title, result.Extension)
		fmt.Fprintf(&b, "   URL: %s\n", result.URL)
		if result.Coordinates != nil {
			fmt.Fprintf(&b, "   GPS: %.4f, %.4f\n", result.Coordinates.Latitude, result.Coordinates.Longitude)
		} else {
			b.WriteString("   GPS: no GPS data\n")
		}
		if result.Score != nil {
			fmt.Fprintf(&b, "   Similarity: %.3f\n", *result.Score)
		} else if result.Distance != nil {
			fmt.Fprintf(&b, "   Distance: %.3f\n", *result.Distance)
		}
	}
	return b.String()
}
