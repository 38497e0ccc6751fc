// Package mcpserver exposes photo search to tool-calling agents over MCP
// stdio.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"photoatlas/internal/search"
	"photoatlas/internal/vecstore"
)

// PhotoSearcher is the slice of the query service the tool needs.
type PhotoSearcher interface {
	Search(ctx context.Context, params search.Params) ([]vecstore.SearchResult, error)
}

// Server wraps the query service as a single MCP tool.
type Server struct {
	service PhotoSearcher
	log     *logrus.Entry
	version string
}

// New creates a new MCP server wrapper.
func New(service PhotoSearcher, logger *logrus.Logger, version string) *Server {
	return &Server{
		service: service,
		log:     logger.WithField("component", "mcpserver"),
		version: version,
	}
}

// Run starts the MCP stdio server and blocks until the transport closes or
// ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "photoatlas",
		Title:   "PhotoAtlas",
		Version: s.version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name: "search_photo_albums",
		Description: `Search a personal photo archive with natural language.

Matches on visual content (what is in the picture) as well as titles.
Optionally restrict results to photos taken near a place:
- location: a place name, e.g. "Paris" or "Lake Tahoe"
- radius_km: how far around that place to look (default 25 km)

If the place cannot be resolved the search still runs without the
geographic restriction.`,
	}, s.searchTool)

	return server.Run(ctx, &mcp.StdioTransport{})
}

// searchTool handles one search_photo_albums call. Failures become an
// error-flagged result with the description embedded; nothing is ever
// thrown across the protocol boundary.
func (s *Server) searchTool(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	if input.Query == "" {
		return errorResult("query is required"), SearchOutput{}, nil
	}

	params := search.Params{
		Query:    input.Query,
		Limit:    clampLimit(input.Limit),
		Location: input.Location,
		RadiusKm: clampRadius(input.RadiusKm),
	}

	results, err := s.service.Search(ctx, params)
	if err != nil {
		s.log.WithField("query", input.Query).Errorf("search failed: %v", err)
		return errorResult(fmt.Sprintf("photo search failed: %v", err)), SearchOutput{}, nil
	}

	output := SearchOutput{Query: input.Query, Matches: len(results)}
	return textResult(formatResults(results)), output, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
