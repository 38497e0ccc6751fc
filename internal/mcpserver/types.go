package mcpserver

// SearchInput defines inputs for the search_photo_albums MCP tool.
type SearchInput struct {
	Query    string  `json:"query" jsonschema:"natural language description of the photos to find"`
	Limit    int     `json:"limit,omitempty" jsonschema:"number of results to return (1-10, default 5)"`
	Location string  `json:"location,omitempty" jsonschema:"place name to search around (optional)"`
	RadiusKm float64 `json:"radius_km,omitempty" jsonschema:"search radius around the location in kilometres (0.1-500, default 25)"`
}

// SearchOutput is the structured companion to the formatted text block.
type SearchOutput struct {
	Query   string `json:"query"`
	Matches int    `json:"matches"`
}

const (
	defaultLimit    = 5
	minLimit        = 1
	maxLimit        = 10
	defaultRadiusKm = 25
	minRadiusKm     = 0.1
	maxRadiusKm     = 500
)

func clampLimit(limit int) int {
	if limit == 0 {
		return defaultLimit
	}
	if limit < minLimit {
		return minLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func clampRadius(radiusKm float64) float64 {
	if radiusKm == 0 {
		return defaultRadiusKm
	}
	if radiusKm < minRadiusKm {
		return minRadiusKm
	}
	if radiusKm > maxRadiusKm {
		return maxRadiusKm
	}
	return radiusKm
}
