package vecstore

import (
	"context"
	"fmt"

	"github.com/weaviate/weaviate-go-client/v5/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

// resultFields are projected for every query. The backend reports certainty
// for cosine collections and distance otherwise; both are requested and
// whichever is present is surfaced.
var resultFields = []graphql.Field{
	{Name: "title"},
	{Name: "url"},
	{Name: "extension"},
	{Name: "coordinates", Fields: []graphql.Field{
		{Name: "latitude"},
		{Name: "longitude"},
	}},
	{Name: "_additional", Fields: []graphql.Field{
		{Name: "certainty"},
		{Name: "distance"},
	}},
}

// NearText issues a similarity query for the free-text query, optionally
// constrained to a geographic radius. Results come back in backend ranking
// order and are not re-sorted.
func (s *Store) NearText(ctx context.Context, query string, limit int, geo *GeoFilter) ([]SearchResult, error) {
	client, err := s.provider.Client(ctx)
	if err != nil {
		return nil, err
	}

	nearText := client.GraphQL().NearTextArgBuilder().
		WithConcepts([]string{query})

	builder := client.GraphQL().Get().
		WithClassName(s.collection).
		WithFields(resultFields...).
		WithNearText(nearText).
		WithLimit(limit)

	if geo != nil {
		builder = builder.WithWhere(geoWhere(geo))
	}

	resp, err := builder.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("similarity query failed: %w", err)
	}
	if err := graphQLErrors(resp); err != nil {
		return nil, fmt.Errorf("similarity query failed: %w", err)
	}

	rows, err := decodeRows(resp, s.collection)
	if err != nil {
		return nil, err
	}
	return mapResults(rows), nil
}

// FetchAll returns up to limit stored objects with no ranking, for
// inventory listing.
func (s *Store) FetchAll(ctx context.Context, limit int) ([]SearchResult, error) {
	client, err := s.provider.Client(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := client.GraphQL().Get().
		WithClassName(s.collection).
		WithFields(resultFields...).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	if err := graphQLErrors(resp); err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}

	rows, err := decodeRows(resp, s.collection)
	if err != nil {
		return nil, err
	}
	return mapResults(rows), nil
}

// geoWhere converts a GeoFilter into a WithinGeoRange where-filter. The
// backend takes the radius in metres.
func geoWhere(geo *GeoFilter) *filters.WhereBuilder {
	return filters.Where().
		WithPath([]string{"coordinates"}).
		WithOperator(filters.WithinGeoRange).
		WithValueGeoRange(&filters.GeoCoordinatesParameter{
			Latitude:    float32(geo.Latitude),
			Longitude:   float32(geo.Longitude),
			MaxDistance: float32(geo.RadiusKm * 1000),
		})
}

func graphQLErrors(resp *models.GraphQLResponse) error {
	if resp == nil {
		return fmt.Errorf("empty response")
	}
	if len(resp.Errors) > 0 {
		return fmt.Errorf("backend error: %s", resp.Errors[0].Message)
	}
	return nil
}

// decodeRows digs the object list for the collection out of a GraphQL Get
// response. A missing class key means zero rows, not an error.
func decodeRows(resp *models.GraphQLResponse, collection string) ([]map[string]interface{}, error) {
	get, ok := resp.Data["Get"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected response shape: missing Get block")
	}
	raw, ok := get[collection].([]interface{})
	if !ok {
		return nil, nil
	}

	rows := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		if row, ok := item.(map[string]interface{}); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func mapResults(rows []map[string]interface{}) []SearchResult {
	results := make([]SearchResult, 0, len(rows))
	for _, row := range rows {
		result := SearchResult{
			Title:     asString(row["title"]),
			URL:       asString(row["url"]),
			Extension: asString(row["extension"]),
		}

		if coords, ok := row["coordinates"].(map[string]interface{}); ok {
			lat, latOK := asFloat(coords["latitude"])
			lon, lonOK := asFloat(coords["longitude"])
			if latOK && lonOK {
				result.Coordinates = &Coordinates{Latitude: lat, Longitude: lon}
			}
		}

		if additional, ok := row["_additional"].(map[string]interface{}); ok {
			if certainty, ok := asFloat(additional["certainty"]); ok {
				result.Score = &certainty
			} else if distance, ok := asFloat(additional["distance"]); ok {
				result.Distance = &distance
			}
		}

		results = append(results, result)
	}
	return results
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asFloat(v interface{}) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}
