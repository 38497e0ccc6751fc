package vecstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/weaviate/weaviate-go-client/v5/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
)

// BuildURL constructs the stored identity for an image: base URL + filename +
// extension. With no base URL configured the source path stands in, so the
// identity stays stable either way.
func BuildURL(baseURL, name, extension, path string) string {
	if baseURL == "" {
		return path
	}
	return strings.TrimRight(baseURL, "/") + "/" + name + extension
}

// Insert stores one image object. The coordinates property is omitted
// entirely when the record has none.
func (s *Store) Insert(ctx context.Context, img StoredImage) error {
	client, err := s.provider.Client(ctx)
	if err != nil {
		return err
	}

	properties := map[string]interface{}{
		"title":     img.Title,
		"url":       img.URL,
		"extension": img.Extension,
		"image":     img.Image,
	}
	if img.Coordinates != nil {
		properties["coordinates"] = map[string]interface{}{
			"latitude":  img.Coordinates.Latitude,
			"longitude": img.Coordinates.Longitude,
		}
	}

	_, err = client.Data().Creator().
		WithClassName(s.collection).
		WithProperties(properties).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}
	return nil
}

// Exists reports whether an object with the given url identity is already in
// the collection.
func (s *Store) Exists(ctx context.Context, url string) (bool, error) {
	client, err := s.provider.Client(ctx)
	if err != nil {
		return false, err
	}

	where := filters.Where().
		WithPath([]string{"url"}).
		WithOperator(filters.Equal).
		WithValueText(url)

	resp, err := client.GraphQL().Get().
		WithClassName(s.collection).
		WithFields(graphql.Field{Name: "url"}).
		WithWhere(where).
		WithLimit(1).
		Do(ctx)
	if err != nil {
		return false, fmt.Errorf("existence check failed: %w", err)
	}
	if err := graphQLErrors(resp); err != nil {
		return false, fmt.Errorf("existence check failed: %w", err)
	}

	rows, err := decodeRows(resp, s.collection)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}
