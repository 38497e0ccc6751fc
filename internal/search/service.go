// Package search composes natural-language photo queries: free text plus an
// optional place name resolved to a geographic radius filter.
package search

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"photoatlas/internal/geocode"
	"photoatlas/internal/vecstore"
)

// Searcher is the slice of the vector store the service needs.
type Searcher interface {
	NearText(ctx context.Context, query string, limit int, geo *vecstore.GeoFilter) ([]vecstore.SearchResult, error)
	FetchAll(ctx context.Context, limit int) ([]vecstore.SearchResult, error)
}

// Locator resolves a place name to coordinates, nil on a miss.
type Locator interface {
	Resolve(ctx context.Context, place string) *geocode.Coordinates
}

// Params describes one search request. Location and RadiusKm are optional;
// RadiusKm defaults to the configured radius when a location is given
// without one.
type Params struct {
	Query    string
	Limit    int
	Location string
	RadiusKm float64
}

// Service turns a request into a similarity query against the collection.
type Service struct {
	store           Searcher
	locator         Locator
	defaultRadiusKm float64
	log             *logrus.Entry
}

func NewService(store Searcher, locator Locator, defaultRadiusKm float64, logger *logrus.Logger) *Service {
	return &Service{
		store:           store,
		locator:         locator,
		defaultRadiusKm: defaultRadiusKm,
		log:             logger.WithField("component", "search"),
	}
}

// Search runs the similarity query. A location that cannot be geocoded is
// logged and the query proceeds unfiltered; the results keep the backend's
// ranking order.
func (s *Service) Search(ctx context.Context, params Params) ([]vecstore.SearchResult, error) {
	if params.Query == "" {
		return nil, fmt.Errorf("query is required")
	}
	if params.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", params.Limit)
	}

	geo := s.resolveFilter(ctx, params)
	return s.store.NearText(ctx, params.Query, params.Limit, geo)
}

// ListAll returns up to limit stored photos with no ranking.
func (s *Service) ListAll(ctx context.Context, limit int) ([]vecstore.SearchResult, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	return s.store.FetchAll(ctx, limit)
}

func (s *Service) resolveFilter(ctx context.Context, params Params) *vecstore.GeoFilter {
	if params.Location == "" {
		return nil
	}

	coords := s.locator.Resolve(ctx, params.Location)
	if coords == nil {
		s.log.WithField("location", params.Location).
			Warn("location could not be geocoded, searching without geographic filter")
		return nil
	}

	radius := params.RadiusKm
	if radius <= 0 {
		radius = s.defaultRadiusKm
	}

	return &vecstore.GeoFilter{
		Latitude:  coords.Latitude,
		Longitude: coords.Longitude,
		RadiusKm:  radius,
	}
}
