// Package geocode resolves place names to coordinates through an external
// geocoding service, with a local sqlite cache in front of it.
package geocode

import (
	"context"
	"strings"

	geo "github.com/codingsince1985/geo-golang"
	"github.com/codingsince1985/geo-golang/openstreetmap"
	"github.com/sirupsen/logrus"
)

// Coordinates is a resolved latitude/longitude pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Resolver answers "where is <place>" with the single best match, or nil
// when the place cannot be resolved. It never fails the caller over an
// upstream problem; an error from the service is degraded to a miss.
type Resolver struct {
	upstream geo.Geocoder
	cache    *cache
	log      *logrus.Entry
}

// New builds a Resolver backed by OpenStreetMap with a sqlite cache at
// cachePath. An unopenable cache is logged and skipped, not fatal.
func New(cachePath string, logger *logrus.Logger) *Resolver {
	r := &Resolver{
		upstream: openstreetmap.Geocoder(),
		log:      logger.WithField("component", "geocode"),
	}
	if cachePath != "" {
		c, err := openCache(cachePath)
		if err != nil {
			r.log.Warnf("geocode cache disabled: %v", err)
		} else {
			r.cache = c
		}
	}
	return r
}

// newWithGeocoder is the test seam.
func newWithGeocoder(upstream geo.Geocoder, cachePath string, logger *logrus.Logger) *Resolver {
	r := New(cachePath, logger)
	r.upstream = upstream
	return r
}

// Close releases the cache database if one was opened.
func (r *Resolver) Close() {
	if r.cache != nil {
		_ = r.cache.close()
	}
}

// Resolve returns the best-match coordinates for place, or nil when the
// service has no answer. Misses are cached alongside hits.
func (r *Resolver) Resolve(ctx context.Context, place string) *Coordinates {
	key := strings.ToLower(strings.TrimSpace(place))
	if key == "" {
		return nil
	}

	if r.cache != nil {
		coords, found, err := r.cache.get(key)
		if err != nil {
			r.log.Warnf("cache lookup failed: %v", err)
		} else if found {
			return coords
		}
	}

	if err := ctx.Err(); err != nil {
		return nil
	}

	coords := r.lookup(place)

	if r.cache != nil {
		if err := r.cache.put(key, coords); err != nil {
			r.log.Warnf("cache write failed: %v", err)
		}
	}
	return coords
}

func (r *Resolver) lookup(place string) *Coordinates {
	location, err := r.upstream.Geocode(place)
	if err != nil {
		r.log.WithField("place", place).Warnf("geocoding failed: %v", err)
		return nil
	}
	if location == nil {
		return nil
	}
	return &Coordinates{Latitude: location.Lat, Longitude: location.Lng}
}
