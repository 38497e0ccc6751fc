package geocode

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS geocode_cache (
    place     TEXT PRIMARY KEY,
    resolved  INTEGER NOT NULL,
    latitude  REAL,
    longitude REAL,
    cached_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// cache persists geocoding answers, including misses, so repeated runs do
// not hammer the upstream service for the same place names.
type cache struct {
	db *sql.DB
}

func openCache(path string) (*cache, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode=WAL&_pragma=synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}

	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &cache{db: db}, nil
}

func (c *cache) close() error {
	return c.db.Close()
}

// get returns (coords, found). found is true for cached misses too, with a
// nil coords.
func (c *cache) get(place string) (*Coordinates, bool, error) {
	var resolved int
	var lat, lon sql.NullFloat64
	err := c.db.QueryRow(
		"SELECT resolved, latitude, longitude FROM geocode_cache WHERE place = ?", place,
	).Scan(&resolved, &lat, &lon)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache lookup failed: %w", err)
	}

	if resolved == 0 || !lat.Valid || !lon.Valid {
		return nil, true, nil
	}
	return &Coordinates{Latitude: lat.Float64, Longitude: lon.Float64}, true, nil
}

func (c *cache) put(place string, coords *Coordinates) error {
	var resolved int
	var lat, lon interface{}
	if coords != nil {
		resolved = 1
		lat = coords.Latitude
		lon = coords.Longitude
	}
	_, err := c.db.Exec(
		"INSERT OR REPLACE INTO geocode_cache (place, resolved, latitude, longitude) VALUES (?, ?, ?, ?)",
		place, resolved, lat, lon,
	)
	if err != nil {
		return fmt.Errorf("cache write failed: %w", err)
	}
	return nil
}
