package vecstore

// Coordinates is a stored geo-pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// StoredImage is the remote collection schema for one ingested photo.
// Coordinates stays nil when the source file had no GPS data; the property
// is then omitted from the stored object rather than sent as null.
type StoredImage struct {
	Title       string
	URL         string
	Extension   string
	Image       string // base64 payload, vectorized by the backend
	Coordinates *Coordinates
}

// SearchResult is one row of a similarity query or inventory fetch. Exactly
// one of Score (higher is better) or Distance (lower is better) is set for
// ranked queries, depending on what the backend reports; both are nil for
// plain fetches.
type SearchResult struct {
	Title       string
	URL         string
	Extension   string
	Coordinates *Coordinates
	Score       *float64
	Distance    *float64
}

// GeoFilter constrains a similarity query to objects within RadiusKm of a
// point. Only applied when a location string was supplied and geocoded.
type GeoFilter struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}
