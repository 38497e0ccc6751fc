package filereader

// Coordinates is a GPS latitude/longitude pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// ImageRecord is one image ready for ingestion. Base64 holds the whole file
// content, so only one record's payload should be kept resident at a time.
type ImageRecord struct {
	Name        string // file stem, without extension
	Path        string // source location on disk
	Extension   string // lowercase, includes the leading dot
	Size        int64  // bytes
	Base64      string
	Coordinates *Coordinates // nil when the file carries no GPS data
}
