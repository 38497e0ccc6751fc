package filereader

import (
	"bytes"

	"github.com/rwcarlsen/goexif/exif"
)

// extractGPS pulls the GPS position out of the file's EXIF block. Files
// without EXIF, or with EXIF but no GPS tags, simply have no coordinates.
func extractGPS(data []byte) *Coordinates {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	lat, long, err := x.LatLong()
	if err != nil {
		return nil
	}
	return &Coordinates{Latitude: lat, Longitude: long}
}
