// Package filereader walks a local directory and yields image records with
// base64 payloads and optional EXIF GPS coordinates.
package filereader

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
)

// Reader collects image files matching a set of doublestar patterns.
type Reader struct {
	patterns []string
	log      *logrus.Entry
}

func New(patterns []string, logger *logrus.Logger) *Reader {
	return &Reader{
		patterns: patterns,
		log:      logger.WithField("component", "filereader"),
	}
}

// Read returns one ImageRecord per matched file under dir, sorted by path so
// batch boundaries are stable between runs.
func (r *Reader) Read(dir string) ([]ImageRecord, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range r.patterns {
		matches, err := doublestar.FilepathGlob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)

	records := make([]ImageRecord, 0, len(paths))
	for _, path := range paths {
		record, err := r.readFile(path)
		if err != nil {
			r.log.WithField("path", path).Warnf("skipping unreadable file: %v", err)
			continue
		}
		records = append(records, record)
	}

	r.log.WithField("dir", dir).Infof("collected %d image(s)", len(records))
	return records, nil
}

func (r *Reader) readFile(path string) (ImageRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImageRecord{}, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	record := ImageRecord{
		Name:      name,
		Path:      path,
		Extension: ext,
		Size:      int64(len(data)),
		Base64:    base64.StdEncoding.EncodeToString(data),
	}

	if coords := extractGPS(data); coords != nil {
		record.Coordinates = coords
	}

	return record, nil
}
