// Package ingest walks extracted image records into the vector store in
// fixed-size batches with per-item failure accounting.
package ingest

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"photoatlas/internal/filereader"
	"photoatlas/internal/vecstore"
)

// ObjectStore is the slice of the vector store the pipeline needs.
type ObjectStore interface {
	Exists(ctx context.Context, url string) (bool, error)
	Insert(ctx context.Context, img vecstore.StoredImage) error
}

// ProgressReporter receives per-item progress. May be nil.
type ProgressReporter interface {
	Start(total int)
	Increment()
	Finish()
}

// Options configures one ingestion run.
type Options struct {
	BatchSize    int
	SkipExisting bool
	BaseURL      string // prefix for stored image URLs; source path when empty
	Progress     ProgressReporter
}

// Pipeline ingests image records sequentially. One outstanding network call
// at a time: this bounds resident memory to a single base64 payload and
// keeps existence checks from racing inserts for the same identity.
type Pipeline struct {
	store ObjectStore
	log   *logrus.Entry
}

func NewPipeline(store ObjectStore, logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		store: store,
		log:   logger.WithField("component", "ingest"),
	}
}

// Ingest processes records in contiguous batches of opts.BatchSize, in
// order. Per-item errors are recorded in the report and never abort the
// run; the report always accounts for every processed item. No resumable
// state is kept: a failed run is simply re-invoked, and items already
// present are absorbed as skips when SkipExisting is on.
func (p *Pipeline) Ingest(ctx context.Context, records []filereader.ImageRecord, opts Options) (*Report, error) {
	if opts.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", opts.BatchSize)
	}

	report := &Report{}

	if opts.Progress != nil {
		opts.Progress.Start(len(records))
		defer opts.Progress.Finish()
	}

	batchCount := 0
	for batch := range batches(records, opts.BatchSize) {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		batchCount++
		p.log.Debugf("processing batch %d (%d item(s))", batchCount, len(batch))

		for _, record := range batch {
			p.processItem(ctx, record, opts, report)
			if opts.Progress != nil {
				opts.Progress.Increment()
			}
		}
	}

	p.log.Infof("ingestion finished: %s", report)
	return report, nil
}

func (p *Pipeline) processItem(ctx context.Context, record filereader.ImageRecord, opts Options, report *Report) {
	url := vecstore.BuildURL(opts.BaseURL, record.Name, record.Extension, record.Path)

	if opts.SkipExisting {
		exists, err := p.store.Exists(ctx, url)
		if err != nil {
			report.recordFailure(record.Name, record.Extension, err)
			return
		}
		if exists {
			p.log.WithField("url", url).Debug("already present, skipping")
			report.recordSkipped()
			return
		}
	}

	if err := p.store.Insert(ctx, buildStoredImage(record, url)); err != nil {
		report.recordFailure(record.Name, record.Extension, err)
		return
	}
	report.recordSuccess()
}

// buildStoredImage maps a file record onto the collection schema. A record
// without GPS data yields an object without a coordinates property.
func buildStoredImage(record filereader.ImageRecord, url string) vecstore.StoredImage {
	img := vecstore.StoredImage{
		Title:     record.Name,
		URL:       url,
		Extension: record.Extension,
		Image:     record.Base64,
	}
	if record.Coordinates != nil {
		img.Coordinates = &vecstore.Coordinates{
			Latitude:  record.Coordinates.Latitude,
			Longitude: record.Coordinates.Longitude,
		}
	}
	return img
}

// batches yields contiguous slices of size batchSize; the last one may be
// shorter. Slices alias the input, no copying.
func batches(records []filereader.ImageRecord, batchSize int) func(yield func([]filereader.ImageRecord) bool) {
	return func(yield func([]filereader.ImageRecord) bool) {
		for start := 0; start < len(records); start += batchSize {
			end := start + batchSize
			if end > len(records) {
				end = len(records)
			}
			if !yield(records[start:end]) {
				return
			}
		}
	}
}
