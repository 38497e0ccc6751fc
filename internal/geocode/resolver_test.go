package geocode

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	geo "github.com/codingsince1985/geo-golang"
	"github.com/sirupsen/logrus"
)

type fakeGeocoder struct {
	calls     int
	locations map[string]*geo.Location
	err       error
}

func (f *fakeGeocoder) Geocode(address string) (*geo.Location, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.locations[address], nil
}

func (f *fakeGeocoder) ReverseGeocode(lat, lng float64) (*geo.Address, error) {
	return nil, errors.New("not implemented")
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestResolveHit(t *testing.T) {
	upstream := &fakeGeocoder{locations: map[string]*geo.Location{
		"Lisbon": {Lat: 38.7223, Lng: -9.1393},
	}}
	r := newWithGeocoder(upstream, "", quietLogger())

	coords := r.Resolve(context.Background(), "Lisbon")
	if coords == nil {
		t.Fatal("expected coordinates")
	}
	if coords.Latitude != 38.7223 || coords.Longitude != -9.1393 {
		t.Errorf("coords = %+v", coords)
	}
}

func TestResolveMiss(t *testing.T) {
	r := newWithGeocoder(&fakeGeocoder{}, "", quietLogger())
	if coords := r.Resolve(context.Background(), "Atlantis"); coords != nil {
		t.Errorf("expected nil, got %+v", coords)
	}
}

func TestResolveUpstreamErrorIsMiss(t *testing.T) {
	upstream := &fakeGeocoder{err: errors.New("rate limited")}
	r := newWithGeocoder(upstream, "", quietLogger())
	if coords := r.Resolve(context.Background(), "Lisbon"); coords != nil {
		t.Errorf("expected nil, got %+v", coords)
	}
}

func TestResolveEmptyPlace(t *testing.T) {
	upstream := &fakeGeocoder{}
	r := newWithGeocoder(upstream, "", quietLogger())
	if coords := r.Resolve(context.Background(), "  "); coords != nil {
		t.Errorf("expected nil, got %+v", coords)
	}
	if upstream.calls != 0 {
		t.Errorf("upstream called %d times for a blank place", upstream.calls)
	}
}

func TestResolveCachesHits(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "geocode.db")
	upstream := &fakeGeocoder{locations: map[string]*geo.Location{
		"Lisbon": {Lat: 38.7223, Lng: -9.1393},
	}}
	r := newWithGeocoder(upstream, cachePath, quietLogger())
	defer r.Close()

	first := r.Resolve(context.Background(), "Lisbon")
	second := r.Resolve(context.Background(), "Lisbon")
	if first == nil || second == nil {
		t.Fatal("expected coordinates on both resolves")
	}
	if upstream.calls != 1 {
		t.Errorf("upstream called %d times, want 1", upstream.calls)
	}
	if second.Latitude != first.Latitude || second.Longitude != first.Longitude {
		t.Errorf("cached coords %+v differ from first %+v", second, first)
	}
}

func TestResolveCachesMisses(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "geocode.db")
	upstream := &fakeGeocoder{}
	r := newWithGeocoder(upstream, cachePath, quietLogger())
	defer r.Close()

	if coords := r.Resolve(context.Background(), "Atlantis"); coords != nil {
		t.Fatalf("expected nil, got %+v", coords)
	}
	if coords := r.Resolve(context.Background(), "Atlantis"); coords != nil {
		t.Fatalf("expected nil on cached miss, got %+v", coords)
	}
	if upstream.calls != 1 {
		t.Errorf("upstream called %d times, want 1", upstream.calls)
	}
}

func TestResolveKeyNormalization(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "geocode.db")
	upstream := &fakeGeocoder{locations: map[string]*geo.Location{
		"Lisbon":   {Lat: 38.7223, Lng: -9.1393},
		" lisbon ": {Lat: 38.7223, Lng: -9.1393},
	}}
	r := newWithGeocoder(upstream, cachePath, quietLogger())
	defer r.Close()

	r.Resolve(context.Background(), "Lisbon")
	r.Resolve(context.Background(), " lisbon ")
	if upstream.calls != 1 {
		t.Errorf("upstream called %d times, want 1 across case/space variants", upstream.calls)
	}
}
