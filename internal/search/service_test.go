package search

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"photoatlas/internal/geocode"
	"photoatlas/internal/vecstore"
)

type fakeSearcher struct {
	gotQuery string
	gotLimit int
	gotGeo   *vecstore.GeoFilter
	results  []vecstore.SearchResult
}

func (f *fakeSearcher) NearText(ctx context.Context, query string, limit int, geo *vecstore.GeoFilter) ([]vecstore.SearchResult, error) {
	f.gotQuery = query
	f.gotLimit = limit
	f.gotGeo = geo
	return f.results, nil
}

func (f *fakeSearcher) FetchAll(ctx context.Context, limit int) ([]vecstore.SearchResult, error) {
	f.gotLimit = limit
	return f.results, nil
}

type fakeLocator struct {
	places map[string]*geocode.Coordinates
}

func (f *fakeLocator) Resolve(ctx context.Context, place string) *geocode.Coordinates {
	return f.places[place]
}

func TestSearchPassesGeoFilter(t *testing.T) {
	store := &fakeSearcher{}
	locator := &fakeLocator{places: map[string]*geocode.Coordinates{
		"Paris": {Latitude: 48.8566, Longitude: 2.3522},
	}}
	logger, _ := logtest.NewNullLogger()
	svc := NewService(store, locator, 25, logger)

	_, err := svc.Search(context.Background(), Params{
		Query:    "sunset over a river",
		Limit:    5,
		Location: "Paris",
		RadiusKm: 10,
	})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	if store.gotQuery != "sunset over a river" || store.gotLimit != 5 {
		t.Errorf("query/limit = %q/%d", store.gotQuery, store.gotLimit)
	}
	if store.gotGeo == nil {
		t.Fatal("expected a geo filter")
	}
	if store.gotGeo.Latitude != 48.8566 || store.gotGeo.Longitude != 2.3522 || store.gotGeo.RadiusKm != 10 {
		t.Errorf("geo filter = %+v", store.gotGeo)
	}
}

func TestSearchDefaultRadius(t *testing.T) {
	store := &fakeSearcher{}
	locator := &fakeLocator{places: map[string]*geocode.Coordinates{
		"Oslo": {Latitude: 59.91, Longitude: 10.75},
	}}
	logger, _ := logtest.NewNullLogger()
	svc := NewService(store, locator, 25, logger)

	if _, err := svc.Search(context.Background(), Params{Query: "fjord", Limit: 3, Location: "Oslo"}); err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if store.gotGeo == nil || store.gotGeo.RadiusKm != 25 {
		t.Errorf("geo filter = %+v, want default radius 25", store.gotGeo)
	}
}

func TestSearchGeocodeMissFallsBackUnfiltered(t *testing.T) {
	store := &fakeSearcher{}
	locator := &fakeLocator{places: map[string]*geocode.Coordinates{}}
	logger, hook := logtest.NewNullLogger()
	svc := NewService(store, locator, 25, logger)

	_, err := svc.Search(context.Background(), Params{Query: "beach", Limit: 5, Location: "Nowheresville"})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if store.gotGeo != nil {
		t.Errorf("expected unfiltered search, got geo filter %+v", store.gotGeo)
	}

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warned = true
		}
	}
	if !warned {
		t.Error("expected a warning about the unresolved location")
	}
}

func TestSearchNoLocationSkipsLocator(t *testing.T) {
	store := &fakeSearcher{}
	logger, _ := logtest.NewNullLogger()
	// nil locator: must not be touched when no location is given.
	svc := NewService(store, nil, 25, logger)

	if _, err := svc.Search(context.Background(), Params{Query: "dog", Limit: 2}); err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if store.gotGeo != nil {
		t.Errorf("expected no geo filter, got %+v", store.gotGeo)
	}
}

func TestSearchValidation(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	svc := NewService(&fakeSearcher{}, &fakeLocator{}, 25, logger)

	tests := []struct {
		name   string
		params Params
	}{
		{name: "empty query", params: Params{Limit: 5}},
		{name: "zero limit", params: Params{Query: "cat"}},
		{name: "negative limit", params: Params{Query: "cat", Limit: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Search(context.Background(), tt.params); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSearchPreservesOrder(t *testing.T) {
	ranked := []vecstore.SearchResult{
		{Title: "first"}, {Title: "second"}, {Title: "third"},
	}
	store := &fakeSearcher{results: ranked}
	logger, _ := logtest.NewNullLogger()
	svc := NewService(store, &fakeLocator{}, 25, logger)

	got, err := svc.Search(context.Background(), Params{Query: "anything", Limit: 3})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Title != want {
			t.Errorf("result %d = %q, want %q", i, got[i].Title, want)
		}
	}
}

func TestListAll(t *testing.T) {
	store := &fakeSearcher{results: []vecstore.SearchResult{{Title: "a"}}}
	logger, _ := logtest.NewNullLogger()
	svc := NewService(store, &fakeLocator{}, 25, logger)

	got, err := svc.ListAll(context.Background(), 100)
	if err != nil {
		t.Fatalf("ListAll() error: %v", err)
	}
	if len(got) != 1 || store.gotLimit != 100 {
		t.Errorf("got %d results, limit passed %d", len(got), store.gotLimit)
	}

	if _, err := svc.ListAll(context.Background(), 0); err == nil {
		t.Error("expected error for zero limit")
	}
}
