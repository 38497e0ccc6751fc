package vecstore

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/weaviate/weaviate/entities/models"

	"photoatlas/internal/config"
)

// Store exposes the photo collection verbs over a Provider-managed handle.
type Store struct {
	provider   *Provider
	collection string
	vertex     config.VertexConfig
	baseURL    string
	log        *logrus.Entry
}

func NewStore(provider *Provider, cfg *config.Config, logger *logrus.Logger) *Store {
	return &Store{
		provider:   provider,
		collection: cfg.Weaviate.Collection,
		vertex:     cfg.Vertex,
		baseURL:    cfg.Upload.BaseURL,
		log:        logger.WithField("component", "vecstore"),
	}
}

// Collection returns the collection name the store operates on.
func (s *Store) Collection() string {
	return s.collection
}

// EnsureCollection creates the photo collection if it does not exist yet.
// Idempotent: an existing collection is left untouched.
func (s *Store) EnsureCollection(ctx context.Context) error {
	client, err := s.provider.Client(ctx)
	if err != nil {
		return err
	}

	exists, err := client.Schema().ClassExistenceChecker().
		WithClassName(s.collection).
		Do(ctx)
	if err != nil {
		return &CollectionError{Collection: s.collection, Err: err}
	}
	if exists {
		s.log.WithField("collection", s.collection).Debug("collection already exists")
		return nil
	}

	if err := client.Schema().ClassCreator().WithClass(s.classDefinition()).Do(ctx); err != nil {
		return &CollectionError{Collection: s.collection, Err: err}
	}

	s.log.WithField("collection", s.collection).Info("created collection")
	return nil
}

// DeleteCollection removes the collection and everything in it.
func (s *Store) DeleteCollection(ctx context.Context) error {
	client, err := s.provider.Client(ctx)
	if err != nil {
		return err
	}
	if err := client.Schema().ClassDeleter().WithClassName(s.collection).Do(ctx); err != nil {
		return &CollectionError{Collection: s.collection, Err: err}
	}
	s.log.WithField("collection", s.collection).Info("deleted collection")
	return nil
}

// classDefinition is the fixed schema: the image blob carries most of the
// vectorizer weight, the title a minor share, so text queries can match on
// either visual content or filename.
func (s *Store) classDefinition() *models.Class {
	vectorizerConfig := map[string]interface{}{
		"projectId":   s.vertex.ProjectID,
		"location":    s.vertex.Location,
		"imageFields": []string{"image"},
		"textFields":  []string{"title"},
		"weights": map[string]interface{}{
			"imageFields": []float64{0.9},
			"textFields":  []float64{0.1},
		},
	}
	if s.vertex.Model != "" {
		vectorizerConfig["model"] = s.vertex.Model
	}

	return &models.Class{
		Class:      s.collection,
		Vectorizer: "multi2vec-google",
		ModuleConfig: map[string]interface{}{
			"multi2vec-google": vectorizerConfig,
		},
		Properties: []*models.Property{
			{Name: "title", DataType: []string{"text"}},
			{Name: "url", DataType: []string{"text"}},
			{Name: "extension", DataType: []string{"text"}},
			{Name: "image", DataType: []string{"blob"}},
			{Name: "coordinates", DataType: []string{"geoCoordinates"}},
		},
	}
}
