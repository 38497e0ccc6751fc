// Package vecstore wraps the remote vector database: connection lifecycle,
// the photo collection schema, and the handful of verbs the rest of the
// system needs (insert, existence check, similarity query, bounded fetch).
package vecstore

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/auth"

	"photoatlas/internal/config"
)

// clientTTL bounds how long one handle is reused. The embedding backend's
// bearer token expires hourly; rebuilding the handle with a fresh token on a
// timer is simpler and safer than mutating headers on a live client.
const clientTTL = 60 * time.Minute

// TokenSource supplies the current bearer token for the embedding backend.
// *gcpauth.Manager satisfies it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Provider lazily builds and periodically rebuilds the vector store handle.
type Provider struct {
	cfg    config.WeaviateConfig
	tokens TokenSource
	log    *logrus.Entry
	now    func() time.Time

	// build is swapped out in tests.
	build func(ctx context.Context) (*weaviate.Client, error)

	mu      sync.Mutex
	client  *weaviate.Client
	builtAt time.Time
}

func NewProvider(cfg config.WeaviateConfig, tokens TokenSource, logger *logrus.Logger) *Provider {
	p := &Provider{
		cfg:    cfg,
		tokens: tokens,
		log:    logger.WithField("component", "vecstore"),
		now:    time.Now,
	}
	p.build = p.buildClient
	return p
}

// Client returns the cached handle, building a new one when none exists or
// the current one is older than clientTTL.
func (p *Provider) Client(ctx context.Context) (*weaviate.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil && p.now().Sub(p.builtAt) <= clientTTL {
		return p.client, nil
	}

	client, err := p.build(ctx)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}

	p.client = client
	p.builtAt = p.now()
	p.log.WithField("host", p.cfg.Host).Debug("built vector store client")
	return p.client, nil
}

// Close releases the held handle. Safe to call when none exists; the handle
// is plain HTTP, so dropping the reference is the whole release.
func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.client = nil
	p.builtAt = time.Time{}
}

func (p *Provider) buildClient(ctx context.Context) (*weaviate.Client, error) {
	token, err := p.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	cfg := weaviate.Config{
		Host:   p.cfg.Host,
		Scheme: p.cfg.Scheme,
		Headers: map[string]string{
			// consumed by the multi2vec-google module on the backend
			"X-Goog-Vertex-Api-Key": token,
		},
	}
	if p.cfg.APIKey != "" {
		cfg.AuthConfig = auth.ApiKey{Value: p.cfg.APIKey}
	}

	return weaviate.NewClient(cfg)
}
