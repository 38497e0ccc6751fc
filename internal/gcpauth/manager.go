// Package gcpauth obtains and caches the short-lived Google Cloud access
// token that authorizes calls to the multimodal embedding backend.
package gcpauth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"photoatlas/internal/config"
)

// expiryMargin is the minimum remaining validity a token must have when
// handed out. Tokens closer to expiry than this are refreshed first.
const expiryMargin = 5 * time.Minute

// Credential is an access token together with its expiry instant.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

// Strategy performs the external credential exchange. Implementations are
// mutually exclusive alternatives behind the same contract.
type Strategy interface {
	Exchange(ctx context.Context) (Credential, error)
	Name() string
}

// AuthError wraps a failed credential exchange. It is fatal for the current
// operation and is never retried automatically.
type AuthError struct {
	Strategy string
	Err      error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("credential exchange failed (%s): %v", e.Strategy, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Manager caches the current credential and refreshes it through its
// strategy before the expiry margin is reached.
type Manager struct {
	strategy Strategy
	log      *logrus.Entry
	now      func() time.Time

	mu   sync.Mutex
	cred *Credential
}

// NewManager builds a Manager with the strategy selected by cfg.
func NewManager(cfg *config.AuthConfig, logger *logrus.Logger) (*Manager, error) {
	var strategy Strategy
	switch cfg.Strategy {
	case "gcloud":
		strategy = NewGcloudStrategy()
	case "service_account":
		s, err := NewServiceAccountStrategy(cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		strategy = s
	default:
		return nil, fmt.Errorf("unsupported auth strategy: %s", cfg.Strategy)
	}
	return newManager(strategy, logger, time.Now), nil
}

func newManager(strategy Strategy, logger *logrus.Logger, now func() time.Time) *Manager {
	return &Manager{
		strategy: strategy,
		log:      logger.WithField("component", "gcpauth"),
		now:      now,
	}
}

// Token returns a valid access token, refreshing the cached credential when
// it is missing or within the expiry margin. A cached token is returned
// without any I/O.
func (m *Manager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cred != nil && m.cred.ExpiresAt.Sub(m.now()) > expiryMargin {
		return m.cred.Token, nil
	}

	cred, err := m.refresh(ctx)
	if err != nil {
		return "", err
	}
	m.cred = &cred
	return cred.Token, nil
}

func (m *Manager) refresh(ctx context.Context) (Credential, error) {
	cred, err := m.strategy.Exchange(ctx)
	if err != nil {
		return Credential{}, &AuthError{Strategy: m.strategy.Name(), Err: err}
	}
	if cred.Token == "" {
		return Credential{}, &AuthError{Strategy: m.strategy.Name(), Err: fmt.Errorf("exchange returned no token")}
	}
	m.log.WithField("expires_at", cred.ExpiresAt.Format(time.RFC3339)).Debug("refreshed access token")
	return cred, nil
}
