package gcpauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type fakeStrategy struct {
	calls int
	cred  Credential
	err   error
}

func (f *fakeStrategy) Exchange(ctx context.Context) (Credential, error) {
	f.calls++
	if f.err != nil {
		return Credential{}, f.err
	}
	cred := f.cred
	cred.Token = fmt.Sprintf("%s-%d", cred.Token, f.calls)
	return cred, nil
}

func (f *fakeStrategy) Name() string {
	return "fake"
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestTokenCachedWithinMargin(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := t0

	strategy := &fakeStrategy{cred: Credential{Token: "tok", ExpiresAt: t0.Add(time.Hour)}}
	m := newManager(strategy, quietLogger(), func() time.Time { return current })

	first, err := m.Token(context.Background())
	if err != nil {
		t.Fatalf("Token() error: %v", err)
	}
	if strategy.calls != 1 {
		t.Fatalf("expected 1 exchange, got %d", strategy.calls)
	}

	// Still well within the margin: identical token, no extra exchange.
	current = t0.Add(30 * time.Minute)
	second, err := m.Token(context.Background())
	if err != nil {
		t.Fatalf("Token() error: %v", err)
	}
	if second != first {
		t.Errorf("expected cached token %q, got %q", first, second)
	}
	if strategy.calls != 1 {
		t.Errorf("expected no extra exchange, got %d calls", strategy.calls)
	}
}

func TestTokenRefreshedAtMargin(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := t0

	strategy := &fakeStrategy{cred: Credential{Token: "tok", ExpiresAt: t0.Add(time.Hour)}}
	m := newManager(strategy, quietLogger(), func() time.Time { return current })

	if _, err := m.Token(context.Background()); err != nil {
		t.Fatalf("Token() error: %v", err)
	}

	tests := []struct {
		name      string
		elapsed   time.Duration
		wantCalls int
	}{
		{name: "6 min remaining", elapsed: 54 * time.Minute, wantCalls: 1},
		{name: "4 min remaining", elapsed: 56 * time.Minute, wantCalls: 2},
		{name: "already expired", elapsed: 2 * time.Hour, wantCalls: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current = t0.Add(tt.elapsed)
			strategy.cred.ExpiresAt = current.Add(time.Hour)
			if _, err := m.Token(context.Background()); err != nil {
				t.Fatalf("Token() error: %v", err)
			}
			if strategy.calls != tt.wantCalls {
				t.Errorf("exchanges = %d, want %d", strategy.calls, tt.wantCalls)
			}
		})
	}
}

func TestTokenExchangeFailure(t *testing.T) {
	strategy := &fakeStrategy{err: errors.New("backend says no")}
	m := newManager(strategy, quietLogger(), time.Now)

	_, err := m.Token(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError, got %T: %v", err, err)
	}
	if authErr.Strategy != "fake" {
		t.Errorf("Strategy = %q, want %q", authErr.Strategy, "fake")
	}
}

func TestTokenEmptyExchange(t *testing.T) {
	m := newManager(&emptyStrategy{}, quietLogger(), time.Now)

	_, err := m.Token(context.Background())
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError for empty token, got %v", err)
	}
}

type emptyStrategy struct{}

func (e *emptyStrategy) Exchange(ctx context.Context) (Credential, error) {
	return Credential{Token: "", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (e *emptyStrategy) Name() string { return "empty" }
