package gcpauth

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// ServiceAccountStrategy exchanges a service account key file for an access
// token via the standard OAuth2 flow.
type ServiceAccountStrategy struct {
	keyData []byte
}

// NewServiceAccountStrategy reads the key file up front so a bad path fails
// at startup rather than on the first exchange.
func NewServiceAccountStrategy(credentialsFile string) (*ServiceAccountStrategy, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return &ServiceAccountStrategy{keyData: data}, nil
}

func (s *ServiceAccountStrategy) Name() string {
	return "service_account"
}

// Exchange performs the token exchange against Google's OAuth2 endpoint.
func (s *ServiceAccountStrategy) Exchange(ctx context.Context) (Credential, error) {
	creds, err := google.CredentialsFromJSON(ctx, s.keyData, cloudPlatformScope)
	if err != nil {
		return Credential{}, fmt.Errorf("failed to parse credentials: %w", err)
	}
	tok, err := creds.TokenSource.Token()
	if err != nil {
		return Credential{}, fmt.Errorf("token exchange failed: %w", err)
	}
	return Credential{Token: tok.AccessToken, ExpiresAt: tok.Expiry}, nil
}
