package gcpauth

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// gcloud access tokens are valid for one hour from issue.
const gcloudTokenLifetime = time.Hour

// GcloudStrategy delegates the credential exchange to the locally installed
// gcloud CLI and its active authenticated account.
type GcloudStrategy struct {
	now func() time.Time
}

func NewGcloudStrategy() *GcloudStrategy {
	return &GcloudStrategy{now: time.Now}
}

func (s *GcloudStrategy) Name() string {
	return "gcloud"
}

// Exchange runs "gcloud auth print-access-token" and trims the output.
func (s *GcloudStrategy) Exchange(ctx context.Context) (Credential, error) {
	cmd := exec.CommandContext(ctx, "gcloud", "auth", "print-access-token")
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return Credential{}, fmt.Errorf("gcloud failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return Credential{}, fmt.Errorf("gcloud failed: %w", err)
	}

	token := strings.TrimSpace(string(output))
	if token == "" {
		return Credential{}, fmt.Errorf("gcloud printed an empty token")
	}

	return Credential{
		Token:     token,
		ExpiresAt: s.now().Add(gcloudTokenLifetime),
	}, nil
}
