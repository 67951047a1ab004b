package git

import (
	"context"
	"os/exec"
	"strings"

	"github.com/m-mizutani/ctxlog"
)

// CredentialSource hands out the hosting token it was constructed with and
// queries the local git configuration for the account name.
type CredentialSource struct {
	token string
}

// NewCredentialSource creates a CredentialSource around an already resolved
// token. An empty token is valid here; the release flow rejects it before
// issuing any request.
func NewCredentialSource(token string) *CredentialSource {
	return &CredentialSource{token: token}
}

// Token returns the hosting API token.
func (s *CredentialSource) Token() string {
	return s.token
}

// Username runs `git config user.username` and returns the trimmed output.
// A missing git binary or an unset key both yield an empty string, which
// the hosting API accepts for basic auth.
func (s *CredentialSource) Username(ctx context.Context) string {
	out, err := exec.CommandContext(ctx, "git", "config", "user.username").Output()
	if err != nil {
		ctxlog.From(ctx).Debug("git username query failed", "error", err)
		return ""
	}
	return strings.TrimSpace(string(out))
}
