package interfaces

import (
	"context"

	"github.com/pubrel/pubrel/pkg/domain/model"
)

// Project exposes the metadata and build outputs of the host project.
type Project interface {
	// Name returns the declared package name
	Name() string

	// Version returns the declared version, empty when the field is not set
	Version() string

	// Artifacts returns the build output files matching shortVersion,
	// sorted lexicographically
	Artifacts(shortVersion string) ([]string, error)
}

// RemoteSource lists the git remotes configured for the project. Errors
// wrapping model.ErrNotARepository indicate there is no git configuration
// to read at all.
type RemoteSource interface {
	Remotes() ([]model.Remote, error)
}

// CredentialSource yields the credentials used against the hosting API.
type CredentialSource interface {
	// Token returns the hosting API token, empty when not configured
	Token() string

	// Username returns the configured account name, empty string allowed
	Username(ctx context.Context) string
}
