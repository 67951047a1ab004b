package interfaces

import (
	"context"

	"github.com/pubrel/pubrel/pkg/domain/model"
)

// ReleaseHostingClient defines the two operations the release flow needs
// from the hosting API.
type ReleaseHostingClient interface {
	// CreateRelease creates a release for tag on the remote repository. The
	// tag is created server-side when it does not exist yet.
	CreateRelease(ctx context.Context, remote model.Remote, tag string, creds model.Credentials, preRelease bool) (*model.Release, error)

	// UploadAsset attaches the file at path to release as a binary asset.
	UploadAsset(ctx context.Context, path string, release *model.Release, creds model.Credentials) error
}
