package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/pubrel/pubrel/pkg/domain/interfaces"
	"github.com/pubrel/pubrel/pkg/domain/model"
	"github.com/pubrel/pubrel/pkg/domain/types"
)

// ExitError terminates the run with a fixed process exit code. The
// diagnostic line has already been printed by the time it is returned.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("terminated with exit code %d", e.Code)
}

func doneMark() string   { return color.New(color.FgGreen).Sprint("Done.") }
func failedMark() string { return color.New(color.FgRed).Sprint("Failed.") }

// Release drives the tag-and-release flow: resolve the single git remote,
// create the hosting release for the declared version and attach the local
// build artifacts to it. Release creation is all-or-nothing; attaching
// assets is best-effort per file.
type Release struct {
	project interfaces.Project
	remotes interfaces.RemoteSource
	creds   interfaces.CredentialSource
	host    interfaces.ReleaseHostingClient
	out     io.Writer
}

// Option configures a Release use case.
type Option func(*Release)

// WithOutput redirects the progress lines, which go to stdout by default.
func WithOutput(w io.Writer) Option {
	return func(uc *Release) {
		uc.out = w
	}
}

// NewRelease creates the release use case over its four capabilities.
func NewRelease(project interfaces.Project, remotes interfaces.RemoteSource, creds interfaces.CredentialSource, host interfaces.ReleaseHostingClient, opts ...Option) *Release {
	uc := &Release{
		project: project,
		remotes: remotes,
		creds:   creds,
		host:    host,
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Run executes the flow strictly in order. Precondition failures and a
// failed release creation print a diagnostic and return an *ExitError with
// the matching code; no network request is made before every precondition
// holds. Individual asset upload failures are reported inline and do not
// change the outcome of the run.
func (uc *Release) Run(ctx context.Context, preRelease bool) error {
	logger := ctxlog.From(ctx)

	version := uc.project.Version()
	if version == "" {
		uc.line("Missing 'version' field in configuration.")
		return &ExitError{Code: types.ExitMissingVersion}
	}
	info := model.NormalizeVersion(version)

	remotes, err := uc.remotes.Remotes()
	if err != nil {
		if errors.Is(err, model.ErrNotARepository) {
			uc.line("Working directory is not a git repository.")
			return &ExitError{Code: types.ExitNotARepository}
		}
		return err
	}

	switch {
	case len(remotes) == 0:
		uc.line("Found 0 git remotes.")
		return &ExitError{Code: types.ExitNoRemotes}
	case len(remotes) > 1:
		uc.line("Found multiple git remotes, which is currently not supported.")
		return &ExitError{Code: types.ExitMultipleRemotes}
	}
	remote := remotes[0]
	logger.Debug("resolved git remote",
		"name", remote.Name,
		"owner", remote.RepoOwner,
		"repo", remote.RepoName,
	)

	token := uc.creds.Token()
	if token == "" {
		uc.line("In order to authenticate with GitHub, a PAT needs to be specified through a '%s' environment variable.", types.EnvToken)
		return &ExitError{Code: types.ExitMissingToken}
	}
	creds := model.Credentials{
		Username: uc.creds.Username(ctx),
		Token:    token,
	}

	release, err := uc.host.CreateRelease(ctx, remote, info.Tag, creds, preRelease)
	if err != nil {
		uc.line(err.Error())
		return &ExitError{Code: types.ExitReleaseFailed}
	}
	logger.Debug("created release", "id", release.ID, "upload_url", release.UploadURL)

	uc.line("Release %s created and accessable through the following URL:", info.Tag)
	uc.line("  %s", remote.ReleaseTagURL(info.Tag))

	// The release exists now, so nothing below may flip the outcome.
	files, err := uc.project.Artifacts(info.Short)
	if err != nil {
		logger.Warn("failed to locate build artifacts", "error", err)
		return nil
	}
	if len(files) == 0 {
		return nil
	}

	uc.line("Attempting to attach %d asset(s) to the release.", len(files))
	for i, file := range files {
		uc.write("  %d. Uploading '%s'...", i+1, filepath.Base(file))

		if err := uc.host.UploadAsset(ctx, file, release, creds); err != nil {
			uc.line(" %s", failedMark())
			uc.line(err.Error())
			continue
		}
		uc.line(" %s", doneMark())
	}

	return nil
}

func (uc *Release) line(format string, args ...any) {
	fmt.Fprintf(uc.out, format+"\n", args...)
}

func (uc *Release) write(format string, args ...any) {
	fmt.Fprintf(uc.out, format, args...)
}
