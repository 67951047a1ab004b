package cli

import (
	"context"
	"errors"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mattn/go-isatty"
	"github.com/pubrel/pubrel/pkg/cli/config"
	"github.com/pubrel/pubrel/pkg/infra/git"
	"github.com/pubrel/pubrel/pkg/infra/github"
	"github.com/pubrel/pubrel/pkg/infra/poetry"
	"github.com/pubrel/pubrel/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdRelease() *cli.Command {
	var (
		githubCfg  config.GitHub
		projectCfg config.Project
		preRelease bool
	)

	flags := append(githubCfg.Flags(), projectCfg.Flags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:        "pre-release",
		Aliases:     []string{"p"},
		Usage:       "Mark the release as a pre-release.",
		Destination: &preRelease,
	})

	return &cli.Command{
		Name:  "release",
		Usage: "Create a git tag and a GitHub release.",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)
			logger.Debug("starting release",
				"dir", projectCfg.Dir,
				"dist_dir", projectCfg.DistDir,
				"pre_release", preRelease,
			)

			project, err := poetry.Load(projectCfg.Dir, projectCfg.DistDir)
			if err != nil {
				return goerr.Wrap(err, "failed to load project configuration")
			}

			host := github.New(
				github.WithBaseURL(githubCfg.APIBaseURL),
				github.WithProgress(isatty.IsTerminal(os.Stdout.Fd())),
			)

			uc := usecase.NewRelease(
				project,
				git.NewRemoteSource(projectCfg.Dir),
				git.NewCredentialSource(githubCfg.Token),
				host,
			)

			if err := uc.Run(ctx, preRelease); err != nil {
				var exitErr *usecase.ExitError
				if errors.As(err, &exitErr) {
					return cli.Exit("", exitErr.Code)
				}
				return err
			}
			return nil
		},
	}
}
