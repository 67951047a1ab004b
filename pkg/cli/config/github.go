package config

import (
	"github.com/pubrel/pubrel/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// GitHub holds hosting API configuration
type GitHub struct {
	Token      string
	APIBaseURL string
}

// Flags returns CLI flags for GitHub configuration. The token is
// deliberately not marked required: the release flow reports a missing
// token itself with its own exit code.
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "token",
			Usage:       "GitHub personal access token",
			Destination: &c.Token,
			Sources:     cli.EnvVars(types.EnvToken),
		},
		&cli.StringFlag{
			Name:        "api-url",
			Usage:       "GitHub API base URL",
			Value:       "https://api.github.com",
			Destination: &c.APIBaseURL,
			Sources:     cli.EnvVars("PUBREL_API_URL"),
		},
	}
}
