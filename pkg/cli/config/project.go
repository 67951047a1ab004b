package config

import "github.com/urfave/cli/v3"

// Project holds project location configuration
type Project struct {
	Dir     string
	DistDir string
}

// Flags returns CLI flags for project configuration
func (c *Project) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dir",
			Usage:       "Project root directory",
			Value:       ".",
			Destination: &c.Dir,
			Sources:     cli.EnvVars("PUBREL_PROJECT_DIR"),
		},
		&cli.StringFlag{
			Name:        "dist-dir",
			Usage:       "Build output directory, relative to the project root",
			Value:       "dist",
			Destination: &c.DistDir,
			Sources:     cli.EnvVars("PUBREL_DIST_DIR"),
		},
	}
}
