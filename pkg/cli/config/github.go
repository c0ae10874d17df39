package config

import "github.com/urfave/cli/v3"

// GitHub holds release source configuration
type GitHub struct {
	Owner string
	Repo  string
	Token string `masq:"secret"`
}

// Flags returns CLI flags for the release source
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "owner",
			Usage:       "Repository owner",
			Destination: &c.Owner,
			Sources:     cli.EnvVars("MODCHECK_OWNER"),
		},
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Repository name",
			Destination: &c.Repo,
			Sources:     cli.EnvVars("MODCHECK_REPO"),
		},
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub API token (optional for public repositories)",
			Destination: &c.Token,
			Sources:     cli.EnvVars("MODCHECK_GITHUB_TOKEN"),
		},
	}
}
