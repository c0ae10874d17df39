package config

import (
	"github.com/modcheck/modcheck/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Runtime holds the local installation configuration: what is running and
// where the installed files live.
type Runtime struct {
	GameVersion  string
	Loader       string
	Jar          string
	InstallDir   string
	Hash         string
	InstalledTag string
	Prereleases  bool
}

// Flags returns CLI flags for the local installation
func (c *Runtime) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "game-version",
			Usage:       "Game version of the running environment",
			Destination: &c.GameVersion,
			Sources:     cli.EnvVars("MODCHECK_GAME_VERSION"),
		},
		&cli.StringFlag{
			Name:        "loader",
			Usage:       "Active mod loader (e.g. Forge, liteloader)",
			Destination: &c.Loader,
			Sources:     cli.EnvVars("MODCHECK_LOADER"),
		},
		&cli.StringFlag{
			Name:        "jar",
			Usage:       "Path to the installed mod jar",
			Destination: &c.Jar,
			Sources:     cli.EnvVars("MODCHECK_JAR"),
		},
		&cli.StringFlag{
			Name:        "install-dir",
			Usage:       "Extracted installation directory (alternative to --jar)",
			Destination: &c.InstallDir,
			Sources:     cli.EnvVars("MODCHECK_INSTALL_DIR"),
		},
		&cli.StringFlag{
			Name:        "hash",
			Usage:       "Digest algorithm for file checks (md5, sha1, sha256)",
			Destination: &c.Hash,
			Sources:     cli.EnvVars("MODCHECK_HASH"),
		},
		&cli.StringFlag{
			Name:        "installed-tag",
			Usage:       "Tag of the currently installed release",
			Destination: &c.InstalledTag,
			Sources:     cli.EnvVars("MODCHECK_INSTALLED_TAG"),
		},
		&cli.BoolFlag{
			Name:        "prereleases",
			Usage:       "Consider prereleases when selecting a release",
			Destination: &c.Prereleases,
			Sources:     cli.EnvVars("MODCHECK_PRERELEASES"),
		},
	}
}

// Environment returns the environment descriptor for verification.
func (c *Runtime) Environment() model.Environment {
	return model.Environment{
		Version: c.GameVersion,
		Loader:  c.Loader,
	}
}
