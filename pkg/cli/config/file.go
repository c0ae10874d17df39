package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// File is the optional TOML configuration file. Its values act as defaults:
// flags and environment variables always win.
type File struct {
	Owner        string `toml:"owner"`
	Repo         string `toml:"repo"`
	GameVersion  string `toml:"game_version"`
	Loader       string `toml:"loader"`
	Jar          string `toml:"jar"`
	InstallDir   string `toml:"install_dir"`
	Hash         string `toml:"hash"`
	InstalledTag string `toml:"installed_tag"`
}

// LoadFile reads and parses a TOML configuration file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}
	return &f, nil
}

// Apply fills fields that flags and environment left empty.
func (f *File) Apply(gh *GitHub, rt *Runtime) {
	if gh.Owner == "" {
		gh.Owner = f.Owner
	}
	if gh.Repo == "" {
		gh.Repo = f.Repo
	}
	if rt.GameVersion == "" {
		rt.GameVersion = f.GameVersion
	}
	if rt.Loader == "" {
		rt.Loader = f.Loader
	}
	if rt.Jar == "" {
		rt.Jar = f.Jar
	}
	if rt.InstallDir == "" {
		rt.InstallDir = f.InstallDir
	}
	if rt.Hash == "" {
		rt.Hash = f.Hash
	}
	if rt.InstalledTag == "" {
		rt.InstalledTag = f.InstalledTag
	}
}
