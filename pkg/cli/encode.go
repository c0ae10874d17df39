package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modcheck/modcheck/pkg/domain/model"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// descriptorFile is the publisher-side TOML description of a release's
// compatibility metadata. An empty post means no announcement.
type descriptorFile struct {
	PrimaryVersion     string   `toml:"primary_version"`
	CompatibleVersions []string `toml:"compatible_versions"`
	Loader             string   `toml:"loader"`
	Post               string   `toml:"post"`
	Files              []struct {
		Anchor string   `toml:"anchor"`
		Path   string   `toml:"path"`
		Hashes []string `toml:"hashes"`
	} `toml:"files"`
}

func cmdEncode() *cli.Command {
	var descPath, bodyPath string

	return &cli.Command{
		Name:  "encode",
		Usage: "Embed compatibility metadata into a changelog body (publisher side)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "descriptor",
				Aliases:     []string{"d"},
				Usage:       "TOML file describing the compatibility metadata",
				Required:    true,
				Destination: &descPath,
			},
			&cli.StringFlag{
				Name:        "body",
				Aliases:     []string{"b"},
				Usage:       "File with the visible changelog text (defaults to stdin)",
				Destination: &bodyPath,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			data, err := os.ReadFile(descPath)
			if err != nil {
				return goerr.Wrap(err, "failed to read descriptor file", goerr.V("path", descPath))
			}

			var df descriptorFile
			if err := toml.Unmarshal(data, &df); err != nil {
				return goerr.Wrap(err, "failed to parse descriptor file", goerr.V("path", descPath))
			}

			desc := &model.CompatibilityDescriptor{
				PrimaryVersion:     df.PrimaryVersion,
				CompatibleVersions: df.CompatibleVersions,
				Loader:             df.Loader,
			}
			if df.Post != "" {
				desc.AnnouncementPost = &df.Post
			}
			for _, f := range df.Files {
				desc.FileChecks = append(desc.FileChecks, model.FileCheck{
					Anchor:           f.Anchor,
					Path:             f.Path,
					AcceptableHashes: f.Hashes,
				})
			}

			marker, err := model.EncodePayload(desc)
			if err != nil {
				return err
			}

			body, err := readInput(bodyPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "%s%s", marker, body)
			return nil
		},
	}
}
