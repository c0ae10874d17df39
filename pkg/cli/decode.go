package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/modcheck/modcheck/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func cmdDecode() *cli.Command {
	var (
		input    string
		asJSON   bool
		bodyOnly bool
	)

	return &cli.Command{
		Name:  "decode",
		Usage: "Decode one raw release record (JSON) and print the cleaned body and metadata",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "Input file with the raw record (defaults to stdin)",
				Destination: &input,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "Print the decoded release as JSON",
				Destination: &asJSON,
			},
			&cli.BoolFlag{
				Name:        "body-only",
				Usage:       "Print only the cleaned changelog body",
				Destination: &bodyOnly,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			data, err := readInput(input)
			if err != nil {
				return err
			}

			var raw model.RawRelease
			if err := json.Unmarshal(data, &raw); err != nil {
				return goerr.Wrap(err, "input is not a valid release record")
			}

			rel, warn, err := model.DecodeRelease(&raw)
			if err != nil {
				return err
			}
			if warn != nil {
				ctxlog.From(ctx).Warn("embedded payload could not be decoded",
					"release", rel.Tag,
					"error", warn,
				)
			}

			return printRelease(os.Stdout, rel, asJSON, bodyOnly)
		},
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read stdin")
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read input file", goerr.V("path", path))
	}
	return data, nil
}

func printRelease(w io.Writer, rel *model.Release, asJSON, bodyOnly bool) error {
	if bodyOnly {
		fmt.Fprintln(w, rel.Body)
		return nil
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rel); err != nil {
			return goerr.Wrap(err, "failed to encode release")
		}
		return nil
	}

	fmt.Fprintf(w, "Release:   %s (%s)\n", rel.Tag, rel.Title)
	fmt.Fprintf(w, "Published: %s\n", rel.PublishedAt)
	fmt.Fprintf(w, "URL:       %s\n", rel.URL)
	if rel.Prerelease {
		fmt.Fprintln(w, "Prerelease")
	}

	if rel.Compat == nil {
		fmt.Fprintln(w, "No compatibility metadata")
	} else {
		d := rel.Compat
		fmt.Fprintf(w, "Primary version:     %s\n", d.PrimaryVersion)
		fmt.Fprintf(w, "Compatible versions: %v\n", d.CompatibleVersions)
		fmt.Fprintf(w, "Loader:              %s\n", d.Loader)
		if d.AnnouncementPost != nil {
			fmt.Fprintf(w, "Announcement:        %s\n", *d.AnnouncementPost)
		}
		for _, fc := range d.FileChecks {
			fmt.Fprintf(w, "File check:          %s (%s) %v\n", fc.Path, fc.Anchor, fc.AcceptableHashes)
		}
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintln(w, rel.Body)
	return nil
}
