package cli

import (
	"cmp"
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/modcheck/modcheck/pkg/infra/resource"
	"github.com/modcheck/modcheck/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdHash() *cli.Command {
	var jarPath, algoName string

	return &cli.Command{
		Name:      "hash",
		Usage:     "Print digests of jar entries, for building release metadata",
		ArgsUsage: "[entry...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "jar",
				Usage:       "Path to the mod jar",
				Required:    true,
				Destination: &jarPath,
				Sources:     cli.EnvVars("MODCHECK_JAR"),
			},
			&cli.StringFlag{
				Name:        "hash",
				Usage:       "Digest algorithm (md5, sha1, sha256)",
				Destination: &algoName,
				Sources:     cli.EnvVars("MODCHECK_HASH"),
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			algo := usecase.HashAlgorithm(cmp.Or(algoName, string(usecase.HashMD5)))
			if _, err := algo.Digest(nil); err != nil {
				return err
			}

			reader := resource.NewJarReader(jarPath)

			names := c.Args().Slice()
			if len(names) == 0 {
				var err error
				names, err = reader.List(ctx)
				if err != nil {
					return err
				}
			}

			var failed bool
			for _, name := range names {
				data, err := reader.ReadEntry(ctx, name)
				if err != nil {
					color.New(color.FgRed).Fprintf(os.Stderr, "unreadable  %s\n", name)
					failed = true
					continue
				}

				digest, err := algo.Digest(data)
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stdout, "%s  %s\n", digest, name)
			}

			if failed {
				return goerr.New("some entries could not be read", goerr.V("jar", jarPath))
			}
			return nil
		},
	}
}
