package cli

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/modcheck/modcheck/pkg/cli/config"
	"github.com/modcheck/modcheck/pkg/domain/interfaces"
	"github.com/modcheck/modcheck/pkg/domain/model"
	githubinfra "github.com/modcheck/modcheck/pkg/infra/github"
	"github.com/modcheck/modcheck/pkg/infra/resource"
	"github.com/modcheck/modcheck/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdCheck() *cli.Command {
	var (
		githubCfg  config.GitHub
		runtimeCfg config.Runtime
		configPath string
		tag        string
	)

	flags := append(githubCfg.Flags(), runtimeCfg.Flags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML configuration file",
			Destination: &configPath,
			Sources:     cli.EnvVars("MODCHECK_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "tag",
			Usage:       "Check a specific release tag instead of the newest match",
			Destination: &tag,
		},
	)

	return &cli.Command{
		Name:  "check",
		Usage: "Fetch a release, decode its hidden metadata and verify the local installation",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if configPath != "" {
				file, err := config.LoadFile(configPath)
				if err != nil {
					return err
				}
				file.Apply(&githubCfg, &runtimeCfg)
			}
			if githubCfg.Owner == "" || githubCfg.Repo == "" {
				return goerr.New("repository owner and name are required")
			}

			logger.Debug("check configuration",
				"github", githubCfg,
				"runtime", runtimeCfg,
				"tag", tag,
			)

			resources, err := resourceReader(&runtimeCfg)
			if err != nil {
				return err
			}

			algo := usecase.HashAlgorithm(cmp.Or(runtimeCfg.Hash, string(usecase.HashMD5)))
			verifier, err := usecase.NewIntegrityVerifier(usecase.WithHashAlgorithm(algo))
			if err != nil {
				return err
			}

			checker := usecase.NewUpdateChecker(
				githubinfra.NewClient(githubCfg.Token),
				usecase.NewReleaseDecoder(),
				verifier,
				resources,
			)

			result, err := checker.Check(ctx, &model.CheckRequest{
				Owner:        githubCfg.Owner,
				Repo:         githubCfg.Repo,
				Tag:          tag,
				InstalledTag: runtimeCfg.InstalledTag,
				Prereleases:  runtimeCfg.Prereleases,
				Env:          runtimeCfg.Environment(),
			})
			if err != nil {
				return goerr.Wrap(err, "update check failed")
			}

			printCheckResult(os.Stdout, result)

			if v := result.Verification; v != nil && (!v.Compatible || !v.AllFilesMatched()) {
				return goerr.New("installation failed verification",
					goerr.V("tag", result.Release.Tag))
			}
			return nil
		},
	}
}

func resourceReader(rt *config.Runtime) (interfaces.ResourceReader, error) {
	switch {
	case rt.Jar != "":
		return resource.NewJarReader(rt.Jar), nil
	case rt.InstallDir != "":
		return resource.NewDirReader(rt.InstallDir), nil
	default:
		return nil, goerr.New("either --jar or --install-dir is required")
	}
}

func printCheckResult(w io.Writer, result *model.CheckResult) {
	rel := result.Release
	fmt.Fprintf(w, "Release:   %s (%s)\n", rel.Tag, rel.Title)
	fmt.Fprintf(w, "Published: %s\n", rel.PublishedAt)
	fmt.Fprintf(w, "URL:       %s\n", rel.URL)

	if result.UpdateAvailable {
		color.New(color.FgYellow).Fprintln(w, "An update is available")
	}

	v := result.Verification
	if v == nil {
		color.New(color.FgYellow).Fprintln(w, "Release carries no compatibility metadata")
		return
	}

	printVerdict(w, "version", v.VersionOK)
	printVerdict(w, "loader", v.LoaderOK)

	for _, f := range v.Files {
		switch f.Outcome {
		case model.OutcomeMatched:
			color.New(color.FgGreen).Fprintf(w, "  ok         %s (%s)\n", f.Path, f.Anchor)
		case model.OutcomeMismatched:
			color.New(color.FgRed).Fprintf(w, "  mismatch   %s (%s)\n", f.Path, f.Anchor)
		case model.OutcomeUnreadable:
			color.New(color.FgRed).Fprintf(w, "  unreadable %s (%s)\n", f.Path, f.Anchor)
		}
	}
}

func printVerdict(w io.Writer, dimension string, ok bool) {
	if ok {
		color.New(color.FgGreen).Fprintf(w, "%-8s ok\n", dimension)
	} else {
		color.New(color.FgRed).Fprintf(w, "%-8s incompatible\n", dimension)
	}
}
