package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"sirherobrine23.com.br/go-bds/imagegen/modules/artifact"
	"sirherobrine23.com.br/go-bds/imagegen/modules/config"
	"sirherobrine23.com.br/go-bds/imagegen/modules/github"
)

var Upload = &cli.Command{
	Name:  "upload",
	Usage: "generate new image, or use --file, and upload to GitHub",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "repository", Aliases: []string{"r"}, Usage: "owner/repo, default from [github] OWNER_REPO"},
		&cli.StringFlag{Name: "branch", Usage: "target branch"},
		&cli.StringFlag{Name: "folder", Usage: "folder in repository, \"/\" to root, default from [github] FOLDER"},
		&cli.StringFlag{Name: "message", Aliases: []string{"m"}, Usage: "commit message"},
		&cli.StringFlag{Name: "strategy", Usage: "contents or dispatch, default from [upload] STRATEGY"},
		&cli.StringFlag{Name: "workflow", Usage: "workflow file to dispatch strategy"},
		&cli.PathFlag{Name: "file", Aliases: []string{"f"}, Usage: "upload existing gen_*.png file"},
		&cli.StringFlag{Name: "token", Usage: "GitHub token", EnvVars: []string{config.TokenEnv}},
	},
	Action: func(ctx *cli.Context) error {
		settings := config.Current

		target, err := settings.Target(ctx.String("repository"), ctx.String("branch"), ctx.String("folder"), ctx.String("message"))
		if err != nil {
			return cli.Exit(err, 2)
		}

		strategy := settings.Strategy()
		if ctx.IsSet("strategy") {
			if strategy, err = github.ParseStrategy(ctx.String("strategy")); err != nil {
				return cli.Exit(err, 2)
			}
		}

		if target.Token = ctx.String("token"); target.Token == "" {
			if target.Token, err = settings.Token(); err != nil {
				return err
			}
		}

		store, err := openHistory(settings)
		if err != nil {
			slog.Warn("upload history disabled", "error", err)
		}
		defer store.Close()

		control, err := newController(settings, strategy, ctx.String("workflow"), nil)
		if err != nil {
			return err
		}
		if store != nil {
			control.History = store
		}

		var art *artifact.Artifact
		if file := ctx.Path("file"); file != "" {
			if art, err = readArtifact(file); err != nil {
				return cli.Exit(err, 2)
			}
		} else if art, err = control.Generate(ctx.Context); err != nil {
			return err
		}

		res, err := control.Upload(ctx.Context, art, target)
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.App.Writer, "uploaded to %s (%s)\n", res, res.Strategy)
		if res.HTMLURL != "" {
			fmt.Fprintln(ctx.App.Writer, res.HTMLURL)
		}
		return nil
	},
}

func readArtifact(file string) (*artifact.Artifact, error) {
	payload, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return artifact.FromPNG(filepath.Base(file), payload)
}
