package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"sirherobrine23.com.br/go-bds/imagegen/cmd"
	"sirherobrine23.com.br/go-bds/imagegen/modules"
	"sirherobrine23.com.br/go-bds/imagegen/modules/config"
	"sirherobrine23.com.br/go-bds/imagegen/modules/logger"
)

func main() {
	app := cli.NewApp()
	app.HideHelpCommand = true
	app.Name = "imagegen"
	app.Usage = "Generate decorative PNG images and upload to GitHub"
	app.Version = modules.AppVersion

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Value: "config.ini",
			Usage: "config file path",
			Aliases: []string{
				"settings",
				"c",
			},
		},
	}

	// Init process
	app.Before = func(ctx *cli.Context) error {
		settings, err := config.Load(ctx.String("config"))
		if err != nil {
			return err
		}
		_, err = logger.Setup(settings.Log.Level, settings.Log.Format)
		return err
	}

	app.Commands = cmd.Subcomands

	// Start process
	if err := app.Run(os.Args); err != nil {
		switch value := err.(type) {
		case cli.ExitCoder:
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(value.ExitCode())
		default:
			fmt.Fprintln(os.Stderr, value.Error())
			os.Exit(1)
		}
	}
}
