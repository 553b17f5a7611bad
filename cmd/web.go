package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"sirherobrine23.com.br/go-bds/imagegen/modules/config"
	httpserver "sirherobrine23.com.br/go-bds/imagegen/modules/http_server"
	"sirherobrine23.com.br/go-bds/imagegen/routers"
)

// Web subcommand
var Web = &cli.Command{
	Name:        "web",
	Usage:       "start dashboard and api",
	Description: "Serve the generator dashboard, uploads use token from config or GITHUB_TOKEN",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "listen",
			Usage: "address to listen, default from [server] LISTEN",
			EnvVars: []string{
				"LISTEN",
				"HTTP_LISTEN",
			},
		},
	},
	Action: func(ctx *cli.Context) error {
		settings := config.Current
		listen := ctx.String("listen")
		if listen == "" {
			listen = settings.Server.Listen
		}

		store, err := openHistory(settings)
		if err != nil {
			return err
		}
		defer store.Close()

		control, err := newController(settings, settings.Strategy(), "", store)
		if err != nil {
			return err
		}

		handler, err := routers.MountRouter(&routers.RouteConfig{
			Settings:   settings,
			Controller: control,
			History:    store,
			Logger:     control.Logger,
		})
		if err != nil {
			return err
		}

		sigCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return httpserver.ListenAndServe(sigCtx, listen, handler, control.Logger)
	},
}
