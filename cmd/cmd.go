package cmd

import (
	"log/slog"

	"github.com/urfave/cli/v2"

	"sirherobrine23.com.br/go-bds/imagegen/modules/config"
	"sirherobrine23.com.br/go-bds/imagegen/modules/controller"
	"sirherobrine23.com.br/go-bds/imagegen/modules/github"
	"sirherobrine23.com.br/go-bds/imagegen/modules/history"
)

// Commands to app
var Subcomands = []*cli.Command{
	Web,
	Generate,
	Upload,
	History,
	SealToken,
}

// Open history from [database] section
func openHistory(settings *config.Settings) (*history.Store, error) {
	db := settings.Database
	return history.Open(db.Driver, db.Connection, slog.Default(), db.ShowSQL)
}

// Controller with uploader from [upload] section
func newController(settings *config.Settings, strategy github.Strategy, workflow string, store controller.Recorder) (*controller.Controller, error) {
	if workflow == "" {
		workflow = settings.Upload.Workflow
	}
	uploader, err := github.NewUploader(strategy, settings.GithubOptions(), workflow)
	if err != nil {
		return nil, err
	}
	return controller.New(uploader, store, settings.Upload.Timeout, slog.Default()), nil
}
