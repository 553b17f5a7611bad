package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"sirherobrine23.com.br/go-bds/imagegen/modules/artifact"
	"sirherobrine23.com.br/go-bds/imagegen/modules/generator"
)

var Generate = &cli.Command{
	Name:  "generate",
	Usage: "generate image and save to folder",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   ".",
			Usage:   "folder to save image",
		},
		&cli.Int64Flag{
			Name:  "seed",
			Usage: "random seed, 0 to use current time",
		},
	},
	Action: func(ctx *cli.Context) error {
		var opts []generator.Option
		if seed := ctx.Int64("seed"); seed != 0 {
			opts = append(opts, generator.WithSeed(seed))
		}

		art, err := artifact.Generate(generator.New(opts...))
		if err != nil {
			return err
		}

		output := ctx.String("output")
		if err := os.MkdirAll(output, 0o755); err != nil {
			return err
		}
		filePath := filepath.Join(output, art.Filename)
		if err := writeNew(filePath, art.Payload); err != nil {
			return err
		}

		fmt.Fprintf(ctx.App.Writer, "%s (%s)\n", filePath, art.Size())
		return nil
	},
}

// Create file only if not exists
var openNew = func(filePath string) (io.WriteCloser, error) {
	return os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
}

// Write to new file, partial file is removed on error
func writeNew(filePath string, payload []byte) error {
	file, err := openNew(filePath)
	if err != nil {
		return err
	}
	_, err = file.Write(payload)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filePath)
	}
	return err
}
