package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"sirherobrine23.com.br/go-bds/imagegen/modules/secret"
)

var SealToken = &cli.Command{
	Name:        "seal-token",
	Usage:       "read GitHub token from stdin and print value to [github] TOKEN_SEALED",
	Description: "Key is read from " + secret.KeyEnv + ", same key must be set when running web or upload",
	Action: func(ctx *cli.Context) error {
		key, err := secret.Key()
		if err != nil {
			return cli.Exit(err, 2)
		}

		line, err := bufio.NewReader(ctx.App.Reader).ReadString('\n')
		if line = strings.TrimSpace(line); line == "" {
			if err != nil {
				return fmt.Errorf("cannot read token: %w", err)
			}
			return cli.Exit(secret.ErrEmptyToken, 2)
		}

		sealed, err := secret.Seal(key, line)
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.App.Writer, "TOKEN_SEALED = %s\n", sealed)
		return nil
	},
}
