package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"sirherobrine23.com.br/go-bds/imagegen/modules/config"
	"sirherobrine23.com.br/go-bds/imagegen/modules/history"
)

var History = &cli.Command{
	Name:  "history",
	Usage: "list last uploads",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: history.DefaultLimit},
	},
	Action: func(ctx *cli.Context) error {
		store, err := openHistory(config.Current)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.Recent(ctx.Context, ctx.Int("limit"))
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(ctx.App.Writer, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "WHEN\tSTATUS\tSTRATEGY\tSIZE\tPATH\tERROR")
		for _, rec := range records {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s/%s\t%s\n",
				humanize.Time(rec.CreatedAt),
				rec.Status,
				rec.Strategy,
				humanize.Bytes(uint64(rec.Size)),
				rec.Repository, rec.Path,
				rec.Error,
			)
		}
		return tw.Flush()
	},
}
