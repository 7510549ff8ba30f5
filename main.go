package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/atlanticwaters/podfill/internal/catalogcmd"
	"github.com/atlanticwaters/podfill/internal/history"
	"github.com/atlanticwaters/podfill/internal/populate"
	"github.com/atlanticwaters/podfill/internal/serve"
)

func main() {
	app := &cli.App{
		Name:  "podfill",
		Usage: "populate product pod instances from the Orange Catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to YAML config file"},
			&cli.BoolFlag{Name: "quiet", Usage: "only log errors"},
		},
		Commands: []*cli.Command{
			{
				Name:   "categories",
				Usage:  "print the catalog's category tree",
				Action: catalogcmd.CategoriesAction,
			},
			{
				Name:  "products",
				Usage: "list one category's products",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Usage: "category slug path, e.g. tools/drills"},
				},
				Action: catalogcmd.ProductsAction,
			},
			{
				Name:  "populate",
				Usage: "fill a snapshot document's pod instances from a category",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "snapshot", Usage: "path to the document snapshot (HTML export)"},
					&cli.StringFlag{Name: "category", Usage: "category slug path supplying the records"},
					&cli.IntFlag{Name: "count", Usage: "cap on records taken from the category"},
					&cli.StringFlag{Name: "out", Usage: "output path for the populated scene state", Value: "populated.json"},
					&cli.BoolFlag{Name: "single", Usage: "fill only the first pod the selection resolves to"},
					&cli.StringFlag{Name: "db", Usage: "run-history database path (default: next to the binary)"},
				},
				Action: populate.Action,
			},
			{
				Name:  "runs",
				Usage: "list recent populate runs",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Usage: "max runs to list", Value: 20},
					&cli.StringFlag{Name: "db", Usage: "run-history database path (default: next to the binary)"},
				},
				Action: history.RunsAction,
			},
			{
				Name:  "serve",
				Usage: "expose the message channel over websocket",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "snapshot", Usage: "path to the session document snapshot"},
					&cli.StringFlag{Name: "addr", Usage: "listen address", Value: ":8787"},
				},
				Action: serve.Action,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
