package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-formgrid/pkg/grid"
	"github.com/goliatone/go-formgrid/pkg/schema"
)

func cmdGrid() *cli.Command {
	return &cli.Command{
		Name:      "grid",
		Usage:     "Render a table file as a terminal table",
		ArgsUsage: "<table-file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "html",
				Usage: "Emit the HTML grid instead of a terminal table",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			path := strings.TrimSpace(c.Args().First())
			if path == "" {
				return errSchemaRequired
			}

			doc, err := schema.NewLoader(nil).Load(ctx, schema.SourceFromFile(path))
			if err != nil {
				return goerr.Wrap(err, "failed to load table", goerr.V("path", path))
			}
			table, err := schema.DecodeTable(doc)
			if err != nil {
				return goerr.Wrap(err, "failed to decode table", goerr.V("path", path))
			}
			view := table.Grid().View(table.Rows)

			if !c.Bool("html") {
				_, err := fmt.Fprintln(output(c), grid.RenderText(view))
				return err
			}

			renderer, err := grid.NewHTMLRenderer()
			if err != nil {
				return goerr.Wrap(err, "failed to build grid renderer")
			}
			out, err := renderer.Render(ctx, view, grid.HTMLOptions{})
			if err != nil {
				return goerr.Wrap(err, "failed to render grid", goerr.V("path", path))
			}
			_, err = output(c).Write(out)
			return err
		},
	}
}
