package cli

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-formgrid/internal/logging"
)

// Run executes the formgrid command line.
func Run(ctx context.Context, args []string, version string) error {
	if err := newApp(version, os.Stdout).Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}
	return nil
}

func newApp(version string, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "formgrid",
		Usage:   "Schema driven forms and data grids",
		Version: version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "log-level",
				Usage:    "Log level (debug, info, warn, error)",
				Value:    "info",
				Category: "Logging",
				Sources:  cli.EnvVars("FORMGRID_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:     "log-format",
				Usage:    "Log format (text, json)",
				Value:    "text",
				Category: "Logging",
				Sources:  cli.EnvVars("FORMGRID_LOG_FORMAT"),
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if _, err := logging.Configure(os.Stderr, c.String("log-level"), c.String("log-format")); err != nil {
				return ctx, err
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdRender(),
			cmdFill(),
			cmdGrid(),
			cmdLint(),
		},
	}
}

// output returns the writer the root command was configured with.
func output(c *cli.Command) io.Writer {
	if w := c.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
