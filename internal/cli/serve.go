package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-formgrid/internal/config"
	"github.com/goliatone/go-formgrid/internal/logging"
	"github.com/goliatone/go-formgrid/internal/pages"
	"github.com/goliatone/go-formgrid/internal/server"
)

func cmdServe() *cli.Command {
	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Run the demo web application",
		Flags:   config.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.Resolve(c)
			if err != nil {
				return err
			}
			logger, err := logging.Configure(os.Stderr, cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return goerr.Wrap(err, "failed to configure logger")
			}

			srv, err := server.New(
				server.WithLogger(logger),
				server.WithAuthenticator(pages.StaticAuthenticator{
					Email:    cfg.LoginEmail,
					Password: cfg.LoginPassword,
					Delay:    cfg.LoginDelay,
				}),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to build server")
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("Configuration loaded", "config", cfg)
			if err := srv.ListenAndServe(ctx, cfg.Addr, cfg.ShutdownTimeout); err != nil {
				return goerr.Wrap(err, "server stopped", goerr.V("addr", cfg.Addr))
			}
			logger.Info("Server stopped")
			return nil
		},
	}
}
