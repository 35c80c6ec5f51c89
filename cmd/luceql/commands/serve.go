package commands

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/luceql/luceql/internal/server"
)

// serveCommand returns the serve subcommand
func (a *App) serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "start the HTTP translation API",
		Description: `Start the HTTP API exposing /api/v1/translate and /api/v1/validate,
plus /health and /metrics endpoints.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "address",
				Aliases: []string{"a"},
				Usage:   "listen address",
				Sources: cli.EnvVars("LUCEQL_SERVER_ADDRESS"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if addr := cmd.String("address"); addr != "" {
				a.Config.Server.Address = addr
			}

			srv := server.New(a.Config, log.Default())

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Listen()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				log.Info("shutting down")
				return srv.Shutdown()
			}
		},
	}
}
