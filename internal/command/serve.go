package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tartampluch/go-datediff/internal/config"
	"github.com/tartampluch/go-datediff/internal/server"
)

func serveCommandBuilder(a *App) *cli.Command {
	return &cli.Command{
		Name:      config.CmdServe,
		Usage:     config.UsageServe,
		UsageText: config.UsageTextServe,
		Flags: []cli.Flag{
			// A string keeps the value exactly as typed in DATEDIFF_PORT;
			// the server validates the range.
			&cli.StringFlag{
				Name:    config.FlagPort,
				Aliases: []string{"p"},
				Usage:   config.FlagDescPort,
				Value:   config.DefaultPort,
				Sources: cli.NewValueSourceChain(
					cli.EnvVar(config.EnvPort),
				),
			},
		},
		Action: a.serveCommandAction,
	}
}

// serveCommandAction runs the HTTP API until ctx is cancelled.
func (a *App) serveCommandAction(ctx context.Context, cmd *cli.Command) error {
	port := cmd.String(config.FlagPort)
	if err := server.ValidatePort(port); err != nil {
		return usageError(err)
	}

	srv := server.NewDiffServer(port)
	srv.Clock = a.Clock
	return srv.Start(ctx)
}
