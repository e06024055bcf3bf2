// Package command builds the datediff command line: the diff, ages and serve
// subcommands and the global flags they share.
package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/tartampluch/go-datediff/internal/config"
	"github.com/tartampluch/go-datediff/internal/engine"
)

// App carries the collaborators shared by every subcommand.
type App struct {
	Out     io.Writer
	Clock   engine.Clock
	Fetcher engine.VCardFetcher
	Creds   *engine.Credentials

	// SetupLogging runs once flags are parsed. The returned closer, if any,
	// is closed after the command finishes.
	SetupLogging func(debug bool) io.Closer

	logCloser io.Closer
}

// NewApp returns an App writing to stdout with real clock, network and
// keyring access.
func NewApp() *App {
	return &App{
		Out:     os.Stdout,
		Clock:   engine.RealClock{},
		Fetcher: engine.NewHTTPFetcher(),
		Creds:   engine.NewCredentials(),
	}
}

// Command returns the root command.
func (a *App) Command() *cli.Command {
	root := &cli.Command{
		Name:   config.AppName,
		Usage:  config.AppUsage,
		Writer: a.Out,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  config.FlagDebug,
				Usage: config.FlagDescDebug,
			},
			&cli.BoolFlag{
				Name:        config.FlagVersion,
				Aliases:     []string{"v"},
				Usage:       config.FlagDescVersion,
				HideDefault: true,
			},
		},
		Before:         a.before,
		After:          a.after,
		Action:         rootAction,
		OnUsageError:   onUsageError,
		ExitErrHandler: ignoreExitCoder,
	}

	root.Commands = append(root.Commands,
		diffCommandBuilder(a),
		agesCommandBuilder(a),
		serveCommandBuilder(a),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range root.Commands {
		cmd.OnUsageError = onUsageError
		cmd.ExitErrHandler = ignoreExitCoder
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return root
}

func (a *App) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if a.SetupLogging != nil {
		a.logCloser = a.SetupLogging(cmd.Bool(config.FlagDebug))
	}
	return ctx, nil
}

func (a *App) after(context.Context, *cli.Command) error {
	if a.logCloser == nil {
		return nil
	}
	err := a.logCloser.Close()
	a.logCloser = nil
	return err
}

func rootAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Bool(config.FlagVersion) {
		_, err := fmt.Fprintf(cmd.Root().Writer, config.MsgVersionOutput,
			config.AppName,
			config.Version,
			config.Commit,
			config.Date,
			runtime.GOOS,
			runtime.GOARCH,
		)
		return err
	}
	return cli.ShowAppHelp(cmd)
}

// ignoreExitCoder stops cli from calling os.Exit; ExitCode maps the error
// once Run returns.
func ignoreExitCoder(context.Context, *cli.Command, error) {}

func onUsageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return usageError(err)
}
