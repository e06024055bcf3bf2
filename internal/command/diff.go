package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tartampluch/go-datediff/internal/config"
	"github.com/tartampluch/go-datediff/internal/datediff"
	"github.com/tartampluch/go-datediff/internal/engine"
	"github.com/tartampluch/go-datediff/internal/render"
)

func diffCommandBuilder(a *App) *cli.Command {
	return &cli.Command{
		Name:      config.CmdDiff,
		Usage:     config.UsageDiff,
		ArgsUsage: config.ArgsUsageDiff,
		UsageText: config.UsageTextDiff,
		Flags: []cli.Flag{
			newFormatFlag(),
			newICSFlag(),
		},
		Action: a.diffCommandAction,
	}
}

// diffCommandAction parses START and END, prints their difference and
// optionally exports the interval as an iCalendar event.
func (a *App) diffCommandAction(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 2 {
		return usageError(fmt.Errorf("%s: got %d", config.ErrArgCount, cmd.NArg()))
	}
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	start, err := datediff.Parse(cmd.Args().Get(0))
	if err != nil {
		return usageError(err)
	}
	end, err := datediff.Parse(cmd.Args().Get(1))
	if err != nil {
		return usageError(err)
	}

	res := datediff.Between(start, end)
	slog.Debug(config.MsgDiffComputed,
		config.LogKeyComponent, config.CompCommand,
		config.LogKeyStart, start.String(),
		config.LogKeyEnd, end.String(),
		config.LogKeyTotalDays, res.TotalDays,
		config.LogKeyInverted, res.Inverted,
	)

	if err := render.WriteDiff(cmd.Root().Writer, format, render.Diff{Start: start, End: end, Result: res}); err != nil {
		return err
	}

	if path := cmd.String(config.FlagICS); path != "" {
		data, err := engine.IntervalCalendar(start, end, res, a.Clock.Now())
		if errors.Is(err, engine.ErrYearRange) {
			return usageError(err)
		}
		if err != nil {
			return err
		}
		return writeCalendar(path, data)
	}
	return nil
}

func newFormatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    config.FlagFormat,
		Aliases: []string{"o"},
		Usage:   config.FlagDescFormat,
		Value:   config.DefaultFormat,
		Sources: cli.NewValueSourceChain(
			cli.EnvVar(config.EnvFormat),
		),
	}
}

func newICSFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:      config.FlagICS,
		Usage:     config.FlagDescICS,
		TakesFile: true,
	}
}

// outputFormat returns the --format value, rejecting unknown formats as a
// usage error.
func outputFormat(cmd *cli.Command) (string, error) {
	format := cmd.String(config.FlagFormat)
	if err := render.CheckFormat(format); err != nil {
		return "", usageError(err)
	}
	return format, nil
}

func writeCalendar(path string, data []byte) error {
	if err := os.WriteFile(path, data, config.FilePermShared); err != nil {
		return fmt.Errorf("%s: %w", config.ErrICalWrite, err)
	}
	slog.Info(config.MsgICSWritten,
		config.LogKeyComponent, config.CompCommand,
		config.LogKeyFile, path,
	)
	return nil
}
