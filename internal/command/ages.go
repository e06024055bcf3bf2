package command

import (
	"context"
	"errors"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/tartampluch/go-datediff/internal/config"
	"github.com/tartampluch/go-datediff/internal/engine"
	"github.com/tartampluch/go-datediff/internal/render"
)

func agesCommandBuilder(a *App) *cli.Command {
	return &cli.Command{
		Name:      config.CmdAges,
		Usage:     config.UsageAges,
		UsageText: config.UsageTextAges,
		Flags: []cli.Flag{
			newFormatFlag(),
			newICSFlag(),
			&cli.StringFlag{
				Name:      config.FlagFile,
				Aliases:   []string{"f"},
				Usage:     config.FlagDescFile,
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:  config.FlagURL,
				Usage: config.FlagDescURL,
			},
			&cli.StringFlag{
				Name:    config.FlagUser,
				Aliases: []string{"u"},
				Usage:   config.FlagDescUser,
			},
			&cli.StringFlag{
				Name:  config.FlagPassword,
				Usage: config.FlagDescPassword,
			},
			&cli.BoolFlag{
				Name:  config.FlagSavePassword,
				Usage: config.FlagDescSavePassword,
			},
		},
		Action: a.agesCommandAction,
	}
}

// agesCommandAction reads contacts from a file or URL and prints their ages
// and upcoming birthdays.
func (a *App) agesCommandAction(ctx context.Context, cmd *cli.Command) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	src, err := a.sourceConfig(cmd)
	if err != nil {
		return err
	}

	rep := &engine.Reporter{Clock: a.Clock, Fetcher: a.Fetcher}
	entries, err := rep.Run(ctx, src)
	if err != nil {
		return err
	}

	if err := render.WriteAges(cmd.Root().Writer, format, entries); err != nil {
		return err
	}

	if path := cmd.String(config.FlagICS); path != "" {
		data, err := engine.BirthdayCalendar(entries, a.Clock.Now())
		if err != nil {
			return err
		}
		return writeCalendar(path, data)
	}
	return nil
}

// sourceConfig builds the contact source from flags. Exactly one of --file
// and --url is accepted; a web password falls back to the keyring.
func (a *App) sourceConfig(cmd *cli.Command) (engine.SourceConfig, error) {
	file, url := cmd.String(config.FlagFile), cmd.String(config.FlagURL)
	if (file == "") == (url == "") {
		return engine.SourceConfig{}, usageError(errors.New(config.ErrSourceConflict))
	}

	user, pass := cmd.String(config.FlagUser), cmd.String(config.FlagPassword)
	if cmd.Bool(config.FlagSavePassword) {
		if user == "" || pass == "" {
			return engine.SourceConfig{}, usageError(errors.New(config.ErrSaveNeedsCreds))
		}
		if err := a.Creds.Save(user, pass); err != nil {
			return engine.SourceConfig{}, err
		}
	}

	if file != "" {
		return engine.SourceConfig{Mode: config.SourceModeLocal, LocalPath: file}, nil
	}

	resolved, err := a.Creds.Resolve(user, pass)
	if err != nil {
		// Carry on without a password; the server decides whether that is
		// acceptable.
		slog.Warn(config.MsgPassFail,
			config.LogKeyComponent, config.CompKeyring,
			config.LogKeyUser, user,
			config.LogKeyError, err,
		)
	}

	return engine.SourceConfig{
		Mode:    config.SourceModeWeb,
		WebURL:  url,
		WebUser: user,
		WebPass: resolved,
	}, nil
}
