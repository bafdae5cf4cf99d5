package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskmgr/internal/core/logging"
	"github.com/hay-kot/taskmgr/pkg/logutils"
)

// NewApp builds the root command with every subcommand registered. The
// interactive task manager runs when no subcommand is given.
func NewApp(flags *Flags, version string) *cli.Command {
	var logCloser func()

	app := &cli.Command{
		Name:      "taskmgr",
		Usage:     "Keep a short list of tasks",
		UsageText: "taskmgr [global options] [command [command options]]",
		Description: `taskmgr keeps a single ordered list of tasks that survives restarts.

Run 'taskmgr' with no arguments to open the interactive task manager.
Run 'taskmgr add "Buy milk"' to add a task without opening it.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TASKMGR_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/taskmgr.log)",
				Sources:     cli.EnvVars("TASKMGR_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TASKMGR_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TASKMGR_DATA_DIR"),
				Value:       DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "storage",
				Usage:       "storage backend override (sqlite, file, memory)",
				Sources:     cli.EnvVars("TASKMGR_STORAGE"),
				Destination: &flags.Storage,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFilePath())
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			logging.Install(logger)
			logCloser = closer

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if err := flags.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close storage")
				return err
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := NewTuiCmd(flags)

	app = NewAddCmd(flags).Register(app)
	app = NewLsCmd(flags).Register(app)
	app = NewToggleCmd(flags).Register(app)
	app = NewRmCmd(flags).Register(app)
	app = NewImportCmd(flags).Register(app)
	app = NewExportCmd(flags).Register(app)
	app = NewConfigValidateCmd(flags).Register(app)

	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'taskmgr --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	return app
}
