package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskmgr/internal/core/logging"
	"github.com/hay-kot/taskmgr/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "taskmgr config validate [options]",
				Description: "Loads the configuration file and checks the storage backend, key, path, and theme.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationError is one field failure in JSON output.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "config validate")

	_, err := cmd.flags.Config()

	var fieldErrs criterio.FieldErrors
	if err != nil && !errors.As(err, &fieldErrs) {
		return err
	}

	if cmd.format == "json" {
		out := struct {
			Valid  bool              `json:"valid"`
			Errors []validationError `json:"errors,omitempty"`
		}{Valid: err == nil}
		for _, fe := range fieldErrs {
			out.Errors = append(out.Errors, validationError{Field: fe.Field, Message: fe.Err.Error()})
		}

		if werr := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out); werr != nil {
			return werr
		}
	} else {
		w := c.Root().Writer
		if err == nil {
			_, _ = fmt.Fprintln(w, "config ok")
			return nil
		}
		for _, fe := range fieldErrs {
			_, _ = fmt.Fprintf(w, "%s: %s\n", fe.Field, fe.Err)
		}
	}

	if err != nil {
		logCtx := logging.Component("config")
		logCtx.Warn().Ctx(ctx).Int("errors", len(fieldErrs)).Msg("invalid config")
		return fmt.Errorf("%d error(s) found", len(fieldErrs))
	}
	return nil
}
