package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskmgr/internal/core/logging"
)

type RmCmd struct {
	flags *Flags
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags) *RmCmd {
	return &RmCmd{flags: flags}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "rm",
		Aliases:     []string{"delete"},
		Usage:       "Delete a task",
		UsageText:   "taskmgr rm <id>",
		Description: "The id may be shortened to any prefix that matches exactly one task.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "rm")

	store, t, err := resolveTask(ctx, cmd.flags, c)
	if err != nil {
		return err
	}
	ctx = logging.WithTaskID(ctx, t.ID.String())

	if err := store.Delete(ctx, t.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	_, err = fmt.Fprintf(c.Root().Writer, "deleted %s %s\n", t.ID.Short(), t.Text)
	return err
}
