package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskmgr/internal/core/logging"
	"github.com/hay-kot/taskmgr/internal/core/task"
	"github.com/hay-kot/taskmgr/internal/core/validate"
)

type ToggleCmd struct {
	flags *Flags
}

// NewToggleCmd creates a new toggle command
func NewToggleCmd(flags *Flags) *ToggleCmd {
	return &ToggleCmd{flags: flags}
}

// Register adds the toggle command to the application
func (cmd *ToggleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "toggle",
		Aliases:     []string{"done"},
		Usage:       "Flip a task between complete and incomplete",
		UsageText:   "taskmgr toggle <id>",
		Description: "The id may be shortened to any prefix that matches exactly one task.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *ToggleCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "toggle")

	store, t, err := resolveTask(ctx, cmd.flags, c)
	if err != nil {
		return err
	}
	ctx = logging.WithTaskID(ctx, t.ID.String())

	if err := store.Toggle(ctx, t.ID); err != nil {
		return fmt.Errorf("toggle task: %w", err)
	}

	t, _ = store.Get(t.ID)
	_, err = fmt.Fprintf(c.Root().Writer, "%s %s\n", doneMark(t), t.Text)
	return err
}

// resolveTask opens the store and looks up the task named by the first argument.
func resolveTask(ctx context.Context, flags *Flags, c *cli.Command) (*task.Store, task.Task, error) {
	ref := c.Args().First()
	if c.Args().Len() != 1 {
		return nil, task.Task{}, fmt.Errorf("expected exactly one task id, got %d", c.Args().Len())
	}
	if err := validate.TaskRef(ref); err != nil {
		return nil, task.Task{}, err
	}

	store, err := flags.Tasks(ctx)
	if err != nil {
		return nil, task.Task{}, err
	}

	t, err := store.Resolve(ref)
	if err != nil {
		return nil, task.Task{}, err
	}
	return store, t, nil
}
