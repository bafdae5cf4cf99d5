package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskmgr/internal/core/logging"
	"github.com/hay-kot/taskmgr/internal/core/task"
	"github.com/hay-kot/taskmgr/pkg/iojson"
)

const emptyListMessage = "No tasks yet. Add one above!"

type LsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List all tasks",
		UsageText: "taskmgr ls [--json]",
		Description: `Displays a table of all tasks in the order they were added.

Use --json for one JSON object per line.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "ls")

	store, err := cmd.flags.Tasks(ctx)
	if err != nil {
		return err
	}

	tasks := store.Tasks()
	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, t := range tasks {
			if err := iojson.WriteLine(out, t); err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
		}
		return nil
	}

	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(c.Root().ErrWriter, emptyListMessage)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tDONE\tTEXT\tCREATED")

	for _, t := range tasks {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID.Short(), doneMark(t), t.Text, formatCreated(t.CreatedAt))
	}

	_ = w.Flush()

	_, err = fmt.Fprintln(out, task.Summarize(tasks))
	return err
}

func doneMark(t task.Task) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

func formatCreated(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("2006-01-02 15:04")
}
