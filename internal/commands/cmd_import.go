package commands

import (
	"context"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskmgr/internal/core/logging"
	"github.com/hay-kot/taskmgr/internal/core/validate"
	"github.com/hay-kot/taskmgr/pkg/iojson"
)

type ImportCmd struct {
	flags *Flags
	fr    *iojson.FileReader[ImportInput]
}

func NewImportCmd(flags *Flags) *ImportCmd {
	return &ImportCmd{
		flags: flags,
		fr:    &iojson.FileReader[ImportInput]{},
	}
}

func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "import",
		Usage: "Append tasks from JSON input",
		UsageText: `taskmgr import [options]

Read from stdin:
  echo '[{"text":"Buy milk"},{"text":"Walk dog","completed":true}]' | taskmgr import

Read from file:
  taskmgr import -f tasks.json`,
		Description: `Appends every task in a JSON array to the end of the list.

The input is validated as a whole before anything is added; one empty text
rejects the entire import. Output of 'taskmgr ls --json' wrapped in [ ] is
accepted, ids and timestamps are ignored and new ones are assigned.`,
		Flags: []cli.Flag{
			cmd.fr.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "import")

	input, err := cmd.fr.Read()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if err := input.Validate(); err != nil {
		return err
	}

	store, err := cmd.flags.Tasks(ctx)
	if err != nil {
		return err
	}

	for _, item := range input {
		t, err := store.Add(ctx, item.Text)
		if err != nil {
			return fmt.Errorf("import %q: %w", item.Text, err)
		}
		if item.Completed {
			if err := store.Toggle(ctx, t.ID); err != nil {
				return fmt.Errorf("import %q: %w", item.Text, err)
			}
		}
	}

	_, err = fmt.Fprintf(c.Root().Writer, "imported %d tasks\n", len(input))
	return err
}

// ImportTask is one entry of the import array.
type ImportTask struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed,omitempty"`
}

// ImportInput is the JSON array accepted by the import command.
type ImportInput []ImportTask

// Validate checks every entry, reporting all empty texts at once.
func (in ImportInput) Validate() error {
	if len(in) == 0 {
		return criterio.NewFieldErrors("tasks", fmt.Errorf("array is empty"))
	}

	checks := make([]error, 0, len(in))
	for i, item := range in {
		checks = append(checks, validate.TaskTextField(fmt.Sprintf("tasks[%d].text", i), item.Text))
	}

	return criterio.ValidateStruct(checks...)
}
