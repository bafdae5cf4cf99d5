package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/taskmgr/internal/core/logging"
	"github.com/hay-kot/taskmgr/internal/core/styles"
	"github.com/hay-kot/taskmgr/internal/core/validate"
)

type AddCmd struct {
	flags *Flags

	interactive func() bool
	prompt      func(text *string) error
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags) *AddCmd {
	return &AddCmd{
		flags:       flags,
		interactive: stdinIsTerminal,
		prompt:      runAddForm,
	}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a task",
		UsageText: "taskmgr add [text...]",
		Description: `Adds a task to the end of the list and prints its id.

Arguments are joined with spaces. With no arguments on a terminal, prompts for the text.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "add")

	text := strings.Join(c.Args().Slice(), " ")
	if text == "" && cmd.interactive() {
		if err := cmd.prompt(&text); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	store, err := cmd.flags.Tasks(ctx)
	if err != nil {
		return err
	}

	t, err := store.Add(ctx, text)
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}

	_, err = fmt.Fprintln(c.Root().Writer, t.ID)
	return err
}

func runAddForm(text *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New task").
				Placeholder("Add a new task").
				Validate(validate.TaskText).
				Value(text),
		),
	).WithTheme(styles.FormTheme()).Run()
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
