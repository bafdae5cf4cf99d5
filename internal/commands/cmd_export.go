package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/taskmgr/internal/core/logging"
	"github.com/hay-kot/taskmgr/internal/core/styles"
	"github.com/hay-kot/taskmgr/internal/core/task"
)

const defaultWrapWidth = 80

type ExportCmd struct {
	flags *Flags

	// flags
	raw bool
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags) *ExportCmd {
	return &ExportCmd{flags: flags}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Print the list as a markdown checklist",
		UsageText: "taskmgr export [--raw]",
		Description: `Writes the task list as a markdown checklist.

On a terminal the markdown is rendered; pass --raw (or pipe the output) to get plain markdown.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print markdown source without rendering",
				Destination: &cmd.raw,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "export")

	store, err := cmd.flags.Tasks(ctx)
	if err != nil {
		return err
	}

	out := c.Root().Writer
	md := Markdown(store.Tasks())

	width, tty := terminalWidth(out)
	if cmd.raw || !tty {
		_, err := io.WriteString(out, md)
		return err
	}

	rendered, err := renderMarkdown(md, width)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	_, err = io.WriteString(out, rendered)
	return err
}

// Markdown renders tasks as a checklist headed by the summary line.
func Markdown(tasks []task.Task) string {
	var b strings.Builder
	b.WriteString("# Task Manager\n\n")

	if len(tasks) == 0 {
		b.WriteString(emptyListMessage + "\n")
		return b.String()
	}

	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s\n", mark, t.Text)
	}

	fmt.Fprintf(&b, "\n_%s_\n", task.Summarize(tasks))
	return b.String()
}

func renderMarkdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// terminalWidth reports whether w is a terminal and, if so, its width.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWrapWidth, false
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWrapWidth, true
	}
	return width, true
}
