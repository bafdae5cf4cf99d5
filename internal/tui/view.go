package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/taskmgr/internal/core/styles"
	"github.com/hay-kot/taskmgr/internal/core/task"
)

const (
	title          = "Task Manager"
	buttonLabel    = "Add Task"
	deleteLabel    = "Delete"
	emptyListLabel = "No tasks yet. Add one above!"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.renderForm())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(styles.AlertStyle.Render(styles.AlertIcon + " " + m.err.Error()))
		b.WriteString("\n")
	}

	tasks := m.store.Tasks()
	b.WriteString("\n")
	if len(tasks) == 0 {
		b.WriteString(styles.PlaceholderStyle.Render(emptyListLabel))
		b.WriteString("\n")
	} else {
		for i, t := range tasks {
			b.WriteString(m.renderRow(t, m.focus == focusList && i == m.cursor))
			b.WriteString("\n")
		}

		if t, ok := m.selected(); ok {
			b.WriteString("\n")
			b.WriteString(styles.LabelStyle.Render(t.ToggleLabel()))
			b.WriteString("\n")
			b.WriteString(styles.LabelStyle.Render(t.DeleteLabel()))
			b.WriteString("\n")
		}

		b.WriteString(styles.FooterStyle.Render(task.Summarize(tasks).String()))
		b.WriteString("\n")
	}

	b.WriteString(styles.HelpStyle.Render(m.help.View(focusedHelp{keys: m.keys, focus: m.focus})))

	return b.String()
}

func (m Model) renderForm() string {
	inputStyle := styles.InputStyle
	buttonStyle := styles.ButtonStyle
	if m.focus == focusInput {
		inputStyle = styles.InputFocusedStyle
		buttonStyle = styles.ButtonFocusedStyle
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		inputStyle.Render(m.input.View()),
		" ",
		buttonStyle.Render(buttonLabel),
	)
}

func (m Model) renderRow(t task.Task, selected bool) string {
	checkbox := "[ ]"
	if t.Completed {
		checkbox = "[x]"
	}

	line := styles.CheckboxStyle.Render(checkbox) + " " +
		textStyle(t).Render(t.Text) + "  " +
		styles.DeleteStyle.Render(deleteLabel)

	if selected {
		return styles.RowSelectedStyle.Render(line)
	}
	return styles.RowStyle.Render(line)
}

// textStyle strikes through completed tasks.
func textStyle(t task.Task) lipgloss.Style {
	if t.Completed {
		return styles.TaskDoneStyle
	}
	return styles.TaskTextStyle
}
