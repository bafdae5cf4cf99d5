// Package tui implements the interactive task manager screen.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/hay-kot/taskmgr/internal/core/task"
)

const (
	inputPlaceholder = "Add a new task"
	maxInputWidth    = 48
)

type focus int

const (
	focusInput focus = iota
	focusList
)

// Model is the bubbletea model for the task manager. The store must already
// be loaded.
type Model struct {
	ctx   context.Context
	store *task.Store
	log   zerolog.Logger

	input  textinput.Model
	keys   keyMap
	help   help.Model
	focus  focus
	cursor int
	err    error
	width  int
}

// New creates a Model with the input focused.
func New(ctx context.Context, store *task.Store, log zerolog.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = inputPlaceholder
	ti.CharLimit = 0 // unlimited
	ti.Width = maxInputWidth
	ti.Focus()

	return Model{
		ctx:   ctx,
		store: store,
		log:   log,
		input: ti,
		keys:  defaultKeyMap(),
		help:  help.New(),
		focus: focusInput,
	}
}

// Run starts the program on the alternate screen and blocks until the user quits.
func Run(ctx context.Context, store *task.Store, log zerolog.Logger) error {
	p := tea.NewProgram(New(ctx, store, log), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.input.Width = min(max(msg.Width-24, 10), maxInputWidth)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextFocus), key.Matches(msg, m.keys.PrevFocus):
		m.switchFocus()
		return m, nil
	}

	if m.focus == focusInput {
		if key.Matches(msg, m.keys.Submit) {
			m.submit()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.store.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			m.toggle(t.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			m.delete(t.ID)
		}
	case key.Matches(msg, m.keys.Back):
		m.focusInput()
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}

	return m, nil
}

// submit adds the current input as a task. The error region is cleared first
// and only set again when the text is rejected.
func (m *Model) submit() {
	m.err = nil

	_, err := m.store.Add(m.ctx, m.input.Value())
	if errors.Is(err, task.ErrEmptyText) {
		m.err = err
		return
	}
	// Save failures are logged by the store and the task stays in the list.

	m.input.SetValue("")
}

func (m *Model) toggle(id task.ID) {
	_ = m.store.Toggle(m.ctx, id)
}

func (m *Model) delete(id task.ID) {
	_ = m.store.Delete(m.ctx, id)

	if n := m.store.Len(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	if m.store.Len() == 0 {
		m.focusInput()
	}
}

func (m *Model) switchFocus() {
	if m.focus == focusList {
		m.focusInput()
		return
	}
	if m.store.Len() == 0 {
		return
	}
	m.focus = focusList
	m.input.Blur()
	m.cursor = min(m.cursor, m.store.Len()-1)
}

func (m *Model) focusInput() {
	m.focus = focusInput
	m.input.Focus()
}

// selected returns the task under the cursor when the list has focus.
func (m Model) selected() (task.Task, bool) {
	if m.focus != focusList {
		return task.Task{}, false
	}
	tasks := m.store.Tasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return task.Task{}, false
	}
	return tasks[m.cursor], true
}

// Err returns the validation error currently shown, if any.
func (m Model) Err() error {
	return m.err
}
