// Package task defines the task list domain model and the store that owns it.
package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmptyText is returned when a task is submitted with empty or whitespace-only text.
	ErrEmptyText = errors.New("Task cannot be empty") //nolint:staticcheck // shown verbatim in the UI
	// ErrNotFound is returned when a task reference does not match any task.
	ErrNotFound = errors.New("task not found")
	// ErrAmbiguous is returned when a task id prefix matches more than one task.
	ErrAmbiguous = errors.New("ambiguous task id")
)

// ID identifies a task. New tasks get a UUID; ids written as JSON numbers
// (millisecond timestamps) are kept as their decimal string.
type ID string

// NewID returns a fresh random task ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return string(id)
}

// Short returns the first 8 characters of the id for display.
func (id ID) Short() string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}

// UnmarshalJSON accepts both string and numeric ids.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("task id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Task is a single to-do entry.
type Task struct {
	ID        ID        `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// New builds a pending task from user input. The text is trimmed and must not be empty.
func New(id ID, text string, now time.Time) (Task, error) {
	text = strings.TrimSpace(text)
	if err := ValidateText(text); err != nil {
		return Task{}, err
	}

	return Task{
		ID:        id,
		Text:      text,
		Completed: false,
		CreatedAt: now.UTC().Truncate(time.Millisecond),
	}, nil
}

// ValidateText returns ErrEmptyText if text is empty after trimming whitespace.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	return nil
}

// ToggleLabel describes what toggling t would do, e.g. `Mark "Buy milk" as complete`.
func (t Task) ToggleLabel() string {
	state := "complete"
	if t.Completed {
		state = "incomplete"
	}
	return fmt.Sprintf(`Mark "%s" as %s`, t.Text, state)
}

// DeleteLabel describes the delete control for t, e.g. `Delete task "Buy milk"`.
func (t Task) DeleteLabel() string {
	return fmt.Sprintf(`Delete task "%s"`, t.Text)
}
