// Package validate provides shared validation functions.
package validate

import (
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/hay-kot/taskmgr/internal/core/task"
)

// TaskText validates task text is non-empty after trimming whitespace.
func TaskText(text string) error {
	return task.ValidateText(text)
}

// TaskTextField returns a criterio validator for task text.
func TaskTextField(field, text string) error {
	return criterio.Run(field, text, TaskText)
}

// TaskRef validates a task id or id prefix is present and contains no whitespace.
func TaskRef(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return task.ErrNotFound
	}
	if strings.ContainsAny(ref, " \t\n") {
		return errInvalidRef
	}
	return nil
}
