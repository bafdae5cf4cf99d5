package task

import (
	"fmt"
	"strings"
)

// Summary counts completed tasks against the total.
type Summary struct {
	Completed int
	Total     int
}

// String renders the footer line, e.g. "1 of 3 tasks completed".
func (s Summary) String() string {
	return fmt.Sprintf("%d of %d tasks completed", s.Completed, s.Total)
}

// Summarize counts completed tasks in list.
func Summarize(list []Task) Summary {
	s := Summary{Total: len(list)}
	for _, t := range list {
		if t.Completed {
			s.Completed++
		}
	}
	return s
}

// Toggle returns a copy of list with the completion flag of the task matching id flipped.
// The boolean reports whether a task matched.
func Toggle(list []Task, id ID) ([]Task, bool) {
	out := make([]Task, len(list))
	found := false
	for i, t := range list {
		if t.ID == id {
			t.Completed = !t.Completed
			found = true
		}
		out[i] = t
	}
	return out, found
}

// Remove returns a copy of list without the task matching id, preserving order.
// The boolean reports whether a task matched.
func Remove(list []Task, id ID) ([]Task, bool) {
	out := make([]Task, 0, len(list))
	found := false
	for _, t := range list {
		if t.ID == id {
			found = true
			continue
		}
		out = append(out, t)
	}
	return out, found
}

// Resolve finds the task whose id equals ref, or failing that, the single task
// whose id starts with ref.
func Resolve(list []Task, ref string) (Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Task{}, ErrNotFound
	}

	var (
		match Task
		count int
	)
	for _, t := range list {
		if string(t.ID) == ref {
			return t, nil
		}
		if strings.HasPrefix(string(t.ID), ref) {
			match = t
			count++
		}
	}

	switch count {
	case 0:
		return Task{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return match, nil
	default:
		return Task{}, fmt.Errorf("%w: %q matches %d tasks", ErrAmbiguous, ref, count)
	}
}
