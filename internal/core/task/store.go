package task

import (
	"context"
	"slices"
	"time"

	"github.com/rs/zerolog"
)

// Store owns the ordered task list and mirrors it into Storage after every change.
// It is not safe for concurrent use; callers serialize mutations.
type Store struct {
	storage Storage
	log     zerolog.Logger
	newID   func() ID
	now     func() time.Time

	tasks []Task
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides the id source (UUIDs by default).
func WithIDGenerator(fn func() ID) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock overrides the creation timestamp source.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// NewStore creates an empty Store. Call Load before use to pick up persisted tasks.
func NewStore(storage Storage, log zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		log:     log,
		newID:   NewID,
		now:     time.Now,
		tasks:   []Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory list with the persisted one and writes the
// result back. Unreadable data is logged and treated as an empty list; only
// the write-back can fail.
func (s *Store) Load(ctx context.Context) error {
	tasks, found, err := s.storage.Load(ctx)
	switch {
	case err != nil:
		s.log.Error().Ctx(ctx).Err(err).Msg("error loading tasks")
		tasks = []Task{}
	case !found || tasks == nil:
		tasks = []Task{}
	}

	s.tasks = tasks
	s.log.Debug().Ctx(ctx).Int("count", len(tasks)).Bool("found", found).Msg("tasks loaded")

	return s.persist(ctx)
}

// Tasks returns a copy of the current list in insertion order.
func (s *Store) Tasks() []Task {
	return slices.Clone(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Summary counts completed tasks against the total.
func (s *Store) Summary() Summary {
	return Summarize(s.tasks)
}

// Get returns the task with the given id.
func (s *Store) Get(id ID) (Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Resolve finds a task by full id or unique id prefix.
func (s *Store) Resolve(ref string) (Task, error) {
	return Resolve(s.tasks, ref)
}

// Add appends a new task built from text. Returns ErrEmptyText without
// touching the list when text is blank.
func (s *Store) Add(ctx context.Context, text string) (Task, error) {
	t, err := New(s.uniqueID(), text, s.now())
	if err != nil {
		return Task{}, err
	}

	s.tasks = append(s.tasks, t)
	s.log.Debug().Ctx(ctx).Str("id", t.ID.String()).Msg("task added")

	return t, s.persist(ctx)
}

// Toggle flips the completion flag of the task with the given id.
// Unknown ids are ignored.
func (s *Store) Toggle(ctx context.Context, id ID) error {
	tasks, ok := Toggle(s.tasks, id)
	if !ok {
		s.log.Debug().Ctx(ctx).Str("id", id.String()).Msg("toggle: no such task")
		return nil
	}

	s.tasks = tasks
	return s.persist(ctx)
}

// Delete removes the task with the given id. Unknown ids are ignored.
func (s *Store) Delete(ctx context.Context, id ID) error {
	tasks, ok := Remove(s.tasks, id)
	if !ok {
		s.log.Debug().Ctx(ctx).Str("id", id.String()).Msg("delete: no such task")
		return nil
	}

	s.tasks = tasks
	return s.persist(ctx)
}

// uniqueID draws ids until one is not held by any current task.
func (s *Store) uniqueID() ID {
	for {
		id := s.newID()
		if _, exists := s.Get(id); !exists {
			return id
		}
	}
}

func (s *Store) persist(ctx context.Context) error {
	if err := s.storage.Save(ctx, s.tasks); err != nil {
		s.log.Error().Ctx(ctx).Err(err).Int("count", len(s.tasks)).Msg("error saving tasks")
		return err
	}
	return nil
}
