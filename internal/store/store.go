// Package store holds every project of a session and mirrors it to a storage
// backend. Each mutation rewrites the whole blob under one key.
//
// A Store starts Uninitialized. Initialize loads persisted state once; the
// first mutation also moves it to Loaded, treating the missing state as empty.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/due"
	"github.com/Makepad-fr/tada/internal/model"
)

// DefaultKey is the storage key holding the project blob.
const DefaultKey = "projects"

var (
	ErrAlreadyInitialized = errors.New("store already initialized")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTodoNotFound       = errors.New("todo not found")
)

// Backend is a key/value blob storage. Get returns nil, nil for a missing key.
type Backend interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

// State is the store lifecycle.
type State int

const (
	Uninitialized State = iota
	Loaded
)

func (s State) String() string {
	if s == Loaded {
		return "loaded"
	}
	return "uninitialized"
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(l *log.Logger) Option { return func(s *Store) { s.log = l } }

func WithMetrics(m *Metrics) Option { return func(s *Store) { s.metrics = m } }

// WithClock sets the time source used by the due-soon queries and for
// interpreting date-only values on load.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

func WithKey(key string) Option { return func(s *Store) { s.key = key } }

type Store struct {
	mu       sync.RWMutex
	backend  Backend
	key      string
	log      *log.Logger
	metrics  *Metrics
	now      func() time.Time
	state    State
	projects []*model.Project
}

// New returns an Uninitialized store over backend.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:  backend,
		key:      DefaultKey,
		now:      time.Now,
		projects: []*model.Project{},
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	return s
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Now is the store's clock.
func (s *Store) Now() time.Time { return s.now() }

// Initialize loads persisted state. It may run only once, and only before
// any mutation.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Loaded {
		return ErrAlreadyInitialized
	}
	if err := s.loadLocked(false); err != nil {
		return err
	}
	s.state = Loaded
	return nil
}

// Load reads the persisted blob. An absent, empty or malformed blob leaves
// the in-memory projects as they are; otherwise they are replaced.
// Only backend read failures are returned.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(false); err != nil {
		return err
	}
	s.state = Loaded
	return nil
}

// Reload replaces memory with whatever another process last persisted.
// Unlike Load, an absent or empty blob clears the projects. A malformed
// blob still leaves memory as it is.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(true); err != nil {
		return err
	}
	s.state = Loaded
	return nil
}

func (s *Store) loadLocked(reload bool) error {
	b, err := s.backend.Get(s.key)
	if err != nil {
		s.metrics.load("error")
		return fmt.Errorf("load %s: %w", s.key, err)
	}
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("[]")) {
		s.log.Debug("no stored projects", "key", s.key)
		s.metrics.load("empty")
		if reload {
			s.projects = []*model.Project{}
			s.metrics.projects(0)
		}
		return nil
	}
	recs, err := decode(trimmed)
	if err != nil {
		s.log.Warn("ignoring malformed stored projects", "key", s.key, "err", err)
		s.metrics.load("malformed")
		return nil
	}
	if len(recs) == 0 {
		s.metrics.load("empty")
		if reload {
			s.projects = []*model.Project{}
			s.metrics.projects(0)
		}
		return nil
	}
	projects, issues := rebuild(recs, s.now().Location())
	for _, is := range issues {
		s.log.Warn(is.msg, is.args...)
	}
	s.projects = projects
	if reload {
		s.log.Debug("reloaded projects", "count", len(projects))
	} else {
		s.log.Info("found existing projects", "count", len(projects))
	}
	s.metrics.load("loaded")
	s.metrics.projects(len(projects))
	return nil
}

// Save writes every project, with nested todos, as one blob replacing the
// previous value.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	start := time.Now()
	b, err := encode(s.projects)
	if err != nil {
		return err
	}
	if err := s.backend.Set(s.key, b); err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	s.metrics.persist(time.Since(start))
	s.metrics.projects(len(s.projects))
	s.log.Debug("saved projects", "key", s.key, "count", len(s.projects), "bytes", len(b))
	return nil
}

// mutate runs fn under the write lock and persists when fn succeeds.
func (s *Store) mutate(op string, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Loaded
	err := fn()
	if err == nil {
		err = s.saveLocked()
	}
	s.metrics.mutation(op, err)
	return err
}

// AddProject creates a project at the front of the list and persists.
func (s *Store) AddProject(title string) (model.Project, error) {
	var p *model.Project
	err := s.mutate("add_project", func() error {
		p = model.NewProject(title)
		s.projects = append([]*model.Project{p}, s.projects...)
		return nil
	})
	if err != nil {
		return model.Project{}, err
	}
	return p.Clone(), nil
}

// RemoveProject drops a project and all its todos. Unknown ids are ignored.
func (s *Store) RemoveProject(id string) error {
	return s.mutate("remove_project", func() error {
		kept := make([]*model.Project, 0, len(s.projects))
		for _, p := range s.projects {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		s.projects = kept
		return nil
	})
}

// Projects returns a deep copy of all projects, newest first.
// Changing the result has no effect on the store.
func (s *Store) Projects() []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out
}

// Project returns a copy of one project.
func (s *Store) Project(id string) (model.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p := s.find(id); p != nil {
		return p.Clone(), true
	}
	return model.Project{}, false
}

// Len is the number of projects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}

func (s *Store) find(id string) *model.Project {
	for _, p := range s.projects {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Update hands the live project to fn and persists afterwards.
// fn must not keep the pointer.
func (s *Store) Update(projectID string, fn func(*model.Project)) error {
	return s.mutate("update_project", func() error {
		p := s.find(projectID)
		if p == nil {
			return fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
		}
		fn(p)
		return nil
	})
}

// AddTodo appends an empty todo to a project and persists.
func (s *Store) AddTodo(projectID string) (model.Todo, error) {
	var t model.Todo
	err := s.mutate("add_todo", func() error {
		p := s.find(projectID)
		if p == nil {
			return fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
		}
		t = p.AddTodo().Clone()
		return nil
	})
	return t, err
}

// RemoveTodo drops a todo. Unknown project or todo ids are ignored.
func (s *Store) RemoveTodo(projectID, todoID string) error {
	return s.mutate("remove_todo", func() error {
		if p := s.find(projectID); p != nil {
			p.RemoveTodo(todoID)
		}
		return nil
	})
}

func (s *Store) editTodo(op, projectID, todoID string, fn func(*model.Todo)) (model.Todo, error) {
	var out model.Todo
	err := s.mutate(op, func() error {
		p := s.find(projectID)
		if p == nil {
			return fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
		}
		t := p.Todo(todoID)
		if t == nil {
			return fmt.Errorf("%w: %s", ErrTodoNotFound, todoID)
		}
		fn(t)
		out = t.Clone()
		return nil
	})
	return out, err
}

func (s *Store) SetTodoText(projectID, todoID, text string) (model.Todo, error) {
	return s.editTodo("set_text", projectID, todoID, func(t *model.Todo) { t.Text = text })
}

func (s *Store) ToggleTodo(projectID, todoID string) (model.Todo, error) {
	return s.editTodo("toggle", projectID, todoID, func(t *model.Todo) { t.ToggleComplete() })
}

// SetTodoDueDate sets or, with nil, clears the due date.
func (s *Store) SetTodoDueDate(projectID, todoID string, d *time.Time) (model.Todo, error) {
	return s.editTodo("set_due_date", projectID, todoID, func(t *model.Todo) { t.SetDueDate(d) })
}

func (s *Store) SetTodoPriority(projectID, todoID string, p model.Priority) (model.Todo, error) {
	return s.editTodo("set_priority", projectID, todoID, func(t *model.Todo) { t.Priority = p })
}

// DueToday lists todos due today across all projects.
func (s *Store) DueToday() []due.Item { return due.Today(s.Projects(), s.now()) }

// DueTomorrow lists todos due tomorrow across all projects.
func (s *Store) DueTomorrow() []due.Item { return due.Tomorrow(s.Projects(), s.now()) }

// DueNextWeek lists todos due 2 to 7 days from now across all projects.
func (s *Store) DueNextWeek() []due.Item { return due.NextWeek(s.Projects(), s.now()) }

// DueSoon computes all buckets from one snapshot.
func (s *Store) DueSoon() due.Result { return due.Buckets(s.Projects(), s.now()) }

// Close releases the backend.
func (s *Store) Close() error { return s.backend.Close() }
