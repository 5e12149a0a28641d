package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DueDisplayLayout is how a picked due date is shown next to a todo.
const DueDisplayLayout = "Monday 02 Jan"

// Priority ranks a todo. New todos start at PriorityMedium.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority maps free text onto a Priority. Unknown values report false.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow, true
	case PriorityMedium:
		return PriorityMedium, true
	case PriorityHigh:
		return PriorityHigh, true
	}
	return PriorityMedium, false
}

// Next cycles low -> medium -> high -> low.
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

// Todo is a single task inside a project.
// ID is assigned by NewTodo and never changes afterwards.
type Todo struct {
	ID        string
	Text      string
	Completed bool
	Priority  Priority
	DueDate   *time.Time
}

// NewTodo returns an empty, pending todo with a fresh id and no due date.
func NewTodo() Todo {
	return Todo{
		ID:       uuid.NewString(),
		Priority: PriorityMedium,
	}
}

func (t *Todo) ToggleComplete() {
	t.Completed = !t.Completed
}

// HasDueDate reports whether a due date is set.
func (t Todo) HasDueDate() bool { return t.DueDate != nil }

// SetDueDate replaces the due date; nil clears it.
func (t *Todo) SetDueDate(d *time.Time) {
	if d == nil {
		t.DueDate = nil
		return
	}
	v := *d
	t.DueDate = &v
}

// DueDateDisplay is derived from DueDate every time so the two never drift.
func (t Todo) DueDateDisplay() string {
	if t.DueDate == nil {
		return ""
	}
	return t.DueDate.Format(DueDisplayLayout)
}

// Clone returns a copy that shares no memory with t.
func (t Todo) Clone() Todo {
	c := t
	c.SetDueDate(t.DueDate)
	return c
}
